package service

import (
	"sync/atomic"
	"time"
)

type State struct {
	ready     atomic.Bool
	startedAt time.Time

	wsConnected   atomic.Bool
	lastTickUnix  atomic.Int64 // unix seconds, последний WS-тик
	lastSweepUnix atomic.Int64 // unix seconds, последний завершённый свип детектора
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

func (s *State) SetWSConnected(v bool) { s.wsConnected.Store(v) }
func (s *State) WSConnected() bool     { return s.wsConnected.Load() }

func (s *State) TouchTick(t time.Time) { s.lastTickUnix.Store(t.Unix()) }
func (s *State) LastTick() time.Time   { return fromUnix(s.lastTickUnix.Load()) }

func (s *State) TouchSweep(t time.Time) { s.lastSweepUnix.Store(t.Unix()) }
func (s *State) LastSweep() time.Time   { return fromUnix(s.lastSweepUnix.Load()) }

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }

func fromUnix(u int64) time.Time {
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

package service

import (
	"sync"
	"time"

	"signal_bot/internal/models"
)

// symState — позиция одного символа. Мьютекс сериализует конкурентные
// заходы детектора и проверки цели по этому символу.
type symState struct {
	mu  sync.Mutex
	pos models.Position
}

// Store — все позиции и таймстемпы последних уведомлений.
// lastNotified живёт отдельно от позиций: кулдаун действует и после
// закрытия сигнала.
type Store struct {
	mu           sync.RWMutex
	states       map[string]*symState
	lastNotified map[string]time.Time
}

func NewStore() *Store {
	return &Store{
		states:       make(map[string]*symState),
		lastNotified: make(map[string]time.Time),
	}
}

// lockSymbol возвращает состояние символа под взятым локом.
// Снимать через unlock.
func (s *Store) lockSymbol(symbol string) *symState {
	s.mu.Lock()
	st, ok := s.states[symbol]
	if !ok {
		st = &symState{pos: models.Position{Symbol: symbol, Status: models.StatusIdle}}
		s.states[symbol] = st
	}
	s.mu.Unlock()

	st.mu.Lock()
	return st
}

func (s *Store) unlock(st *symState) {
	st.mu.Unlock()
}

func (s *Store) lastNotifiedAt(symbol string) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastNotified[symbol]
}

func (s *Store) markNotified(symbol string, at time.Time) {
	s.mu.Lock()
	s.lastNotified[symbol] = at
	s.mu.Unlock()
}

// snapshotStates отдаёт срез состояний под s.mu и сразу его отпускает.
// Порядок локов строгий: st.mu берём только без s.mu — иначе встречный
// detect-проход (st.mu, затем s.mu в markNotified) даёт взаимную блокировку.
func (s *Store) snapshotStates() []*symState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*symState, 0, len(s.states))
	for _, st := range s.states {
		out = append(out, st)
	}
	return out
}

// ActiveSymbols — символы с открытой позицией (для цикла проверки цели).
func (s *Store) ActiveSymbols() []string {
	states := s.snapshotStates()

	out := make([]string, 0, len(states))
	for _, st := range states {
		st.mu.Lock()
		if st.pos.Status == models.StatusActive {
			out = append(out, st.pos.Symbol)
		}
		st.mu.Unlock()
	}
	return out
}

// ActivePositions — копии открытых позиций (для /status и healthz).
func (s *Store) ActivePositions() []models.Position {
	states := s.snapshotStates()

	out := make([]models.Position, 0, len(states))
	for _, st := range states {
		st.mu.Lock()
		if st.pos.Status == models.StatusActive {
			pos := st.pos
			pos.EntryPrices = append([]float64(nil), st.pos.EntryPrices...)
			out = append(out, pos)
		}
		st.mu.Unlock()
	}
	return out
}

package service

import (
	"context"
	"math"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	strategysvc "signal_bot/internal/modules/strategy/service"
)

// Notifier — то, что трекеру нужно от Telegram: отправить карточку сигнала
// (вернув handle для последующих правок), поправить её и разослать копию
// подписчикам.
type Notifier interface {
	SendSignal(ctx context.Context, text string) (int, error)
	EditSignal(ctx context.Context, msgID int, text string) error
	Broadcast(ctx context.Context, text string)
}

// Logbook — журнал индикаторных замеров и закрытых сигналов.
type Logbook interface {
	AppendSample(s models.IndicatorSample) error
	AppendClosed(sig models.ClosedSignal) error
}

// Tracker — стейт-машина сигналов: открытие, усреднение, трекинг дна,
// закрытие по цели.
type Tracker struct {
	cfg    *config.Config
	engine *strategysvc.Engine
	store  *Store
	n      Notifier
	log    Logbook
}

func NewTracker(cfg *config.Config, engine *strategysvc.Engine, store *Store, n Notifier, log Logbook) *Tracker {
	return &Tracker{
		cfg:    cfg,
		engine: engine,
		store:  store,
		n:      n,
		log:    log,
	}
}

func (t *Tracker) ActiveSymbols() []string            { return t.store.ActiveSymbols() }
func (t *Tracker) ActivePositions() []models.Position { return t.store.ActivePositions() }

// round8 — цены и цели держим с точностью до 8 знаков, как их отдаёт биржа.
func round8(v float64) float64 {
	return math.Round(v*1e8) / 1e8
}

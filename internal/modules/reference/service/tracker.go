package service

import (
	"context"
	"sync"
	"time"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"
)

const (
	retention = 31 * time.Minute // старше — выбрасываем
	lookback  = 30 * time.Minute // база для 30-минутного изменения
)

type PriceFetcher interface {
	Price(ctx context.Context, symbol string) (float64, error)
}

type refPoint struct {
	price float64
	at    time.Time
}

// Tracker ведёт историю цены референс-актива в окне retention.
// Один экземпляр на процесс, все вызовы сериализуются мьютексом:
// буфер — общий ресурс обоих циклов.
type Tracker struct {
	cfg      *config.Config
	provider PriceFetcher

	mu      sync.Mutex
	points  []refPoint // от старых к новым
	prev    float64
	hasPrev bool

	now func() time.Time
}

func NewTracker(cfg *config.Config, provider PriceFetcher) *Tracker {
	return &Tracker{
		cfg:      cfg,
		provider: provider,
		now:      time.Now,
	}
}

// Fetch опрашивает цену и возвращает срез с процентными изменениями.
// Ошибка запроса не пробрасывается: консюмеры получают полностью
// недоступный снапшот и продолжают работать.
func (t *Tracker) Fetch(ctx context.Context) models.ReferenceSnapshot {
	price, err := t.provider.Price(ctx, t.cfg.ReferenceSymbol)
	if err != nil {
		logger.Error("[REF] %s: %v", t.cfg.ReferenceSymbol, err)
		return models.ReferenceSnapshot{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	snap := models.ReferenceSnapshot{Price: price, PriceOK: true}

	if t.hasPrev && t.prev != 0 {
		snap.ChangePct = (price - t.prev) / t.prev * 100
		snap.ChangeOK = true
	}
	t.prev = price
	t.hasPrev = true

	// компаратор ищем ДО чистки: точка возрастом 30..31 минут ещё валидна
	for _, p := range t.points {
		if now.Sub(p.at) >= lookback && p.price != 0 {
			snap.Change30mPct = (price - p.price) / p.price * 100
			snap.Change30mOK = true
			break
		}
	}

	t.points = append(t.points, refPoint{price: price, at: now})
	t.trim(now)

	return snap
}

func (t *Tracker) trim(now time.Time) {
	cut := 0
	for cut < len(t.points) && now.Sub(t.points[cut].at) > retention {
		cut++
	}
	if cut > 0 {
		t.points = t.points[cut:]
	}
}

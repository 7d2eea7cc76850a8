package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	"signal_bot/internal/models"
	binancesvc "signal_bot/internal/modules/binance/service"
	"signal_bot/internal/modules/config"
	healthsvc "signal_bot/internal/modules/health/service"
	refsvc "signal_bot/internal/modules/reference/service"
	strategysvc "signal_bot/internal/modules/strategy/service"
	trackersvc "signal_bot/internal/modules/tracker/service"
	"signal_bot/pkg/logger"

	"github.com/opentracing/opentracing-go"
)

type ServiceNotifier interface {
	SendService(ctx context.Context, format string, args ...any)
}

// Runner крутит два независимых цикла: детектор сигналов по watchlist
// и проверку цели по открытым позициям. Циклы не ждут друг друга;
// пересечения по одному символу разруливает трекер своим локом.
type Runner struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg    *config.Config
	mkt    *binancesvc.Client
	engine *strategysvc.Engine
	trk    *trackersvc.Tracker
	ref    *refsvc.Tracker
	n      ServiceNotifier
	hs     *healthsvc.State
}

func New(
	cfg *config.Config,
	mkt *binancesvc.Client,
	engine *strategysvc.Engine,
	trk *trackersvc.Tracker,
	ref *refsvc.Tracker,
	n ServiceNotifier,
	hs *healthsvc.State,
) *Runner {
	return &Runner{
		cfg:    cfg,
		mkt:    mkt,
		engine: engine,
		trk:    trk,
		ref:    ref,
		n:      n,
		hs:     hs,
	}
}

func (r *Runner) Start(parent context.Context) {
	r.ctx, r.cancel = context.WithCancel(parent)

	logger.Info("[RUNNER] ▶️ старт: %d символов, интервал %s",
		len(r.cfg.Symbols), r.cfg.PollInterval)
	r.n.SendService(r.ctx, "🚀 Бот запущен: %d символов, опрос каждые %s",
		len(r.cfg.Symbols), r.cfg.PollInterval)

	go r.loop(r.ctx, r.detectSweep)
	go r.loop(r.ctx, r.targetSweep)

	r.hs.SetReady(true)
}

func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

// loop запускает свип на каждом тике. Затянувшийся свип не отменяем:
// следующий тик стартует независимо.
func (r *Runner) loop(ctx context.Context, sweep func(ctx context.Context)) {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go sweep(ctx)
		}
	}
}

// detectSweep — один проход детектора по всем символам watchlist.
func (r *Runner) detectSweep(ctx context.Context) {
	span := opentracing.GlobalTracer().StartSpan("detect_sweep")
	defer span.Finish()

	ref := r.ref.Fetch(ctx)

	var wg sync.WaitGroup
	for _, symbol := range r.cfg.Symbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			r.detectSymbol(ctx, sym, ref)
		}(symbol)
	}
	wg.Wait()

	r.hs.TouchSweep(time.Now())
}

func (r *Runner) detectSymbol(ctx context.Context, symbol string, ref models.ReferenceSnapshot) {
	shortCloses, err := r.mkt.Closes(ctx, symbol, r.cfg.Strategy.ShortInterval, r.cfg.Strategy.KlineLimit)
	if err != nil {
		r.logFetchErr(symbol, err)
		return
	}
	longCloses, err := r.mkt.Closes(ctx, symbol, r.cfg.Strategy.LongInterval, r.cfg.Strategy.KlineLimit)
	if err != nil {
		r.logFetchErr(symbol, err)
		return
	}

	sample, ok := r.engine.Evaluate(symbol, shortCloses, longCloses, time.Now())
	if !ok {
		// истории меньше периода: молча ждём следующего цикла
		return
	}

	r.trk.Detect(ctx, sample, ref)
}

// targetSweep — проход по открытым позициям.
func (r *Runner) targetSweep(ctx context.Context) {
	active := r.trk.ActiveSymbols()
	if len(active) == 0 {
		return
	}

	span := opentracing.GlobalTracer().StartSpan("target_sweep")
	defer span.Finish()

	ref := r.ref.Fetch(ctx)

	var wg sync.WaitGroup
	for _, symbol := range active {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()

			closes, err := r.mkt.Closes(ctx, sym, r.cfg.Strategy.ShortInterval, 1)
			if err != nil {
				// данных нет — позиция не трогается, попробуем на следующем тике
				r.logFetchErr(sym, err)
				return
			}
			r.trk.CheckTarget(ctx, sym, closes[len(closes)-1], ref)
		}(symbol)
	}
	wg.Wait()
}

func (r *Runner) logFetchErr(symbol string, err error) {
	if errors.Is(err, models.ErrDataUnavailable) {
		logger.Info("[SKIP] %s: %v", symbol, err)
		return
	}
	logger.Error("[RUNNER] %s: %v", symbol, err)
}

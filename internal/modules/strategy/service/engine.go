package service

import (
	"time"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
)

// Engine превращает свечные истории в IndicatorSample и решает,
// выполнено ли условие нового сигнала.
type Engine struct {
	cfg *config.Config
}

func NewEngine(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Evaluate считает оба скора. ok=false — истории не хватает на период,
// символ пропускает цикл.
func (e *Engine) Evaluate(symbol string, shortCloses, longCloses []float64, now time.Time) (models.IndicatorSample, bool) {
	shortScore, okShort := RSI(shortCloses, e.cfg.Strategy.RSIPeriod)
	longScore, okLong := RSI(longCloses, e.cfg.Strategy.RSIPeriod)
	if !okShort || !okLong {
		return models.IndicatorSample{}, false
	}

	return models.IndicatorSample{
		Symbol:     symbol,
		ShortScore: shortScore,
		LongScore:  longScore,
		Price:      shortCloses[len(shortCloses)-1],
		ObservedAt: now,
	}, true
}

// ShouldRaise: длинный скор ниже порога, короткий — выше.
func (e *Engine) ShouldRaise(s models.IndicatorSample) bool {
	return s.LongScore < e.cfg.Strategy.RSILongMax &&
		s.ShortScore > e.cfg.Strategy.RSIShortMin
}

package service

import (
	"testing"
	"time"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engineCfg(longMax, shortMin float64) *config.Config {
	cfg := &config.Config{}
	cfg.Strategy.RSIPeriod = 14
	cfg.Strategy.RSILongMax = longMax
	cfg.Strategy.RSIShortMin = shortMin
	return cfg
}

func rising(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i)
	}
	return out
}

func TestEvaluateNotEnoughHistory(t *testing.T) {
	e := NewEngine(engineCfg(10, 30))

	_, ok := e.Evaluate("BTCUSDT", rising(5), rising(15), time.Now())
	assert.False(t, ok)

	_, ok = e.Evaluate("BTCUSDT", rising(15), rising(5), time.Now())
	assert.False(t, ok)
}

func TestEvaluatePriceIsLastShortClose(t *testing.T) {
	e := NewEngine(engineCfg(10, 30))

	now := time.Now()
	sample, ok := e.Evaluate("BTCUSDT", rising(15), rising(20), now)
	require.True(t, ok)
	assert.Equal(t, 114.0, sample.Price)
	assert.Equal(t, "BTCUSDT", sample.Symbol)
	assert.Equal(t, now, sample.ObservedAt)
}

// Ровно растущий рынок: оба скора 100. Длинный скор выше порога —
// условие "long ниже порога" не выполняется, сигнала нет.
func TestShouldRaiseThresholdDirection(t *testing.T) {
	e := NewEngine(engineCfg(60, 10))

	sample, ok := e.Evaluate("BTCUSDT", rising(15), rising(15), time.Now())
	require.True(t, ok)
	assert.Equal(t, 100.0, sample.LongScore)
	assert.False(t, e.ShouldRaise(sample))
}

func TestShouldRaise(t *testing.T) {
	e := NewEngine(engineCfg(10, 30))

	raise := func(short, long float64) bool {
		sample := sampleWith(short, long)
		return e.ShouldRaise(sample)
	}

	assert.True(t, raise(50, 5))
	assert.False(t, raise(50, 50)) // long не ниже порога
	assert.False(t, raise(20, 5))  // short не выше порога
	assert.False(t, raise(30, 10)) // строгие неравенства
}

func sampleWith(short, long float64) models.IndicatorSample {
	return models.IndicatorSample{
		Symbol:     "BTCUSDT",
		ShortScore: short,
		LongScore:  long,
		Price:      100,
		ObservedAt: time.Now(),
	}
}

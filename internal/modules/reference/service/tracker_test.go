package service

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeFetcher struct {
	prices []float64
	errs   []error
	calls  int
}

func (f *fakeFetcher) Price(ctx context.Context, symbol string) (float64, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return 0, f.errs[i]
	}
	return f.prices[i], nil
}

func refCfg() *config.Config {
	return &config.Config{ReferenceSymbol: "BTCUSDT"}
}

func TestFetchColdStart(t *testing.T) {
	tr := NewTracker(refCfg(), &fakeFetcher{prices: []float64{50000}})

	snap := tr.Fetch(context.Background())
	require.True(t, snap.PriceOK)
	assert.Equal(t, 50000.0, snap.Price)
	// первой точке не с чем сравниваться
	assert.False(t, snap.ChangeOK)
	assert.False(t, snap.Change30mOK)
}

func TestFetchImmediateChange(t *testing.T) {
	tr := NewTracker(refCfg(), &fakeFetcher{prices: []float64{50000, 50500}})

	tr.Fetch(context.Background())
	snap := tr.Fetch(context.Background())

	require.True(t, snap.ChangeOK)
	assert.InDelta(t, 1.0, snap.ChangePct, 1e-9)
	assert.False(t, snap.Change30mOK)
}

func TestFetchUnavailableOnError(t *testing.T) {
	tr := NewTracker(refCfg(), &fakeFetcher{errs: []error{errors.New("boom")}})

	snap := tr.Fetch(context.Background())
	assert.False(t, snap.PriceOK)
	assert.False(t, snap.ChangeOK)
	assert.False(t, snap.Change30mOK)
}

// Буфер с точками возрастом 35, 20 и 5 минут: компаратором становится
// самая старая точка возрастом >= 30 минут, а не 20-минутная.
func TestFetch30mComparatorPicksOldest(t *testing.T) {
	now := time.Now()
	tr := NewTracker(refCfg(), &fakeFetcher{prices: []float64{51000}})
	tr.now = func() time.Time { return now }
	tr.points = []refPoint{
		{price: 50000, at: now.Add(-35 * time.Minute)},
		{price: 50800, at: now.Add(-20 * time.Minute)},
		{price: 50900, at: now.Add(-5 * time.Minute)},
	}

	snap := tr.Fetch(context.Background())
	require.True(t, snap.Change30mOK)
	assert.InDelta(t, 2.0, snap.Change30mPct, 1e-9) // от 50000, не от 50800
}

func TestFetch30mUnavailableWhenBufferYoung(t *testing.T) {
	now := time.Now()
	tr := NewTracker(refCfg(), &fakeFetcher{prices: []float64{51000}})
	tr.now = func() time.Time { return now }
	tr.points = []refPoint{
		{price: 50800, at: now.Add(-20 * time.Minute)},
		{price: 50900, at: now.Add(-5 * time.Minute)},
	}

	snap := tr.Fetch(context.Background())
	assert.False(t, snap.Change30mOK)
}

func TestFetchTrimsOldPoints(t *testing.T) {
	now := time.Now()
	tr := NewTracker(refCfg(), &fakeFetcher{prices: []float64{51000}})
	tr.now = func() time.Time { return now }
	tr.points = []refPoint{
		{price: 49000, at: now.Add(-45 * time.Minute)},
		{price: 50000, at: now.Add(-35 * time.Minute)},
		{price: 50900, at: now.Add(-5 * time.Minute)},
	}

	tr.Fetch(context.Background())

	// точки старше 31 минуты выброшены, свежая добавлена
	require.Len(t, tr.points, 2)
	assert.Equal(t, 50900.0, tr.points[0].price)
	assert.Equal(t, 51000.0, tr.points[1].price)
}

package service

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csvCfg(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Siglog.Dir = t.TempDir()
	return cfg
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVHeadersWrittenOnce(t *testing.T) {
	cfg := csvCfg(t)

	c, err := NewCSV(cfg)
	require.NoError(t, err)

	require.NoError(t, c.AppendSample(models.IndicatorSample{
		Symbol:     "BTCUSDT",
		ShortScore: 42.5,
		LongScore:  7.1,
		Price:      50000,
		ObservedAt: time.Now(),
	}))

	// второй запуск поверх существующих файлов не должен дублировать заголовок
	c2, err := NewCSV(cfg)
	require.NoError(t, err)
	require.NoError(t, c2.AppendSample(models.IndicatorSample{
		Symbol:     "ETHUSDT",
		ObservedAt: time.Now(),
	}))

	rows := readAll(t, filepath.Join(cfg.Siglog.Dir, "samples.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"symbol", "rsi_short", "rsi_long", "price", "observed_at"}, rows[0])
	assert.Equal(t, "BTCUSDT", rows[1][0])
	assert.Equal(t, "42.5", rows[1][1])
	assert.Equal(t, "ETHUSDT", rows[2][0])
}

func TestCSVClosedSignalRow(t *testing.T) {
	cfg := csvCfg(t)

	c, err := NewCSV(cfg)
	require.NoError(t, err)

	closedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, c.AppendClosed(models.ClosedSignal{
		Symbol:          "ETHUSDT",
		EntryPrices:     []float64{95, 98, 100},
		SellPrice:       101.1,
		Duration:        90 * time.Minute,
		BottomPrice:     94.5,
		DropPct:         5.5,
		RefChangePct:    1.2,
		RefChange30mPct: -0.3,
		RefAvailable:    true,
		ClosedAt:        closedAt,
	}))

	rows := readAll(t, filepath.Join(cfg.Siglog.Dir, "signals.csv"))
	require.Len(t, rows, 2)
	row := rows[1]
	assert.Equal(t, "ETHUSDT", row[0])
	assert.Equal(t, "95|98|100", row[1])
	assert.Equal(t, "101.1", row[2])
	assert.Equal(t, "5400", row[3])
	assert.Equal(t, "94.5", row[4])
	assert.Equal(t, "5.5", row[5])
	assert.Equal(t, "1.2", row[6])
	assert.Equal(t, "-0.3", row[7])
	assert.Equal(t, "2024-05-01T12:00:00Z", row[8])
}

func TestCSVClosedSignalWithoutReference(t *testing.T) {
	cfg := csvCfg(t)

	c, err := NewCSV(cfg)
	require.NoError(t, err)

	require.NoError(t, c.AppendClosed(models.ClosedSignal{
		Symbol:      "ETHUSDT",
		EntryPrices: []float64{100},
		SellPrice:   101.1,
		BottomPrice: 99,
		ClosedAt:    time.Now(),
	}))

	rows := readAll(t, filepath.Join(cfg.Siglog.Dir, "signals.csv"))
	require.Len(t, rows, 2)
	assert.Empty(t, rows[1][6])
	assert.Empty(t, rows[1][7])
}

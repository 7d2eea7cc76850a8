package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
)

const (
	samplesFile = "samples.csv"
	signalsFile = "signals.csv"
)

var (
	samplesHeader = []string{"symbol", "rsi_short", "rsi_long", "price", "observed_at"}
	signalsHeader = []string{
		"symbol", "entries", "sell_price", "duration_sec", "bottom_price",
		"drop_pct", "ref_change_pct", "ref_change_30m_pct", "closed_at",
	}
)

// CSV — файловый журнал: по строке на замер и на закрытый сигнал.
// Заголовок пишется один раз, при создании файла.
type CSV struct {
	mu          sync.Mutex
	samplesPath string
	signalsPath string
}

func NewCSV(cfg *config.Config) (*CSV, error) {
	dir := cfg.Siglog.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("siglog mkdir %s: %w", dir, err)
	}

	c := &CSV{
		samplesPath: filepath.Join(dir, samplesFile),
		signalsPath: filepath.Join(dir, signalsFile),
	}
	if err := ensureHeader(c.samplesPath, samplesHeader); err != nil {
		return nil, err
	}
	if err := ensureHeader(c.signalsPath, signalsHeader); err != nil {
		return nil, err
	}
	return c, nil
}

func ensureHeader(path string, header []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("siglog create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("siglog header %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}

func (c *CSV) appendRow(path string, row []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("siglog open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		return fmt.Errorf("siglog write %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}

func (c *CSV) AppendSample(s models.IndicatorSample) error {
	return c.appendRow(c.samplesPath, []string{
		s.Symbol,
		fmtFloat(s.ShortScore),
		fmtFloat(s.LongScore),
		fmtFloat(s.Price),
		s.ObservedAt.UTC().Format(time.RFC3339),
	})
}

func (c *CSV) AppendClosed(sig models.ClosedSignal) error {
	entries := make([]string, len(sig.EntryPrices))
	for i, e := range sig.EntryPrices {
		entries[i] = fmtFloat(e)
	}

	refChange, refChange30m := "", ""
	if sig.RefAvailable {
		refChange = fmtFloat(sig.RefChangePct)
		refChange30m = fmtFloat(sig.RefChange30mPct)
	}

	return c.appendRow(c.signalsPath, []string{
		sig.Symbol,
		strings.Join(entries, "|"),
		fmtFloat(sig.SellPrice),
		strconv.FormatInt(int64(sig.Duration.Seconds()), 10),
		fmtFloat(sig.BottomPrice),
		fmtFloat(sig.DropPct),
		refChange,
		refChange30m,
		sig.ClosedAt.UTC().Format(time.RFC3339),
	})
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

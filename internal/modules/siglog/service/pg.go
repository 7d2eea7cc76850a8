package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"signal_bot/internal/models"
	"signal_bot/pkg/db"

	"github.com/jackc/pgx/v5"
)

const createSignalsTable = `
CREATE TABLE IF NOT EXISTS closed_signals (
	id                 BIGSERIAL PRIMARY KEY,
	symbol             TEXT        NOT NULL,
	entries            TEXT        NOT NULL,
	sell_price         DOUBLE PRECISION NOT NULL,
	duration_sec       BIGINT      NOT NULL,
	bottom_price       DOUBLE PRECISION NOT NULL,
	drop_pct           DOUBLE PRECISION NOT NULL,
	ref_change_pct     DOUBLE PRECISION,
	ref_change_30m_pct DOUBLE PRECISION,
	closed_at          TIMESTAMPTZ NOT NULL
)`

const insertSignal = `
INSERT INTO closed_signals
	(symbol, entries, sell_price, duration_sec, bottom_price, drop_pct,
	 ref_change_pct, ref_change_30m_pct, closed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// History — зеркало закрытых сигналов в Postgres.
type History struct {
	db *db.PgTxManager
}

func NewHistory(ctx context.Context, m *db.PgTxManager) (*History, error) {
	h := &History{db: m}
	err := m.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, createSignalsTable)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("pg.History init: %w", err)
	}
	return h, nil
}

func (h *History) Insert(ctx context.Context, sig models.ClosedSignal) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.History.Insert: %w", err)
		}
	}()

	entries := make([]string, len(sig.EntryPrices))
	for i, e := range sig.EntryPrices {
		entries[i] = strconv.FormatFloat(e, 'f', -1, 64)
	}

	var refChange, refChange30m *float64
	if sig.RefAvailable {
		refChange = &sig.RefChangePct
		refChange30m = &sig.RefChange30mPct
	}

	return h.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, insertSignal,
			sig.Symbol,
			strings.Join(entries, "|"),
			sig.SellPrice,
			int64(sig.Duration.Seconds()),
			sig.BottomPrice,
			sig.DropPct,
			refChange,
			refChange30m,
			sig.ClosedAt,
		)
		return err
	})
}

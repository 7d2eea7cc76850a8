package pg

import (
	"context"
	"fmt"
	"sync"

	"signal_bot/pkg/db"

	"github.com/jackc/pgx/v5"
)

const createSubscribersTable = `
CREATE TABLE IF NOT EXISTS subscribers (
	chat_id BIGINT PRIMARY KEY
)`

// Subscribers — получатели рассылки. Рабочая копия в памяти,
// Postgres (если есть) переживает рестарты.
type Subscribers struct {
	db *db.PgTxManager // nil — только память

	mu   sync.RWMutex
	data map[int64]struct{}
}

func NewSubscribers(m *db.PgTxManager) *Subscribers {
	return &Subscribers{
		db:   m,
		data: make(map[int64]struct{}),
	}
}

// Load поднимает сохранённых подписчиков; без Postgres — no-op.
func (s *Subscribers) Load(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Subscribers.Load: %w", err)
		}
	}()

	if s.db == nil {
		return nil
	}

	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctxTx, createSubscribersTable); err != nil {
			return err
		}

		rows, err := tx.Query(ctxTx, `SELECT chat_id FROM subscribers`)
		if err != nil {
			return err
		}
		defer rows.Close()

		s.mu.Lock()
		defer s.mu.Unlock()
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				return err
			}
			s.data[id] = struct{}{}
		}
		return rows.Err()
	})
}

func (s *Subscribers) Add(ctx context.Context, chatID int64) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Subscribers.Add: %w", err)
		}
	}()

	s.mu.Lock()
	s.data[chatID] = struct{}{}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx,
			`INSERT INTO subscribers (chat_id) VALUES ($1) ON CONFLICT DO NOTHING`, chatID)
		return err
	})
}

func (s *Subscribers) Remove(ctx context.Context, chatID int64) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Subscribers.Remove: %w", err)
		}
	}()

	s.mu.Lock()
	delete(s.data, chatID)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, `DELETE FROM subscribers WHERE chat_id = $1`, chatID)
		return err
	})
}

func (s *Subscribers) Has(chatID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[chatID]
	return ok
}

func (s *Subscribers) All() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]int64, 0, len(s.data))
	for id := range s.data {
		out = append(out, id)
	}
	return out
}

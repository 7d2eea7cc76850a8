package service

import (
	"context"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

// Logbook пишет в CSV всегда, в Postgres — когда он сконфигурирован.
// Ошибка зеркала не валит запись: CSV остаётся источником правды.
type Logbook struct {
	csv *CSV
	pg  *History // nil, если Postgres выключен
}

func NewLogbook(csv *CSV, pg *History) *Logbook {
	return &Logbook{csv: csv, pg: pg}
}

func (l *Logbook) AppendSample(s models.IndicatorSample) error {
	return l.csv.AppendSample(s)
}

func (l *Logbook) AppendClosed(sig models.ClosedSignal) error {
	if l.pg != nil {
		if err := l.pg.Insert(context.Background(), sig); err != nil {
			logger.Error("[SIGLOG] pg mirror: %v", err)
		}
	}
	return l.csv.AppendClosed(sig)
}

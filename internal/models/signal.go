package models

import "time"

// ClosedSignal — итог закрытой по цели позиции, уходит в лог и в Postgres.
type ClosedSignal struct {
	Symbol      string
	EntryPrices []float64
	SellPrice   float64
	Duration    time.Duration
	BottomPrice float64
	DropPct     float64 // просадка от первого входа до BottomPrice, в процентах

	RefChangePct    float64 // изменение референс-актива с момента входа
	RefChange30mPct float64 // 30-минутное изменение референс-актива
	RefAvailable    bool

	ClosedAt time.Time
}

// ReferenceSnapshot — срез по референс-активу на момент цикла.
// Любое поле может быть недоступно (холодный старт, ошибка запроса).
type ReferenceSnapshot struct {
	Price        float64
	ChangePct    float64 // к предыдущему опросу
	Change30mPct float64 // к самой старой точке возрастом >= 30 минут
	PriceOK      bool
	ChangeOK     bool
	Change30mOK  bool
}

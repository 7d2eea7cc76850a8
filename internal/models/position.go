package models

import "time"

type PositionStatus string

const (
	StatusIdle   PositionStatus = "IDLE"
	StatusActive PositionStatus = "ACTIVE"
)

// Position — состояние открытого сигнала по одному символу.
// EntryPrices хранятся от свежего к старому: [0] — последний (самый низкий
// принятый) вход, [len-1] — первый вход, от которого посчитан SellTarget.
type Position struct {
	Symbol      string
	Status      PositionStatus
	EntryPrices []float64
	SellTarget  float64 // первый вход * (1 + margin), не меняется после открытия
	BottomPrice float64 // минимум цены за время жизни позиции
	OpenedAt    time.Time

	// таймстемп последнего уведомления живёт в Store.lastNotified:
	// кулдаун должен переживать закрытие позиции.
	MessageID int // handle сообщения в Telegram, 0 — отправка не удалась

	RefPriceAtOpen float64 // цена референс-актива на момент входа, 0 — не было данных
}

// FirstEntry — цена первого входа (база для SellTarget и процента просадки).
func (p *Position) FirstEntry() float64 {
	if len(p.EntryPrices) == 0 {
		return 0
	}
	return p.EntryPrices[len(p.EntryPrices)-1]
}

// LastEntry — последний (самый низкий принятый) вход.
func (p *Position) LastEntry() float64 {
	if len(p.EntryPrices) == 0 {
		return 0
	}
	return p.EntryPrices[0]
}

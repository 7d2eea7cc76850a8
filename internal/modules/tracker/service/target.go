package service

import (
	"context"
	"time"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

// CheckTarget — один проход проверки цели. Дно обновляется на каждом
// наблюдении; закрытие — единственный выход из позиции (стоп-лоссов нет).
func (t *Tracker) CheckTarget(ctx context.Context, symbol string, price float64, ref models.ReferenceSnapshot) {
	price = round8(price)

	st := t.store.lockSymbol(symbol)
	defer t.store.unlock(st)

	if st.pos.Status != models.StatusActive {
		return
	}

	if price < st.pos.BottomPrice {
		st.pos.BottomPrice = price
	}

	if price < st.pos.SellTarget {
		return
	}

	now := time.Now()
	closed := models.ClosedSignal{
		Symbol:      symbol,
		EntryPrices: append([]float64(nil), st.pos.EntryPrices...),
		SellPrice:   price,
		Duration:    now.Sub(st.pos.OpenedAt),
		BottomPrice: st.pos.BottomPrice,
		ClosedAt:    now,
	}

	// просадка от первого входа до дна
	if first := st.pos.FirstEntry(); first > 0 {
		closed.DropPct = (first - st.pos.BottomPrice) / first * 100
	}

	if ref.PriceOK && st.pos.RefPriceAtOpen > 0 {
		closed.RefChangePct = (ref.Price - st.pos.RefPriceAtOpen) / st.pos.RefPriceAtOpen * 100
		closed.RefAvailable = true
	}
	if ref.Change30mOK {
		closed.RefChange30mPct = ref.Change30mPct
	}

	text := renderClosed(&st.pos, closed)
	if st.pos.MessageID != 0 {
		if err := t.n.EditSignal(ctx, st.pos.MessageID, text); err != nil {
			logger.Error("[TG] edit %s: %v", symbol, err)
		}
	}
	t.n.Broadcast(ctx, text)

	if err := t.log.AppendClosed(closed); err != nil {
		logger.Error("[SIGLOG] closed %s: %v", symbol, err)
	}

	logger.Info("[TRACKER] %s: цель достигнута @ %.8f за %s, дно %.8f",
		symbol, price, closed.Duration, closed.BottomPrice)

	// позиция закрыта, символ снова Idle; кулдаун при этом продолжает тикать
	st.pos = models.Position{Symbol: symbol, Status: models.StatusIdle}
}

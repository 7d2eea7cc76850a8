package service

import (
	"context"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

// Detect — один проход детектора по символу. Замер всегда уходит в журнал;
// дальше либо усредняем открытую позицию, либо пробуем открыть новую.
func (t *Tracker) Detect(ctx context.Context, sample models.IndicatorSample, ref models.ReferenceSnapshot) {
	if err := t.log.AppendSample(sample); err != nil {
		logger.Error("[SIGLOG] sample %s: %v", sample.Symbol, err)
	}

	st := t.store.lockSymbol(sample.Symbol)
	defer t.store.unlock(st)

	if st.pos.Status == models.StatusActive {
		t.averageDown(ctx, st, sample)
		return
	}

	if !t.engine.ShouldRaise(sample) {
		return
	}
	if !t.mayNotify(sample.Symbol, sample.ObservedAt) {
		logger.Info("[GATE] %s: кулдаун, сигнал не поднимаем", sample.Symbol)
		return
	}

	t.open(ctx, st, sample, ref)
}

// averageDown добавляет вход, если цена опустилась ниже цели И ниже
// последнего входа. Цель остаётся пришпиленной к первому входу.
func (t *Tracker) averageDown(ctx context.Context, st *symState, sample models.IndicatorSample) {
	if !t.cfg.Strategy.AveragingDown {
		return
	}

	price := round8(sample.Price)
	if price >= st.pos.SellTarget || price >= st.pos.LastEntry() {
		return
	}

	st.pos.EntryPrices = append([]float64{price}, st.pos.EntryPrices...)
	if price < st.pos.BottomPrice {
		st.pos.BottomPrice = price
	}

	logger.Info("[TRACKER] %s: усреднение @ %.8f (входов: %d)",
		st.pos.Symbol, price, len(st.pos.EntryPrices))

	if st.pos.MessageID != 0 {
		if err := t.n.EditSignal(ctx, st.pos.MessageID, renderActive(&st.pos)); err != nil {
			logger.Error("[TG] edit %s: %v", st.pos.Symbol, err)
		}
	}
}

func (t *Tracker) open(ctx context.Context, st *symState, sample models.IndicatorSample, ref models.ReferenceSnapshot) {
	price := round8(sample.Price)

	st.pos = models.Position{
		Symbol:      sample.Symbol,
		Status:      models.StatusActive,
		EntryPrices: []float64{price},
		SellTarget:  round8(price * (1 + t.cfg.Strategy.SellMarginPct)),
		BottomPrice: price,
		OpenedAt:    sample.ObservedAt,
	}
	if ref.PriceOK {
		st.pos.RefPriceAtOpen = ref.Price
	}

	text := renderNew(&st.pos, sample, ref)
	msgID, err := t.n.SendSignal(ctx, text)
	if err != nil {
		// позиция живёт и без сообщения: состояние важнее доставки
		logger.Error("[TG] send %s: %v", sample.Symbol, err)
	}
	st.pos.MessageID = msgID
	t.store.markNotified(sample.Symbol, sample.ObservedAt)
	t.n.Broadcast(ctx, text)

	logger.Info("[TRACKER] %s: сигнал открыт @ %.8f, цель %.8f",
		sample.Symbol, price, st.pos.SellTarget)
}

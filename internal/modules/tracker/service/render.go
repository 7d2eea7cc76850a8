package service

import (
	"fmt"
	"strings"
	"time"

	"signal_bot/internal/models"
)

func fmtPrice(v float64) string {
	s := fmt.Sprintf("%.8f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func renderEntries(pos *models.Position) string {
	var b strings.Builder
	// входы показываем от первого к последнему
	for i := len(pos.EntryPrices) - 1; i >= 0; i-- {
		n := len(pos.EntryPrices) - i
		fmt.Fprintf(&b, "  %d) %s\n", n, fmtPrice(pos.EntryPrices[i]))
	}
	return b.String()
}

func renderNew(pos *models.Position, sample models.IndicatorSample, ref models.ReferenceSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚨 Сигнал: %s\n\n", pos.Symbol)
	fmt.Fprintf(&b, "Вход: %s\n", fmtPrice(pos.LastEntry()))
	fmt.Fprintf(&b, "🎯 Цель: %s\n", fmtPrice(pos.SellTarget))
	fmt.Fprintf(&b, "RSI: short=%.1f long=%.1f\n", sample.ShortScore, sample.LongScore)

	if ref.PriceOK {
		fmt.Fprintf(&b, "\nBTC: %s", fmtPrice(ref.Price))
		if ref.ChangeOK {
			fmt.Fprintf(&b, " (%+.2f%%)", ref.ChangePct)
		}
		if ref.Change30mOK {
			fmt.Fprintf(&b, ", за 30м %+.2f%%", ref.Change30mPct)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderActive(pos *models.Position) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚨 Сигнал: %s\n\n", pos.Symbol)
	fmt.Fprintf(&b, "Входы (усреднение):\n%s", renderEntries(pos))
	fmt.Fprintf(&b, "🎯 Цель: %s\n", fmtPrice(pos.SellTarget))
	return b.String()
}

func renderClosed(pos *models.Position, closed models.ClosedSignal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Цель достигнута: %s\n\n", pos.Symbol)
	fmt.Fprintf(&b, "Входы:\n%s", renderEntries(pos))
	fmt.Fprintf(&b, "Продажа: %s\n", fmtPrice(closed.SellPrice))
	fmt.Fprintf(&b, "⏱ В позиции: %s\n", closed.Duration.Round(time.Second))
	fmt.Fprintf(&b, "📉 Дно: %s (просадка %.2f%%)\n", fmtPrice(closed.BottomPrice), closed.DropPct)

	if closed.RefAvailable {
		fmt.Fprintf(&b, "\nBTC с момента входа: %+.2f%%", closed.RefChangePct)
		fmt.Fprintf(&b, ", за 30м: %+.2f%%\n", closed.RefChange30mPct)
	}
	return b.String()
}

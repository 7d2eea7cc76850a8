package service

// RSI — упрощённый RSI по фиксированному окну: средние gain/loss считаются
// простым делением на период, без сглаживания Уайлдера. Это сознательно:
// детектор откалиброван именно под такой расчёт.
// ok=false, когда точек меньше period+1.
func RSI(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) < period+1 {
		return 0, false
	}

	var gains, losses float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses += -change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	// ни одного минусового бара — максимальный скор
	if avgLoss == 0 {
		return 100, true
	}

	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

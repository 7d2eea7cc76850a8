package service

import "time"

// mayNotify — кулдаун на НОВЫЕ сигналы по символу. Правки карточки
// открытой позиции через гейт не ходят.
func (t *Tracker) mayNotify(symbol string, now time.Time) bool {
	last := t.store.lastNotifiedAt(symbol)
	if last.IsZero() {
		return true
	}
	return now.Sub(last) >= t.cfg.Cooldown
}

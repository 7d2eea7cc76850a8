package models

import "time"

type Candle struct {
	OpenTime time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
}

// IndicatorSample — результат одного прохода детектора по символу.
// Живёт один цикл: уходит в лог и в трекер, дальше не хранится.
type IndicatorSample struct {
	Symbol     string
	ShortScore float64 // RSI по короткому таймфрейму
	LongScore  float64 // RSI по длинному таймфрейму
	Price      float64 // последний close короткого таймфрейма
	ObservedAt time.Time
}

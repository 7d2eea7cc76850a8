package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSINotEnoughData(t *testing.T) {
	closes := make([]float64, 14) // ровно период, нужен период+1
	_, ok := RSI(closes, 14)
	assert.False(t, ok)

	_, ok = RSI(nil, 14)
	assert.False(t, ok)

	_, ok = RSI([]float64{1, 2, 3}, 14)
	assert.False(t, ok)
}

func TestRSIAllGains(t *testing.T) {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	score, ok := RSI(closes, 14)
	require.True(t, ok)
	assert.Equal(t, 100.0, score)
}

func TestRSIAllLosses(t *testing.T) {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}

	score, ok := RSI(closes, 14)
	require.True(t, ok)
	assert.Equal(t, 0.0, score)
}

func TestRSIMixed(t *testing.T) {
	// 7 баров +2 и 7 баров -1: avgGain=1, avgLoss=0.5, RS=2 => RSI=66.66..
	closes := []float64{100}
	px := 100.0
	for i := 0; i < 7; i++ {
		px += 2
		closes = append(closes, px)
	}
	for i := 0; i < 7; i++ {
		px -= 1
		closes = append(closes, px)
	}

	score, ok := RSI(closes, 14)
	require.True(t, ok)
	assert.InDelta(t, 100-100.0/3, score, 1e-9)
}

func TestRSIFlat(t *testing.T) {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 42
	}

	// без движения вообще нет потерь — по контракту это 100
	score, ok := RSI(closes, 14)
	require.True(t, ok)
	assert.Equal(t, 100.0, score)
}

func TestRSIUsesOnlyWindow(t *testing.T) {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	// хвост за пределами первых period дельт не влияет
	withTail := append(append([]float64(nil), closes...), 1, 500, 3)

	a, ok := RSI(closes, 14)
	require.True(t, ok)
	b, ok := RSI(withTail, 14)
	require.True(t, ok)
	assert.Equal(t, a, b)
}

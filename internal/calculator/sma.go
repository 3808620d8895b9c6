package calculator

import (
	"errors"

	"StockScout/internal/model"
)

// ErrInsufficientData is returned when a series is too short to fill the
// requested window. Callers treat it as "skip this symbol", not a failure.
var ErrInsufficientData = errors.New("not enough data points")

// CalculateSMA computes the simple moving average over the trailing
// `period` elements of closes.
func CalculateSMA(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period {
		return 0, ErrInsufficientData
	}
	sum := 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(period), nil
}

// Closes extracts the close sequence from daily bars, preserving order.
func Closes(bars []model.DailyBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

package calculator

import "errors"

// CalculateRSI computes the relative strength index over the given period
// using Wilder smoothing: the first average gain/loss is a simple mean of
// the initial `period` changes, then each subsequent change is folded in
// as avg = (avg*(period-1) + change) / period. This is the classic Wilder
// method, not a plain windowed mean; the 30/75 screening thresholds are
// calibrated against it.
//
// Requires at least period+1 closes, otherwise ErrInsufficientData.
// Returns 100 when the series shows no losses over the period.
func CalculateRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return 0, ErrInsufficientData
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}

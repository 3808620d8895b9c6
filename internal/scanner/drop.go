package scanner

import (
	"context"
	"fmt"
	"math"
	"time"

	"StockScout/internal/collector"
	"StockScout/internal/model"
)

// DropScanner flags symbols whose latest close fell past Threshold
// versus the close from LookbackDays calendar days ago, falling back to
// the nearest earlier trading day when the target date was not a session.
type DropScanner struct {
	Fetcher      collector.Fetcher
	LookbackDays int
	BufferDays   int     // extra calendar days fetched to survive weekends/holidays
	Threshold    float64 // fraction, e.g. 0.06 flags drops of 6% or more

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

// NewDropScanner creates a DropScanner with the given parameters.
func NewDropScanner(f collector.Fetcher, lookbackDays, bufferDays int, threshold float64) *DropScanner {
	return &DropScanner{
		Fetcher:      f,
		LookbackDays: lookbackDays,
		BufferDays:   bufferDays,
		Threshold:    threshold,
	}
}

func (s *DropScanner) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Scan checks one symbol. Returns (nil, nil) when the symbol has
// insufficient history or simply did not fall far enough.
func (s *DropScanner) Scan(ctx context.Context, symbol string) (*model.DropResult, error) {
	now := s.now().UTC()
	start := now.AddDate(0, 0, -(s.LookbackDays + s.BufferDays))

	bars, err := s.Fetcher.FetchDailyHistory(ctx, symbol, start, now)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	bars = NormalizeBars(bars)
	if len(bars) < 2 {
		return nil, nil
	}

	latest := bars[len(bars)-1]

	// Target date is today minus the lookback, truncated to midnight.
	y, m, d := now.Date()
	target := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -s.LookbackDays)

	// Walk backward to the closest bar on or before the target date.
	var reference *model.DailyBar
	for i := len(bars) - 1; i >= 0; i-- {
		if !bars[i].Day().After(target) {
			reference = &bars[i]
			break
		}
	}
	if reference == nil {
		// Listed too recently to have a reference close.
		return nil, nil
	}
	if reference.Close <= 0 {
		return nil, nil
	}

	change := (latest.Close - reference.Close) / reference.Close
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return nil, nil
	}
	if change > -s.Threshold {
		return nil, nil
	}

	return &model.DropResult{
		Symbol:         symbol,
		CurrentPrice:   latest.Close,
		ReferencePrice: reference.Close,
		DropPercentage: math.Round(change*100*100) / 100,
		ReferenceDate:  reference.Day(),
	}, nil
}

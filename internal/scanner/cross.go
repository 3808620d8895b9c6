package scanner

import (
	"context"
	"fmt"
	"math"
	"time"

	"StockScout/internal/calculator"
	"StockScout/internal/collector"
	"StockScout/internal/model"
)

const (
	crossShortWindow = 50
	crossLongWindow  = 200
	// crossMinBars guarantees both today's and yesterday's long SMA.
	crossMinBars = crossLongWindow + 1
)

// CrossScanner detects golden and death crosses: the 50-period SMA
// crossing the 200-period SMA strictly between yesterday and today.
// Steady-state above/below is never reported.
type CrossScanner struct {
	Fetcher     collector.Fetcher
	HistoryDays int // calendar days of history to request, >= ~400

	Now func() time.Time
}

// NewCrossScanner creates a CrossScanner with the given history depth.
func NewCrossScanner(f collector.Fetcher, historyDays int) *CrossScanner {
	return &CrossScanner{Fetcher: f, HistoryDays: historyDays}
}

func (s *CrossScanner) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Scan checks one symbol for a crossover on the most recent day.
func (s *CrossScanner) Scan(ctx context.Context, symbol string) (*model.CrossResult, error) {
	now := s.now().UTC()
	start := now.AddDate(0, 0, -s.HistoryDays)

	bars, err := s.Fetcher.FetchDailyHistory(ctx, symbol, start, now)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	bars = NormalizeBars(bars)
	if len(bars) < crossMinBars {
		return nil, nil
	}

	closes := calculator.Closes(bars)
	prev := closes[:len(closes)-1]

	ma50, err := calculator.CalculateSMA(closes, crossShortWindow)
	if err != nil {
		return nil, nil
	}
	ma200, err := calculator.CalculateSMA(closes, crossLongWindow)
	if err != nil {
		return nil, nil
	}
	prevMa50, err := calculator.CalculateSMA(prev, crossShortWindow)
	if err != nil {
		return nil, nil
	}
	prevMa200, err := calculator.CalculateSMA(prev, crossLongWindow)
	if err != nil {
		return nil, nil
	}
	for _, v := range []float64{ma50, ma200, prevMa50, prevMa200} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil
		}
	}

	var trend model.Trend
	switch {
	case prevMa50 <= prevMa200 && ma50 > ma200:
		trend = model.TrendGoldenCross
	case prevMa50 >= prevMa200 && ma50 < ma200:
		trend = model.TrendDeathCross
	default:
		return nil, nil
	}

	return &model.CrossResult{
		Symbol:       symbol,
		MA50:         ma50,
		MA200:        ma200,
		CurrentPrice: closes[len(closes)-1],
		Trend:        trend,
	}, nil
}

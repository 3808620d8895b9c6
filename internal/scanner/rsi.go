package scanner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"StockScout/internal/calculator"
	"StockScout/internal/collector"
	"StockScout/internal/model"
)

// rsiMinBars is the minimum history before the RSI scan will classify.
const rsiMinBars = 20

// uptrendWindow is the SMA window used to qualify an oversold symbol as
// still trending up.
const uptrendWindow = 50

// RsiScanner classifies symbols into oversold / overbought territory by
// RSI over the latest ~100-150 trading days. The overbought bound is
// deliberately stricter than the textbook 70 to cut false positives.
type RsiScanner struct {
	Fetcher     collector.Fetcher
	Period      int
	HistoryDays int // calendar days of history to request
	Oversold    float64
	Overbought  float64

	Now func() time.Time
}

// NewRsiScanner creates an RsiScanner with the given parameters.
func NewRsiScanner(f collector.Fetcher, period, historyDays int, oversold, overbought float64) *RsiScanner {
	return &RsiScanner{
		Fetcher:     f,
		Period:      period,
		HistoryDays: historyDays,
		Oversold:    oversold,
		Overbought:  overbought,
	}
}

func (s *RsiScanner) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// classify maps an RSI value to a reportable trend. Boundary values are
// not extreme: exactly Oversold or Overbought yields no signal.
func (s *RsiScanner) classify(rsi float64) (model.Trend, bool) {
	switch {
	case rsi < s.Oversold:
		return model.TrendOversold, true
	case rsi > s.Overbought:
		return model.TrendOverbought, true
	default:
		return "", false
	}
}

// oversoldTrend refines a plain oversold signal: a close still above its
// 50-period SMA is tagged as oversold within an uptrend.
func oversoldTrend(closes []float64) model.Trend {
	ma, err := calculator.CalculateSMA(closes, uptrendWindow)
	if err == nil && closes[len(closes)-1] > ma {
		return model.TrendOversoldUptrend
	}
	return model.TrendOversold
}

// Scan checks one symbol. Neutral symbols produce no record.
func (s *RsiScanner) Scan(ctx context.Context, symbol string) (*model.RsiResult, error) {
	now := s.now().UTC()
	start := now.AddDate(0, 0, -s.HistoryDays)

	bars, err := s.Fetcher.FetchDailyHistory(ctx, symbol, start, now)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	bars = NormalizeBars(bars)
	if len(bars) < rsiMinBars {
		return nil, nil
	}

	closes := calculator.Closes(bars)
	rsi, err := calculator.CalculateRSI(closes, s.Period)
	if errors.Is(err, calculator.ErrInsufficientData) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("rsi %s: %w", symbol, err)
	}
	if math.IsNaN(rsi) || math.IsInf(rsi, 0) {
		return nil, nil
	}

	trend, ok := s.classify(rsi)
	if !ok {
		return nil, nil
	}
	if trend == model.TrendOversold {
		trend = oversoldTrend(closes)
	}

	return &model.RsiResult{
		Symbol:       symbol,
		RSI:          rsi,
		CurrentPrice: closes[len(closes)-1],
		Trend:        trend,
	}, nil
}

package model

import "time"

// Trend labels the condition that made a symbol interesting.
type Trend string

const (
	TrendOversold        Trend = "OVERSOLD"
	TrendOversoldUptrend Trend = "OVERSOLD_UPTREND"
	TrendOverbought      Trend = "OVERBOUGHT"
	TrendGoldenCross     Trend = "GOLDEN_CROSS"
	TrendDeathCross      Trend = "DEATH_CROSS"
)

// DropResult reports a symbol whose close fell past the drop threshold
// versus its reference close.
type DropResult struct {
	Symbol         string
	CurrentPrice   float64
	ReferencePrice float64
	DropPercentage float64 // signed, rounded to 2 decimals
	ReferenceDate  time.Time
}

// RsiResult reports a symbol in oversold or overbought territory.
type RsiResult struct {
	Symbol       string
	RSI          float64
	CurrentPrice float64
	Trend        Trend
}

// CrossResult reports a moving-average crossover that occurred on the
// most recent trading day.
type CrossResult struct {
	Symbol       string
	MA50         float64
	MA200        float64
	CurrentPrice float64
	Trend        Trend
}

// ScanReport aggregates the output of one full screening run.
type ScanReport struct {
	RunAt   time.Time
	Drops   []DropResult
	Rsi     []RsiResult
	Crosses []CrossResult
}

// Empty reports whether the run produced no signals at all.
func (r *ScanReport) Empty() bool {
	return len(r.Drops) == 0 && len(r.Rsi) == 0 && len(r.Crosses) == 0
}

// Symbols returns the deduplicated set of symbols that triggered any
// strategy, preserving first-seen order across drop, RSI, cross.
func (r *ScanReport) Symbols() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, d := range r.Drops {
		add(d.Symbol)
	}
	for _, s := range r.Rsi {
		add(s.Symbol)
	}
	for _, c := range r.Crosses {
		add(c.Symbol)
	}
	return out
}

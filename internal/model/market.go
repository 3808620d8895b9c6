package model

import "time"

// DailyBar represents one trading day of price data for a symbol.
type DailyBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Day returns the bar's calendar date truncated to midnight UTC.
func (b DailyBar) Day() time.Time {
	y, m, d := b.Date.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

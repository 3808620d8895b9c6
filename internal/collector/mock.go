package collector

import (
	"context"
	"sync"
	"time"

	"StockScout/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	// Bars maps a symbol to its full history. When a symbol is absent,
	// Default is returned instead.
	Bars    map[string][]model.DailyBar
	Default []model.DailyBar
	// Err, when set, fails every fetch for symbols listed in FailSymbols
	// (or all symbols when FailSymbols is empty).
	Err         error
	FailSymbols map[string]bool

	mu    sync.Mutex
	calls int
}

func (m *MockFetcher) Name() string { return "mock" }

// Calls reports how many fetches were made, for asserting upstream load.
func (m *MockFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockFetcher) FetchDailyHistory(_ context.Context, symbol string, start, end time.Time) ([]model.DailyBar, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.Err != nil && (len(m.FailSymbols) == 0 || m.FailSymbols[symbol]) {
		return nil, m.Err
	}
	bars, ok := m.Bars[symbol]
	if !ok {
		bars = m.Default
	}
	// Clip to the requested range the way a real provider would.
	out := make([]model.DailyBar, 0, len(bars))
	for _, b := range bars {
		if b.Date.Before(start) || b.Date.After(end) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// GenerateBars builds count consecutive daily bars ending today, with
// closes produced by closeAt(i) for i in [0, count).
func GenerateBars(count int, closeAt func(i int) float64) []model.DailyBar {
	bars := make([]model.DailyBar, count)
	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		c := closeAt(i)
		bars[i] = model.DailyBar{
			Date:   now.AddDate(0, 0, -(count - 1 - i)),
			Open:   c * 0.999,
			High:   c * 1.005,
			Low:    c * 0.995,
			Close:  c,
			Volume: 1000000,
		}
	}
	return bars
}

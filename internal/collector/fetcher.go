package collector

import (
	"context"
	"time"

	"StockScout/internal/model"
)

// Fetcher defines the interface for fetching historical market data.
// Implementations may return fewer bars than the range covers and make
// no ordering guarantee; callers sort before relying on order.
type Fetcher interface {
	FetchDailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]model.DailyBar, error)
	Name() string
}

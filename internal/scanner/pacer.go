package scanner

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out chunk submissions so the upstream provider is not
// hammered. Wait blocks until the next chunk may start.
type Pacer interface {
	Wait(ctx context.Context) error
}

// NopPacer never waits. Used in tests for deterministic, zero-delay runs.
type NopPacer struct{}

func (NopPacer) Wait(context.Context) error { return nil }

type intervalPacer struct {
	limiter *rate.Limiter
}

// NewIntervalPacer returns a Pacer that allows one chunk per interval.
// The first Wait is free, so no delay is added before the first chunk.
func NewIntervalPacer(interval time.Duration) Pacer {
	if interval <= 0 {
		return NopPacer{}
	}
	return &intervalPacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (p *intervalPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

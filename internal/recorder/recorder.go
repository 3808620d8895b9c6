package recorder

import (
	"time"

	"StockScout/internal/model"
)

// RunRecord summarizes one completed screening run. Records are
// write-only history for later inspection; the screener never reads
// them back, every run recomputes from scratch.
type RunRecord struct {
	StartedAt time.Time
	Duration  time.Duration
	Universe  int
	Skipped   int
	Failed    int
	Delivered bool
}

// Recorder persists run history and the signals each run emitted.
type Recorder interface {
	RecordRun(rec *RunRecord, report *model.ScanReport) error
	Close() error
}

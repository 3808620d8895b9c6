package scanner

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// ScanFunc inspects one symbol and returns a result when the symbol
// qualifies. A (nil, nil) return is a defined skip (no signal or
// insufficient history); an error marks a per-symbol failure.
type ScanFunc[T any] func(ctx context.Context, symbol string) (*T, error)

// BatchStats summarizes one RunBatched pass, so callers can tell
// "zero symbols qualified" apart from "everything failed".
type BatchStats struct {
	Scanned int
	Hits    int
	Skipped int
	Failed  int
}

// RunBatched drives symbols through scan in consecutive groups of
// chunkSize. Group members run concurrently; the next group starts only
// after the whole group has settled and the pacer has allowed it. A
// symbol's failure is logged and counted, never propagated: it cannot
// cancel siblings or abort the run. Hits are returned in group order;
// intra-group order is not guaranteed.
//
// An empty symbol list returns immediately without invoking scan.
func RunBatched[T any](ctx context.Context, symbols []string, chunkSize int, pacer Pacer, scan ScanFunc[T]) ([]T, BatchStats) {
	var stats BatchStats
	if len(symbols) == 0 {
		return nil, stats
	}
	if chunkSize <= 0 {
		chunkSize = 1
	}
	if pacer == nil {
		pacer = NopPacer{}
	}

	var results []T
	for i := 0; i < len(symbols); i += chunkSize {
		if err := pacer.Wait(ctx); err != nil {
			log.Printf("[WARN] batch pacing interrupted: %v", err)
			return results, stats
		}

		end := i + chunkSize
		if end > len(symbols) {
			end = len(symbols)
		}
		chunk := symbols[i:end]

		outs := make([]*T, len(chunk))
		errs := make([]error, len(chunk))
		var wg sync.WaitGroup
		for j, sym := range chunk {
			wg.Add(1)
			go func(j int, sym string) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						errs[j] = fmt.Errorf("panic scanning %s: %v", sym, r)
					}
				}()
				outs[j], errs[j] = scan(ctx, sym)
			}(j, sym)
		}
		wg.Wait()

		for j := range chunk {
			stats.Scanned++
			switch {
			case errs[j] != nil:
				stats.Failed++
				log.Printf("[WARN] scan %s: %v", chunk[j], errs[j])
			case outs[j] == nil:
				stats.Skipped++
			default:
				stats.Hits++
				results = append(results, *outs[j])
			}
		}
	}
	return results, stats
}

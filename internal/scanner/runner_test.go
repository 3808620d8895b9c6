package scanner

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
)

func TestRunBatched_EmptyUniverse(t *testing.T) {
	var calls int32
	scan := func(_ context.Context, symbol string) (*string, error) {
		atomic.AddInt32(&calls, 1)
		return &symbol, nil
	}
	results, stats := RunBatched(context.Background(), nil, 5, NopPacer{}, scan)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
	if calls != 0 {
		t.Errorf("expected zero scan calls, got %d", calls)
	}
	if stats.Scanned != 0 {
		t.Errorf("expected zero scanned, got %d", stats.Scanned)
	}
}

func TestRunBatched_FailureIsolation(t *testing.T) {
	symbols := []string{"S1", "S2", "S3", "S4", "S5", "S6", "S7", "S8", "S9", "S10"}
	scan := func(_ context.Context, symbol string) (*string, error) {
		if symbol == "S3" {
			return nil, fmt.Errorf("boom")
		}
		return &symbol, nil
	}
	results, stats := RunBatched(context.Background(), symbols, 5, NopPacer{}, scan)
	if len(results) != 9 {
		t.Fatalf("expected 9 results, got %d", len(results))
	}
	got := make(map[string]bool)
	for _, r := range results {
		got[r] = true
	}
	if got["S3"] {
		t.Error("failed symbol must not appear in results")
	}
	for _, want := range []string{"S1", "S2", "S4", "S5", "S6", "S10"} {
		if !got[want] {
			t.Errorf("missing result for %s", want)
		}
	}
	if stats.Failed != 1 || stats.Hits != 9 || stats.Scanned != 10 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestRunBatched_PanicIsolation(t *testing.T) {
	symbols := []string{"A", "B", "C"}
	scan := func(_ context.Context, symbol string) (*string, error) {
		if symbol == "B" {
			panic("unexpected data shape")
		}
		return &symbol, nil
	}
	results, stats := RunBatched(context.Background(), symbols, 3, NopPacer{}, scan)
	if len(results) != 2 {
		t.Fatalf("expected 2 results after panic, got %d", len(results))
	}
	if stats.Failed != 1 {
		t.Errorf("expected 1 failure, got %d", stats.Failed)
	}
}

func TestRunBatched_SkipVsFailAccounting(t *testing.T) {
	symbols := []string{"HIT", "SKIP", "FAIL"}
	scan := func(_ context.Context, symbol string) (*string, error) {
		switch symbol {
		case "SKIP":
			return nil, nil
		case "FAIL":
			return nil, fmt.Errorf("network down")
		default:
			return &symbol, nil
		}
	}
	results, stats := RunBatched(context.Background(), symbols, 2, nil, scan)
	if len(results) != 1 || results[0] != "HIT" {
		t.Fatalf("expected only HIT, got %v", results)
	}
	if stats.Hits != 1 || stats.Skipped != 1 || stats.Failed != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestRunBatched_GroupOrderPreserved(t *testing.T) {
	symbols := []string{"A", "B", "C", "D"}
	scan := func(_ context.Context, symbol string) (*string, error) {
		return &symbol, nil
	}
	results, _ := RunBatched(context.Background(), symbols, 2, NopPacer{}, scan)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	first := map[string]bool{"A": true, "B": true}
	second := map[string]bool{"C": true, "D": true}
	if !first[results[0]] || !first[results[1]] {
		t.Errorf("group 1 results out of order: %v", results)
	}
	if !second[results[2]] || !second[results[3]] {
		t.Errorf("group 2 results out of order: %v", results)
	}
}

func TestRunBatched_ZeroChunkSize(t *testing.T) {
	symbols := []string{"A", "B"}
	scan := func(_ context.Context, symbol string) (*string, error) {
		return &symbol, nil
	}
	results, _ := RunBatched(context.Background(), symbols, 0, NopPacer{}, scan)
	if len(results) != 2 {
		t.Errorf("expected chunk size to default to 1, got %d results", len(results))
	}
}

package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockScout/internal/collector"
	"StockScout/internal/model"
)

var dropNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func dropDay(offset int) time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func newDropScanner(bars []model.DailyBar) (*DropScanner, *collector.MockFetcher) {
	mock := &collector.MockFetcher{Default: bars}
	s := NewDropScanner(mock, 6, 5, 0.06)
	s.Now = func() time.Time { return dropNow }
	return s, mock
}

func TestDropScanner_ReferenceDateLookup(t *testing.T) {
	// Bars on D-10, D-7, D-5, D with target D-6: reference must be D-7,
	// the closest bar on or before the target, not D-5.
	bars := []model.DailyBar{
		barOn(dropDay(-10), 110),
		barOn(dropDay(-7), 100),
		barOn(dropDay(-5), 95),
		barOn(dropDay(0), 90),
	}
	s, _ := newDropScanner(bars)
	res, err := s.Scan(context.Background(), "TEST.NS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil {
		t.Fatal("expected a drop result")
	}
	if res.ReferencePrice != 100 {
		t.Errorf("expected reference close 100 (D-7), got %v", res.ReferencePrice)
	}
	if !res.ReferenceDate.Equal(dropDay(-7)) {
		t.Errorf("expected reference date %v, got %v", dropDay(-7), res.ReferenceDate)
	}
	if res.DropPercentage != -10.0 {
		t.Errorf("expected -10.00%%, got %v", res.DropPercentage)
	}
	if res.CurrentPrice != 90 {
		t.Errorf("expected current price 90, got %v", res.CurrentPrice)
	}
}

func TestDropScanner_ThresholdBoundary(t *testing.T) {
	tests := []struct {
		name   string
		latest float64
		hit    bool
	}{
		{"exactly six percent", 94.0, true},
		{"just under threshold", 94.01, false},
		{"deep drop", 80.0, true},
		{"gain", 105.0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bars := []model.DailyBar{
				barOn(dropDay(-8), 100),
				barOn(dropDay(0), tt.latest),
			}
			s, _ := newDropScanner(bars)
			res, err := s.Scan(context.Background(), "TEST.NS")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (res != nil) != tt.hit {
				t.Errorf("latest=%v: expected hit=%v, got %+v", tt.latest, tt.hit, res)
			}
		})
	}
}

func TestDropScanner_Rounding(t *testing.T) {
	bars := []model.DailyBar{
		barOn(dropDay(-8), 90),
		barOn(dropDay(0), 84),
	}
	s, _ := newDropScanner(bars)
	res, err := s.Scan(context.Background(), "TEST.NS")
	if err != nil || res == nil {
		t.Fatalf("expected result, got res=%v err=%v", res, err)
	}
	// (84-90)/90 = -6.666...% rounds to -6.67.
	if res.DropPercentage != -6.67 {
		t.Errorf("expected -6.67, got %v", res.DropPercentage)
	}
}

func TestDropScanner_NoReferenceBar(t *testing.T) {
	// Recently listed: all bars after the target date.
	bars := []model.DailyBar{
		barOn(dropDay(-5), 100),
		barOn(dropDay(-3), 95),
		barOn(dropDay(0), 80),
	}
	s, _ := newDropScanner(bars)
	res, err := s.Scan(context.Background(), "IPO.NS")
	if err != nil {
		t.Fatalf("insufficient history must not be an error: %v", err)
	}
	if res != nil {
		t.Errorf("expected skip, got %+v", res)
	}
}

func TestDropScanner_TooFewBars(t *testing.T) {
	bars := []model.DailyBar{barOn(dropDay(0), 100)}
	s, _ := newDropScanner(bars)
	res, err := s.Scan(context.Background(), "TEST.NS")
	if err != nil || res != nil {
		t.Errorf("expected silent skip, got res=%v err=%v", res, err)
	}
}

func TestDropScanner_ZeroReferencePrice(t *testing.T) {
	bars := []model.DailyBar{
		{Date: dropDay(-8), Close: 0, Open: 1, High: 1, Low: 1},
		barOn(dropDay(0), 80),
	}
	s, _ := newDropScanner(bars)
	res, err := s.Scan(context.Background(), "TEST.NS")
	if err != nil || res != nil {
		t.Errorf("zero reference must be treated as insufficient data, got res=%v err=%v", res, err)
	}
}

func TestDropScanner_DuplicateReferenceDay(t *testing.T) {
	bars := []model.DailyBar{
		barOn(dropDay(-7), 100),
		barOn(dropDay(-7), 105), // duplicate day from the provider
		barOn(dropDay(0), 90),
	}
	s, _ := newDropScanner(bars)
	res, err := s.Scan(context.Background(), "TEST.NS")
	if err != nil || res == nil {
		t.Fatalf("expected result, got res=%v err=%v", res, err)
	}
	if res.ReferencePrice != 105 {
		t.Errorf("expected dedup to keep the later bar (105), got %v", res.ReferencePrice)
	}
}

func TestDropScanner_FetchErrorPropagates(t *testing.T) {
	mock := &collector.MockFetcher{Err: errors.New("timeout")}
	s := NewDropScanner(mock, 6, 5, 0.06)
	s.Now = func() time.Time { return dropNow }
	_, err := s.Scan(context.Background(), "TEST.NS")
	if err == nil {
		t.Error("expected fetch error to surface to the batch runner")
	}
}

func TestDropScanner_Idempotent(t *testing.T) {
	bars := []model.DailyBar{
		barOn(dropDay(-8), 100),
		barOn(dropDay(0), 90),
	}
	s, _ := newDropScanner(bars)
	first, err1 := s.Scan(context.Background(), "TEST.NS")
	second, err2 := s.Scan(context.Background(), "TEST.NS")
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v %v", err1, err2)
	}
	if first == nil || second == nil || *first != *second {
		t.Errorf("scanning identical input twice differed: %+v vs %+v", first, second)
	}
}

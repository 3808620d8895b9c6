package notifier

import (
	"strings"
	"testing"
	"time"

	"StockScout/internal/model"
)

func sampleReport() *model.ScanReport {
	return &model.ScanReport{
		RunAt: time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC),
		Drops: []model.DropResult{{
			Symbol:         "RELIANCE.NS",
			CurrentPrice:   2200.50,
			ReferencePrice: 2400.00,
			DropPercentage: -8.31,
			ReferenceDate:  time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		}},
		Rsi: []model.RsiResult{{
			Symbol: "TCS.NS", RSI: 24.3, CurrentPrice: 3500, Trend: model.TrendOversold,
		}},
		Crosses: []model.CrossResult{{
			Symbol: "INFY.NS", MA50: 1520.1, MA200: 1518.4, CurrentPrice: 1600, Trend: model.TrendGoldenCross,
		}},
	}
}

func TestFormatSubject(t *testing.T) {
	got := FormatSubject(sampleReport())
	want := "StockScout Alert: 1 Drops, 1 RSI Signals, 1 Crossovers"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	empty := &model.ScanReport{RunAt: time.Now()}
	if got := FormatSubject(empty); !strings.Contains(got, "No Signals") {
		t.Errorf("unexpected empty subject: %q", got)
	}
}

func TestFormatReport_Sections(t *testing.T) {
	report := sampleReport()
	newsMap := map[string][]model.StockNews{
		"RELIANCE.NS": {{Title: "Big news", Link: "https://example.com", Publisher: "Wire", Time: "2026-03-10 08:00"}},
	}
	out := FormatReport(report, newsMap, "<p>Buy the dip.</p>")

	for _, want := range []string{
		"RELIANCE.NS", "-8.31%", "2026-03-04",
		"TCS.NS", "OVERSOLD",
		"INFY.NS", "GOLDEN_CROSS",
		"AI Analysis", "Buy the dip.",
		"Headlines", "Big news",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestFormatReport_OmitsEmptySections(t *testing.T) {
	report := &model.ScanReport{RunAt: time.Now()}
	out := FormatReport(report, nil, "")
	for _, absent := range []string{"Price Drops", "RSI Extremes", "Crossovers", "AI Analysis", "Headlines"} {
		if strings.Contains(out, absent) {
			t.Errorf("empty report must omit %q section", absent)
		}
	}
}

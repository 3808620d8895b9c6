package scanner

import (
	"sort"

	"StockScout/internal/model"
)

// NormalizeBars returns a copy of bars stably sorted ascending by
// calendar day, with duplicate days collapsed to the bar the provider
// returned last. Providers guarantee neither order nor uniqueness, so
// every scanner normalizes before reference-date or window arithmetic.
func NormalizeBars(bars []model.DailyBar) []model.DailyBar {
	out := make([]model.DailyBar, len(bars))
	copy(out, bars)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Day().Before(out[j].Day())
	})

	dedup := out[:0]
	for _, b := range out {
		if n := len(dedup); n > 0 && dedup[n-1].Day().Equal(b.Day()) {
			dedup[n-1] = b
			continue
		}
		dedup = append(dedup, b)
	}
	return dedup
}

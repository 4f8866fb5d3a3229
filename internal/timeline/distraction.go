package timeline

import (
	"time"

	"github.com/haseab/tiba-backend/internal/entity"
	"github.com/haseab/tiba-backend/pkg/utils"
)

// CountDistractions buckets raw shortcut launches per calendar day within
// [w.Start, w.End). Each logical distraction is recorded as two raw events,
// so counts are halved with a ceiling: any non-zero raw count reports at
// least one.
func CountDistractions(events []time.Time, w entity.Window) map[string]int {
	loc := w.Start.Location()

	raw := make(map[string]int)
	for _, date := range w.Dates() {
		raw[date] = 0
	}
	for _, ts := range events {
		if ts.Before(w.Start) || !ts.Before(w.End) {
			continue
		}
		key := utils.DateKey(ts, loc)
		if _, ok := raw[key]; ok {
			raw[key]++
		}
	}

	counts := make(map[string]int, len(raw))
	for date, n := range raw {
		counts[date] = (n + 1) / 2
	}
	return counts
}

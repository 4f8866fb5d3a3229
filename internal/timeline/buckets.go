package timeline

import (
	"github.com/haseab/tiba-backend/internal/entity"
	"github.com/haseab/tiba-backend/pkg/utils"
)

// Buckets holds the per-day hour totals per category: the 1HUT series.
type Buckets struct {
	Productive entity.DaySeries
	Neutral    entity.DaySeries
	NonWasted  entity.DaySeries
	Wasted     entity.DaySeries
}

// Aggregate buckets the classified ledger into per-day hour totals across
// the window. Every date in range is pre-seeded to zero so quiet days are
// reported as 0, not absent. Entries spanning midnight are split across
// days by wall-clock overlap. Unavoidable and Carryover land in the
// non-wasted bucket. Values are rounded to three decimals.
func Aggregate(ledger []entity.LedgerEntry, w entity.Window) Buckets {
	loc := w.Start.Location()
	b := Buckets{
		Productive: seedSeries(w),
		Neutral:    seedSeries(w),
		NonWasted:  seedSeries(w),
		Wasted:     seedSeries(w),
	}

	for _, e := range ledger {
		series := b.seriesFor(e.Category)
		for cur := e.Start.In(loc); cur.Before(e.End); {
			nextMidnight := utils.DayStart(cur, loc).AddDate(0, 0, 1)
			segEnd := e.End.In(loc)
			if nextMidnight.Before(segEnd) {
				segEnd = nextMidnight
			}
			key := utils.DateKey(cur, loc)
			// Portions outside the seeded range are dropped, not added as
			// extra keys.
			if _, ok := series[key]; ok {
				series[key] += segEnd.Sub(cur).Hours()
			}
			cur = segEnd
		}
	}

	roundSeries(b.Productive)
	roundSeries(b.Neutral)
	roundSeries(b.NonWasted)
	roundSeries(b.Wasted)
	return b
}

// OneHUT is the element-wise sum of all four category series.
func (b Buckets) OneHUT() entity.DaySeries {
	sum := make(entity.DaySeries, len(b.Productive))
	for date := range b.Productive {
		sum[date] = utils.RoundToThreeDecimals(
			b.Productive[date] + b.Neutral[date] + b.NonWasted[date] + b.Wasted[date])
	}
	return sum
}

func (b Buckets) seriesFor(c entity.Category) entity.DaySeries {
	switch c {
	case entity.CategoryProductive:
		return b.Productive
	case entity.CategoryUnavoidable, entity.CategoryCarryover:
		return b.NonWasted
	case entity.CategoryWasted:
		return b.Wasted
	default:
		return b.Neutral
	}
}

func seedSeries(w entity.Window) entity.DaySeries {
	s := make(entity.DaySeries)
	for _, date := range w.Dates() {
		s[date] = 0
	}
	return s
}

func roundSeries(s entity.DaySeries) {
	for date, v := range s {
		s[date] = utils.RoundToThreeDecimals(v)
	}
}

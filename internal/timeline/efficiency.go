package timeline

import (
	"fmt"

	"github.com/haseab/tiba-backend/internal/entity"
	"github.com/haseab/tiba-backend/pkg/utils"
)

// EfficiencyResult carries the free-hour series plus the two ratios derived
// from it.
type EfficiencyResult struct {
	HoursFree    entity.DaySeries
	Efficiency   entity.DaySeries
	Inefficiency entity.DaySeries
}

// ComputeEfficiency joins the 1HUT buckets with free hours per day.
// efficiency = productive/free and inefficiency = wasted/free, both zero
// when the day has no free hours (never a division fault). A date missing
// from the free-time source aborts the whole computation; callers must
// surface the gap rather than skip a day and desync the series.
func ComputeEfficiency(b Buckets, hoursFree entity.DaySeries, w entity.Window) (EfficiencyResult, error) {
	res := EfficiencyResult{
		HoursFree:    make(entity.DaySeries),
		Efficiency:   make(entity.DaySeries),
		Inefficiency: make(entity.DaySeries),
	}

	for _, date := range w.Dates() {
		free, ok := hoursFree[date]
		if !ok {
			return EfficiencyResult{}, fmt.Errorf("%w: %s", entity.ErrMissingFreeTime, date)
		}

		res.HoursFree[date] = utils.RoundToThreeDecimals(free)

		if free == 0 {
			res.Efficiency[date] = 0
			res.Inefficiency[date] = 0
			continue
		}
		res.Efficiency[date] = utils.RoundToThreeDecimals(b.Productive[date] / free)
		res.Inefficiency[date] = utils.RoundToThreeDecimals(b.Wasted[date] / free)
	}

	return res, nil
}

// AdhocTime is the unplanned-time series: free calendar time not covered by
// any ledger entry, clamped at zero when the ledger over-reports.
func AdhocTime(oneHUT, hoursFree entity.DaySeries, w entity.Window) entity.DaySeries {
	adhoc := make(entity.DaySeries)
	for _, date := range w.Dates() {
		v := hoursFree[date] - oneHUT[date]
		if v < 0 {
			v = 0
		}
		adhoc[date] = utils.RoundToThreeDecimals(v)
	}
	return adhoc
}

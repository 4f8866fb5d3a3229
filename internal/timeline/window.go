package timeline

import (
	"fmt"
	"time"

	"github.com/haseab/tiba-backend/internal/entity"
	"github.com/haseab/tiba-backend/pkg/utils"
)

// ResolveLive builds the reporting window anchored at now. Personal mode
// starts at the most recent Monday's midnight; work mode is a rolling seven
// days (now minus six days, floored to midnight). The end of a live window
// is now itself, not end of day.
func ResolveLive(now time.Time, personal bool, loc *time.Location) entity.Window {
	now = now.In(loc)

	var start time.Time
	if personal {
		// Monday <= now; Go weekdays put Sunday at 0.
		offset := (int(now.Weekday()) + 6) % 7
		start = utils.DayStart(now.AddDate(0, 0, -offset), loc)
	} else {
		start = utils.DayStart(now.AddDate(0, 0, -6), loc)
	}

	return entity.Window{
		Start:     start,
		End:       now,
		StartDate: start.Format(entity.DateLayout),
		EndDate:   now.Format(entity.DateLayout),
		Live:      true,
	}
}

// ResolveRange builds a historical window from literal calendar dates,
// optionally shifted back a whole number of weeks first. Shifting by weeks
// preserves day-of-week alignment.
func ResolveRange(startDate, endDate string, prevWeeks int, loc *time.Location) (entity.Window, error) {
	start, err := time.ParseInLocation(entity.DateLayout, startDate, loc)
	if err != nil {
		return entity.Window{}, fmt.Errorf("%w: start date %q", entity.ErrInvalidDate, startDate)
	}
	end, err := time.ParseInLocation(entity.DateLayout, endDate, loc)
	if err != nil {
		return entity.Window{}, fmt.Errorf("%w: end date %q", entity.ErrInvalidDate, endDate)
	}
	if end.Before(start) {
		return entity.Window{}, fmt.Errorf("%w: end date %s before start date %s", entity.ErrInvalidDate, endDate, startDate)
	}

	if prevWeeks > 0 {
		start, end = PrevWeeks(start, end, prevWeeks)
	}

	start = utils.DayStart(start, loc)
	end = utils.DayEnd(end, loc)

	return entity.Window{
		Start:     start,
		End:       end,
		StartDate: start.Format(entity.DateLayout),
		EndDate:   end.Format(entity.DateLayout),
	}, nil
}

// PrevWeeks shifts both bounds back exactly seven days per unit.
func PrevWeeks(start, end time.Time, times int) (time.Time, time.Time) {
	return start.AddDate(0, 0, -7*times), end.AddDate(0, 0, -7*times)
}

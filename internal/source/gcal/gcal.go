package gcal

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/haseab/tiba-backend/internal/entity"
	"github.com/haseab/tiba-backend/pkg/utils"
)

// Client reads busy intervals from Google Calendar and derives the free
// hours available per day.
type Client struct {
	srv        *calendar.Service
	calendarID string
	dayHours   float64
	loc        *time.Location
}

// NewClient builds a calendar client from service-account credentials.
// dayHours is the waking-day budget that busy time is subtracted from.
func NewClient(ctx context.Context, credentialsFile, calendarID string, dayHours float64, loc *time.Location) (*Client, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read calendar credentials: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(b, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse calendar credentials: %w", err)
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to build calendar service: %w", err)
	}

	return &Client{srv: srv, calendarID: calendarID, dayHours: dayHours, loc: loc}, nil
}

// FreeHoursPerDay reports, for every date in the window, the waking-day
// budget minus busy-event overlap for that local day, clamped at zero.
// Every date in range gets a value, so downstream series never have gaps.
func (c *Client) FreeHoursPerDay(ctx context.Context, w entity.Window) (entity.DaySeries, error) {
	req := &calendar.FreeBusyRequest{
		TimeMin:  w.Start.Format(time.RFC3339),
		TimeMax:  w.End.Format(time.RFC3339),
		TimeZone: c.loc.String(),
		Items:    []*calendar.FreeBusyRequestItem{{Id: c.calendarID}},
	}

	resp, err := c.srv.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: freebusy query: %v", entity.ErrSourceUnavailable, err)
	}

	busy, err := c.busyPeriods(resp)
	if err != nil {
		return nil, err
	}

	return freeFromBusy(busy, w, c.dayHours, c.loc), nil
}

func freeFromBusy(busy []period, w entity.Window, dayHours float64, loc *time.Location) entity.DaySeries {
	free := make(entity.DaySeries)
	for _, date := range w.Dates() {
		dayStart, _ := time.ParseInLocation(entity.DateLayout, date, loc)
		dayEnd := dayStart.AddDate(0, 0, 1)

		var busyHours float64
		for _, p := range busy {
			busyHours += overlap(p.start, p.end, dayStart, dayEnd).Hours()
		}

		hours := dayHours - busyHours
		if hours < 0 {
			hours = 0
		}
		free[date] = utils.RoundToThreeDecimals(hours)
	}
	return free
}

type period struct {
	start, end time.Time
}

func (c *Client) busyPeriods(resp *calendar.FreeBusyResponse) ([]period, error) {
	cal, ok := resp.Calendars[c.calendarID]
	if !ok {
		return nil, fmt.Errorf("%w: calendar %s missing from freebusy response", entity.ErrSourceUnavailable, c.calendarID)
	}

	periods := make([]period, 0, len(cal.Busy))
	for _, b := range cal.Busy {
		start, err := time.Parse(time.RFC3339, b.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: busy start %q", entity.ErrSourceUnavailable, b.Start)
		}
		end, err := time.Parse(time.RFC3339, b.End)
		if err != nil {
			return nil, fmt.Errorf("%w: busy end %q", entity.ErrSourceUnavailable, b.End)
		}
		periods = append(periods, period{start: start.In(c.loc), end: end.In(c.loc)})
	}
	return periods, nil
}

func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !start.Before(end) {
		return 0
	}
	return end.Sub(start)
}

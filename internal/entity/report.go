package entity

import "time"

const DateLayout = "2006-01-02"

// Window is the resolved reporting range: [Start, End] in the report
// timezone, plus the calendar-date strings used for source queries.
type Window struct {
	Start     time.Time
	End       time.Time
	StartDate string
	EndDate   string
	Live      bool
}

// Dates returns every calendar date in the window, inclusive, as
// YYYY-MM-DD keys in ascending order.
func (w Window) Dates() []string {
	var dates []string
	loc := w.Start.Location()
	day := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, loc)
	for !day.After(w.End) {
		dates = append(dates, day.Format(DateLayout))
		day = day.AddDate(0, 0, 1)
	}
	return dates
}

// DaySeries maps a YYYY-MM-DD date to an hour (or ratio) value. Every series
// in a report covers every date of the window, zero-filled.
type DaySeries map[string]float64

// Report is the assembled metrics payload for one reporting window.
type Report struct {
	AdhocTime        DaySeries      `json:"adhocTimeList"`
	OneHUT           DaySeries      `json:"oneHUTList"`
	P1HUT            DaySeries      `json:"p1HUTList"`
	N1HUT            DaySeries      `json:"n1HUTList"`
	NW1HUT           DaySeries      `json:"nw1HUTList"`
	W1HUT            DaySeries      `json:"w1HUTList"`
	HoursFree        DaySeries      `json:"hoursFreeList"`
	Efficiency       DaySeries      `json:"efficiencyList"`
	Inefficiency     DaySeries      `json:"inefficiencyList"`
	DistractionCount map[string]int `json:"distractionCountList"`
	Flow             float64        `json:"flow"`
	StartDate        string         `json:"startDate"`
	EndDate          string         `json:"endDate"`
	CurrentActivity  *string        `json:"currentActivity,omitempty"`
	CurrentStart     *time.Time     `json:"currentActivityStartTime,omitempty"`
	NeutralActivity  *bool          `json:"neutralActivity,omitempty"`
}

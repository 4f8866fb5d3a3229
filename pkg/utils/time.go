package utils

import (
	"log"
	"time"
)

// LoadLocation resolves an IANA timezone name, falling back to UTC so a bad
// TIMEZONE value degrades instead of crashing the process.
func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("⚠️ Failed to load timezone %q, falling back to UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

// DayStart floors t to local midnight.
func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayEnd ceils t to 23:59:59.000 of its calendar day. The missing final
// second is intentional: an entry ending exactly at next midnight must fall
// outside the window.
func DayEnd(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, loc)
}

// DateKey formats t as the YYYY-MM-DD bucket key in the report timezone.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

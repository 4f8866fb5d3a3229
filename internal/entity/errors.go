package entity

import "errors"

var (
	// ErrInvalidDate marks a malformed date literal in the request.
	ErrInvalidDate = errors.New("invalid date")

	// ErrSourceUnavailable marks an I/O failure in the ledger, calendar or
	// distraction-event source. The request is aborted, never retried here.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMissingFreeTime marks a date gap in the calendar source. Aborting
	// keeps every response series the same length for charting.
	ErrMissingFreeTime = errors.New("missing free time for date")

	// ErrUnmappedActivityLabel marks a display-name lookup miss, which is a
	// configuration error rather than a recoverable runtime case.
	ErrUnmappedActivityLabel = errors.New("unmapped activity label")
)

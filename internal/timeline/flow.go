package timeline

import (
	"time"

	"github.com/haseab/tiba-backend/internal/entity"
	"github.com/haseab/tiba-backend/pkg/utils"
)

// FlowSession is a maximal run of adjacent same-category entries with no
// flow-exempt entry inside.
type FlowSession struct {
	Category entity.Category
	Start    time.Time
	End      time.Time
}

// CurrentFlow scans the ledger once and returns the trailing open session,
// or nil when the ledger is empty or ends on a flow-exempt entry. A
// flow-exempt entry closes the open session without starting a new one; a
// gap or category change closes it and opens a fresh one. Zero-duration
// entries contribute no gap and are skipped outright.
func CurrentFlow(ledger []entity.LedgerEntry) *FlowSession {
	var open *FlowSession
	for _, e := range ledger {
		if e.FlowExempt {
			open = nil
			continue
		}
		if e.Duration() == 0 {
			continue
		}
		if open != nil && open.Category == e.Category && e.Start.Equal(open.End) {
			open.End = e.End
			continue
		}
		open = &FlowSession{Category: e.Category, Start: e.Start, End: e.End}
	}
	return open
}

// FlowHours reports the current continuous-focus duration in hours, rounded
// to three decimals. It is the time from the open session's start to the
// start of the running entry: the in-flight interval itself is not banked
// until it completes. A ledger that does not end on the running entry
// (historical replay, or the tracker is idle) always reports zero.
func FlowHours(ledger []entity.LedgerEntry) (float64, *FlowSession) {
	session := CurrentFlow(ledger)
	if len(ledger) == 0 || session == nil {
		return 0, session
	}
	last := ledger[len(ledger)-1]
	if !last.IsRunning {
		return 0, session
	}
	// A running entry with no elapsed time yet is invisible to the scanner,
	// so the open session can be a stale run from before a gap. Flow counts
	// only when the session reaches the running entry in both time and
	// category.
	if session.End.Before(last.Start) || session.Category != last.Category {
		return 0, nil
	}
	return utils.RoundToThreeDecimals(last.Start.Sub(session.Start).Hours()), session
}

package timeline

import (
	"sort"
	"time"

	"github.com/haseab/tiba-backend/internal/entity"
)

// MergeLedger combines the completed entries with the currently running one
// (if any) into a single ledger ordered by start instant. The running entry
// has its end pinned to now. No dedup by id: a running entry and a completed
// entry are never the same logical activity here, so both are kept even if
// the source ever returns a retroactively closed copy.
//
// Ties on start keep source order, completed entries before the running one.
// Category and the flow-exempt flag are resolved once, here.
func MergeLedger(completed []entity.TimeEntry, current *entity.TimeEntry, now time.Time) []entity.LedgerEntry {
	ledger := make([]entity.LedgerEntry, 0, len(completed)+1)
	for _, e := range completed {
		ledger = append(ledger, toLedgerEntry(e, now))
	}
	if current != nil {
		ledger = append(ledger, toLedgerEntry(*current, now))
	}

	sort.SliceStable(ledger, func(i, j int) bool {
		return ledger[i].Start.Before(ledger[j].Start)
	})

	return ledger
}

func toLedgerEntry(e entity.TimeEntry, now time.Time) entity.LedgerEntry {
	end := now
	if e.Stop != nil {
		end = *e.Stop
	}
	return entity.LedgerEntry{
		TimeEntry:  e,
		End:        end,
		Category:   Classify(e.Tags),
		FlowExempt: IsFlowExempt(e.Tags),
		IsRunning:  e.Stop == nil,
	}
}

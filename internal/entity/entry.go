package entity

import "time"

// Tags recognized by the classifier. Anything else on an entry is kept but
// ignored for categorization.
const (
	TagProductive  = "Productive"
	TagUnavoidable = "Unavoidable"
	TagCarryover   = "Carryover"
	TagWasted      = "Wasted"
	TagFlowExempt  = "FlowExempt"
)

// Category is the classification derived from an entry's tag set, resolved
// once per entry instead of re-matching tag strings in every component.
type Category int

const (
	CategoryNeutral Category = iota
	CategoryWasted
	CategoryProductive
	CategoryCarryover
	CategoryUnavoidable
)

func (c Category) String() string {
	switch c {
	case CategoryProductive:
		return "Productive"
	case CategoryUnavoidable:
		return "Unavoidable"
	case CategoryCarryover:
		return "Carryover"
	case CategoryWasted:
		return "Wasted"
	default:
		return "Neutral"
	}
}

// TimeEntry is one tracked activity interval as reported by the ledger
// source. Stop is nil for the currently running entry.
type TimeEntry struct {
	ID          *int64     `json:"id"`
	ProjectID   *int64     `json:"projectId,omitempty"`
	Project     string     `json:"project"`
	Description string     `json:"description"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop,omitempty"`
	Tags        []string   `json:"tags"`
}

// Running reports whether the entry has no end yet.
func (e TimeEntry) Running() bool {
	return e.Stop == nil
}

// LedgerEntry is a TimeEntry after merging: the end instant is concrete
// (running entries are pinned to "now") and the category flags are resolved.
type LedgerEntry struct {
	TimeEntry
	End        time.Time
	Category   Category
	FlowExempt bool
	IsRunning  bool
}

// Duration of the entry. Always >= 0 for well-formed input; zero-duration
// entries are valid instantaneous logs.
func (e LedgerEntry) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

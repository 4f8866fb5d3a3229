package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

// DistractionEvent is one logged keyboard-shortcut launch. Two raw events
// make up one logical distraction, hence the 2:1 discount at report time.
type DistractionEvent struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Shortcut   string    `json:"shortcut" db:"shortcut"`
	OccurredAt time.Time `json:"occurredAt" db:"occurred_at"`
}

type RecordDistractionRequest struct {
	Shortcut   string    `json:"shortcut" binding:"required"`
	OccurredAt time.Time `json:"occurredAt" binding:"required"`
}

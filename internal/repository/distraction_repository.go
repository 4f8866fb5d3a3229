package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/haseab/tiba-backend/internal/entity"
)

// DistractionEventSource supplies raw shortcut-launch timestamps. The flat
// file the events used to live in and the relational table they moved to are
// interchangeable implementations, selected by configuration.
type DistractionEventSource interface {
	EventsInRange(ctx context.Context, start, end time.Time) ([]time.Time, error)
	Record(ctx context.Context, shortcut string, occurredAt time.Time) (*entity.DistractionEvent, error)
}

type distractionRepository struct {
	db       *sqlx.DB
	shortcut string
}

// NewDistractionRepository returns the table-backed event source, filtered
// to a single shortcut label.
func NewDistractionRepository(db *sqlx.DB, shortcut string) *distractionRepository {
	return &distractionRepository{db: db, shortcut: shortcut}
}

func (r *distractionRepository) EventsInRange(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	query := `
		SELECT occurred_at
		FROM distraction_events
		WHERE shortcut = $1
			AND occurred_at >= $2
			AND occurred_at < $3
		ORDER BY occurred_at`

	var timestamps []time.Time
	err := r.db.SelectContext(ctx, &timestamps, query, r.shortcut, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: query distraction events: %v", entity.ErrSourceUnavailable, err)
	}

	return timestamps, nil
}

func (r *distractionRepository) Record(ctx context.Context, shortcut string, occurredAt time.Time) (*entity.DistractionEvent, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("generate event id: %w", err)
	}

	event := &entity.DistractionEvent{
		ID:         id,
		Shortcut:   shortcut,
		OccurredAt: occurredAt,
	}

	query := `INSERT INTO distraction_events (id, shortcut, occurred_at) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, event.ID, event.Shortcut, event.OccurredAt); err != nil {
		return nil, fmt.Errorf("%w: insert distraction event: %v", entity.ErrSourceUnavailable, err)
	}

	return event, nil
}

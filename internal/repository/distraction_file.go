package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/uuid"

	"github.com/haseab/tiba-backend/internal/entity"
)

const fileTimeLayout = "2006-01-02 15:04:05"

// distractionFile is the legacy flat-file event source: a CSV of shortcut
// launches with Time and Keyboard Shortcut columns.
type distractionFile struct {
	path     string
	shortcut string
	loc      *time.Location
}

func NewDistractionFile(path, shortcut string, loc *time.Location) *distractionFile {
	return &distractionFile{path: path, shortcut: shortcut, loc: loc}
}

func (f *distractionFile) EventsInRange(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open distraction log: %v", entity.ErrSourceUnavailable, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read distraction log: %v", entity.ErrSourceUnavailable, err)
	}

	var timestamps []time.Time
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			// Header, or a malformed line.
			continue
		}
		ts, err := time.ParseInLocation(fileTimeLayout, row[0], f.loc)
		if err != nil {
			// Unparseable timestamps are dropped, matching the tolerant
			// handling the log always had.
			continue
		}
		if row[1] != f.shortcut {
			continue
		}
		if ts.Before(start) || !ts.Before(end) {
			continue
		}
		timestamps = append(timestamps, ts)
	}

	return timestamps, nil
}

func (f *distractionFile) Record(ctx context.Context, shortcut string, occurredAt time.Time) (*entity.DistractionEvent, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("generate event id: %w", err)
	}

	_, statErr := os.Stat(f.path)
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: open distraction log: %v", entity.ErrSourceUnavailable, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if os.IsNotExist(statErr) {
		if err := writer.Write([]string{"Time", "Keyboard Shortcut"}); err != nil {
			return nil, fmt.Errorf("%w: write distraction log header: %v", entity.ErrSourceUnavailable, err)
		}
	}
	if err := writer.Write([]string{occurredAt.In(f.loc).Format(fileTimeLayout), shortcut}); err != nil {
		return nil, fmt.Errorf("%w: append distraction event: %v", entity.ErrSourceUnavailable, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("%w: flush distraction log: %v", entity.ErrSourceUnavailable, err)
	}

	return &entity.DistractionEvent{ID: id, Shortcut: shortcut, OccurredAt: occurredAt}, nil
}

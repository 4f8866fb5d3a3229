package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/haseab/tiba-backend/internal/entity"
)

const testShortcut = "Command + `"

func writeLog(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keyboard_shortcut_launches.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileEventsInRange(t *testing.T) {
	path := writeLog(t, "Time,Keyboard Shortcut\n"+
		"2024-06-19 09:00:00,Command + `\n"+
		"2024-06-19 09:05:00,Command + Tab\n"+ // other shortcut, skipped
		"not a timestamp,Command + `\n"+ // coerced away
		"2024-06-19 09:10:00,Command + `\n"+
		"2024-06-25 09:00:00,Command + `\n") // outside range

	src := NewDistractionFile(path, testShortcut, time.UTC)
	events, err := src.EventsInRange(context.Background(),
		time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 23, 23, 59, 59, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}
}

func TestFileEventsMissingLog(t *testing.T) {
	src := NewDistractionFile(filepath.Join(t.TempDir(), "missing.csv"), testShortcut, time.UTC)
	_, err := src.EventsInRange(context.Background(), time.Now().Add(-time.Hour), time.Now())
	if !errors.Is(err, entity.ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestFileRecordAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launches.csv")
	src := NewDistractionFile(path, testShortcut, time.UTC)

	at := time.Date(2024, 6, 19, 10, 0, 0, 0, time.UTC)
	event, err := src.Record(context.Background(), testShortcut, at)
	if err != nil {
		t.Fatal(err)
	}
	if event.ID.IsNil() {
		t.Fatal("event id not assigned")
	}
	if _, err := src.Record(context.Background(), testShortcut, at.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}

	events, err := src.EventsInRange(context.Background(), at.Add(-time.Hour), at.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2 recorded events", len(events))
	}
}

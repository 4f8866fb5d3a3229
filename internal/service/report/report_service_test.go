package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/haseab/tiba-backend/config"
	"github.com/haseab/tiba-backend/internal/entity"
)

type fakeLedger struct {
	entries      []entity.TimeEntry
	current      *entity.TimeEntry
	projects     map[string]string
	projectCalls int
	err          error
}

func (f *fakeLedger) FetchEntries(ctx context.Context, startDate, endDate string) ([]entity.TimeEntry, error) {
	return f.entries, f.err
}

func (f *fakeLedger) FetchCurrentEntry(ctx context.Context) (*entity.TimeEntry, error) {
	return f.current, nil
}

func (f *fakeLedger) FetchProjects(ctx context.Context) (map[string]string, error) {
	f.projectCalls++
	return f.projects, nil
}

type fakeFreeTime struct {
	hours float64
}

func (f *fakeFreeTime) FreeHoursPerDay(ctx context.Context, w entity.Window) (entity.DaySeries, error) {
	free := make(entity.DaySeries)
	for _, date := range w.Dates() {
		free[date] = f.hours
	}
	return free, nil
}

type fakeDistractions struct {
	events []time.Time
}

func (f *fakeDistractions) EventsInRange(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	return f.events, nil
}

func (f *fakeDistractions) Record(ctx context.Context, shortcut string, at time.Time) (*entity.DistractionEvent, error) {
	return &entity.DistractionEvent{Shortcut: shortcut, OccurredAt: at}, nil
}

type fakeCache struct {
	store map[string][]byte
	sets  int
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.sets++
	if f.store == nil {
		f.store = make(map[string][]byte)
	}
	f.store[key] = []byte("cached")
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	if _, ok := f.store[key]; !ok {
		return errors.New("key not found")
	}
	if m, ok := dest.(*map[string]string); ok {
		*m = map[string]string{"7": "deep-work"}
	}
	return nil
}

func testConfig() config.ReportConfig {
	return config.ReportConfig{
		Timezone:          "UTC",
		Location:          time.UTC,
		DayHours:          16,
		NeutralActivities: map[string]bool{"chores": true},
		DisplayNames: map[string]string{
			"deep-work": "Deep Work",
			"chores":    "Chores",
			"":          "No Project",
		},
	}
}

func fixedNow() time.Time {
	// Wednesday 11:15.
	return time.Date(2024, 6, 19, 11, 15, 0, 0, time.UTC)
}

func stamp(hm string) time.Time {
	ts, _ := time.Parse("2006-01-02 15:04", "2024-06-19 "+hm)
	return ts
}

func newTestService(ledger *fakeLedger, cache Cache) *reportService {
	svc := NewReportService(ledger, &fakeFreeTime{hours: 16}, &fakeDistractions{
		events: []time.Time{
			stamp("09:00"), stamp("09:01"), stamp("09:02"),
			stamp("09:03"), stamp("09:04"),
		},
	}, cache, testConfig()).(*reportService)
	svc.now = fixedNow
	return svc
}

func entryAt(start, stop string, projectID int64, tags ...string) entity.TimeEntry {
	end := stamp(stop)
	pid := projectID
	return entity.TimeEntry{Start: stamp(start), Stop: &end, ProjectID: &pid, Tags: tags}
}

func TestWeeklyReportLive(t *testing.T) {
	running := entity.TimeEntry{Start: stamp("11:00"), Tags: []string{"Productive"}, Project: "deep-work"}
	ledger := &fakeLedger{
		entries: []entity.TimeEntry{
			entryAt("10:00", "10:30", 7, "Productive"),
			entryAt("10:30", "11:00", 7, "Productive"),
		},
		current:  &running,
		projects: map[string]string{"7": "deep-work"},
	}

	report, err := newTestService(ledger, nil).WeeklyReport(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}

	if report.StartDate != "2024-06-17" || report.EndDate != "2024-06-19" {
		t.Fatalf("window = %s..%s", report.StartDate, report.EndDate)
	}
	if report.Flow != 1.0 {
		t.Fatalf("flow = %v, want 1.0", report.Flow)
	}
	if report.CurrentActivity == nil || *report.CurrentActivity != "Deep Work" {
		t.Fatalf("currentActivity = %v", report.CurrentActivity)
	}
	if report.CurrentStart == nil || !report.CurrentStart.Equal(stamp("10:00")) {
		t.Fatalf("currentActivityStartTime = %v, want session start", report.CurrentStart)
	}
	if report.NeutralActivity == nil || *report.NeutralActivity {
		t.Fatalf("neutralActivity = %v, want false", report.NeutralActivity)
	}
	if report.P1HUT["2024-06-19"] != 1.25 {
		t.Fatalf("p1HUT = %v, want 1.25 (running entry included)", report.P1HUT["2024-06-19"])
	}
	if report.DistractionCount["2024-06-19"] != 3 {
		t.Fatalf("distractions = %d, want ceil(5/2)", report.DistractionCount["2024-06-19"])
	}
	// 16 free - 1.25 tracked.
	if report.AdhocTime["2024-06-19"] != 14.75 {
		t.Fatalf("adhoc = %v, want 14.75", report.AdhocTime["2024-06-19"])
	}
	// Every series covers every window date.
	for _, date := range []string{"2024-06-17", "2024-06-18", "2024-06-19"} {
		if _, ok := report.OneHUT[date]; !ok {
			t.Fatalf("oneHUT missing %s", date)
		}
		if _, ok := report.Efficiency[date]; !ok {
			t.Fatalf("efficiency missing %s", date)
		}
	}
}

func TestRangeReportHistorical(t *testing.T) {
	ledger := &fakeLedger{
		entries: []entity.TimeEntry{entryAt("10:00", "11:00", 7, "Productive")},
		// A current entry exists, but historical replay must ignore it.
		current: &entity.TimeEntry{Start: stamp("11:00")},
	}

	report, err := newTestService(ledger, nil).RangeReport(context.Background(), "2024-06-17", "2024-06-23", 0)
	if err != nil {
		t.Fatal(err)
	}

	if report.Flow != 0 {
		t.Fatalf("flow = %v, want 0 in replay", report.Flow)
	}
	if report.CurrentActivity != nil || report.CurrentStart != nil || report.NeutralActivity != nil {
		t.Fatal("current-activity fields must be absent in replay")
	}
	if len(report.OneHUT) != 7 {
		t.Fatalf("oneHUT has %d dates, want 7", len(report.OneHUT))
	}
}

func TestRangeReportPrevWeeks(t *testing.T) {
	report, err := newTestService(&fakeLedger{}, nil).RangeReport(context.Background(), "2024-06-17", "2024-06-23", 1)
	if err != nil {
		t.Fatal(err)
	}
	if report.StartDate != "2024-06-10" || report.EndDate != "2024-06-16" {
		t.Fatalf("window = %s..%s, want shifted back one week", report.StartDate, report.EndDate)
	}
}

func TestRangeReportInvalidDate(t *testing.T) {
	_, err := newTestService(&fakeLedger{}, nil).RangeReport(context.Background(), "bogus", "2024-06-23", 0)
	if !errors.Is(err, entity.ErrInvalidDate) {
		t.Fatalf("err = %v, want ErrInvalidDate", err)
	}
}

func TestWeeklyReportUnmappedLabel(t *testing.T) {
	running := entity.TimeEntry{Start: stamp("11:00"), Project: "untracked-project"}
	ledger := &fakeLedger{current: &running}

	_, err := newTestService(ledger, nil).WeeklyReport(context.Background(), true)
	if !errors.Is(err, entity.ErrUnmappedActivityLabel) {
		t.Fatalf("err = %v, want ErrUnmappedActivityLabel", err)
	}
}

func TestWeeklyReportNeutralActivity(t *testing.T) {
	running := entity.TimeEntry{Start: stamp("11:00"), Project: "chores"}
	ledger := &fakeLedger{current: &running}

	report, err := newTestService(ledger, nil).WeeklyReport(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	if report.NeutralActivity == nil || !*report.NeutralActivity {
		t.Fatalf("neutralActivity = %v, want true", report.NeutralActivity)
	}
}

func TestProjectTableCached(t *testing.T) {
	pid := int64(7)
	running := entity.TimeEntry{Start: stamp("11:00"), ProjectID: &pid}
	ledger := &fakeLedger{current: &running, projects: map[string]string{"7": "deep-work"}}
	cache := &fakeCache{}

	svc := newTestService(ledger, cache)
	if _, err := svc.WeeklyReport(context.Background(), true); err != nil {
		t.Fatal(err)
	}
	if ledger.projectCalls != 1 || cache.sets != 1 {
		t.Fatalf("calls = %d sets = %d, want one fetch and one cache fill", ledger.projectCalls, cache.sets)
	}

	if _, err := svc.WeeklyReport(context.Background(), true); err != nil {
		t.Fatal(err)
	}
	if ledger.projectCalls != 1 {
		t.Fatalf("calls = %d, want cache hit on second request", ledger.projectCalls)
	}
}

func TestWeeklyReportSourceFailure(t *testing.T) {
	ledger := &fakeLedger{err: entity.ErrSourceUnavailable}
	_, err := newTestService(ledger, nil).WeeklyReport(context.Background(), true)
	if !errors.Is(err, entity.ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
}

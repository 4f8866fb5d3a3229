package report

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/haseab/tiba-backend/config"
	"github.com/haseab/tiba-backend/internal/entity"
	"github.com/haseab/tiba-backend/internal/repository"
	"github.com/haseab/tiba-backend/internal/timeline"
)

const projectsCacheKey = "toggl:projects"
const projectsCacheTTL = 15 * time.Minute

// LedgerSource supplies completed activity intervals, the running interval
// and the project display-name table.
type LedgerSource interface {
	FetchEntries(ctx context.Context, startDate, endDate string) ([]entity.TimeEntry, error)
	FetchCurrentEntry(ctx context.Context) (*entity.TimeEntry, error)
	FetchProjects(ctx context.Context) (map[string]string, error)
}

// FreeTimeSource supplies the available hours per day in a window.
type FreeTimeSource interface {
	FreeHoursPerDay(ctx context.Context, w entity.Window) (entity.DaySeries, error)
}

// Cache is the optional project-table cache. A nil Cache disables caching.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
}

type ReportService interface {
	WeeklyReport(ctx context.Context, personal bool) (*entity.Report, error)
	RangeReport(ctx context.Context, startDate, endDate string, prevWeeks int) (*entity.Report, error)
}

type reportService struct {
	ledger       LedgerSource
	freeTime     FreeTimeSource
	distractions repository.DistractionEventSource
	cache        Cache
	cfg          config.ReportConfig
	now          func() time.Time
}

func NewReportService(
	ledger LedgerSource,
	freeTime FreeTimeSource,
	distractions repository.DistractionEventSource,
	cache Cache,
	cfg config.ReportConfig,
) ReportService {
	return &reportService{
		ledger:       ledger,
		freeTime:     freeTime,
		distractions: distractions,
		cache:        cache,
		cfg:          cfg,
		now:          time.Now,
	}
}

// WeeklyReport builds the live report anchored at the current instant.
func (s *reportService) WeeklyReport(ctx context.Context, personal bool) (*entity.Report, error) {
	win := timeline.ResolveLive(s.now(), personal, s.cfg.Location)
	return s.build(ctx, win)
}

// RangeReport replays a historical window, optionally shifted back whole
// weeks. Flow and current-activity fields are always absent in replay.
func (s *reportService) RangeReport(ctx context.Context, startDate, endDate string, prevWeeks int) (*entity.Report, error) {
	win, err := timeline.ResolveRange(startDate, endDate, prevWeeks, s.cfg.Location)
	if err != nil {
		return nil, err
	}
	return s.build(ctx, win)
}

func (s *reportService) build(ctx context.Context, win entity.Window) (*entity.Report, error) {
	completed, err := s.ledger.FetchEntries(ctx, win.StartDate, win.EndDate)
	if err != nil {
		return nil, err
	}

	var current *entity.TimeEntry
	if win.Live {
		current, err = s.ledger.FetchCurrentEntry(ctx)
		if err != nil {
			return nil, err
		}
	}

	ledger := timeline.MergeLedger(completed, current, win.End)

	buckets := timeline.Aggregate(ledger, win)
	oneHUT := buckets.OneHUT()

	hoursFree, err := s.freeTime.FreeHoursPerDay(ctx, win)
	if err != nil {
		return nil, err
	}
	eff, err := timeline.ComputeEfficiency(buckets, hoursFree, win)
	if err != nil {
		return nil, err
	}
	adhoc := timeline.AdhocTime(oneHUT, eff.HoursFree, win)

	events, err := s.distractions.EventsInRange(ctx, win.Start, win.End)
	if err != nil {
		return nil, err
	}
	counts := timeline.CountDistractions(events, win)

	report := &entity.Report{
		AdhocTime:        adhoc,
		OneHUT:           oneHUT,
		P1HUT:            buckets.Productive,
		N1HUT:            buckets.Neutral,
		NW1HUT:           buckets.NonWasted,
		W1HUT:            buckets.Wasted,
		HoursFree:        eff.HoursFree,
		Efficiency:       eff.Efficiency,
		Inefficiency:     eff.Inefficiency,
		DistractionCount: counts,
		StartDate:        win.StartDate,
		EndDate:          win.EndDate,
	}

	if win.Live {
		if err := s.attachCurrentActivity(ctx, report, ledger); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// attachCurrentActivity fills the live-only fields: flow, the display name
// of the last ledger entry's project and whether that activity counts as
// neutral.
func (s *reportService) attachCurrentActivity(ctx context.Context, report *entity.Report, ledger []entity.LedgerEntry) error {
	flow, session := timeline.FlowHours(ledger)
	report.Flow = flow

	if len(ledger) == 0 {
		return nil
	}
	last := ledger[len(ledger)-1]

	raw, err := s.rawLabel(ctx, last)
	if err != nil {
		return err
	}

	display, ok := s.cfg.DisplayNames[raw]
	if !ok {
		return fmt.Errorf("%w: %q", entity.ErrUnmappedActivityLabel, raw)
	}

	start := last.Start
	if session != nil {
		start = session.Start
	}
	neutral := s.cfg.NeutralActivities[raw]

	report.CurrentActivity = &display
	report.CurrentStart = &start
	report.NeutralActivity = &neutral
	return nil
}

func (s *reportService) rawLabel(ctx context.Context, e entity.LedgerEntry) (string, error) {
	if e.Project != "" {
		return e.Project, nil
	}
	if e.ProjectID == nil {
		return "", nil
	}

	projects, err := s.projectNames(ctx)
	if err != nil {
		return "", err
	}
	return projects[strconv.FormatInt(*e.ProjectID, 10)], nil
}

// projectNames returns the Toggl project table, from cache when possible.
// Only raw source data is cached; computed metrics never are.
func (s *reportService) projectNames(ctx context.Context) (map[string]string, error) {
	projects := make(map[string]string)
	if s.cache != nil {
		if err := s.cache.Get(ctx, projectsCacheKey, &projects); err == nil {
			return projects, nil
		}
	}

	projects, err := s.ledger.FetchProjects(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, projectsCacheKey, projects, projectsCacheTTL); err != nil {
			slog.Warn("failed to cache project table", slog.String("error", err.Error()))
		}
	}
	return projects, nil
}

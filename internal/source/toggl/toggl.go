package toggl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/haseab/tiba-backend/internal/entity"
)

const defaultBaseURL = "https://api.track.toggl.com/api/v9"

// Client talks to the Toggl Track API v9, which backs the activity ledger.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

func NewClient(apiToken string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type timeEntryPayload struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	ProjectID   *int64     `json:"project_id"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop"`
	Duration    int64      `json:"duration"`
	Tags        []string   `json:"tags"`
}

type projectPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FetchEntries returns the completed time entries between the two calendar
// dates, ascending by start. Toggl treats end_date as exclusive, so one day
// is added to cover the full reporting range.
func (c *Client) FetchEntries(ctx context.Context, startDate, endDate string) ([]entity.TimeEntry, error) {
	end, err := time.Parse(entity.DateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end date %q", entity.ErrInvalidDate, endDate)
	}

	q := url.Values{}
	q.Set("start_date", startDate)
	q.Set("end_date", end.AddDate(0, 0, 1).Format(entity.DateLayout))

	var payload []timeEntryPayload
	if err := c.get(ctx, "/me/time_entries?"+q.Encode(), &payload); err != nil {
		return nil, fmt.Errorf("%w: fetch time entries: %v", entity.ErrSourceUnavailable, err)
	}

	entries := make([]entity.TimeEntry, 0, len(payload))
	for _, p := range payload {
		// The running entry also shows up in the range listing with a
		// negative duration; it is fetched separately.
		if p.Stop == nil {
			continue
		}
		entries = append(entries, p.toEntry())
	}

	// Toggl returns newest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// FetchCurrentEntry returns the running entry, or nil when the tracker is
// idle.
func (c *Client) FetchCurrentEntry(ctx context.Context) (*entity.TimeEntry, error) {
	var payload *timeEntryPayload
	if err := c.get(ctx, "/me/time_entries/current", &payload); err != nil {
		return nil, fmt.Errorf("%w: fetch current entry: %v", entity.ErrSourceUnavailable, err)
	}
	if payload == nil {
		return nil, nil
	}
	e := payload.toEntry()
	e.Stop = nil
	return &e, nil
}

// FetchProjects returns the project display-name table keyed by project id.
func (c *Client) FetchProjects(ctx context.Context) (map[string]string, error) {
	var payload []projectPayload
	if err := c.get(ctx, "/me/projects", &payload); err != nil {
		return nil, fmt.Errorf("%w: fetch projects: %v", entity.ErrSourceUnavailable, err)
	}
	projects := make(map[string]string, len(payload))
	for _, p := range payload {
		projects[strconv.FormatInt(p.ID, 10)] = p.Name
	}
	return projects, nil
}

func (p timeEntryPayload) toEntry() entity.TimeEntry {
	id := p.ID
	return entity.TimeEntry{
		ID:          &id,
		ProjectID:   p.ProjectID,
		Description: p.Description,
		Start:       p.Start,
		Stop:        p.Stop,
		Tags:        p.Tags,
	}
}

func (c *Client) get(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.apiToken, "api_token")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("toggl returned %d: %s", resp.StatusCode, body)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}

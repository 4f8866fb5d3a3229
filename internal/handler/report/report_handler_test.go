package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/haseab/tiba-backend/internal/entity"
)

type stubService struct {
	report *entity.Report
	err    error

	gotPersonal  bool
	gotStart     string
	gotEnd       string
	gotPrevWeeks int
}

func (s *stubService) WeeklyReport(ctx context.Context, personal bool) (*entity.Report, error) {
	s.gotPersonal = personal
	return s.report, s.err
}

func (s *stubService) RangeReport(ctx context.Context, startDate, endDate string, prevWeeks int) (*entity.Report, error) {
	s.gotStart, s.gotEnd, s.gotPrevWeeks = startDate, endDate, prevWeeks
	return s.report, s.err
}

func newTestRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewReportHandler(svc).RegisterRoutes(r.Group(""))
	return r
}

func doRequest(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetMetrics(t *testing.T) {
	svc := &stubService{report: &entity.Report{StartDate: "2024-06-17", EndDate: "2024-06-19", Flow: 1.5}}
	w := doRequest(t, newTestRouter(svc), "/metrics?personal=false")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if svc.gotPersonal {
		t.Fatal("personal=false not passed through")
	}

	var body struct {
		Status int           `json:"status"`
		Data   entity.Report `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != 200 || body.Data.Flow != 1.5 {
		t.Fatalf("body = %+v", body)
	}
}

func TestGetMetricsDefaultsPersonal(t *testing.T) {
	svc := &stubService{report: &entity.Report{}}
	doRequest(t, newTestRouter(svc), "/metrics")
	if !svc.gotPersonal {
		t.Fatal("personal should default to true")
	}
}

func TestGetMetricsByDate(t *testing.T) {
	svc := &stubService{report: &entity.Report{}}
	w := doRequest(t, newTestRouter(svc), "/metricsdate?startDate=2024-06-17&endDate=2024-06-23&times=2")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if svc.gotStart != "2024-06-17" || svc.gotEnd != "2024-06-23" || svc.gotPrevWeeks != 2 {
		t.Fatalf("passed (%s, %s, %d)", svc.gotStart, svc.gotEnd, svc.gotPrevWeeks)
	}
}

func TestGetMetricsByDateMissingParams(t *testing.T) {
	svc := &stubService{report: &entity.Report{}}
	r := newTestRouter(svc)

	for _, path := range []string{"/metricsdate", "/metricsdate?startDate=2024-06-17"} {
		if w := doRequest(t, r, path); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", path, w.Code)
		}
	}
}

func TestGetMetricsByDateInvalidDate(t *testing.T) {
	svc := &stubService{err: fmt.Errorf("%w: start date %q", entity.ErrInvalidDate, "bogus")}
	w := doRequest(t, newTestRouter(svc), "/metricsdate?startDate=bogus&endDate=2024-06-23")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for invalid date", w.Code)
	}
}

func TestGetMetricsSourceFailure(t *testing.T) {
	svc := &stubService{err: entity.ErrSourceUnavailable}
	w := doRequest(t, newTestRouter(svc), "/metrics")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 for source failure", w.Code)
	}
}

package report

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/haseab/tiba-backend/internal/entity"
	"github.com/haseab/tiba-backend/internal/model/response/wrapper"
)

type ReportHandler struct {
	service ReportService
}

type ReportService interface {
	WeeklyReport(ctx context.Context, personal bool) (*entity.Report, error)
	RangeReport(ctx context.Context, startDate, endDate string, prevWeeks int) (*entity.Report, error)
}

func NewReportHandler(service ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// GetMetrics returns the live weekly report.
// @Summary      Live weekly metrics
// @Description  Merge Toggl and calendar data into per-day productivity metrics for the current week
// @Tags         metrics
// @Produce      json
// @Param        personal  query     bool  false  "Week starts Monday (true) or rolls back 7 days (false)"  default(true)
// @Success      200       {object}  wrapper.ResponseWrapper{data=entity.Report}
// @Failure      500       {object}  wrapper.ErrorWrapper
// @Router       /metrics [get]
func (h *ReportHandler) GetMetrics(c *gin.Context) {
	personal, err := strconv.ParseBool(c.DefaultQuery("personal", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Status:  http.StatusBadRequest,
			Message: "personal must be true or false",
		})
		return
	}

	report, err := h.service.WeeklyReport(c.Request.Context(), personal)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Status: http.StatusOK,
		Data:   report,
	})
}

// GetMetricsByDate replays a historical window.
// @Summary      Historical metrics
// @Description  Recompute the metrics for an explicit date range, optionally shifted back whole weeks
// @Tags         metrics
// @Produce      json
// @Param        startDate  query     string  true   "Range start (YYYY-MM-DD)"
// @Param        endDate    query     string  true   "Range end (YYYY-MM-DD)"
// @Param        times      query     int     false  "Shift both bounds back this many weeks"
// @Success      200        {object}  wrapper.ResponseWrapper{data=entity.Report}
// @Failure      400        {object}  wrapper.ErrorWrapper
// @Failure      500        {object}  wrapper.ErrorWrapper
// @Router       /metricsdate [get]
func (h *ReportHandler) GetMetricsByDate(c *gin.Context) {
	startDate := c.Query("startDate")
	if startDate == "" {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Status:  http.StatusBadRequest,
			Message: "startDate is required (YYYY-MM-DD)",
		})
		return
	}

	endDate := c.Query("endDate")
	if endDate == "" {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Status:  http.StatusBadRequest,
			Message: "endDate is required (YYYY-MM-DD)",
		})
		return
	}

	prevWeeks := 0
	if timesStr := c.Query("times"); timesStr != "" {
		times, err := strconv.Atoi(timesStr)
		if err != nil || times < 0 {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Status:  http.StatusBadRequest,
				Message: "times must be a non-negative integer",
			})
			return
		}
		prevWeeks = times
	}

	report, err := h.service.RangeReport(c.Request.Context(), startDate, endDate, prevWeeks)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Status: http.StatusOK,
		Data:   report,
	})
}

func (h *ReportHandler) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, entity.ErrInvalidDate) {
		status = http.StatusBadRequest
	}
	c.JSON(status, wrapper.ErrorWrapper{
		Status:  status,
		Message: err.Error(),
	})
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/metrics", h.GetMetrics)
	router.GET("/metricsdate", h.GetMetricsByDate)
}

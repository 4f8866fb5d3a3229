package distraction

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haseab/tiba-backend/internal/entity"
	"github.com/haseab/tiba-backend/internal/model/response/wrapper"
)

type DistractionHandler struct {
	recorder Recorder
}

type Recorder interface {
	Record(ctx context.Context, shortcut string, occurredAt time.Time) (*entity.DistractionEvent, error)
}

func NewDistractionHandler(recorder Recorder) *DistractionHandler {
	return &DistractionHandler{recorder: recorder}
}

// RecordEvent logs one raw shortcut launch.
// @Summary      Record a distraction event
// @Tags         distractions
// @Accept       json
// @Produce      json
// @Param        event  body      entity.RecordDistractionRequest  true  "Shortcut launch"
// @Success      201    {object}  wrapper.ResponseWrapper{data=entity.DistractionEvent}
// @Failure      400    {object}  wrapper.ErrorWrapper
// @Failure      500    {object}  wrapper.ErrorWrapper
// @Router       /distractions [post]
func (h *DistractionHandler) RecordEvent(c *gin.Context) {
	var req entity.RecordDistractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Status:  http.StatusBadRequest,
			Message: "shortcut and occurredAt are required",
		})
		return
	}

	event, err := h.recorder.Record(c.Request.Context(), req.Shortcut, req.OccurredAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Status:  http.StatusInternalServerError,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{
		Status: http.StatusCreated,
		Data:   event,
	})
}

func (h *DistractionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/distractions", h.RecordEvent)
}

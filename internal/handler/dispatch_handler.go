package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-jetlag/internal/service/dispatch"
)

type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (*dispatch.Response, error)
}

type DispatchHandler struct {
	sweeper Sweeper
}

func NewDispatchHandler(sweeper Sweeper) *DispatchHandler {
	return &DispatchHandler{sweeper: sweeper}
}

// dispatchTrigger is the body a delayed task posts. A sweep handles every
// due email, so the fields are only logged.
type dispatchTrigger struct {
	ScheduleID string `json:"schedule_id"`
	TripID     string `json:"trip_id"`
}

// HandleDispatch runs one sweep. The now query parameter (RFC3339) replaces
// the current time, for replaying a missed window or testing.
func (h *DispatchHandler) HandleDispatch(c *gin.Context) {
	ctx := c.Request.Context()

	now := time.Now()
	if nowStr := c.Query("now"); nowStr != "" {
		parsed, err := time.Parse(time.RFC3339, nowStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid now time format, expected RFC3339")
			return
		}
		now = parsed
		slog.InfoContext(ctx, "using virtual time",
			slog.Time("virtual_now", now),
		)
	}

	if c.Request.ContentLength > 0 {
		var trigger dispatchTrigger
		if err := c.ShouldBindJSON(&trigger); err == nil && trigger.ScheduleID != "" {
			slog.InfoContext(ctx, "dispatch triggered by task",
				slog.String("schedule_id", trigger.ScheduleID),
				slog.String("trip_id", trigger.TripID),
			)
		}
	}

	resp, err := h.sweeper.Sweep(ctx, now)
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, resp)
}

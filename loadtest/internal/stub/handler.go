// Package stub serves a stand-in circadian model for load tests and local
// runs. It synthesizes schedules from the request unless one is seeded, and
// can be told to fail.
package stub

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

type Handler struct {
	storage *Storage
}

func NewHandler(storage *Storage) *Handler {
	return &Handler{storage: storage}
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/api/v1/schedules", h.HandleGenerate)
	r.POST("/stub/seed", h.HandleSeed)
	r.POST("/stub/fail", h.HandleFail)
	r.POST("/stub/reset", h.HandleReset)
	r.GET("/stub/requests", h.HandleRequests)
}

// POST /api/v1/schedules
func (h *Handler) HandleGenerate(c *gin.Context) {
	var req domain.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seeded, failStatus := h.storage.Record(req)
	if failStatus != 0 {
		slog.Info("failing schedule request on purpose", slog.Int("status", failStatus))
		c.JSON(failStatus, gin.H{"error": "stub failure"})
		return
	}

	if seeded != nil {
		c.JSON(http.StatusOK, seeded)
		return
	}

	schedule, err := Synthesize(req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	slog.Debug("synthesized schedule",
		slog.String("origin_tz", req.OriginTZ),
		slog.String("dest_tz", req.DestTZ),
		slog.Int("days", len(schedule.Interventions)),
	)

	c.JSON(http.StatusOK, schedule)
}

func (h *Handler) HandleSeed(c *gin.Context) {
	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.storage.Seed(req.Schedule)

	slog.Info("seeded schedule", slog.Int("days", len(req.Schedule.Interventions)))

	c.JSON(http.StatusOK, gin.H{"status": "seeded", "days": len(req.Schedule.Interventions)})
}

func (h *Handler) HandleFail(c *gin.Context) {
	var req FailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.storage.FailNext(req.Count, req.StatusCode)

	c.JSON(http.StatusOK, gin.H{"status": "armed", "count": req.Count})
}

func (h *Handler) HandleReset(c *gin.Context) {
	h.storage.Reset()

	slog.Info("reset stub")

	c.JSON(http.StatusOK, gin.H{"status": "reset complete"})
}

func (h *Handler) HandleRequests(c *gin.Context) {
	requests := h.storage.Requests()

	c.JSON(http.StatusOK, RequestsResponse{
		Requests: requests,
		Count:    len(requests),
	})
}

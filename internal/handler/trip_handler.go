package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/service/icsexport"
	"github.com/KasumiMercury/primind-jetlag/internal/service/trip"
)

type TripService interface {
	Create(ctx context.Context, userID string, req *trip.CreateRequest) (*domain.Trip, error)
	Regenerate(ctx context.Context, tripID, userID string, prefs *domain.Preferences) (*domain.Trip, error)
	Get(ctx context.Context, tripID, userID string) (*domain.Trip, error)
}

type TripHandler struct {
	trips TripService
}

func NewTripHandler(trips TripService) *TripHandler {
	return &TripHandler{trips: trips}
}

type RegenerateRequest struct {
	Preferences *domain.Preferences `json:"preferences"`
}

func (h *TripHandler) HandleCreate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req trip.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "trip request unmarshal failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	created, err := h.trips.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *TripHandler) HandleGet(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	found, err := h.trips.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *TripHandler) HandleRegenerate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req RegenerateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
	}

	updated, err := h.trips.Regenerate(c.Request.Context(), c.Param("id"), userID, req.Preferences)
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *TripHandler) HandleExportICS(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	found, err := h.trips.Get(ctx, c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}
	if found.Schedule == nil {
		respondServiceError(c, domain.ErrScheduleNotGenerated, nil)
		return
	}

	body, err := icsexport.Export(ctx, found)
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="jetlag-%s.ics"`, found.ID))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/service/calendarsync"
)

type CalendarSyncService interface {
	Sync(ctx context.Context, tripID, userID string) (*calendarsync.SyncResult, error)
	Remove(ctx context.Context, tripID, userID string) (*calendarsync.RemoveResult, error)
	Status(ctx context.Context, tripID, userID string) (*calendarsync.StatusResult, error)
}

type CalendarHandler struct {
	syncs CalendarSyncService
}

func NewCalendarHandler(syncs CalendarSyncService) *CalendarHandler {
	return &CalendarHandler{syncs: syncs}
}

func (h *CalendarHandler) HandleSync(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	result, err := h.syncs.Sync(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		var details any
		if errors.Is(err, domain.ErrCalendarDeleteFailed) && result != nil {
			details = gin.H{"delete_failed": result.DeleteFailed}
		}
		respondServiceError(c, err, details)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CalendarHandler) HandleRemove(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	result, err := h.syncs.Remove(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CalendarHandler) HandleStatus(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	result, err := h.syncs.Status(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, result)
}

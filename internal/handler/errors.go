package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorMapping struct {
	target  error
	status  int
	errType string
}

var errorMappings = []errorMapping{
	{domain.ErrTripNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrUserNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrCalendarSyncNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrInvalidTrip, http.StatusBadRequest, "validation_error"},
	{domain.ErrTripAlreadyExists, http.StatusConflict, "conflict"},
	{domain.ErrScheduleNotGenerated, http.StatusConflict, "schedule_not_generated"},
	{domain.ErrCalendarSyncInProgress, http.StatusConflict, "sync_in_progress"},
	{domain.ErrCalendarNotConnected, http.StatusConflict, "calendar_not_connected"},
	{domain.ErrCalendarAuthRevoked, http.StatusConflict, "calendar_reauth_required"},
	{domain.ErrCalendarRateLimited, http.StatusTooManyRequests, "rate_limited"},
	{domain.ErrCalendarUnavailable, http.StatusServiceUnavailable, "calendar_unavailable"},
	{domain.ErrScheduleGenerationFailed, http.StatusBadGateway, "schedule_generation_failed"},
	{domain.ErrCalendarDeleteFailed, http.StatusBadGateway, "calendar_delete_failed"},
}

func statusForError(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.errType
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

// respondServiceError maps a service error to a response. Internal errors
// are logged and their message is not exposed.
func respondServiceError(c *gin.Context, err error, details any) {
	status, errType := statusForError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		message = "internal server error"
	}

	c.JSON(status, &ErrorResponse{
		Error:   errType,
		Message: message,
		Details: details,
	})
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, &ErrorResponse{
		Error:   errType,
		Message: message,
	})
}

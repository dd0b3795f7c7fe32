package gcal

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

var rateLimitReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"quotaExceeded":         true,
}

// classify maps Google API and token errors onto the domain calendar errors.
// Unrecognized errors are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.ErrorCode == "invalid_grant" || (retrieveErr.Response != nil && retrieveErr.Response.StatusCode == http.StatusUnauthorized) {
			return fmt.Errorf("%w: %w", domain.ErrCalendarAuthRevoked, err)
		}
		return fmt.Errorf("%w: token refresh: %w", domain.ErrCalendarUnavailable, err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone:
			return fmt.Errorf("%w: %w", domain.ErrRemoteEventNotFound, err)
		case apiErr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", domain.ErrCalendarRateLimited, err)
		case apiErr.Code == http.StatusForbidden && hasRateLimitReason(apiErr):
			return fmt.Errorf("%w: %w", domain.ErrCalendarRateLimited, err)
		case apiErr.Code == http.StatusUnauthorized:
			return fmt.Errorf("%w: %w", domain.ErrCalendarAuthRevoked, err)
		case apiErr.Code >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %w", domain.ErrCalendarUnavailable, err)
		}
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrCalendarUnavailable, err)
	}

	return err
}

func hasRateLimitReason(apiErr *googleapi.Error) bool {
	for _, item := range apiErr.Errors {
		if rateLimitReasons[item.Reason] {
			return true
		}
	}
	return false
}

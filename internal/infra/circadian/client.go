// Package circadian calls the external circadian model that generates
// intervention schedules.
package circadian

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/observability/logging"
	"github.com/KasumiMercury/primind-jetlag/internal/observability/tracing"
)

const (
	schedulesPath = "/api/v1/schedules"

	DefaultTimeout = 60 * time.Second

	maxErrorBody = 1 << 10
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := newHTTPClient(baseURL)
	httpClient.Timeout = timeout

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Generate asks the model for a schedule. Every failure wraps
// domain.ErrScheduleGenerationFailed.
func (c *Client) Generate(ctx context.Context, req *domain.ScheduleRequest) (*domain.Schedule, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse base URL: %w", domain.ErrScheduleGenerationFailed, err)
	}
	u.Path = schedulesPath

	ctx, span := tracing.StartExternalAPISpan(ctx, "circadian.generate", u.String())
	defer span.End()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %w", domain.ErrScheduleGenerationFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrScheduleGenerationFailed, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	httpReq.Header.Set("x-request-id", requestID)
	tracing.InjectToHTTPRequest(ctx, httpReq)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		slog.ErrorContext(ctx, "failed to call circadian model",
			slog.String("url", u.String()),
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("%w: send request: %w", domain.ErrScheduleGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		slog.ErrorContext(ctx, "unexpected status code from circadian model",
			slog.String("url", u.String()),
			slog.Int("status_code", resp.StatusCode),
			slog.String("body", string(detail)),
		)
		err := fmt.Errorf("%w: unexpected status code: %d", domain.ErrScheduleGenerationFailed, resp.StatusCode)
		tracing.RecordError(span, err)
		return nil, err
	}

	var schedule domain.Schedule
	if err := json.NewDecoder(resp.Body).Decode(&schedule); err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrScheduleGenerationFailed, err)
	}

	slog.DebugContext(ctx, "schedule generated",
		slog.Int("days", len(schedule.Interventions)),
		slog.Duration("duration", time.Since(start)),
	)

	return &schedule, nil
}

// Package mailer renders and delivers flight-day emails.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/observability/tracing"
)

const (
	DefaultResendBaseURL = "https://api.resend.com"

	defaultSendTimeout = 15 * time.Second
)

var ErrSendRejected = errors.New("email provider rejected message")

type ResendConfig struct {
	APIKey  string
	From    string
	BaseURL string
	Timeout time.Duration
}

type resendMailer struct {
	client *resty.Client
	from   string
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

type resendResponse struct {
	ID string `json:"id"`
}

type resendError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func NewResendMailer(cfg ResendConfig) domain.Mailer {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultResendBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &resendMailer{
		client: client,
		from:   cfg.From,
	}
}

func (m *resendMailer) Send(ctx context.Context, msg *domain.EmailMessage) (string, error) {
	ctx, span := tracing.StartExternalAPISpan(ctx, "email.send", m.client.BaseURL+"/emails")
	defer span.End()

	var result resendResponse
	var apiErr resendError

	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(&resendRequest{
			From:    m.from,
			To:      []string{msg.To},
			Subject: msg.Subject,
			HTML:    msg.HTML,
			Text:    msg.Text,
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/emails")
	if err != nil {
		tracing.RecordError(span, err)
		return "", fmt.Errorf("send email: %w", err)
	}

	if resp.IsError() {
		err := fmt.Errorf("%w: status %d: %s", ErrSendRejected, resp.StatusCode(), apiErr.Message)
		tracing.RecordError(span, err)
		return "", err
	}

	if result.ID == "" {
		err := fmt.Errorf("%w: response has no message id", ErrSendRejected)
		tracing.RecordError(span, err)
		return "", err
	}

	return result.ID, nil
}

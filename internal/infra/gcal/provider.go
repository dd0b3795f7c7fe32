package gcal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

const (
	DefaultCalendarID = "primary"

	defaultHTTPTimeout = 30 * time.Second
)

type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	CalendarID   string
	// Endpoint overrides the Calendar API base URL.
	Endpoint string
	// TokenURL overrides the OAuth token endpoint.
	TokenURL string
}

type provider struct {
	oauth      *oauth2.Config
	calendarID string
	endpoint   string
}

func NewProvider(cfg ProviderConfig) domain.CalendarProvider {
	endpoint := google.Endpoint
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}

	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}

	return &provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			Scopes:       []string{calendar.CalendarEventsScope},
		},
		calendarID: calendarID,
		endpoint:   cfg.Endpoint,
	}
}

// ForUser builds a calendar client authorized by the user's stored refresh
// token. Revoked tokens surface on the first call as ErrCalendarAuthRevoked.
func (p *provider) ForUser(ctx context.Context, user *domain.User) (domain.RemoteCalendar, error) {
	if user == nil || user.GoogleRefreshToken == "" {
		return nil, domain.ErrCalendarNotConnected
	}

	tokenCtx := context.WithValue(context.WithoutCancel(ctx), oauth2.HTTPClient, &http.Client{Timeout: defaultHTTPTimeout})
	source := p.oauth.TokenSource(tokenCtx, &oauth2.Token{RefreshToken: user.GoogleRefreshToken})

	opts := []option.ClientOption{option.WithTokenSource(source)}
	if p.endpoint != "" {
		opts = append(opts, option.WithEndpoint(p.endpoint))
	}

	cal, err := newRemoteCalendar(ctx, p.calendarID, opts...)
	if err != nil {
		return nil, fmt.Errorf("open calendar for user %s: %w", user.ID, err)
	}

	return cal, nil
}

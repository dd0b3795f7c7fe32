package gcal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

func newTestCalendar(t *testing.T, handler http.HandlerFunc) *remoteCalendar {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cal, err := newRemoteCalendar(context.Background(), "primary",
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
	if err != nil {
		t.Fatalf("failed to create calendar: %v", err)
	}

	return cal
}

func writeAPIError(w http.ResponseWriter, code int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":"test","errors":[{"reason":%q}]}}`, code, reason)
}

func testEvent() *domain.CalendarEvent {
	start := time.Date(2026, 1, 21, 22, 0, 0, 0, time.UTC)
	return &domain.CalendarEvent{
		Summary:         "⏰ Wake up: Light",
		Description:     "• Wake.\n\nAdded by Primind Jetlag [primind-jetlag]",
		Start:           start,
		End:             start.Add(30 * time.Minute),
		TimeZone:        "Asia/Tokyo",
		ReminderMinutes: 15,
		AnchorType:      domain.InterventionWakeTarget,
	}
}

func TestInsert(t *testing.T) {
	var got calendar.Event
	cal := newTestCalendar(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/calendars/primary/events") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ev-1"}`))
	})

	id, err := cal.Insert(context.Background(), testEvent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "ev-1" {
		t.Errorf("expected ev-1, got %q", id)
	}

	if got.Transparency != "transparent" {
		t.Errorf("expected transparent event, got %q", got.Transparency)
	}
	if got.ExtendedProperties == nil || got.ExtendedProperties.Private[sourceProperty] != sourceValue {
		t.Errorf("missing source property: %+v", got.ExtendedProperties)
	}
	if got.Reminders == nil || len(got.Reminders.Overrides) != 1 || got.Reminders.Overrides[0].Minutes != 15 {
		t.Errorf("unexpected reminders: %+v", got.Reminders)
	}
	if got.Start == nil || got.Start.DateTime != "2026-01-21T22:00:00Z" || got.Start.TimeZone != "Asia/Tokyo" {
		t.Errorf("unexpected start: %+v", got.Start)
	}
}

func TestListFiltersBySource(t *testing.T) {
	calls := 0
	cal := newTestCalendar(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.URL.Query().Get("privateExtendedProperty"); got != "source=primind-jetlag" {
			t.Errorf("unexpected filter %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pageToken") == "" {
			_, _ = w.Write([]byte(`{"items":[
				{"id":"ev-1","summary":"a","start":{"dateTime":"2026-01-21T22:00:00Z"},"end":{"dateTime":"2026-01-21T22:30:00Z"}},
				{"id":"all-day","summary":"b","start":{"date":"2026-01-21"},"end":{"date":"2026-01-22"}}
			],"nextPageToken":"p2"}`))
			return
		}
		_, _ = w.Write([]byte(`{"items":[
			{"id":"ev-2","summary":"c","start":{"dateTime":"2026-01-22T07:00:00+09:00"},"end":{"dateTime":"2026-01-22T07:15:00+09:00"}}
		]}`))
	})

	start := time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC)
	events, err := cal.List(context.Background(), start, start.Add(48*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 2 {
		t.Errorf("expected 2 pages, got %d", calls)
	}
	if len(events) != 2 || events[0].ID != "ev-1" || events[1].ID != "ev-2" {
		t.Fatalf("unexpected events: %+v", events)
	}
	if !events[1].Start.Equal(time.Date(2026, 1, 21, 22, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %v", events[1].Start)
	}
}

func TestDeleteErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		reason  string
		wantErr error
	}{
		{name: "gone", status: http.StatusGone, reason: "deleted", wantErr: domain.ErrRemoteEventNotFound},
		{name: "not found", status: http.StatusNotFound, reason: "notFound", wantErr: domain.ErrRemoteEventNotFound},
		{name: "rate limited", status: http.StatusForbidden, reason: "rateLimitExceeded", wantErr: domain.ErrCalendarRateLimited},
		{name: "server error", status: http.StatusServiceUnavailable, reason: "backendError", wantErr: domain.ErrCalendarUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := newTestCalendar(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete || !strings.HasSuffix(r.URL.Path, "/events/ev-1") {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				writeAPIError(w, tt.status, tt.reason)
			})

			if err := cal.Delete(context.Background(), "ev-1"); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		want      error
		transient bool
	}{
		{
			name:      "too many requests",
			err:       &googleapi.Error{Code: http.StatusTooManyRequests},
			want:      domain.ErrCalendarRateLimited,
			transient: true,
		},
		{
			name:      "user rate limit",
			err:       &googleapi.Error{Code: http.StatusForbidden, Errors: []googleapi.ErrorItem{{Reason: "userRateLimitExceeded"}}},
			want:      domain.ErrCalendarRateLimited,
			transient: true,
		},
		{
			name: "forbidden without rate limit reason",
			err:  &googleapi.Error{Code: http.StatusForbidden, Errors: []googleapi.ErrorItem{{Reason: "forbidden"}}},
		},
		{
			name: "unauthorized",
			err:  &googleapi.Error{Code: http.StatusUnauthorized},
			want: domain.ErrCalendarAuthRevoked,
		},
		{
			name: "invalid grant",
			err:  fmt.Errorf("refresh: %w", &oauth2.RetrieveError{ErrorCode: "invalid_grant"}),
			want: domain.ErrCalendarAuthRevoked,
		},
		{
			name:      "token endpoint down",
			err:       &oauth2.RetrieveError{ErrorCode: "temporarily_unavailable"},
			want:      domain.ErrCalendarUnavailable,
			transient: true,
		},
		{
			name:      "deadline",
			err:       context.DeadlineExceeded,
			want:      domain.ErrCalendarUnavailable,
			transient: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)

			if tt.want != nil && !errors.Is(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if domain.IsTransient(got) != tt.transient {
				t.Errorf("transient: expected %v for %v", tt.transient, got)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("original error lost: %v", got)
			}
		})
	}
}

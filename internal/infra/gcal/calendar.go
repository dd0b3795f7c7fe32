// Package gcal talks to Google Calendar on behalf of a connected user.
package gcal

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/observability/tracing"
)

const (
	// sourceProperty is set on every event this service inserts and is the
	// filter List searches by.
	sourceProperty = "source"
	sourceValue    = "primind-jetlag"

	reminderMethod = "popup"
	listPageSize   = 250
)

type remoteCalendar struct {
	svc        *calendar.Service
	calendarID string
}

func newRemoteCalendar(ctx context.Context, calendarID string, opts ...option.ClientOption) (*remoteCalendar, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &remoteCalendar{
		svc:        svc,
		calendarID: calendarID,
	}, nil
}

func (c *remoteCalendar) Insert(ctx context.Context, event *domain.CalendarEvent) (string, error) {
	ctx, span := tracing.StartExternalAPISpan(ctx, "calendar.events.insert", c.calendarID)
	defer span.End()

	created, err := c.svc.Events.Insert(c.calendarID, toGoogleEvent(event)).Context(ctx).Do()
	if err != nil {
		err = classify(err)
		tracing.RecordError(span, err)
		return "", err
	}

	return created.Id, nil
}

func (c *remoteCalendar) Patch(ctx context.Context, id string, event *domain.CalendarEvent) error {
	ctx, span := tracing.StartExternalAPISpan(ctx, "calendar.events.patch", c.calendarID)
	defer span.End()

	if _, err := c.svc.Events.Patch(c.calendarID, id, toGoogleEvent(event)).Context(ctx).Do(); err != nil {
		err = classify(err)
		tracing.RecordError(span, err)
		return err
	}

	return nil
}

// Delete wraps ErrRemoteEventNotFound when the event is missing or was
// already deleted.
func (c *remoteCalendar) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.StartExternalAPISpan(ctx, "calendar.events.delete", c.calendarID)
	defer span.End()

	if err := c.svc.Events.Delete(c.calendarID, id).Context(ctx).Do(); err != nil {
		err = classify(err)
		tracing.RecordError(span, err)
		return err
	}

	return nil
}

// List returns this service's events overlapping [timeMin, timeMax).
func (c *remoteCalendar) List(ctx context.Context, timeMin, timeMax time.Time) ([]domain.RemoteEvent, error) {
	ctx, span := tracing.StartExternalAPISpan(ctx, "calendar.events.list", c.calendarID)
	defer span.End()

	var out []domain.RemoteEvent
	pageToken := ""
	for {
		call := c.svc.Events.List(c.calendarID).
			TimeMin(timeMin.Format(time.RFC3339)).
			TimeMax(timeMax.Format(time.RFC3339)).
			SingleEvents(true).
			PrivateExtendedProperty(sourceProperty + "=" + sourceValue).
			MaxResults(listPageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		page, err := call.Do()
		if err != nil {
			err = classify(err)
			tracing.RecordError(span, err)
			return nil, err
		}

		for _, item := range page.Items {
			if ev, ok := fromGoogleEvent(item); ok {
				out = append(out, ev)
			}
		}

		if page.NextPageToken == "" {
			return out, nil
		}
		pageToken = page.NextPageToken
	}
}

func toGoogleEvent(ev *domain.CalendarEvent) *calendar.Event {
	transparency := "transparent"
	if ev.Busy {
		transparency = "opaque"
	}

	reminders := &calendar.EventReminders{
		UseDefault:      false,
		ForceSendFields: []string{"UseDefault"},
	}
	if ev.ReminderMinutes > 0 {
		reminders.Overrides = []*calendar.EventReminder{
			{Method: reminderMethod, Minutes: int64(ev.ReminderMinutes)},
		}
	}

	return &calendar.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start: &calendar.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
			TimeZone: ev.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
			TimeZone: ev.TimeZone,
		},
		Transparency: transparency,
		Reminders:    reminders,
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				sourceProperty: sourceValue,
				"anchor_type":  ev.AnchorType.String(),
			},
		},
	}
}

// fromGoogleEvent skips all-day events, which this service never creates.
func fromGoogleEvent(item *calendar.Event) (domain.RemoteEvent, bool) {
	if item.Start == nil || item.End == nil || item.Start.DateTime == "" || item.End.DateTime == "" {
		return domain.RemoteEvent{}, false
	}

	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return domain.RemoteEvent{}, false
	}
	end, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return domain.RemoteEvent{}, false
	}

	return domain.RemoteEvent{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Start:       start,
		End:         end,
	}, true
}

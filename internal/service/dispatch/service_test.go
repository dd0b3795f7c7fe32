package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-jetlag/internal/config"
	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

type mocks struct {
	emails   *domain.MockEmailScheduleRepository
	trips    *domain.MockTripRepository
	users    *domain.MockUserRepository
	renderer *domain.MockEmailRenderer
	mailer   *domain.MockMailer
	locker   *domain.MockLocker
}

func newTestService(t *testing.T, cfg Config) (*Service, *mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &mocks{
		emails:   domain.NewMockEmailScheduleRepository(ctrl),
		trips:    domain.NewMockTripRepository(ctrl),
		users:    domain.NewMockUserRepository(ctrl),
		renderer: domain.NewMockEmailRenderer(ctrl),
		mailer:   domain.NewMockMailer(ctrl),
		locker:   domain.NewMockLocker(ctrl),
	}

	svc := NewService(m.emails, m.trips, m.users, m.renderer, m.mailer, m.locker, nil, nil, cfg)
	svc.newToken = func() string { return "token-1" }
	svc.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }

	return svc, m
}

func defaultConfig() Config {
	return Config{
		BatchSize:       50,
		MaxAttempts:     3,
		ClaimTTL:        5 * time.Minute,
		SendTimeout:     time.Second,
		MarkSentRetries: 2,
		TripURLBase:     "https://jetlag.example.com/trips",
	}
}

func testTrip() *domain.Trip {
	return &domain.Trip{
		ID:                "trip-1",
		UserID:            "user-1",
		OriginTZ:          "America/Los_Angeles",
		DestTZ:            "Asia/Tokyo",
		DepartureDateTime: "2026-01-20T11:00:00",
		ArrivalDateTime:   "2026-01-21T16:00:00",
		Schedule: &domain.Schedule{Interventions: []domain.DaySchedule{
			{Day: 0, Date: "2026-01-20", Items: []domain.Intervention{
				{Type: domain.InterventionWakeTarget, Time: "06:00", Phase: domain.PhasePreDeparture},
			}},
		}},
	}
}

func testUser() *domain.User {
	return &domain.User{ID: "user-1", Email: "traveler@example.com", Name: "Sam", EmailNotifications: true}
}

func testRecord(id string) *domain.EmailSchedule {
	return &domain.EmailSchedule{
		ID:           id,
		TripID:       "trip-1",
		UserID:       "user-1",
		EmailType:    domain.EmailTypeFlightDay,
		ScheduledFor: time.Date(2026, 1, 20, 13, 0, 0, 0, time.UTC),
	}
}

var now = time.Date(2026, 1, 20, 13, 5, 0, 0, time.UTC)

func expectDelivery(m *mocks) {
	m.trips.EXPECT().Get(gomock.Any(), "trip-1").Return(testTrip(), nil)
	m.users.EXPECT().Get(gomock.Any(), "user-1").Return(testUser(), nil)
	m.renderer.EXPECT().
		RenderFlightDay(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, data *domain.FlightDayEmail) (*domain.RenderedEmail, error) {
			if data.DepartureDate != "2026-01-20" || len(data.Interventions) != 1 {
				return nil, errors.New("unexpected email data")
			}
			return &domain.RenderedEmail{Subject: "Your flight day", HTML: "<p>hi</p>", Text: "hi"}, nil
		})
}

func TestSweepSendsDueEmail(t *testing.T) {
	svc, m := newTestService(t, defaultConfig())

	m.emails.EXPECT().ListDue(gomock.Any(), now, 3, 50).Return([]*domain.EmailSchedule{testRecord("es-1")}, nil)
	m.emails.EXPECT().Claim(gomock.Any(), "es-1", "token-1", now, 5*time.Minute).Return(true, nil)
	expectDelivery(m)
	m.mailer.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, msg *domain.EmailMessage) (string, error) {
			if msg.To != "traveler@example.com" || msg.Subject != "Your flight day" {
				t.Errorf("unexpected message: %+v", msg)
			}
			if _, ok := ctx.Deadline(); !ok {
				t.Error("send should carry a deadline")
			}
			return "msg-1", nil
		})
	m.emails.EXPECT().MarkSent(gomock.Any(), "es-1", "token-1", now, "msg-1").Return(nil)

	resp, err := svc.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.ProcessedCount != 1 || resp.SentCount != 1 || resp.FailedCount != 0 || resp.SkippedCount != 0 {
		t.Errorf("unexpected counts: %+v", resp)
	}
	if resp.Results[0].MessageID != "msg-1" {
		t.Errorf("MessageID: got %q", resp.Results[0].MessageID)
	}
}

func TestSweepIsIdempotentAcrossRuns(t *testing.T) {
	svc, m := newTestService(t, defaultConfig())

	record := testRecord("es-1")
	m.emails.EXPECT().ListDue(gomock.Any(), now, 3, 50).Return([]*domain.EmailSchedule{record}, nil).Times(2)

	gomock.InOrder(
		m.emails.EXPECT().Claim(gomock.Any(), "es-1", gomock.Any(), now, gomock.Any()).Return(true, nil),
		m.emails.EXPECT().Claim(gomock.Any(), "es-1", gomock.Any(), now, gomock.Any()).Return(false, nil),
	)
	expectDelivery(m)
	m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return("msg-1", nil).Times(1)
	m.emails.EXPECT().MarkSent(gomock.Any(), "es-1", "token-1", now, "msg-1").Return(nil)

	first, err := svc.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	if first.SentCount != 1 {
		t.Fatalf("first sweep should send, got %+v", first)
	}

	second, err := svc.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if second.SentCount != 0 || second.SkippedCount != 1 {
		t.Errorf("second sweep should skip, got %+v", second)
	}
	if second.Results[0].SkipReason != SkipReasonClaimed {
		t.Errorf("SkipReason: got %q", second.Results[0].SkipReason)
	}
}

func TestSweepSkipsWhenPreconditionsFail(t *testing.T) {
	tests := []struct {
		name   string
		trip   func() (*domain.Trip, error)
		user   func() (*domain.User, error)
		reason string
	}{
		{
			name:   "trip deleted",
			trip:   func() (*domain.Trip, error) { return nil, domain.ErrTripNotFound },
			reason: SkipReasonTripNotFound,
		},
		{
			name: "notifications disabled",
			trip: func() (*domain.Trip, error) { return testTrip(), nil },
			user: func() (*domain.User, error) {
				u := testUser()
				u.EmailNotifications = false
				return u, nil
			},
			reason: SkipReasonNotDeliverable,
		},
		{
			name: "no address",
			trip: func() (*domain.Trip, error) { return testTrip(), nil },
			user: func() (*domain.User, error) {
				u := testUser()
				u.Email = ""
				return u, nil
			},
			reason: SkipReasonNotDeliverable,
		},
		{
			name: "schedule missing departure day",
			trip: func() (*domain.Trip, error) {
				trip := testTrip()
				trip.Schedule.Interventions[0].Date = "2026-01-19"
				return trip, nil
			},
			user:   func() (*domain.User, error) { return testUser(), nil },
			reason: SkipReasonNoInterventions,
		},
		{
			name: "departure day empty",
			trip: func() (*domain.Trip, error) {
				trip := testTrip()
				trip.Schedule.Interventions[0].Items = nil
				return trip, nil
			},
			user:   func() (*domain.User, error) { return testUser(), nil },
			reason: SkipReasonNoInterventions,
		},
		{
			name: "schedule never generated",
			trip: func() (*domain.Trip, error) {
				trip := testTrip()
				trip.Schedule = nil
				return trip, nil
			},
			user:   func() (*domain.User, error) { return testUser(), nil },
			reason: SkipReasonNoSchedule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t, defaultConfig())

			m.emails.EXPECT().ListDue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]*domain.EmailSchedule{testRecord("es-1")}, nil)
			m.emails.EXPECT().Claim(gomock.Any(), "es-1", "token-1", now, gomock.Any()).Return(true, nil)
			m.trips.EXPECT().Get(gomock.Any(), "trip-1").Return(tt.trip())
			if tt.user != nil {
				m.users.EXPECT().Get(gomock.Any(), "user-1").Return(tt.user())
			}
			m.emails.EXPECT().MarkSkipped(gomock.Any(), "es-1", "token-1", now, tt.reason).Return(nil)

			resp, err := svc.Sweep(context.Background(), now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.SkippedCount != 1 || resp.FailedCount != 0 || resp.SentCount != 0 {
				t.Errorf("unexpected counts: %+v", resp)
			}
			if resp.Results[0].SkipReason != tt.reason {
				t.Errorf("SkipReason: got %q, want %q", resp.Results[0].SkipReason, tt.reason)
			}
		})
	}
}

func TestSweepFailureDoesNotStopSiblings(t *testing.T) {
	svc, m := newTestService(t, defaultConfig())

	m.emails.EXPECT().ListDue(gomock.Any(), now, 3, 50).Return([]*domain.EmailSchedule{testRecord("es-1"), testRecord("es-2")}, nil)
	m.emails.EXPECT().Claim(gomock.Any(), gomock.Any(), "token-1", now, gomock.Any()).Return(true, nil).Times(2)
	expectDelivery(m)
	expectDelivery(m)

	gomock.InOrder(
		m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", errors.New("provider unavailable")),
		m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return("msg-2", nil),
	)
	m.emails.EXPECT().MarkFailed(gomock.Any(), "es-1", "token-1", now, gomock.Any()).Return(nil)
	m.emails.EXPECT().MarkSent(gomock.Any(), "es-2", "token-1", now, "msg-2").Return(nil)

	resp, err := svc.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.ProcessedCount != 2 || resp.SentCount != 1 || resp.FailedCount != 1 {
		t.Errorf("unexpected counts: %+v", resp)
	}
	if resp.Results[0].Error == "" {
		t.Error("failed item should carry its error")
	}
}

func TestSweepRetriesMarkSent(t *testing.T) {
	svc, m := newTestService(t, defaultConfig())

	m.emails.EXPECT().ListDue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]*domain.EmailSchedule{testRecord("es-1")}, nil)
	m.emails.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	expectDelivery(m)
	m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return("msg-1", nil)

	gomock.InOrder(
		m.emails.EXPECT().MarkSent(gomock.Any(), "es-1", "token-1", now, "msg-1").Return(errors.New("connection reset")),
		m.emails.EXPECT().MarkSent(gomock.Any(), "es-1", "token-1", now, "msg-1").Return(nil),
	)

	resp, err := svc.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.SentCount != 1 || resp.Results[0].Error != "" {
		t.Errorf("unexpected result: %+v", resp.Results[0])
	}
}

// configFromEnv builds the service config the way the entrypoints do.
func configFromEnv() Config {
	dc := config.LoadDispatchConfig()
	return Config{
		BatchSize:       dc.BatchSize,
		MaxAttempts:     dc.MaxAttempts,
		ClaimTTL:        dc.ClaimTTL,
		SendTimeout:     dc.SendTimeout,
		MarkSentRetries: dc.MarkSentRetries,
		TripURLBase:     dc.TripURLBase(),
	}
}

func TestSweepRetriesMarkSentWithLoadedDefaults(t *testing.T) {
	t.Setenv("DISPATCH_MARK_SENT_RETRIES", "")
	svc, m := newTestService(t, configFromEnv())

	m.emails.EXPECT().ListDue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]*domain.EmailSchedule{testRecord("es-1")}, nil)
	m.emails.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	expectDelivery(m)
	m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return("msg-1", nil)

	gomock.InOrder(
		m.emails.EXPECT().MarkSent(gomock.Any(), "es-1", "token-1", now, "msg-1").Return(errors.New("connection reset")),
		m.emails.EXPECT().MarkSent(gomock.Any(), "es-1", "token-1", now, "msg-1").Return(errors.New("connection reset")),
		m.emails.EXPECT().MarkSent(gomock.Any(), "es-1", "token-1", now, "msg-1").Return(nil),
	)

	resp, err := svc.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.SentCount != 1 || resp.Results[0].Error != "" {
		t.Errorf("unexpected result: %+v", resp.Results[0])
	}
}

func TestPrepareTripURL(t *testing.T) {
	t.Setenv("APP_BASE_URL", "https://jetlag.example.com/")
	svc, m := newTestService(t, configFromEnv())

	m.trips.EXPECT().Get(gomock.Any(), "trip-1").Return(testTrip(), nil)
	m.users.EXPECT().Get(gomock.Any(), "user-1").Return(testUser(), nil)

	email, reason, err := svc.prepare(context.Background(), testRecord("es-1"))
	if err != nil || reason != "" {
		t.Fatalf("unexpected result: reason %q, err %v", reason, err)
	}

	if want := "https://jetlag.example.com/trips/trip-1"; email.TripURL != want {
		t.Errorf("TripURL: got %q, want %q", email.TripURL, want)
	}
}

func TestSweepMarkSentClaimLostIsNotRetried(t *testing.T) {
	svc, m := newTestService(t, defaultConfig())

	m.emails.EXPECT().ListDue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]*domain.EmailSchedule{testRecord("es-1")}, nil)
	m.emails.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	expectDelivery(m)
	m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return("msg-1", nil)
	m.emails.EXPECT().MarkSent(gomock.Any(), "es-1", "token-1", now, "msg-1").Return(domain.ErrClaimLost).Times(1)

	resp, err := svc.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Results[0].Sent || resp.Results[0].Error == "" {
		t.Errorf("expected sent result carrying the mark error, got %+v", resp.Results[0])
	}
}

func TestSweepClaimErrorCountsAsFailed(t *testing.T) {
	svc, m := newTestService(t, defaultConfig())

	m.emails.EXPECT().ListDue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]*domain.EmailSchedule{testRecord("es-1")}, nil)
	m.emails.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))

	resp, err := svc.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.FailedCount != 1 {
		t.Errorf("FailedCount: got %d, want 1", resp.FailedCount)
	}
}

func TestSweepLeaseHeld(t *testing.T) {
	cfg := defaultConfig()
	cfg.LeaseTTL = time.Minute
	svc, m := newTestService(t, cfg)

	m.locker.EXPECT().Acquire(gomock.Any(), sweepLeaseKey, time.Minute).Return("", false, nil)

	resp, err := svc.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ProcessedCount != 0 {
		t.Errorf("ProcessedCount: got %d, want 0", resp.ProcessedCount)
	}
}

func TestSweepLeaseReleased(t *testing.T) {
	cfg := defaultConfig()
	cfg.LeaseTTL = time.Minute
	svc, m := newTestService(t, cfg)

	m.locker.EXPECT().Acquire(gomock.Any(), sweepLeaseKey, time.Minute).Return("lease-1", true, nil)
	m.emails.EXPECT().ListDue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.locker.EXPECT().Release(gomock.Any(), sweepLeaseKey, "lease-1").Return(nil)

	if _, err := svc.Sweep(context.Background(), now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSweepListError(t *testing.T) {
	svc, m := newTestService(t, defaultConfig())

	m.emails.EXPECT().ListDue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	if _, err := svc.Sweep(context.Background(), now); err == nil {
		t.Fatal("expected error")
	}
}

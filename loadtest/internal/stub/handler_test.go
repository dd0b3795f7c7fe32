package stub

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/infra/circadian"
)

func newServer(t *testing.T) (*httptest.Server, *Storage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	storage := NewStorage()
	r := gin.New()
	NewHandler(storage).Register(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, storage
}

func request() *domain.ScheduleRequest {
	return &domain.ScheduleRequest{
		OriginTZ:          "America/Los_Angeles",
		DestTZ:            "Asia/Tokyo",
		DepartureDateTime: "2026-01-20T11:00",
		ArrivalDateTime:   "2026-01-21T16:00",
		Preferences:       domain.Preferences{WakeTime: "07:00", SleepTime: "23:00"},
	}
}

func TestSynthesizedScheduleIsValid(t *testing.T) {
	srv, storage := newServer(t)

	schedule, err := circadian.NewClient(srv.URL, time.Second).Generate(context.Background(), request())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := domain.ValidateSchedule(schedule); err != nil {
		t.Errorf("synthesized schedule should validate: %v", err)
	}
	if len(schedule.Interventions) != 3 {
		t.Fatalf("expected 3 days, got %d", len(schedule.Interventions))
	}
	if got := schedule.Interventions[0].Date; got != "2026-01-20" {
		t.Errorf("expected departure date 2026-01-20, got %s", got)
	}
	if got := schedule.Interventions[2].Date; got != "2026-01-22" {
		t.Errorf("expected 2026-01-22, got %s", got)
	}

	if reqs := storage.Requests(); len(reqs) != 1 || reqs[0].DestTZ != "Asia/Tokyo" {
		t.Errorf("unexpected recorded requests: %+v", reqs)
	}
}

func TestSeededSchedule(t *testing.T) {
	srv, storage := newServer(t)

	storage.Seed(domain.Schedule{Direction: "advance", Interventions: []domain.DaySchedule{
		{Day: 0, Date: "2026-01-20", Items: []domain.Intervention{{
			Type: domain.InterventionWakeTarget, Time: "05:30", Phase: domain.PhasePreDeparture,
			OriginTZ: "America/Los_Angeles", OriginDate: "2026-01-20",
		}}},
	}})

	schedule, err := circadian.NewClient(srv.URL, time.Second).Generate(context.Background(), request())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schedule.Direction != "advance" || schedule.Interventions[0].Items[0].Time != "05:30" {
		t.Errorf("expected seeded schedule, got %+v", schedule)
	}
}

func TestFailNext(t *testing.T) {
	srv, _ := newServer(t)

	body, _ := json.Marshal(FailRequest{Count: 1, StatusCode: http.StatusServiceUnavailable})
	resp, err := http.Post(srv.URL+"/stub/fail", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("arm failure: %v", err)
	}
	resp.Body.Close()

	client := circadian.NewClient(srv.URL, time.Second)

	if _, err := client.Generate(context.Background(), request()); !errors.Is(err, domain.ErrScheduleGenerationFailed) {
		t.Errorf("expected ErrScheduleGenerationFailed, got %v", err)
	}
	if _, err := client.Generate(context.Background(), request()); err != nil {
		t.Errorf("second request should succeed, got %v", err)
	}
}

func TestReset(t *testing.T) {
	srv, storage := newServer(t)

	storage.FailNext(5, 0)
	storage.Record(*request())

	resp, err := http.Post(srv.URL+"/stub/reset", "application/json", nil)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	resp.Body.Close()

	if len(storage.Requests()) != 0 {
		t.Error("requests should be cleared")
	}
	if _, status := storage.Record(*request()); status != 0 {
		t.Errorf("failures should be cleared, got status %d", status)
	}
}

//go:build !gcloud

package taskqueue

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestPrimindRegisterDispatch(t *testing.T) {
	sendAt := time.Date(2026, 1, 20, 13, 0, 0, 0, time.UTC)

	var got emulatorTaskRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tasks/jetlag" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(emulatorTaskResponse{
			Name:         got.Task.Name,
			ScheduleTime: got.Task.ScheduleTime,
			CreateTime:   "2026-01-10T00:00:00Z",
		})
	}))
	defer srv.Close()

	client := NewPrimindTasksClient(srv.URL, "jetlag", "http://app/api/v1/notifications/dispatch", 3)
	resp, err := client.RegisterDispatch(context.Background(), &DispatchTask{
		TaskID:     TaskID("es-1", sendAt),
		ScheduleAt: sendAt,
		ScheduleID: "es-1",
		TripID:     "trip-1",
		UserID:     "user-1",
		EmailType:  "flight_day",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Name != "flight-day-es-1-1768914000" {
		t.Errorf("Name: got %q", resp.Name)
	}
	if !resp.ScheduleTime.Equal(sendAt) {
		t.Errorf("ScheduleTime: got %v", resp.ScheduleTime)
	}
	if got.Task.HTTPRequest.URL != "http://app/api/v1/notifications/dispatch" {
		t.Errorf("target URL: got %q", got.Task.HTTPRequest.URL)
	}

	body, err := base64.StdEncoding.DecodeString(got.Task.HTTPRequest.Body)
	if err != nil {
		t.Fatalf("body is not base64: %v", err)
	}
	var payload map[string]string
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload["schedule_id"] != "es-1" || payload["trip_id"] != "trip-1" {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestPrimindRegisterDispatchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(emulatorTaskResponse{Name: "t"})
	}))
	defer srv.Close()

	client := NewPrimindTasksClient(srv.URL, "default", "", 3)
	if _, err := client.RegisterDispatch(context.Background(), &DispatchTask{TaskID: "t"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestPrimindRegisterDispatchDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewPrimindTasksClient(srv.URL, "default", "", 3)
	if _, err := client.RegisterDispatch(context.Background(), &DispatchTask{TaskID: "t"}); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", calls.Load())
	}
}

func TestPrimindDeleteTaskNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/tasks/missing" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewPrimindTasksClient(srv.URL, "default", "", 3)
	if err := client.DeleteTask(context.Background(), "missing"); err != nil {
		t.Errorf("not found should count as deleted, got %v", err)
	}
}

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func TestCheckWithoutDependencies(t *testing.T) {
	status := NewChecker(nil, nil, "v1.2.3").Check(context.Background())

	if status.Status != StatusHealthy {
		t.Errorf("expected healthy, got %s", status.Status)
	}
	if status.Version != "v1.2.3" {
		t.Errorf("expected version v1.2.3, got %s", status.Version)
	}
	if len(status.Checks) != 0 {
		t.Errorf("expected no checks, got %v", status.Checks)
	}
}

func TestReadyHandlerUnreachableRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer func() { _ = client.Close() }()

	r := gin.New()
	r.GET("/health/ready", NewChecker(client, nil, "dev").ReadyHandler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}

	var body HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Checks["redis"].Status != StatusUnhealthy || body.Checks["redis"].Error == "" {
		t.Errorf("unexpected redis check: %+v", body.Checks["redis"])
	}
}

func TestLiveHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/health/live", NewChecker(nil, nil, "dev").LiveHandler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

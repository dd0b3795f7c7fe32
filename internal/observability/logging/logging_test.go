package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestHandlerAddsContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, HandlerConfig{
		Service:       ServiceInfo{Name: "jetlag", Version: "test"},
		Environment:   EnvDev,
		DefaultModule: Module("jetlag"),
	}))

	ctx := WithRequestID(context.Background(), "req-12345678")
	ctx = WithJob(ctx, "dispatch")
	logger.InfoContext(ctx, "hello", slog.String("event", "test"))

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}

	if got["request_id"] != "req-12345678" {
		t.Errorf("request_id: got %v", got["request_id"])
	}
	if got["module"] != "jetlag" {
		t.Errorf("module: got %v", got["module"])
	}
	if got["job"] != "dispatch" {
		t.Errorf("job: got %v", got["job"])
	}
	service, ok := got["service"].(map[string]any)
	if !ok || service["name"] != "jetlag" {
		t.Errorf("service: got %v", got["service"])
	}
}

func TestHandlerModuleOverride(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, HandlerConfig{DefaultModule: Module("jetlag")}))

	logger.InfoContext(WithModule(context.Background(), Module("calendar")), "hello")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if got["module"] != "calendar" {
		t.Errorf("module: got %v", got["module"])
	}
}

func TestValidateAndExtractRequestID(t *testing.T) {
	if got := ValidateAndExtractRequestID("abc-12345"); got != "abc-12345" {
		t.Errorf("valid id replaced: %s", got)
	}

	for _, bad := range []string{"", "short", "has space in it", "semi;colon-value"} {
		got := ValidateAndExtractRequestID(bad)
		if got == bad || len(got) != 36 {
			t.Errorf("ValidateAndExtractRequestID(%q) = %q, want fresh uuid", bad, got)
		}
	}
}

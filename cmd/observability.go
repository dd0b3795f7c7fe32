package main

import (
	"context"
	"os"
	"strconv"

	"github.com/KasumiMercury/primind-jetlag/internal/observability"
	"github.com/KasumiMercury/primind-jetlag/internal/observability/logging"
)

const samplingRateEnv = "TRACE_SAMPLING_RATE"

// runtimeInfo describes where the process runs. Each platform file fills it
// in from its own environment.
type runtimeInfo struct {
	serviceName  string
	revision     string
	projectID    string
	defaultEnv   logging.Environment
	samplingRate float64
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	info := currentRuntime()

	env := info.defaultEnv
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	rate := info.samplingRate
	if raw := os.Getenv(samplingRateEnv); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed >= 0 && parsed <= 1 {
			rate = parsed
		}
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     info.serviceName,
			Version:  Version,
			Revision: info.revision,
		},
		Environment:   env,
		GCPProjectID:  info.projectID,
		SamplingRate:  rate,
		DefaultModule: serviceModule,
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

//go:build !gcloud

package main

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-jetlag/internal/config"
	"github.com/KasumiMercury/primind-jetlag/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-jetlag/internal/observability/logging"
)

func currentRuntime() runtimeInfo {
	return runtimeInfo{
		serviceName:  envOr("SERVICE_NAME", "jetlag"),
		defaultEnv:   logging.EnvDev,
		samplingRate: 1.0,
	}
}

// initTaskQueue returns a nil queue when no emulator is configured; emails
// then go out through the dispatch cron or a manual sweep.
func initTaskQueue(_ context.Context, cfg *config.Config) (taskqueue.TaskQueue, func() error, error) {
	if cfg.TaskQueue.PrimindTasksURL == "" {
		slog.Warn("PRIMIND_TASKS_URL not set, delayed dispatch tasks disabled")
		return nil, nil, nil
	}

	slog.Info("task queue initialized",
		slog.String("type", "tasks_emulator"),
		slog.String("url", cfg.TaskQueue.PrimindTasksURL),
		slog.String("queue", cfg.TaskQueue.QueueName),
		slog.String("target", cfg.TaskQueue.TargetURL),
	)

	return taskqueue.NewPrimindTasksClient(
		cfg.TaskQueue.PrimindTasksURL,
		cfg.TaskQueue.QueueName,
		cfg.TaskQueue.TargetURL,
		cfg.TaskQueue.MaxRetries,
	), nil, nil
}

//go:build gcloud

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
		serviceName:  envOr("K_SERVICE", "jetlag"),
		revision:     envOr("K_REVISION", ""),
		projectID:    envOr("GOOGLE_CLOUD_PROJECT", envOr("GCLOUD_PROJECT_ID", "")),
		defaultEnv:   logging.EnvProd,
		samplingRate: 0.1,
	}
}

func initTaskQueue(ctx context.Context, cfg *config.Config) (taskqueue.TaskQueue, func() error, error) {
	client, err := taskqueue.NewCloudTasksClient(ctx, taskqueue.CloudTasksConfig{
		ProjectID:           cfg.TaskQueue.GCloudProjectID,
		LocationID:          cfg.TaskQueue.GCloudLocationID,
		QueueID:             cfg.TaskQueue.GCloudQueueID,
		TargetURL:           cfg.TaskQueue.TargetURL,
		ServiceAccountEmail: cfg.TaskQueue.GCloudServiceAccountEmail,
		MaxRetries:          cfg.TaskQueue.MaxRetries,
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("task queue initialized",
		slog.String("type", "cloud_tasks"),
		slog.String("project", cfg.TaskQueue.GCloudProjectID),
		slog.String("location", cfg.TaskQueue.GCloudLocationID),
		slog.String("queue", cfg.TaskQueue.GCloudQueueID),
	)

	return client, client.Close, nil
}

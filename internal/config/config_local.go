//go:build !gcloud

package config

import (
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// loadDotEnv reads .env into the environment without overriding variables
// that are already set.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", slog.String("error", err.Error()))
	}
}

func (c *TaskQueueConfig) Validate() error {
	if c.PrimindTasksURL != "" && c.TargetURL == "" {
		return ErrTaskTargetMissing
	}
	return nil
}

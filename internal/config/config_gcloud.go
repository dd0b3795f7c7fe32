//go:build gcloud

package config

import (
	"errors"
	"fmt"
)

// Cloud Run injects configuration directly; there is no .env to read.
func loadDotEnv() {}

func (c *TaskQueueConfig) Validate() error {
	required := []struct {
		value string
		err   error
	}{
		{c.GCloudProjectID, errors.New("GCLOUD_PROJECT_ID is required")},
		{c.GCloudLocationID, errors.New("GCLOUD_LOCATION_ID is required")},
		{c.GCloudQueueID, errors.New("GCLOUD_QUEUE_ID is required")},
		{c.TargetURL, ErrTaskTargetMissing},
	}

	var errs []error
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, r.err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("task queue configuration errors: %w", errors.Join(errs...))
	}

	return nil
}

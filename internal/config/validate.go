package config

import (
	"errors"
	"fmt"
)

// ValidateForRun checks everything the server needs before it starts.
func ValidateForRun(cfg *Config) error {
	var errs []error

	if cfg.CircadianURL == "" {
		errs = append(errs, ErrCircadianURLMissing)
	}
	if err := cfg.Database.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Redis.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Calendar.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Mail.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %w", errors.Join(errs...))
	}
	return nil
}

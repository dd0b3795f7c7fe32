package domain

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/KasumiMercury/primind-jetlag/internal/tz"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			_, _, err := tz.ParseClock(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("iana_tz", func(fl validator.FieldLevel) bool {
			_, err := tz.LoadLocation(fl.Field().String())
			return err == nil
		})

		v.RegisterStructValidation(interventionStructLevel, Intervention{})

		validate = v
	})

	return validate
}

// Exactly one timing field must be usable: a clock time, or a flight offset
// for items in transit.
func interventionStructLevel(sl validator.StructLevel) {
	i := sl.Current().Interface().(Intervention)

	if i.Time != "" {
		return
	}
	if i.FlightOffsetHours != nil && i.Phase == PhaseInTransit {
		return
	}

	sl.ReportError(i.Time, "Time", "time", "time_or_flight_offset", "")
}

// ValidateSchedule checks model output at the boundary.
func ValidateSchedule(s *Schedule) error {
	if s == nil {
		return fmt.Errorf("%w: empty schedule", ErrInvalidSchedule)
	}

	if err := validatorInstance().Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSchedule, err)
	}

	return nil
}

// ValidateStruct validates request payloads that carry validate tags.
func ValidateStruct(v any) error {
	if err := validatorInstance().Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			errs := make([]error, 0, len(verrs))
			for _, fe := range verrs {
				errs = append(errs, fmt.Errorf("%s failed on %s", fe.Namespace(), fe.Tag()))
			}
			return errors.Join(errs...)
		}
		return err
	}

	return nil
}

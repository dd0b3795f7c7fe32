// Package trip handles trip intake and schedule (re)generation.
package trip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/service/emailschedule"
)

type CreateRequest struct {
	OriginTZ          string             `json:"origin_tz" validate:"required,iana_tz"`
	DestTZ            string             `json:"dest_tz" validate:"required,iana_tz"`
	DepartureDateTime string             `json:"departure_datetime" validate:"required"`
	ArrivalDateTime   string             `json:"arrival_datetime" validate:"required"`
	Preferences       domain.Preferences `json:"preferences"`
}

type Service struct {
	trips     domain.TripRepository
	generator domain.ScheduleGenerator
	emails    *emailschedule.Service
	now       func() time.Time
}

func NewService(trips domain.TripRepository, generator domain.ScheduleGenerator, emails *emailschedule.Service) *Service {
	return &Service{
		trips:     trips,
		generator: generator,
		emails:    emails,
		now:       time.Now,
	}
}

// Create validates the trip, generates its schedule and stores both. Nothing
// is stored when generation fails.
func (s *Service) Create(ctx context.Context, userID string, req *CreateRequest) (*domain.Trip, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	trip := &domain.Trip{
		ID:                uuid.NewString(),
		UserID:            userID,
		OriginTZ:          req.OriginTZ,
		DestTZ:            req.DestTZ,
		DepartureDateTime: req.DepartureDateTime,
		ArrivalDateTime:   req.ArrivalDateTime,
		Preferences:       req.Preferences,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	schedule, err := s.generate(ctx, trip)
	if err != nil {
		return nil, err
	}
	trip.Schedule = schedule

	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("save trip: %w", err)
	}

	slog.InfoContext(ctx, "trip created",
		slog.String("event", "trip.create"),
		slog.String("trip_id", trip.ID),
		slog.String("origin_tz", trip.OriginTZ),
		slog.String("dest_tz", trip.DestTZ),
		slog.Int("days", len(schedule.Interventions)),
	)

	s.scheduleEmail(ctx, trip)

	return trip, nil
}

// Regenerate re-runs the model for an existing trip, optionally with new
// preferences, and reschedules its email.
func (s *Service) Regenerate(ctx context.Context, tripID, userID string, prefs *domain.Preferences) (*domain.Trip, error) {
	trip, err := s.Get(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	if prefs != nil {
		if err := domain.ValidateStruct(prefs); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidTrip, err)
		}
		trip.Preferences = *prefs
	}

	schedule, err := s.generate(ctx, trip)
	if err != nil {
		return nil, err
	}
	trip.Schedule = schedule
	trip.UpdatedAt = s.now()

	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, fmt.Errorf("save trip: %w", err)
	}

	slog.InfoContext(ctx, "trip schedule regenerated",
		slog.String("event", "trip.regenerate"),
		slog.String("trip_id", trip.ID),
		slog.Int("days", len(schedule.Interventions)),
	)

	s.scheduleEmail(ctx, trip)

	return trip, nil
}

// Get returns the trip if it belongs to userID.
func (s *Service) Get(ctx context.Context, tripID, userID string) (*domain.Trip, error) {
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.UserID != userID {
		return nil, domain.ErrTripNotFound
	}
	return trip, nil
}

func (s *Service) generate(ctx context.Context, trip *domain.Trip) (*domain.Schedule, error) {
	schedule, err := s.generator.Generate(ctx, &domain.ScheduleRequest{
		OriginTZ:          trip.OriginTZ,
		DestTZ:            trip.DestTZ,
		DepartureDateTime: trip.DepartureDateTime,
		ArrivalDateTime:   trip.ArrivalDateTime,
		Preferences:       trip.Preferences,
	})
	if err != nil {
		slog.ErrorContext(ctx, "schedule generation failed",
			slog.String("trip_id", trip.ID),
			slog.String("error", err.Error()),
		)
		if errors.Is(err, domain.ErrScheduleGenerationFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrScheduleGenerationFailed, err)
	}

	if err := domain.ValidateSchedule(schedule); err != nil {
		slog.ErrorContext(ctx, "schedule generator returned an invalid schedule",
			slog.String("trip_id", trip.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrScheduleGenerationFailed, err)
	}

	return schedule, nil
}

// scheduleEmail is best effort; the trip is already stored.
func (s *Service) scheduleEmail(ctx context.Context, trip *domain.Trip) {
	if s.emails == nil {
		return
	}

	if _, err := s.emails.Schedule(ctx, trip); err != nil {
		slog.WarnContext(ctx, "failed to schedule flight-day email",
			slog.String("event", "trip.email.fail"),
			slog.String("trip_id", trip.ID),
			slog.String("error", err.Error()),
		)
	}
}

func validateRequest(req *CreateRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", domain.ErrInvalidTrip)
	}

	if err := domain.ValidateStruct(req); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidTrip, err)
	}

	trip := domain.Trip{
		OriginTZ:          req.OriginTZ,
		DestTZ:            req.DestTZ,
		DepartureDateTime: req.DepartureDateTime,
		ArrivalDateTime:   req.ArrivalDateTime,
	}

	departure, err := trip.DepartureInstant()
	if err != nil {
		return fmt.Errorf("%w: departure: %w", domain.ErrInvalidTrip, err)
	}
	arrival, err := trip.ArrivalInstant()
	if err != nil {
		return fmt.Errorf("%w: arrival: %w", domain.ErrInvalidTrip, err)
	}
	if !arrival.After(departure) {
		return fmt.Errorf("%w: arrival must be after departure", domain.ErrInvalidTrip)
	}

	return nil
}

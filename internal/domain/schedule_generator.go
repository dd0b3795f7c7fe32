package domain

import "context"

//go:generate mockgen -source=schedule_generator.go -destination=schedule_generator_mock.go -package=domain

type ScheduleRequest struct {
	OriginTZ          string      `json:"origin_tz"`
	DestTZ            string      `json:"dest_tz"`
	DepartureDateTime string      `json:"departure_datetime"`
	ArrivalDateTime   string      `json:"arrival_datetime"`
	Preferences       Preferences `json:"preferences"`
}

// ScheduleGenerator runs the circadian model. Failures wrap
// ErrScheduleGenerationFailed.
type ScheduleGenerator interface {
	Generate(ctx context.Context, req *ScheduleRequest) (*Schedule, error)
}

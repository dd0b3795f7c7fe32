package domain

import "context"

//go:generate mockgen -source=notification.go -destination=notification_mock.go -package=domain

// FlightDayEmail is the data a flight-day email is rendered from.
type FlightDayEmail struct {
	To                string
	UserName          string
	TripID            string
	OriginTZ          string
	DestTZ            string
	DepartureDateTime string
	DepartureDate     string
	IsNightBefore     bool
	Interventions     []Intervention
	TripURL           string
}

type RenderedEmail struct {
	Subject string
	HTML    string
	Text    string
}

type EmailMessage struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type EmailRenderer interface {
	RenderFlightDay(ctx context.Context, data *FlightDayEmail) (*RenderedEmail, error)
}

// Mailer delivers one message and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, msg *EmailMessage) (string, error)
}

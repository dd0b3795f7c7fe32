package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

const (
	flightDayHTML = "flight_day.html"
	flightDayText = "flight_day.txt"

	subjectNightBefore = "Tomorrow's flight: your jet lag plan"
	subjectDayOf       = "Today's flight: your jet lag plan"
)

var templateFuncs = map[string]any{
	"title": interventionTitle,
	"clock": interventionClock,
}

type renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses the embedded templates once.
func NewRenderer() (domain.EmailRenderer, error) {
	html, err := htmltemplate.New(flightDayHTML).Funcs(templateFuncs).ParseFS(templateFS, "templates/"+flightDayHTML)
	if err != nil {
		return nil, fmt.Errorf("parse html template: %w", err)
	}

	text, err := texttemplate.New(flightDayText).Funcs(templateFuncs).ParseFS(templateFS, "templates/"+flightDayText)
	if err != nil {
		return nil, fmt.Errorf("parse text template: %w", err)
	}

	return &renderer{html: html, text: text}, nil
}

func (r *renderer) RenderFlightDay(_ context.Context, data *domain.FlightDayEmail) (*domain.RenderedEmail, error) {
	var html, text bytes.Buffer

	if err := r.html.ExecuteTemplate(&html, flightDayHTML, data); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	if err := r.text.ExecuteTemplate(&text, flightDayText, data); err != nil {
		return nil, fmt.Errorf("render text: %w", err)
	}

	subject := subjectDayOf
	if data.IsNightBefore {
		subject = subjectNightBefore
	}

	return &domain.RenderedEmail{
		Subject: subject,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

func interventionTitle(i domain.Intervention) string {
	if i.Title != "" {
		return i.Title
	}
	name := strings.ReplaceAll(i.Type.String(), "_", " ")
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func interventionClock(i domain.Intervention) string {
	if i.Time != "" {
		return i.Time
	}
	if i.FlightOffsetHours != nil {
		return fmt.Sprintf("+%.1fh", *i.FlightOffsetHours)
	}
	return "--:--"
}

package mailer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

type logMailer struct{}

// NewLogMailer returns a Mailer that only logs messages. It is used when no
// email provider is configured.
func NewLogMailer() domain.Mailer {
	return &logMailer{}
}

func (m *logMailer) Send(ctx context.Context, msg *domain.EmailMessage) (string, error) {
	id := "log-" + uuid.NewString()

	slog.InfoContext(ctx, "email not delivered, no provider configured",
		slog.String("event", "email.log"),
		slog.String("message_id", id),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)

	return id, nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-jetlag/internal/config"
	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/infra/mailer"
	"github.com/KasumiMercury/primind-jetlag/internal/infra/repository"
	"github.com/KasumiMercury/primind-jetlag/internal/service/dispatch"
)

func newDispatchCmd() *cobra.Command {
	var now string

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Run one flight-day email sweep against the configured database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			at := time.Now()
			if now != "" {
				parsed, err := time.Parse(time.RFC3339, now)
				if err != nil {
					return fmt.Errorf("invalid --now, expected RFC3339: %w", err)
				}
				at = parsed
			}
			return runDispatch(cmd.Context(), cmd.OutOrStdout(), at)
		},
	}
	cmd.Flags().StringVar(&now, "now", "", "Virtual current time (RFC3339)")

	return cmd
}

func runDispatch(ctx context.Context, w io.Writer, now time.Time) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Mail.Validate(); err != nil {
		return err
	}

	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = repository.Close(db) }()

	renderer, err := mailer.NewRenderer()
	if err != nil {
		return err
	}

	var sender domain.Mailer = mailer.NewLogMailer()
	if cfg.Mail.Provider == config.MailProviderResend {
		sender = mailer.NewResendMailer(mailer.ResendConfig{
			APIKey:  cfg.Mail.ResendAPIKey,
			From:    cfg.Mail.From,
			BaseURL: cfg.Mail.ResendBaseURL,
			Timeout: cfg.Mail.Timeout,
		})
	}

	// Claims keep this sweep apart from any running server, so no lease is taken.
	svc := dispatch.NewService(
		repository.NewEmailScheduleRepository(db),
		repository.NewTripRepository(db),
		repository.NewUserRepository(db),
		renderer,
		sender,
		nil,
		nil,
		nil,
		dispatch.Config{
			BatchSize:       cfg.Dispatch.BatchSize,
			MaxAttempts:     cfg.Dispatch.MaxAttempts,
			ClaimTTL:        cfg.Dispatch.ClaimTTL,
			SendTimeout:     cfg.Dispatch.SendTimeout,
			MarkSentRetries: cfg.Dispatch.MarkSentRetries,
			TripURLBase:     cfg.Dispatch.TripURLBase(),
		},
	)

	resp, err := svc.Sweep(ctx, now)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := openDB(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer func() { _ = repository.Close(db) }()

			if err := repository.Migrate(cmd.Context(), db); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func openDB(ctx context.Context, cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return repository.Open(ctx, repository.Options{
		DSN:                cfg.DSN,
		MaxOpenConns:       2,
		MaxIdleConns:       1,
		SlowQueryThreshold: cfg.SlowQueryThreshold,
		Logger:             slog.Default(),
	})
}

// Package dispatch sends due flight-day emails exactly once per schedule
// record, even when sweeps overlap.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/observability/metrics"
	"github.com/KasumiMercury/primind-jetlag/internal/observability/tracing"
)

const sweepLeaseKey = "jetlag:dispatch:sweep"

type Config struct {
	BatchSize   int
	MaxAttempts int
	// ClaimTTL bounds how long a crashed sweep keeps a record away from others.
	ClaimTTL        time.Duration
	SendTimeout     time.Duration
	MarkSentRetries uint64
	// LeaseTTL is zero when overlapping sweeps should rely on claims alone.
	LeaseTTL    time.Duration
	TripURLBase string
}

type Service struct {
	emails          domain.EmailScheduleRepository
	trips           domain.TripRepository
	users           domain.UserRepository
	renderer        domain.EmailRenderer
	mailer          domain.Mailer
	locker          domain.Locker
	recorder        domain.SweepRecorder
	dispatchMetrics *metrics.DispatchMetrics
	cfg             Config

	newToken   func() string
	newBackOff func() backoff.BackOff
}

func NewService(
	emails domain.EmailScheduleRepository,
	trips domain.TripRepository,
	users domain.UserRepository,
	renderer domain.EmailRenderer,
	mailer domain.Mailer,
	locker domain.Locker,
	recorder domain.SweepRecorder,
	dispatchMetrics *metrics.DispatchMetrics,
	cfg Config,
) *Service {
	return &Service{
		emails:          emails,
		trips:           trips,
		users:           users,
		renderer:        renderer,
		mailer:          mailer,
		locker:          locker,
		recorder:        recorder,
		dispatchMetrics: dispatchMetrics,
		cfg:             cfg,
		newToken:        uuid.NewString,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
	}
}

// Sweep processes up to BatchSize due records, oldest first. Each record is
// claimed before anything else happens; a record another sweep holds or has
// already finished is reported as skipped. Failures are recorded per record
// and never stop the sweep.
func (s *Service) Sweep(ctx context.Context, now time.Time) (*Response, error) {
	start := time.Now()
	runID := uuid.NewString()

	ctx, span := tracing.StartDispatchSweepSpan(ctx, now, s.cfg.BatchSize)
	defer span.End()

	resp := &Response{RunID: runID, Results: make([]ResultItem, 0)}

	if s.locker != nil && s.cfg.LeaseTTL > 0 {
		leaseToken, ok, err := s.locker.Acquire(ctx, sweepLeaseKey, s.cfg.LeaseTTL)
		if err != nil {
			// Claims still keep sends exactly-once without the lease.
			slog.WarnContext(ctx, "failed to acquire sweep lease, continuing",
				slog.String("run_id", runID),
				slog.String("error", err.Error()),
			)
		} else if !ok {
			slog.InfoContext(ctx, "another sweep is running",
				slog.String("event", "dispatch.sweep.lease_held"),
				slog.String("run_id", runID),
			)
			tracing.RecordDispatchSweepResult(span, 0, 0, 0, 0, nil)
			return resp, nil
		} else {
			defer func() {
				if err := s.locker.Release(context.WithoutCancel(ctx), sweepLeaseKey, leaseToken); err != nil {
					slog.WarnContext(ctx, "failed to release sweep lease",
						slog.String("run_id", runID),
						slog.String("error", err.Error()),
					)
				}
			}()
		}
	}

	due, err := s.emails.ListDue(ctx, now, s.cfg.MaxAttempts, s.cfg.BatchSize)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list due email schedules",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		tracing.RecordDispatchSweepResult(span, 0, 0, 0, 0, err)
		return nil, fmt.Errorf("list due email schedules: %w", err)
	}

	slog.InfoContext(ctx, "dispatch sweep started",
		slog.String("event", "dispatch.sweep.start"),
		slog.String("run_id", runID),
		slog.Time("now", now),
		slog.Int("due_count", len(due)),
	)

	for _, record := range due {
		result := s.process(ctx, record, now)
		resp.Results = append(resp.Results, result)
		resp.ProcessedCount++

		outcome := "failed"
		switch {
		case result.Sent:
			resp.SentCount++
			outcome = "sent"
		case result.Skipped:
			resp.SkippedCount++
			outcome = "skipped"
		default:
			resp.FailedCount++
		}

		if s.dispatchMetrics != nil {
			s.dispatchMetrics.RecordEmailProcessed(ctx, string(record.EmailType), outcome)
		}
	}

	duration := time.Since(start)
	if s.dispatchMetrics != nil {
		s.dispatchMetrics.RecordSweepDuration(ctx, duration)
	}

	if s.recorder != nil {
		if err := s.recorder.RecordDispatchSweep(ctx, domain.DispatchSweepRecord{
			RunID:     runID,
			SweptAt:   now,
			Processed: resp.ProcessedCount,
			Sent:      resp.SentCount,
			Failed:    resp.FailedCount,
			Skipped:   resp.SkippedCount,
			Duration:  duration,
		}); err != nil {
			slog.WarnContext(ctx, "failed to record dispatch sweep",
				slog.String("run_id", runID),
				slog.String("error", err.Error()),
			)
		}
	}

	tracing.RecordDispatchSweepResult(span, resp.ProcessedCount, resp.SentCount, resp.FailedCount, resp.SkippedCount, nil)

	slog.InfoContext(ctx, "dispatch sweep completed",
		slog.String("event", "dispatch.sweep.complete"),
		slog.String("run_id", runID),
		slog.Int("processed", resp.ProcessedCount),
		slog.Int("sent", resp.SentCount),
		slog.Int("failed", resp.FailedCount),
		slog.Int("skipped", resp.SkippedCount),
		slog.Int64("duration_ms", duration.Milliseconds()),
	)

	return resp, nil
}

func (s *Service) process(ctx context.Context, record *domain.EmailSchedule, now time.Time) ResultItem {
	result := ResultItem{
		ScheduleID:    record.ID,
		TripID:        record.TripID,
		UserID:        record.UserID,
		ScheduledFor:  record.ScheduledFor,
		IsNightBefore: record.IsNightBefore,
	}

	ctx, span := tracing.StartEmailSendSpan(ctx, record.ID, record.TripID, record.IsNightBefore)
	defer span.End()

	token := s.newToken()
	claimed, err := s.emails.Claim(ctx, record.ID, token, now, s.cfg.ClaimTTL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to claim email schedule",
			slog.String("schedule_id", record.ID),
			slog.String("error", err.Error()),
		)
		result.Error = err.Error()
		tracing.RecordError(span, err)
		return result
	}
	if !claimed {
		slog.DebugContext(ctx, "email schedule not claimable",
			slog.String("schedule_id", record.ID),
		)
		result.Skipped = true
		result.SkipReason = SkipReasonClaimed
		return result
	}

	email, reason, err := s.prepare(ctx, record)
	if err != nil {
		s.fail(ctx, record, token, now, err, &result)
		tracing.RecordError(span, err)
		return result
	}
	if reason != "" {
		s.skip(ctx, record, token, now, reason, &result)
		return result
	}

	rendered, err := s.renderer.RenderFlightDay(ctx, email)
	if err != nil {
		err = fmt.Errorf("render flight-day email: %w", err)
		s.fail(ctx, record, token, now, err, &result)
		tracing.RecordError(span, err)
		return result
	}

	messageID, err := s.send(ctx, &domain.EmailMessage{
		To:      email.To,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
	})
	if err != nil {
		s.fail(ctx, record, token, now, err, &result)
		tracing.RecordError(span, err)
		return result
	}

	result.Sent = true
	result.MessageID = messageID

	if err := s.markSent(ctx, record.ID, token, now, messageID); err != nil {
		// The email is out; the claim expiring after ClaimTTL may cause a resend.
		slog.ErrorContext(ctx, "failed to mark email schedule sent",
			slog.String("event", "dispatch.mark_sent.fail"),
			slog.String("schedule_id", record.ID),
			slog.String("message_id", messageID),
			slog.String("error", err.Error()),
		)
		result.Error = err.Error()
	}

	slog.InfoContext(ctx, "flight-day email sent",
		slog.String("event", "dispatch.email.sent"),
		slog.String("schedule_id", record.ID),
		slog.String("trip_id", record.TripID),
		slog.String("message_id", messageID),
		slog.Bool("night_before", record.IsNightBefore),
	)
	tracing.RecordError(span, nil)

	return result
}

// prepare re-checks everything the email depends on. A non-empty reason means
// the record should be skipped rather than failed.
func (s *Service) prepare(ctx context.Context, record *domain.EmailSchedule) (*domain.FlightDayEmail, string, error) {
	trip, err := s.trips.Get(ctx, record.TripID)
	if err != nil {
		if errors.Is(err, domain.ErrTripNotFound) {
			return nil, SkipReasonTripNotFound, nil
		}
		return nil, "", fmt.Errorf("load trip: %w", err)
	}

	user, err := s.users.Get(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, SkipReasonUserNotFound, nil
		}
		return nil, "", fmt.Errorf("load user: %w", err)
	}

	if !user.CanReceiveEmail() {
		return nil, SkipReasonNotDeliverable, nil
	}

	if trip.Schedule == nil {
		return nil, SkipReasonNoSchedule, nil
	}

	departureDate, err := trip.DepartureDate()
	if err != nil {
		return nil, "", fmt.Errorf("resolve departure date: %w", err)
	}

	day, ok := trip.Schedule.Day(departureDate)
	if !ok || len(day.Items) == 0 {
		return nil, SkipReasonNoInterventions, nil
	}

	tripURL := ""
	if s.cfg.TripURLBase != "" {
		tripURL = s.cfg.TripURLBase + "/" + trip.ID
	}

	return &domain.FlightDayEmail{
		To:                user.Email,
		UserName:          user.Name,
		TripID:            trip.ID,
		OriginTZ:          trip.OriginTZ,
		DestTZ:            trip.DestTZ,
		DepartureDateTime: trip.DepartureDateTime,
		DepartureDate:     departureDate,
		IsNightBefore:     record.IsNightBefore,
		Interventions:     day.Items,
		TripURL:           tripURL,
	}, "", nil
}

func (s *Service) send(ctx context.Context, msg *domain.EmailMessage) (string, error) {
	sendCtx := ctx
	if s.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.cfg.SendTimeout)
		defer cancel()
	}

	start := time.Now()
	messageID, err := s.mailer.Send(sendCtx, msg)
	if s.dispatchMetrics != nil {
		s.dispatchMetrics.RecordSendDuration(ctx, time.Since(start))
	}
	if err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}

	return messageID, nil
}

// markSent retries transient write failures. A lost claim is final.
func (s *Service) markSent(ctx context.Context, id, token string, at time.Time, messageID string) error {
	b := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.cfg.MarkSentRetries), ctx)

	return backoff.RetryNotify(func() error {
		err := s.emails.MarkSent(ctx, id, token, at, messageID)
		if errors.Is(err, domain.ErrClaimLost) {
			return backoff.Permanent(err)
		}
		return err
	}, b, func(err error, wait time.Duration) {
		slog.WarnContext(ctx, "retrying mark sent",
			slog.String("schedule_id", id),
			slog.Duration("wait", wait),
			slog.String("error", err.Error()),
		)
		if s.dispatchMetrics != nil {
			s.dispatchMetrics.RecordMarkSentRetry(ctx)
		}
	})
}

func (s *Service) fail(ctx context.Context, record *domain.EmailSchedule, token string, now time.Time, cause error, result *ResultItem) {
	slog.WarnContext(ctx, "flight-day email failed",
		slog.String("event", "dispatch.email.fail"),
		slog.String("schedule_id", record.ID),
		slog.String("trip_id", record.TripID),
		slog.Int("attempt", record.Attempts+1),
		slog.String("error", cause.Error()),
	)

	result.Error = cause.Error()

	if err := s.emails.MarkFailed(ctx, record.ID, token, now, cause.Error()); err != nil {
		slog.ErrorContext(ctx, "failed to mark email schedule failed",
			slog.String("schedule_id", record.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) skip(ctx context.Context, record *domain.EmailSchedule, token string, now time.Time, reason string, result *ResultItem) {
	slog.InfoContext(ctx, "flight-day email skipped",
		slog.String("event", "dispatch.email.skip"),
		slog.String("schedule_id", record.ID),
		slog.String("trip_id", record.TripID),
		slog.String("reason", reason),
	)

	result.Skipped = true
	result.SkipReason = reason

	if err := s.emails.MarkSkipped(ctx, record.ID, token, now, reason); err != nil {
		slog.ErrorContext(ctx, "failed to mark email schedule skipped",
			slog.String("schedule_id", record.ID),
			slog.String("error", err.Error()),
		)
	}
}

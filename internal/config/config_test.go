package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		portEnv, logLevelEnv, circadianURLEnv, databaseURLEnv, dispatchBatchSizeEnv,
		dispatchClaimTTLEnv, dispatchCronEnv, dispatchMarkSentEnv, googleCalendarIDEnv, calendarRateEnv,
		mailProviderEnv, mailFromEnv, redisAddrEnv, redisDBEnv,
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Errorf("expected port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
	if cfg.Dispatch.BatchSize != defaultDispatchBatchSize || cfg.Dispatch.ClaimTTL != defaultDispatchClaimTTL {
		t.Errorf("unexpected dispatch defaults: %+v", cfg.Dispatch)
	}
	if cfg.Dispatch.MarkSentRetries != defaultDispatchMarkSent {
		t.Errorf("expected %d mark-sent retries, got %d", defaultDispatchMarkSent, cfg.Dispatch.MarkSentRetries)
	}
	if cfg.Dispatch.CronSpec != "" {
		t.Errorf("cron should be disabled by default, got %q", cfg.Dispatch.CronSpec)
	}
	if cfg.Calendar.CalendarID != defaultCalendarID || cfg.Calendar.RequestsPerSecond != defaultCalendarRate {
		t.Errorf("unexpected calendar defaults: %+v", cfg.Calendar)
	}
	if cfg.Mail.Provider != MailProviderLog {
		t.Errorf("expected log mail provider, got %s", cfg.Mail.Provider)
	}
	if cfg.Redis.Addr != defaultRedisAddr {
		t.Errorf("expected redis addr %s, got %s", defaultRedisAddr, cfg.Redis.Addr)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv(dispatchBatchSizeEnv, "-4")
	t.Setenv(dispatchClaimTTLEnv, "soon")
	t.Setenv(dispatchMarkSentEnv, "-1")
	t.Setenv(calendarRateEnv, "fast")
	t.Setenv(logLevelEnv, "loud")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Dispatch.BatchSize != defaultDispatchBatchSize {
		t.Errorf("expected default batch size, got %d", cfg.Dispatch.BatchSize)
	}
	if cfg.Dispatch.ClaimTTL != defaultDispatchClaimTTL {
		t.Errorf("expected default claim ttl, got %v", cfg.Dispatch.ClaimTTL)
	}
	if cfg.Dispatch.MarkSentRetries != defaultDispatchMarkSent {
		t.Errorf("expected default mark-sent retries, got %d", cfg.Dispatch.MarkSentRetries)
	}
	if cfg.Calendar.RequestsPerSecond != defaultCalendarRate {
		t.Errorf("expected default rate, got %v", cfg.Calendar.RequestsPerSecond)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(dispatchLeaseTTLEnv, "90s")
	t.Setenv(dispatchCronEnv, "@every 30s")
	t.Setenv(appBaseURLEnv, "https://jetlag.example.com")
	t.Setenv(calendarBurstEnv, "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Dispatch.LeaseTTL != 90*time.Second {
		t.Errorf("expected 90s lease, got %v", cfg.Dispatch.LeaseTTL)
	}
	if cfg.Dispatch.CronSpec != "@every 30s" {
		t.Errorf("unexpected cron spec %q", cfg.Dispatch.CronSpec)
	}
	if got := cfg.Dispatch.TripURLBase(); got != "https://jetlag.example.com/trips" {
		t.Errorf("unexpected trip url base %q", got)
	}
	if cfg.Calendar.Burst != 3 {
		t.Errorf("expected burst 3, got %d", cfg.Calendar.Burst)
	}
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv(redisDBEnv, "zero")

	if _, err := Load(); !errors.Is(err, ErrInvalidRedisDB) {
		t.Errorf("expected ErrInvalidRedisDB, got %v", err)
	}
}

func TestValidateForRun(t *testing.T) {
	valid := func() *Config {
		return &Config{
			CircadianURL: "http://circadian:8000",
			Database:     &DatabaseConfig{DSN: "postgres://jetlag@localhost/jetlag"},
			Redis:        &RedisConfig{Addr: "localhost:6379"},
			Calendar:     &CalendarConfig{},
			Mail:         &MailConfig{Provider: MailProviderLog},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing circadian url", mutate: func(c *Config) { c.CircadianURL = "" }, wantErr: ErrCircadianURLMissing},
		{name: "missing database", mutate: func(c *Config) { c.Database.DSN = "" }, wantErr: ErrDatabaseURLMissing},
		{name: "half oauth config", mutate: func(c *Config) { c.Calendar.ClientID = "id" }, wantErr: ErrCalendarOAuth},
		{name: "resend without key", mutate: func(c *Config) {
			c.Mail = &MailConfig{Provider: MailProviderResend, From: "a@b.c"}
		}, wantErr: ErrResendKeyMissing},
		{name: "unknown provider", mutate: func(c *Config) { c.Mail.Provider = "pigeon" }, wantErr: ErrUnknownMailProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := ValidateForRun(cfg)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

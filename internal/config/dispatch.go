package config

import (
	"os"
	"strings"
	"time"
)

const (
	dispatchBatchSizeEnv   = "DISPATCH_BATCH_SIZE"
	dispatchMaxAttemptsEnv = "DISPATCH_MAX_ATTEMPTS"
	dispatchClaimTTLEnv    = "DISPATCH_CLAIM_TTL"
	dispatchSendTimeoutEnv = "DISPATCH_SEND_TIMEOUT"
	dispatchMarkSentEnv    = "DISPATCH_MARK_SENT_RETRIES"
	dispatchLeaseTTLEnv    = "DISPATCH_LEASE_TTL"
	dispatchCronEnv        = "DISPATCH_CRON"
	dispatchCronTimeoutEnv = "DISPATCH_CRON_TIMEOUT"
	appBaseURLEnv          = "APP_BASE_URL"

	defaultDispatchBatchSize   = 100
	defaultDispatchMaxAttempts = 3
	defaultDispatchClaimTTL    = 5 * time.Minute
	defaultDispatchSendTimeout = 15 * time.Second
	defaultDispatchMarkSent    = 5
	defaultDispatchLeaseTTL    = 2 * time.Minute
	defaultDispatchCronTimeout = 50 * time.Second
)

type DispatchConfig struct {
	BatchSize   int
	MaxAttempts int
	ClaimTTL    time.Duration
	SendTimeout time.Duration
	// MarkSentRetries bounds retries of the sent write after a successful send.
	MarkSentRetries uint64
	LeaseTTL        time.Duration
	// CronSpec enables the in-process sweep when set, e.g. "@every 1m".
	CronSpec    string
	CronTimeout time.Duration
	AppBaseURL  string
}

func LoadDispatchConfig() *DispatchConfig {
	return &DispatchConfig{
		BatchSize:       intEnv(dispatchBatchSizeEnv, defaultDispatchBatchSize),
		MaxAttempts:     intEnv(dispatchMaxAttemptsEnv, defaultDispatchMaxAttempts),
		ClaimTTL:        durationEnv(dispatchClaimTTLEnv, defaultDispatchClaimTTL),
		SendTimeout:     durationEnv(dispatchSendTimeoutEnv, defaultDispatchSendTimeout),
		MarkSentRetries: uint64(intEnv(dispatchMarkSentEnv, defaultDispatchMarkSent)),
		LeaseTTL:        durationEnv(dispatchLeaseTTLEnv, defaultDispatchLeaseTTL),
		CronSpec:        os.Getenv(dispatchCronEnv),
		CronTimeout:     durationEnv(dispatchCronTimeoutEnv, defaultDispatchCronTimeout),
		AppBaseURL:      os.Getenv(appBaseURLEnv),
	}
}

// TripURLBase is the prefix trip ids are appended to in emails, or empty
// when unset.
func (c *DispatchConfig) TripURLBase() string {
	if c.AppBaseURL == "" {
		return ""
	}
	return strings.TrimRight(c.AppBaseURL, "/") + "/trips"
}

package config

import (
	"os"
	"time"
)

const (
	mailProviderEnv   = "MAIL_PROVIDER"
	mailFromEnv       = "MAIL_FROM"
	resendAPIKeyEnv   = "RESEND_API_KEY"
	resendBaseURLEnv  = "RESEND_BASE_URL"
	resendTimeoutEnv  = "RESEND_TIMEOUT"
	defaultResendTO   = 10 * time.Second
	defaultMailSender = "Jet Lag Plan <plans@primind.app>"
)

type MailProvider string

const (
	MailProviderResend MailProvider = "resend"
	MailProviderLog    MailProvider = "log"
)

type MailConfig struct {
	Provider      MailProvider
	From          string
	ResendAPIKey  string
	ResendBaseURL string
	Timeout       time.Duration
}

func LoadMailConfig() *MailConfig {
	provider := MailProvider(os.Getenv(mailProviderEnv))
	if provider == "" {
		provider = MailProviderLog
	}

	from := os.Getenv(mailFromEnv)
	if from == "" {
		from = defaultMailSender
	}

	return &MailConfig{
		Provider:      provider,
		From:          from,
		ResendAPIKey:  os.Getenv(resendAPIKeyEnv),
		ResendBaseURL: os.Getenv(resendBaseURLEnv),
		Timeout:       durationEnv(resendTimeoutEnv, defaultResendTO),
	}
}

func (c *MailConfig) Validate() error {
	switch c.Provider {
	case MailProviderLog:
		return nil
	case MailProviderResend:
		if c.ResendAPIKey == "" {
			return ErrResendKeyMissing
		}
		if c.From == "" {
			return ErrMailFromMissing
		}
		return nil
	default:
		return ErrUnknownMailProvider
	}
}

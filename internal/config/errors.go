package config

import "errors"

var (
	ErrRedisAddrMissing    = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB      = errors.New("REDIS_DB must be a valid integer")
	ErrDatabaseURLMissing  = errors.New("DATABASE_URL is required")
	ErrCircadianURLMissing = errors.New("CIRCADIAN_MODEL_URL is required")
	ErrTaskTargetMissing   = errors.New("TASK_QUEUE_TARGET_URL is required")
	ErrResendKeyMissing    = errors.New("RESEND_API_KEY is required when MAIL_PROVIDER=resend")
	ErrMailFromMissing     = errors.New("MAIL_FROM is required")
	ErrUnknownMailProvider = errors.New("MAIL_PROVIDER must be resend or log")
	ErrCalendarOAuth       = errors.New("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set together")
)

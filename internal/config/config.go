package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	portEnv         = "PORT"
	logLevelEnv     = "LOG_LEVEL"
	circadianURLEnv = "CIRCADIAN_MODEL_URL"
	circadianTOEnv  = "CIRCADIAN_MODEL_TIMEOUT"

	defaultPort             = "8080"
	defaultCircadianTimeout = 60 * time.Second
)

type Config struct {
	Port     string
	LogLevel slog.Level

	CircadianURL     string
	CircadianTimeout time.Duration

	Database  *DatabaseConfig
	Redis     *RedisConfig
	TaskQueue TaskQueueConfig
	Dispatch  *DispatchConfig
	Calendar  *CalendarConfig
	Mail      *MailConfig
}

type TaskQueueConfig struct {
	PrimindTasksURL string
	QueueName       string
	// TargetURL is the dispatch endpoint the delayed task calls.
	TargetURL string

	GCloudProjectID           string
	GCloudLocationID          string
	GCloudQueueID             string
	GCloudServiceAccountEmail string

	MaxRetries int
}

func Load() (*Config, error) {
	loadDotEnv()

	port := os.Getenv(portEnv)
	if port == "" {
		port = defaultPort
	}

	queueName := os.Getenv("TASK_QUEUE_NAME")
	if queueName == "" {
		queueName = "default"
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	targetURL := os.Getenv("TASK_QUEUE_TARGET_URL")
	if targetURL == "" {
		targetURL = os.Getenv("GCLOUD_TARGET_URL")
	}

	return &Config{
		Port:             port,
		LogLevel:         parseLogLevel(os.Getenv(logLevelEnv)),
		CircadianURL:     os.Getenv(circadianURLEnv),
		CircadianTimeout: durationEnv(circadianTOEnv, defaultCircadianTimeout),
		Database:         LoadDatabaseConfig(),
		Redis:            redisConfig,
		TaskQueue: TaskQueueConfig{
			PrimindTasksURL: os.Getenv("PRIMIND_TASKS_URL"),
			QueueName:       queueName,
			TargetURL:       targetURL,

			GCloudProjectID:           os.Getenv("GCLOUD_PROJECT_ID"),
			GCloudLocationID:          os.Getenv("GCLOUD_LOCATION_ID"),
			GCloudQueueID:             os.Getenv("GCLOUD_QUEUE_ID"),
			GCloudServiceAccountEmail: os.Getenv("GCLOUD_TASKS_SERVICE_ACCOUNT"),

			MaxRetries: intEnv("TASK_QUEUE_MAX_RETRIES", 3),
		},
		Dispatch: LoadDispatchConfig(),
		Calendar: LoadCalendarConfig(),
		Mail:     LoadMailConfig(),
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// intEnv returns the positive integer in key, or def when unset or invalid.
func intEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func durationEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func floatEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

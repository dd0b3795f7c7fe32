package config

import (
	"os"
	"time"
)

const (
	databaseURLEnv          = "DATABASE_URL"
	databaseMaxOpenEnv      = "DATABASE_MAX_OPEN_CONNS"
	databaseMaxIdleEnv      = "DATABASE_MAX_IDLE_CONNS"
	databaseConnLifetimeEnv = "DATABASE_CONN_MAX_LIFETIME"
	databaseSlowQueryEnv    = "DATABASE_SLOW_QUERY_THRESHOLD"
	databaseAutoMigrateEnv  = "DATABASE_AUTO_MIGRATE"

	defaultDatabaseMaxOpen      = 10
	defaultDatabaseMaxIdle      = 5
	defaultDatabaseConnLifetime = 30 * time.Minute
	defaultDatabaseSlowQuery    = 200 * time.Millisecond
)

type DatabaseConfig struct {
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	SlowQueryThreshold time.Duration
	AutoMigrate        bool
}

func LoadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		DSN:                os.Getenv(databaseURLEnv),
		MaxOpenConns:       intEnv(databaseMaxOpenEnv, defaultDatabaseMaxOpen),
		MaxIdleConns:       intEnv(databaseMaxIdleEnv, defaultDatabaseMaxIdle),
		ConnMaxLifetime:    durationEnv(databaseConnLifetimeEnv, defaultDatabaseConnLifetime),
		SlowQueryThreshold: durationEnv(databaseSlowQueryEnv, defaultDatabaseSlowQuery),
		AutoMigrate:        os.Getenv(databaseAutoMigrateEnv) != "false",
	}
}

func (c *DatabaseConfig) Validate() error {
	if c == nil || c.DSN == "" {
		return ErrDatabaseURLMissing
	}
	return nil
}

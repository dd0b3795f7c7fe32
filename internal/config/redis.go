package config

import (
	"os"
	"strconv"
	"time"
)

const (
	redisAddrEnv        = "REDIS_ADDR"
	redisPasswordEnv    = "REDIS_PASSWORD"
	redisDBEnv          = "REDIS_DB"
	redisTLSEnv         = "REDIS_TLS"
	redisPoolSizeEnv    = "REDIS_POOL_SIZE"
	redisDialTimeoutEnv = "REDIS_DIAL_TIMEOUT"

	defaultRedisAddr        = "localhost:6379"
	defaultRedisPoolSize    = 10
	defaultRedisDialTimeout = 5 * time.Second
)

// RedisConfig points at the Redis that holds sweep leases and calendar sync
// locks.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	TLS         bool
	PoolSize    int
	DialTimeout time.Duration
}

func LoadRedisConfig() (*RedisConfig, error) {
	cfg := &RedisConfig{
		Addr:        os.Getenv(redisAddrEnv),
		Password:    os.Getenv(redisPasswordEnv),
		TLS:         os.Getenv(redisTLSEnv) == "true",
		PoolSize:    intEnv(redisPoolSizeEnv, defaultRedisPoolSize),
		DialTimeout: durationEnv(redisDialTimeoutEnv, defaultRedisDialTimeout),
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultRedisAddr
	}

	// Unlike the other settings, a bad DB index does not fall back.
	if raw := os.Getenv(redisDBEnv); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return nil, ErrInvalidRedisDB
		}
		cfg.DB = db
	}

	return cfg, nil
}

func (c *RedisConfig) Validate() error {
	if c == nil || c.Addr == "" {
		return ErrRedisAddrMissing
	}
	return nil
}

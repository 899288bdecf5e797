package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"

	RealtimeMemory = "memory"
	RealtimeRedis  = "redis"
)

type Config struct {
	Addr                 string
	DBDriver             string
	DBDSN                string
	LogLevel             string
	Timezone             string
	AchievementsPath     string
	RealtimeBackend      string
	RedisAddr            string
	RedisChannel         string
	SyncWorkerCount      int
	SyncQueueSize        int
	AttemptInsertRetries int
	ShutdownTimeout      time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or unparsable.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBDriver:             envOr("DB_DRIVER", DriverSQLite),
		DBDSN:                envOr("DB_DSN", "file:eduhelper.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		Timezone:             envOr("TIMEZONE", "UTC"),
		AchievementsPath:     os.Getenv("ACHIEVEMENTS_PATH"),
		RealtimeBackend:      envOr("REALTIME_BACKEND", RealtimeMemory),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisChannel:         envOr("REDIS_CHANNEL", "eduhelper:progress"),
		SyncWorkerCount:      envIntOr("SYNC_WORKER_COUNT", 2),
		SyncQueueSize:        envIntOr("SYNC_QUEUE_SIZE", 128),
		AttemptInsertRetries: envIntOr("ATTEMPT_INSERT_RETRIES", 1),
		ShutdownTimeout:      envDurationOr("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DBDriver))
	}
	if strings.TrimSpace(c.DBDSN) == "" {
		errs = append(errs, errors.New("DB_DSN cannot be empty"))
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q is not a known location: %w", c.Timezone, err))
	}
	if c.AchievementsPath != "" {
		if _, err := os.Stat(c.AchievementsPath); err != nil {
			errs = append(errs, fmt.Errorf("ACHIEVEMENTS_PATH: %w", err))
		}
	}
	switch c.RealtimeBackend {
	case RealtimeMemory:
	case RealtimeRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when REALTIME_BACKEND=redis"))
		}
		if strings.TrimSpace(c.RedisChannel) == "" {
			errs = append(errs, errors.New("REDIS_CHANNEL cannot be empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("REALTIME_BACKEND must be %q or %q, got %q", RealtimeMemory, RealtimeRedis, c.RealtimeBackend))
	}
	if c.SyncWorkerCount <= 0 {
		errs = append(errs, fmt.Errorf("SYNC_WORKER_COUNT must be positive, got %d", c.SyncWorkerCount))
	}
	if c.SyncQueueSize <= 0 {
		errs = append(errs, fmt.Errorf("SYNC_QUEUE_SIZE must be positive, got %d", c.SyncQueueSize))
	}
	if c.AttemptInsertRetries < 1 {
		errs = append(errs, fmt.Errorf("ATTEMPT_INSERT_RETRIES must be at least 1, got %d", c.AttemptInsertRetries))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout))
	}

	return errors.Join(errs...)
}

// Location returns the configured timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}

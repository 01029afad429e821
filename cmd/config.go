package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort              = "8080"
	defaultLogLevel              = "info"
	defaultMongoDB               = "roadside"
	defaultIdempotencyTTL        = 24 * time.Hour
	defaultPendingOrderTTL       = 30 * time.Minute
	defaultOutboxRelaySchedule   = "*/5 * * * * *"
	defaultPendingExpirySchedule = "0 * * * * *"
	defaultNearestAgentsMaxLimit = 50
)

// Config is the process configuration. Empty RedisAddr, RabbitURL, MongoURI or
// OTLPEndpoint disable the matching integration.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr    string
	RabbitURL    string
	MongoURI     string
	MongoDB      string
	OTLPEndpoint string
	LogLevel     string

	IdempotencyTTL        time.Duration
	PendingOrderTTL       time.Duration
	OutboxRelaySchedule   string
	PendingExpirySchedule string
	NearestAgentsMaxLimit int
}

// LoadConfig reads the environment after loading .env when the file exists.
// Variables already set in the environment win over .env.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return ConfigFromEnv()
}

// ConfigFromEnv reads the configuration from environment variables only.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		HTTPPort:              envOr("HTTP_PORT", defaultHTTPPort),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                os.Getenv("DB_PORT"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             envOr("DB_SSLMODE", "disable"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RabbitURL:             os.Getenv("RABBIT_URL"),
		MongoURI:              os.Getenv("MONGO_URI"),
		MongoDB:               envOr("MONGO_DB", defaultMongoDB),
		OTLPEndpoint:          os.Getenv("OTLP_ENDPOINT"),
		LogLevel:              envOr("LOG_LEVEL", defaultLogLevel),
		OutboxRelaySchedule:   envOr("OUTBOX_RELAY_SCHEDULE", defaultOutboxRelaySchedule),
		PendingExpirySchedule: envOr("PENDING_EXPIRY_SCHEDULE", defaultPendingExpirySchedule),
	}

	var err error
	if cfg.IdempotencyTTL, err = durationEnv("IDEMPOTENCY_TTL", defaultIdempotencyTTL); err != nil {
		return Config{}, err
	}
	if cfg.PendingOrderTTL, err = durationEnv("PENDING_ORDER_TTL", defaultPendingOrderTTL); err != nil {
		return Config{}, err
	}
	if cfg.NearestAgentsMaxLimit, err = positiveIntEnv("NEAREST_AGENTS_MAX_LIMIT", defaultNearestAgentsMaxLimit); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, raw)
	}
	return d, nil
}

func positiveIntEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %d", key, n)
	}
	return n, nil
}

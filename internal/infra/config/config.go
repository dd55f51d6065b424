package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"unahotel/internal/domain/reservation"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env                string
	HTTPAddr           string
	StorageMode        string
	MongoURI           string
	MongoDB            string
	KafkaBrokers       []string
	KafkaTopicPrefix   string
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	RetryBackoff       []time.Duration
	PolicyJSON         string
	ShutdownTimeout    time.Duration
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		StorageMode:      strings.ToLower(getEnv("STORAGE_MODE", "memory")),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "unahotel"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
		PolicyJSON:       os.Getenv("RESERVATION_POLICY"),
	}
	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	poll, err := parseDurationEnv("OUTBOX_POLL_INTERVAL", 500*time.Millisecond)
	if err != nil {
		return Config{}, err
	}
	cfg.OutboxPollInterval = poll

	shutdown, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.ShutdownTimeout = shutdown

	batch, err := parseIntEnv("OUTBOX_BATCH_SIZE", 100)
	if err != nil {
		return Config{}, err
	}
	cfg.OutboxBatchSize = batch

	retryStr := getEnv("RETRY_BACKOFF", "1s,5s,30s")
	for _, raw := range strings.Split(retryStr, ",") {
		val := strings.TrimSpace(raw)
		if val == "" {
			continue
		}
		d, err := time.ParseDuration(val)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RETRY_BACKOFF component %q: %w", raw, err)
		}
		cfg.RetryBackoff = append(cfg.RetryBackoff, d)
	}

	switch cfg.StorageMode {
	case "memory":
	case "mongo":
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required when STORAGE_MODE=mongo")
		}
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_MODE %q (want memory or mongo)", cfg.StorageMode)
	}
	return cfg, nil
}

// LoadPolicy parses the RESERVATION_POLICY JSON override. Invalid JSON or an
// inconsistent policy falls back to the defaults with a warning: a property
// must keep taking reservations even when an operator fat-fingers an
// override.
func LoadPolicy(raw string, logger *slog.Logger) reservation.Policy {
	if strings.TrimSpace(raw) == "" {
		return reservation.DefaultPolicy()
	}

	policy := reservation.DefaultPolicy()
	if err := json.Unmarshal([]byte(raw), &policy); err != nil {
		if logger != nil {
			logger.Warn("invalid RESERVATION_POLICY JSON, using defaults", "error", err)
		}
		return reservation.DefaultPolicy()
	}
	if err := policy.Validate(); err != nil {
		if logger != nil {
			logger.Warn("inconsistent RESERVATION_POLICY, using defaults", "error", err)
		}
		return reservation.DefaultPolicy()
	}
	return policy
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	var v int
	if _, err := fmt.Sscanf(raw, "%d", &v); err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s integer: %q", key, raw)
	}
	return v, nil
}

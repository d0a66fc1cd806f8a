package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// DONKI flare API.
	DONKIBaseURL string
	DONKIAPIKey  string
	DONKITimeout time.Duration

	// Viewer behaviour.
	RefreshInterval  time.Duration
	DefaultRangeDays int
	SunRadius        float64

	// Optional Kafka publication of applied selections.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is honoured but never
// overrides variables already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	donkiTimeout, err := parsePositiveDuration("DONKI_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}

	refreshInterval, err := time.ParseDuration(sharedcfg.EnvOrDefault("REFRESH_INTERVAL", "0s"))
	if err != nil || refreshInterval < 0 {
		return nil, errors.New("invalid REFRESH_INTERVAL")
	}

	rangeDays, err := strconv.Atoi(sharedcfg.EnvOrDefault("DEFAULT_RANGE_DAYS", "30"))
	if err != nil || rangeDays < 1 || rangeDays > 366 {
		return nil, errors.New("invalid DEFAULT_RANGE_DAYS: must be between 1 and 366")
	}

	sunRadius, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("SUN_RADIUS", "1"), 64)
	if err != nil || sunRadius <= 0 {
		return nil, errors.New("invalid SUN_RADIUS: must be a positive number")
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DONKIBaseURL: strings.TrimRight(sharedcfg.EnvOrDefault("DONKI_BASE_URL", "https://api.nasa.gov/DONKI"), "/"),
		DONKIAPIKey:  sharedcfg.EnvOrDefault("DONKI_API_KEY", "DEMO_KEY"),
		DONKITimeout: donkiTimeout,

		RefreshInterval:  refreshInterval,
		DefaultRangeDays: rangeDays,
		SunRadius:        sunRadius,

		KafkaEnabled: os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "solar-flare-selections"),
	}

	if cfg.DONKIBaseURL == "" {
		return nil, errors.New("DONKI_BASE_URL is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://api.nasa.gov/DONKI", cfg.DONKIBaseURL)
	assert.Equal(t, "DEMO_KEY", cfg.DONKIAPIKey)
	assert.Equal(t, 15*time.Second, cfg.DONKITimeout)
	assert.Equal(t, time.Duration(0), cfg.RefreshInterval)
	assert.Equal(t, 30, cfg.DefaultRangeDays)
	assert.Equal(t, 1.0, cfg.SunRadius)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "solar-flare-selections", cfg.KafkaTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DONKI_BASE_URL", "http://localhost:9999/DONKI/")
	t.Setenv("DONKI_API_KEY", "secret")
	t.Setenv("DONKI_TIMEOUT", "3s")
	t.Setenv("REFRESH_INTERVAL", "15m")
	t.Setenv("DEFAULT_RANGE_DAYS", "7")
	t.Setenv("SUN_RADIUS", "5")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "flares")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://localhost:9999/DONKI", cfg.DONKIBaseURL)
	assert.Equal(t, "secret", cfg.DONKIAPIKey)
	assert.Equal(t, 3*time.Second, cfg.DONKITimeout)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 7, cfg.DefaultRangeDays)
	assert.Equal(t, 5.0, cfg.SunRadius)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "flares", cfg.KafkaTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidDONKITimeout(t *testing.T) {
	t.Setenv("DONKI_TIMEOUT", "0s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DONKI_TIMEOUT")
}

func TestLoad_NegativeRefreshInterval(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "-1m")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}

func TestLoad_InvalidRangeDays(t *testing.T) {
	for _, v := range []string{"0", "400", "week"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("DEFAULT_RANGE_DAYS", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "DEFAULT_RANGE_DAYS")
		})
	}
}

func TestLoad_InvalidSunRadius(t *testing.T) {
	t.Setenv("SUN_RADIUS", "-2")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUN_RADIUS")
}

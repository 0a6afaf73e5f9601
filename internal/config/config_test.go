package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("AVAILABILITY_CACHE_TTL", "")
	t.Setenv("MAX_AVAILABILITY_DAYS", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("BUSINESS_TIMEZONE", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 5*time.Minute, cfg.AvailabilityTTL)
	assert.Equal(t, 31, cfg.MaxAvailabilityDays)
	assert.Equal(t, "America/Sao_Paulo", cfg.BusinessTimezone)
	assert.Nil(t, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("AVAILABILITY_CACHE_TTL", "60")
	t.Setenv("MAX_AVAILABILITY_DAYS", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, time.Minute, cfg.AvailabilityTTL)
	assert.Equal(t, 31, cfg.MaxAvailabilityDays)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.OTLPInsecure)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "DB_DRIVER", "TOKEN_TTL", "STRICT_CATEGORIES", "CORS_ORIGINS", "MQTT_BROKER", "MQTT_PUBLISH_TIMEOUT"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.StrictCategories)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.MQTTBroker)
	assert.Equal(t, 3*time.Second, cfg.MQTTPublishTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("STRICT_CATEGORIES", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("SALES_MANAGER_EMAIL", "sales@example.com")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.False(t, cfg.StrictCategories)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "sales@example.com", cfg.SalesManagerEmail)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("TOKEN_TTL", "soon")
	t.Setenv("STRICT_CATEGORIES", "maybe")
	t.Setenv("SHUTDOWN_TIMEOUT", "-5s")

	cfg := Load()
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.StrictCategories)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

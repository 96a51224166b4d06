package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "STORE_DRIVER", "KAFKA_BROKERS", "SESSION_TTL", "SEED_ON_START", "LOGIN_RATE"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, "json", cfg.StoreDriver)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SeedOnStart)
	assert.Equal(t, 1.0, cfg.LoginRate)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("SEED_ON_START", "false")
	t.Setenv("NOTIFY_WORKERS", "not-a-number")
	t.Setenv("ARGON2_THREADS", "2")

	cfg := Load()
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.False(t, cfg.SeedOnStart)
	assert.Equal(t, 4, cfg.NotifyWorkers)
	assert.Equal(t, uint8(2), cfg.Argon2Threads)
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_QueueConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("QUEUE_RECOMPUTE_INTERVAL_SECONDS", "15")
	os.Setenv("QUEUE_SNAPSHOT_CACHE_TTL_SECONDS", "10")
	defer func() {
		os.Unsetenv("QUEUE_RECOMPUTE_INTERVAL_SECONDS")
		os.Unsetenv("QUEUE_SNAPSHOT_CACHE_TTL_SECONDS")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify queue config
	assert.Equal(t, 15*time.Second, cfg.Queue.RecomputeInterval)
	assert.Equal(t, 10, cfg.Queue.SnapshotCacheTTLSeconds)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("QUEUE_RECOMPUTE_INTERVAL_SECONDS")
	os.Unsetenv("QUEUE_SNAPSHOT_CACHE_TTL_SECONDS")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, 60*time.Second, cfg.Queue.RecomputeInterval)
	assert.Equal(t, 5, cfg.Queue.SnapshotCacheTTLSeconds)
	assert.Equal(t, "patientflow", cfg.Database.Database)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Server.LogLevel)
}

func TestLoad_AllowedOrigins(t *testing.T) {
	os.Setenv("ALLOWED_ORIGINS", "https://portal.example.com, https://admin.example.com")
	defer os.Unsetenv("ALLOWED_ORIGINS")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t,
		[]string{"https://portal.example.com", "https://admin.example.com"},
		cfg.Server.AllowedOrigins,
	)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := Load()

		assert.Equal(t, "0.0.0.0", cfg.ServerHost)
		assert.Equal(t, 8080, cfg.ServerPort)
		assert.Equal(t, "postgres", cfg.DBDriver)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "file:///var/lib/holograph/keys", cfg.KeystoreBucketURL)
		assert.Equal(t, "file:///var/lib/holograph/files", cfg.FilesBucketURL)
		assert.Equal(t, "holograph", cfg.MetricsNamespace)
		assert.Equal(t, int64(50<<20), cfg.MaxUploadSizeBytes)
		assert.True(t, cfg.RateLimitKeyReleaseEnabled)
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("DB_DRIVER", "mysql")
		t.Setenv("KEYSTORE_BUCKET_URL", "mem://")
		t.Setenv("LOG_LEVEL", "debug")

		cfg := Load()

		assert.Equal(t, 9090, cfg.ServerPort)
		assert.Equal(t, "mysql", cfg.DBDriver)
		assert.Equal(t, "mem://", cfg.KeystoreBucketURL)
		assert.Equal(t, "debug", cfg.GetGinMode())
	})
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		want     string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, cfg.GetGinMode())
		})
	}
}

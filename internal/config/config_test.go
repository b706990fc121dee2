package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			RateLimit:      100,
			RateLimitBurst: 200,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
			Port:    9090,
		},
		Anchors: AnchorsConfig{
			KeyPrefix: "framegate:anchor:",
		},
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "invalid server port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid port",
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.Server.RateLimit = -1 },
			wantErr: "rate_limit must not be negative",
		},
		{
			name: "rate limit without burst",
			mutate: func(c *Config) {
				c.Server.RateLimit = 10
				c.Server.RateLimitBurst = 0
			},
			wantErr: "rate_limit_burst",
		},
		{
			name:    "missing redis addr",
			mutate:  func(c *Config) { c.Redis.Addr = "" },
			wantErr: "redis address is required",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid log level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid log format",
		},
		{
			name:    "bad metrics port",
			mutate:  func(c *Config) { c.Metrics.Port = -1 },
			wantErr: "invalid metrics port",
		},
		{
			name:    "metrics disabled skips port check",
			mutate:  func(c *Config) { c.Metrics.Enabled = false; c.Metrics.Port = -1 },
		},
		{
			name:    "missing anchor prefix",
			mutate:  func(c *Config) { c.Anchors.KeyPrefix = "" },
			wantErr: "key_prefix is required",
		},
		{
			name:    "negative anchor ttl",
			mutate:  func(c *Config) { c.Anchors.TTL = -time.Second },
			wantErr: "ttl must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test-config-*.yaml")
	require.NoError(t, err)
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()

	configContent := `
server:
  port: 8181
  read_timeout: 20s
logging:
  level: debug
  format: text
anchors:
  ttl: 24h
`
	_, err = tmpfile.WriteString(configContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 24*time.Hour, cfg.Anchors.TTL)

	// Defaults fill in everything the file leaves out.
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "framegate:anchor:", cfg.Anchors.KeyPrefix)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/framegate.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

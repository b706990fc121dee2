package config

import "fmt"

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Redis.Validate(); err != nil {
		return fmt.Errorf("redis config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics config: %w", err)
	}

	if err := c.Anchors.Validate(); err != nil {
		return fmt.Errorf("anchors config: %w", err)
	}

	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("invalid port: %d", s.Port)
	}

	if s.ReadTimeout <= 0 {
		return fmt.Errorf("read_timeout must be positive")
	}

	if s.WriteTimeout <= 0 {
		return fmt.Errorf("write_timeout must be positive")
	}

	if s.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative")
	}

	if s.RateLimit > 0 && s.RateLimitBurst < 1 {
		return fmt.Errorf("rate_limit_burst must be positive when rate limiting is enabled")
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return fmt.Errorf("redis address is required")
	}

	if r.DB < 0 {
		return fmt.Errorf("invalid database number: %d", r.DB)
	}

	if r.PoolSize < 1 {
		return fmt.Errorf("pool_size must be positive")
	}

	return nil
}

func (l *LoggingConfig) Validate() error {
	switch l.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	if l.Format != "json" && l.Format != "text" {
		return fmt.Errorf("invalid log format: %s", l.Format)
	}

	return nil
}

func (m *MetricsConfig) Validate() error {
	if !m.Enabled {
		return nil
	}

	if m.Port < 1 || m.Port > 65535 {
		return fmt.Errorf("invalid metrics port: %d", m.Port)
	}

	if m.Path == "" {
		return fmt.Errorf("metrics path is required")
	}

	return nil
}

func (a *AnchorsConfig) Validate() error {
	if a.KeyPrefix == "" {
		return fmt.Errorf("key_prefix is required")
	}

	if a.TTL < 0 {
		return fmt.Errorf("ttl must not be negative")
	}

	return nil
}

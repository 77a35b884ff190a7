// Package config loads service configuration from YAML and environment
// variables.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config defines faultwatch service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"FAULTWATCH_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"FAULTWATCH_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr       string `yaml:"addr" env:"FAULTWATCH_REDIS_ADDR"`
		Password   string `yaml:"password" env:"FAULTWATCH_REDIS_PASSWORD"`
		SummaryTTL int    `yaml:"summary_ttl_seconds" env:"FAULTWATCH_SUMMARY_TTL_SECONDS"`
	} `yaml:"redis"`
	Kafka struct {
		Brokers     []string `yaml:"brokers" env:"FAULTWATCH_KAFKA_BROKERS"`
		AlertsTopic string   `yaml:"alerts_topic" env:"FAULTWATCH_KAFKA_ALERTS_TOPIC"`
	} `yaml:"kafka"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret" env:"FAULTWATCH_JWT_SECRET"`
	} `yaml:"auth"`
}

// Load reads configuration. Database DSN is the only hard requirement;
// redis and kafka stay disabled when their addresses are empty.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Redis.SummaryTTL = 60
	cfg.Kafka.AlertsTopic = "faultwatch.alerts"

	if err := load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, fmt.Errorf("config: database dsn required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// SummaryTTL as a duration.
func (c *Config) SummaryTTL() time.Duration {
	if c.Redis.SummaryTTL <= 0 {
		return time.Minute
	}
	return time.Duration(c.Redis.SummaryTTL) * time.Second
}

// KafkaEnabled reports whether alert publishing is configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

// RedisEnabled reports whether the summary cache is configured.
func (c *Config) RedisEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}

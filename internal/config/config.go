package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all demo-service configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	Splice    SpliceConfig
	Telemetry TelemetryConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// SpliceConfig holds trace-splicer configuration.
type SpliceConfig struct {
	Enabled      bool   `envconfig:"SPLICE_ENABLED" default:"true"`
	SentinelName string `envconfig:"SPLICE_SENTINEL_NAME" default:"LinkedApiSpan"`
}

// TelemetryConfig holds tracing pipeline configuration.
type TelemetryConfig struct {
	ServiceName    string `envconfig:"OTEL_SERVICE_NAME" default:"otellink-demo"`
	StdoutExporter bool   `envconfig:"OTEL_STDOUT_EXPORTER" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Splice: SpliceConfig{
			Enabled:      true,
			SentinelName: "LinkedApiSpan",
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "otellink-demo",
			StdoutExporter: true,
		},
	}
}

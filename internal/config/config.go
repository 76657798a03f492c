// Package config handles loadouttool configuration loading and management.
package config

import (
	"fmt"
	"time"
)

// Output formats for decoded loadouts.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
	FormatJSON  = "json"
)

// Config holds all tool settings.
type Config struct {
	Codec   CodecConfig   `yaml:"codec"`
	Output  OutputConfig  `yaml:"output"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// CodecConfig holds loadout code settings.
type CodecConfig struct {
	Verify bool `yaml:"verify"` // Check size and checksum when decoding
}

// OutputConfig holds CLI output settings.
type OutputConfig struct {
	Format string `yaml:"format"` // table, yaml or json
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Codec: CodecConfig{
			Verify: true,
		},
		Output: OutputConfig{
			Format: FormatTable,
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxBodyBytes:    64 << 10,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatTable, FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("invalid output format %q; expected one of %s, %s, %s",
			c.Output.Format, FormatTable, FormatYAML, FormatJSON)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q; expected debug, info, warn or error", c.Logging.Level)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server address must not be empty")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max body size %d; expected > 0", c.Server.MaxBodyBytes)
	}

	return nil
}

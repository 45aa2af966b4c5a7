package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// LogConfig defines logger level, output format and optional file sink.
type LogConfig struct {
	// Level is a zerolog level name: debug, info, warn, error.
	Level string `koanf:"level"`
	// Format is "console", "json" or "auto" (console on a terminal).
	Format string `koanf:"format"`
	// File, when set, also receives JSON log lines with size-based rotation.
	File string `koanf:"file"`
	// MaxSizeMB triggers rotation when the file exceeds this size in megabytes.
	MaxSizeMB int `koanf:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `koanf:"max_backups"`
}

// SetDefaults applies sane defaults.
func (c *LogConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "auto"
	}
	if c.MaxSizeMB == 0 {
		c.MaxSizeMB = 10
	}
	if c.MaxBackups == 0 {
		c.MaxBackups = 3
	}
}

func (c LogConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("unknown level %q", c.Level)
	}
	switch c.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 {
		return fmt.Errorf("max_size_mb and max_backups must not be negative")
	}
	return nil
}

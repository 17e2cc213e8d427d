package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoggingConfig configures the tool action log.
type LoggingConfig struct {
	// Enabled turns action logging on/off
	Enabled bool `yaml:"enabled,omitempty"`
	// Level controls logging verbosity: debug, info, warn, error
	Level string `yaml:"level,omitempty"`
	// File is the log file path (default: <user config dir>/winlayout/actions.log)
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size before rotation (default: 10)
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files,omitempty"`
	// PreviewLength is the number of characters of a window title kept in log entries (default: 50)
	PreviewLength int `yaml:"preview_length,omitempty"`
}

// FilterConfig extends the built-in window relevance rules. Entries are
// added to, never substituted for, the shell-chrome exclusions.
type FilterConfig struct {
	// ExcludeClasses lists exact window class names to hide.
	ExcludeClasses []string `yaml:"exclude_classes,omitempty"`
	// ExcludeTitles lists exact (trimmed) window titles to hide.
	ExcludeTitles []string `yaml:"exclude_titles,omitempty"`
}

// Config is the effective winlayout configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Filters FilterConfig  `yaml:"filters,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
		},
	}
}

// GetLoggingConfig returns the logging configuration with defaults applied.
func (c *Config) GetLoggingConfig() LoggingConfig {
	if c == nil {
		return LoggingConfig{}
	}
	cfg := c.Logging
	if cfg.File == "" {
		cfg.File = defaultLogFile()
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = 3
	}
	if cfg.PreviewLength == 0 {
		cfg.PreviewLength = 50
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

func defaultLogFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		// Last resort fallback - use current directory
		dir = "."
	}
	return filepath.Join(dir, "winlayout", "actions.log")
}

// Validate checks field ranges. The first problem found is returned as a
// *ValidationError naming the YAML path.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warn, error")}
	}
	if c.Logging.MaxSizeMB < 0 {
		return &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("max_size_mb must be >= 0")}
	}
	if c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging.max_files", Err: fmt.Errorf("max_files must be >= 0")}
	}
	if c.Logging.PreviewLength < 0 {
		return &ValidationError{Path: "logging.preview_length", Err: fmt.Errorf("preview_length must be >= 0")}
	}
	for _, class := range c.Filters.ExcludeClasses {
		if strings.TrimSpace(class) == "" {
			return &ValidationError{Path: "filters.exclude_classes", Err: fmt.Errorf("exclude_classes contains an empty class name")}
		}
	}
	for _, title := range c.Filters.ExcludeTitles {
		if strings.TrimSpace(title) == "" {
			return &ValidationError{Path: "filters.exclude_titles", Err: fmt.Errorf("exclude_titles contains an empty title")}
		}
	}
	return nil
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes the configuration to path, creating parent directories.
//
// Note: this marshals the effective config and will not preserve comments
// from the original YAML.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

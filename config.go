package alog

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lixenwraith/config"
)

// Config holds every value needed to build a ready-to-use logger. It is
// intentionally flat so it round-trips through github.com/lixenwraith/config
// without a translation layer.
type Config struct {
	Name  string `toml:"name"`
	Level string `toml:"level"` // trace, debug, info, warn, error, critical, off

	// Sink selection.
	EnableFile    bool `toml:"enable_file"`
	EnableConsole bool `toml:"enable_console"`
	ConsoleColor  bool `toml:"console_color"`
	ConsoleTarget string `toml:"console_target"` // "stdout" or "stderr"

	// Rotating file sink parameters.
	Directory  string `toml:"directory"`
	Extension  string `toml:"extension"`
	MaxSizeMB  int64  `toml:"max_size_mb"`
	MaxHistory int64  `toml:"max_history"`

	// Format.
	Format          string `toml:"format"` // txt, json, raw
	ShowTimestamp   bool   `toml:"show_timestamp"`
	ShowLevel       bool   `toml:"show_level"`
	TimestampFormat string `toml:"timestamp_format"`
	SanitizePolicy  string `toml:"sanitize_policy"` // raw, txt, json, shell

	// Async pipeline.
	Async         bool   `toml:"async"`
	QueueCapacity int64  `toml:"queue_capacity"`
	Workers       int64  `toml:"workers"`
	Overflow      string `toml:"overflow"` // "block" or "overwrite_oldest"

	// Internal diagnostics.
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"`
}

var defaultConfig = Config{
	Name:  "app",
	Level: "info",

	EnableFile:    true,
	EnableConsole: false,
	ConsoleColor:  true,
	ConsoleTarget: "stdout",

	Directory:  "./logs",
	Extension:  "log",
	MaxSizeMB:  10,
	MaxHistory: 5,

	Format:          "txt",
	ShowTimestamp:   true,
	ShowLevel:       true,
	TimestampFormat: time.RFC3339Nano,
	SanitizePolicy:  "txt",

	Async:         true,
	QueueCapacity: 8192,
	Workers:       1,
	Overflow:      "block",

	InternalErrorsToStderr: false,
}

// DefaultConfig returns a copy of the package's default configuration.
func DefaultConfig() *Config {
	copied := defaultConfig
	return &copied
}

// Clone returns a deep copy of c (the struct holds no reference fields, so
// a value copy already suffices, but the method mirrors the shape callers
// expect from an ApplyConfig-style API).
func (c *Config) Clone() *Config {
	copied := *c
	return &copied
}

// NewConfigFromFile loads a TOML configuration file, falling back to
// package defaults for any key the file omits, and validates the result.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()
	if err := loader.RegisterStruct("alog.", *cfg); err != nil {
		return nil, fmt.Errorf("alog: failed to register config struct: %w", err)
	}
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("alog: failed to load config from %s: %w", path, err)
	}
	if err := extractConfig(loader, "alog.", cfg); err != nil {
		return nil, fmt.Errorf("alog: failed to extract config values: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	for key, field := range map[string]*string{
		prefix + "name":            &cfg.Name,
		prefix + "level":           &cfg.Level,
		prefix + "console_target":  &cfg.ConsoleTarget,
		prefix + "directory":       &cfg.Directory,
		prefix + "extension":       &cfg.Extension,
		prefix + "format":          &cfg.Format,
		prefix + "timestamp_format": &cfg.TimestampFormat,
		prefix + "sanitize_policy": &cfg.SanitizePolicy,
		prefix + "overflow":        &cfg.Overflow,
	} {
		if v, ok := loader.Get(key); ok {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("expected string for %s, got %T", key, v)
			}
			*field = s
		}
	}

	for key, field := range map[string]*int64{
		prefix + "max_size_mb":    &cfg.MaxSizeMB,
		prefix + "max_history":    &cfg.MaxHistory,
		prefix + "queue_capacity": &cfg.QueueCapacity,
		prefix + "workers":        &cfg.Workers,
	} {
		if v, ok := loader.Get(key); ok {
			switch n := v.(type) {
			case int64:
				*field = n
			case int:
				*field = int64(n)
			default:
				return fmt.Errorf("expected int64 for %s, got %T", key, v)
			}
		}
	}

	for key, field := range map[string]*bool{
		prefix + "enable_file":               &cfg.EnableFile,
		prefix + "enable_console":            &cfg.EnableConsole,
		prefix + "console_color":             &cfg.ConsoleColor,
		prefix + "show_timestamp":            &cfg.ShowTimestamp,
		prefix + "show_level":                &cfg.ShowLevel,
		prefix + "async":                     &cfg.Async,
		prefix + "internal_errors_to_stderr": &cfg.InternalErrorsToStderr,
	} {
		if v, ok := loader.Get(key); ok {
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("expected bool for %s, got %T", key, v)
			}
			*field = b
		}
	}

	return nil
}

// Validate checks every field for internal consistency, returning a
// *ConfigError naming the first offending field.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return newConfigError("name", "cannot be empty")
	}
	if _, err := ParseSeverity(c.Level); err != nil {
		return newConfigError("level", "unknown severity name: "+c.Level)
	}
	if c.Format != "txt" && c.Format != "json" && c.Format != "raw" {
		return newConfigError("format", "must be txt, json, or raw")
	}
	if strings.HasPrefix(c.Extension, ".") {
		return newConfigError("extension", "should not start with a dot")
	}
	if strings.TrimSpace(c.TimestampFormat) == "" {
		return newConfigError("timestamp_format", "cannot be empty")
	}
	if c.ConsoleTarget != "stdout" && c.ConsoleTarget != "stderr" {
		return newConfigError("console_target", "must be stdout or stderr")
	}
	if c.MaxSizeMB < 0 {
		return newConfigError("max_size_mb", "cannot be negative")
	}
	if c.MaxHistory < 0 {
		return newConfigError("max_history", "cannot be negative")
	}
	if c.Async {
		if c.QueueCapacity <= 0 {
			return newConfigError("queue_capacity", "must be positive when async is enabled")
		}
		if c.Workers <= 0 || c.Workers > maxWorkers {
			return newConfigError("workers", "must be between 1 and 1000 when async is enabled")
		}
	}
	if c.Overflow != "block" && c.Overflow != "overwrite_oldest" {
		return newConfigError("overflow", "must be block or overwrite_oldest")
	}
	switch c.SanitizePolicy {
	case "raw", "txt", "json", "shell":
	default:
		return newConfigError("sanitize_policy", "must be raw, txt, json, or shell")
	}
	return nil
}

// internalErrorReporter returns the callback a sink or AsyncLogger invokes
// whenever it latches a delivery failure it cannot return to the caller
// (a rotate/write failure behind an async Log call, a pool that has gone
// away behind a fire-and-forget log call). When InternalErrorsToStderr is
// false it returns nil, so every call site can skip the report with a
// plain nil check rather than carrying its own enabled flag.
func (c *Config) internalErrorReporter(component string) func(error) {
	if !c.InternalErrorsToStderr {
		return nil
	}
	return func(err error) {
		fmt.Fprintf(os.Stderr, "alog: %s: %v\n", component, err)
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all intake configuration.
type Config struct {
	Engine  EngineConfig
	Source  SourceConfig
	Output  OutputConfig
	Metrics MetricsConfig
	Log     LogConfig
}

// EngineConfig holds classifier settings.
type EngineConfig struct {
	LexiconPath   string // YAML lexicon override; empty uses the built-in table
	MaxInputRunes int    // inputs longer than this are rejected before classification; 0 disables
	Concurrency   int    // batch worker count
}

// SourceConfig selects where batch requests come from.
type SourceConfig struct {
	Kind string // "lines", "jsonl", "glob"
	Path string // file to read ("-" or empty for stdin), or glob pattern
}

// OutputConfig holds output destination settings.
type OutputConfig struct {
	Format   string // "stdout", "file", "both"
	FilePath string
	MaxSize  int64 // file rotation threshold in bytes; 0 disables
	Pretty   bool
	Explain  bool // include scores and matched cues in records
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	File string // Prometheus text-format file written when a batch completes
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Engine: EngineConfig{
			LexiconPath:   os.Getenv("INTAKE_LEXICON_PATH"),
			MaxInputRunes: getenvInt("INTAKE_MAX_INPUT_RUNES", 2000),
			Concurrency:   getenvInt("INTAKE_CONCURRENCY", 4),
		},
		Source: SourceConfig{
			Kind: getenv("INTAKE_SOURCE", "lines"),
			Path: os.Getenv("INTAKE_SOURCE_PATH"),
		},
		Output: OutputConfig{
			Format:   getenv("INTAKE_OUTPUT", "stdout"),
			FilePath: os.Getenv("INTAKE_OUTPUT_FILE"),
			MaxSize:  int64(getenvInt("INTAKE_OUTPUT_MAX_SIZE", 0)),
			Pretty:   getenvBool("INTAKE_OUTPUT_PRETTY", false),
			Explain:  getenvBool("INTAKE_EXPLAIN", false),
		},
		Metrics: MetricsConfig{
			File: os.Getenv("INTAKE_METRICS_FILE"),
		},
		Log: LogConfig{
			Level: getenv("INTAKE_LOG_LEVEL", "info"),
		},
	}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Engine.MaxInputRunes < 0 {
		errs = append(errs, fmt.Errorf("max input runes must be >= 0, got %d", c.Engine.MaxInputRunes))
	}
	if c.Engine.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be >= 1, got %d", c.Engine.Concurrency))
	}
	switch c.Source.Kind {
	case "lines", "jsonl":
	case "glob":
		if c.Source.Path == "" {
			errs = append(errs, errors.New("glob source requires a pattern"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source %q", c.Source.Kind))
	}
	switch c.Output.Format {
	case "stdout":
	case "file", "both":
		if c.Output.FilePath == "" {
			errs = append(errs, fmt.Errorf("output %q requires a file path", c.Output.Format))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown output %q", c.Output.Format))
	}
	if c.Output.MaxSize < 0 {
		errs = append(errs, fmt.Errorf("output max size must be >= 0, got %d", c.Output.MaxSize))
	}
	return errors.Join(errs...)
}

// OutputIsStdout reports whether records are written to stdout.
func (c Config) OutputIsStdout() bool {
	return c.Output.Format == "stdout" || c.Output.Format == "both"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return b
}

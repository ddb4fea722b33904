// Package config loads the runtime settings and the actor input of the scraper.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings validation errors.
var (
	ErrInvalidLogLevel      = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat     = errors.New("logging.format must be 'text' or 'json'")
	ErrInvalidOutputFormat  = errors.New("output.format must be 'jsonl' or 'table'")
	ErrInvalidBatchSize     = errors.New("batch.size must be at least 1")
	ErrInvalidFlushInterval = errors.New("batch.flush_interval_ms must be at least 1")
	ErrInvalidMaxRetries    = errors.New("batch.max_retries must be at least 1")
	ErrInvalidTimeout       = errors.New("http.timeout_sec must be at least 1")
	ErrInvalidFreeTierLimit = errors.New("free_tier.limit must be at least 1")
)

// Settings is the runtime configuration of the CLI. None of it changes
// what is scraped; that is the actor input.
type Settings struct {
	Logging  LoggingSettings  `yaml:"logging"`
	Output   OutputSettings   `yaml:"output"`
	Batch    BatchSettings    `yaml:"batch"`
	State    StateSettings    `yaml:"state"`
	HTTP     HTTPSettings     `yaml:"http"`
	Metrics  MetricsSettings  `yaml:"metrics"`
	FreeTier FreeTierSettings `yaml:"free_tier"`
}

type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type OutputSettings struct {
	// Format is jsonl or table.
	Format string `yaml:"format"`
	// Path is the output file; empty means stdout.
	Path string `yaml:"path"`
}

type BatchSettings struct {
	Size            int `yaml:"size"`
	FlushIntervalMs int `yaml:"flush_interval_ms"`
	MaxRetries      int `yaml:"max_retries"`
}

type StateSettings struct {
	// Path of the resume checkpoint; empty keeps it in memory.
	Path string `yaml:"path"`
}

type HTTPSettings struct {
	TimeoutSec int    `yaml:"timeout_sec"`
	BaseURL    string `yaml:"base_url"`
}

type MetricsSettings struct {
	// Addr enables the /metrics listener, e.g. ":9090".
	Addr string `yaml:"addr"`
}

type FreeTierSettings struct {
	Limit int `yaml:"limit"`
}

func DefaultSettings() Settings {
	return Settings{
		Logging: LoggingSettings{Level: "info", Format: "text"},
		Output:  OutputSettings{Format: "jsonl"},
		Batch: BatchSettings{
			Size:            25,
			FlushIntervalMs: 5000,
			MaxRetries:      3,
		},
		HTTP:     HTTPSettings{TimeoutSec: 30},
		FreeTier: FreeTierSettings{Limit: 25},
	}
}

// LoadSettings reads a YAML file on top of DefaultSettings.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	cfg := DefaultSettings()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}

	return &cfg, nil
}

func (s *Settings) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.Logging.Level)] {
		return ErrInvalidLogLevel
	}

	if s.Logging.Format != "text" && s.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	if s.Output.Format != "jsonl" && s.Output.Format != "table" {
		return ErrInvalidOutputFormat
	}

	if s.Batch.Size < 1 {
		return ErrInvalidBatchSize
	}

	if s.Batch.FlushIntervalMs < 1 {
		return ErrInvalidFlushInterval
	}

	if s.Batch.MaxRetries < 1 {
		return ErrInvalidMaxRetries
	}

	if s.HTTP.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if s.FreeTier.Limit < 1 {
		return ErrInvalidFreeTierLimit
	}

	return nil
}

func (b BatchSettings) FlushInterval() time.Duration {
	return time.Duration(b.FlushIntervalMs) * time.Millisecond
}

func (h HTTPSettings) Timeout() time.Duration {
	return time.Duration(h.TimeoutSec) * time.Second
}

// SlogLevel maps logging.level to a slog.Level, defaulting to info.
func (l LoggingSettings) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewSlog builds the process logger writing to w.
func (l LoggingSettings) NewSlog(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

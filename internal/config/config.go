// Package config defines all configuration structures for ChemPatent-Insight.
// No I/O or parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// WorkerConfig holds background-pipeline execution parameters.
type WorkerConfig struct {
	// Concurrency is the number of pipeline workers.  Each submitted task is
	// processed by exactly one worker; tasks beyond Concurrency wait in the
	// queue.
	Concurrency int `mapstructure:"concurrency"`

	// QueueDepth bounds the number of submitted-but-unstarted tasks.  When
	// the queue is full, Submit rejects rather than blocks.
	QueueDepth int `mapstructure:"queue_depth"`
}

// ExtractionConfig holds document-extraction parameters.
type ExtractionConfig struct {
	// MaxFileSize is the upper bound, in bytes, on accepted documents.
	// Checked before any parsing work begins.
	MaxFileSize int64 `mapstructure:"max_file_size"`

	// MaxFormulas caps the number of distinct chemical formulas reported
	// per document.
	MaxFormulas int `mapstructure:"max_formulas"`

	// MinImageWidth / MinImageHeight filter out embedded images too small to
	// plausibly depict a chemical structure.
	MinImageWidth  int `mapstructure:"min_image_width"`
	MinImageHeight int `mapstructure:"min_image_height"`

	// MaxElementLength caps the stored text of each extracted patent element.
	MaxElementLength int `mapstructure:"max_element_length"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level            string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format           string   `mapstructure:"format"` // "json" | "console"
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Config is the root configuration structure for the service.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Worker     WorkerConfig     `mapstructure:"worker"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Log        LogConfig        `mapstructure:"log"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("config: worker.concurrency must be >= 1, got %d", c.Worker.Concurrency)
	}
	if c.Worker.QueueDepth < 1 {
		return fmt.Errorf("config: worker.queue_depth must be >= 1, got %d", c.Worker.QueueDepth)
	}

	if c.Extraction.MaxFileSize < 1 {
		return fmt.Errorf("config: extraction.max_file_size must be >= 1, got %d", c.Extraction.MaxFileSize)
	}
	if c.Extraction.MaxFormulas < 1 {
		return fmt.Errorf("config: extraction.max_formulas must be >= 1, got %d", c.Extraction.MaxFormulas)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}

package config

import "time"

// Default values applied to any Config field left unset by file or
// environment.  The extraction limits mirror the upload contract: documents
// above 50MB are rejected before any parsing work starts.
const (
	DefaultServerPort      = 8080
	DefaultServerMode      = "release"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultMaxBodySize     = 64 << 20 // generous headroom above the document cap
	DefaultShutdownTimeout = 15 * time.Second

	DefaultWorkerConcurrency = 4
	DefaultWorkerQueueDepth  = 64

	DefaultMaxFileSize      = 50 << 20 // 50MB
	DefaultMaxFormulas      = 20
	DefaultMinImageWidth    = 50
	DefaultMinImageHeight   = 50
	DefaultMaxElementLength = 500

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsPath = "/metrics"
)

// ApplyDefaults fills in defaults for every zero-valued field of cfg.
// It never overrides a value that was explicitly set.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultMaxBodySize
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Worker.Concurrency == 0 {
		cfg.Worker.Concurrency = DefaultWorkerConcurrency
	}
	if cfg.Worker.QueueDepth == 0 {
		cfg.Worker.QueueDepth = DefaultWorkerQueueDepth
	}

	if cfg.Extraction.MaxFileSize == 0 {
		cfg.Extraction.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Extraction.MaxFormulas == 0 {
		cfg.Extraction.MaxFormulas = DefaultMaxFormulas
	}
	if cfg.Extraction.MinImageWidth == 0 {
		cfg.Extraction.MinImageWidth = DefaultMinImageWidth
	}
	if cfg.Extraction.MinImageHeight == 0 {
		cfg.Extraction.MinImageHeight = DefaultMinImageHeight
	}
	if cfg.Extraction.MaxElementLength == 0 {
		cfg.Extraction.MaxElementLength = DefaultMaxElementLength
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}

// Default returns a fully-populated Config with every field at its default.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

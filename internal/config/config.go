// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// ScoreModelPath and PriceModelPath point at serialized model
	// artifacts. Empty means the bundled training-metadata defaults.
	ScoreModelPath string `koanf:"score_model_path"`
	PriceModelPath string `koanf:"price_model_path"`

	// LedgerURL is the downstream endpoint score deltas are POSTed to.
	LedgerURL string `koanf:"ledger_url"`

	// NotifyTimeoutMS bounds one ledger delivery attempt.
	NotifyTimeoutMS int `koanf:"notify_timeout_ms"`

	// DeliveryQueueSize bounds the in-memory delta queue.
	DeliveryQueueSize int `koanf:"delivery_queue_size"`

	// DeliveryWorkerCount sets the number of delivery workers.
	DeliveryWorkerCount int `koanf:"delivery_worker_count"`

	// ClassifierSeed seeds the commit classifier's delta RNG. Zero means
	// time-seeded.
	ClassifierSeed int64 `koanf:"classifier_seed"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":8000",
		ScoreModelPath:      "",
		PriceModelPath:      "",
		LedgerURL:           "http://localhost:5000/api/integrations/score-update",
		NotifyTimeoutMS:     5000,
		DeliveryQueueSize:   10000,
		DeliveryWorkerCount: 4,
		ClassifierSeed:      0,
	}
}

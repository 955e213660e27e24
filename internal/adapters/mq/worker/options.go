// Package worker runs the delivery workers for the re-scoring pipeline.
package worker

import (
	"github.com/verifund/aiscore/pkg/logger"
)

// Option applies a configuration option to the DeliveryWorker.
type Option func(*DeliveryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *DeliveryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *DeliveryWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

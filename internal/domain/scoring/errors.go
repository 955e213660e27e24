package scoring

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package.
var (
	// ErrSchemaMismatch marks a feature vector whose length does not match
	// the model's schema. Request-fatal; the vector is never truncated or
	// padded.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrPrediction marks a failure inside the underlying model capability.
	ErrPrediction = errors.New("prediction failed")
)

// SchemaMismatchError reports a vector/schema length disagreement.
type SchemaMismatchError struct {
	Model     string
	VectorLen int
	SchemaLen int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s model: %v: vector has %d features, schema expects %d",
		e.Model, ErrSchemaMismatch, e.VectorLen, e.SchemaLen)
}

func (e *SchemaMismatchError) Unwrap() error { return ErrSchemaMismatch }

func newSchemaMismatchError(model string, vectorLen, schemaLen int) error {
	return &SchemaMismatchError{Model: model, VectorLen: vectorLen, SchemaLen: schemaLen}
}

// PredictionError wraps a model capability failure with the offending
// vector's shape for diagnostics.
type PredictionError struct {
	Model     string
	VectorLen int
	Err       error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("%s model: %v (vector length %d): %v", e.Model, ErrPrediction, e.VectorLen, e.Err)
}

func (e *PredictionError) Unwrap() error { return ErrPrediction }

func newPredictionError(model string, vectorLen int, err error) error {
	return &PredictionError{Model: model, VectorLen: vectorLen, Err: err}
}

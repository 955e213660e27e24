// Package regressor loads pre-fitted regression model artifacts and exposes
// them behind the engine's opaque prediction and attribution capabilities.
//
// An artifact is a JSON document produced by the training pipeline: the
// ordered training columns, an intercept, a weight per column, and the
// training-set baseline (mean) per column. Prediction is the dot product;
// attribution follows the additive decomposition weight * (value - baseline),
// which sums to the prediction's distance from the baseline output.
package regressor

import (
	"context"
	"encoding/json"
	"os"

	"github.com/verifund/aiscore/internal/domain/schema"
)

// Artifact mirrors the serialized model file.
type Artifact struct {
	Name      string    `json:"name"`
	Columns   []string  `json:"columns"`
	Intercept float64   `json:"intercept"`
	Weights   []float64 `json:"weights"`
	Baselines []float64 `json:"baselines"`
}

// Model is a loaded regression model. Read-only after construction and safe
// for concurrent use.
type Model struct {
	name      string
	columns   []string
	intercept float64
	weights   []float64
	baselines []float64
	schema    *schema.Schema
}

// Load reads and validates a model artifact from path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newLoadError(path, err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, newLoadError(path, err)
	}
	return FromArtifact(a)
}

// FromArtifact builds a Model from an in-memory artifact.
func FromArtifact(a Artifact) (*Model, error) {
	if len(a.Columns) == 0 {
		return nil, newMalformedError(a.Name, "no columns")
	}
	if len(a.Weights) != len(a.Columns) {
		return nil, newMalformedError(a.Name, "weights do not match columns")
	}
	if len(a.Baselines) != len(a.Columns) {
		return nil, newMalformedError(a.Name, "baselines do not match columns")
	}

	s, err := schema.New(a.Columns, schema.WithCategoricalField("project_category"))
	if err != nil {
		return nil, newMalformedError(a.Name, err.Error())
	}

	return &Model{
		name:      a.Name,
		columns:   append([]string(nil), a.Columns...),
		intercept: a.Intercept,
		weights:   append([]float64(nil), a.Weights...),
		baselines: append([]float64(nil), a.Baselines...),
		schema:    s,
	}, nil
}

// Name returns the artifact name.
func (m *Model) Name() string { return m.name }

// Schema returns the feature schema the model was trained on. Each model
// owns its own schema; callers must not assume two models share one.
func (m *Model) Schema() *schema.Schema { return m.schema }

// Predict computes the regression output for a schema-aligned vector.
func (m *Model) Predict(_ context.Context, vector []float64) (float64, error) {
	if len(vector) != len(m.weights) {
		return 0, newShapeError(m.name, len(vector), len(m.weights))
	}
	out := m.intercept
	for i, v := range vector {
		out += m.weights[i] * v
	}
	return out, nil
}

// Attribute returns one signed impact per column for a schema-aligned
// vector.
func (m *Model) Attribute(_ context.Context, vector []float64) ([]float64, error) {
	if len(vector) != len(m.weights) {
		return nil, newShapeError(m.name, len(vector), len(m.weights))
	}
	impacts := make([]float64, len(vector))
	for i, v := range vector {
		impacts[i] = m.weights[i] * (v - m.baselines[i])
	}
	return impacts, nil
}

// Package scoring wraps the pre-fitted regression models behind a small
// prediction engine.
//
// The models themselves are opaque capabilities loaded once at startup and
// safe for concurrent reads; the engine only enforces the schema contract,
// shapes the outputs, and classifies failures. Predictions are deterministic,
// so nothing here retries.
package scoring

import (
	"context"
	"math"

	"github.com/verifund/aiscore/internal/domain/schema"
)

// Price band constants. Suggested prices and both range bounds are clamped
// to this band.
const (
	PriceFloor   = 50000
	PriceCeiling = 500000

	// priceVariance is the ± fraction used to derive the price range.
	priceVariance = 0.12
)

// Model names used in errors and metrics labels.
const (
	ModelScore = "score"
	ModelPrice = "price"
)

// Predictor is the opaque trained-model capability: one scalar prediction
// per schema-aligned feature vector.
type Predictor interface {
	Predict(ctx context.Context, vector []float64) (float64, error)
}

// Quote is a pricing recommendation with its surrounding band.
type Quote struct {
	Suggested int
	Lower     int
	Upper     int
}

// Engine serves score and price predictions. Each model carries its own
// schema; the engine never assumes the two were trained on the same columns.
type Engine struct {
	scorer      Predictor
	pricer      Predictor
	scoreSchema *schema.Schema
	priceSchema *schema.Schema
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// NewEngine creates an engine around the two model capabilities and their
// schemas.
func NewEngine(scorer Predictor, scoreSchema *schema.Schema, pricer Predictor, priceSchema *schema.Schema, opts ...Option) *Engine {
	e := &Engine{
		scorer:      scorer,
		pricer:      pricer,
		scoreSchema: scoreSchema,
		priceSchema: priceSchema,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ScoreSchema returns the schema the success-score model was trained on.
func (e *Engine) ScoreSchema() *schema.Schema { return e.scoreSchema }

// PriceSchema returns the schema the pricing model was trained on.
func (e *Engine) PriceSchema() *schema.Schema { return e.priceSchema }

// Score predicts the project success score for a schema-aligned vector.
func (e *Engine) Score(ctx context.Context, vector []float64) (float64, error) {
	if len(vector) != e.scoreSchema.Len() {
		return 0, newSchemaMismatchError(ModelScore, len(vector), e.scoreSchema.Len())
	}
	score, err := e.scorer.Predict(ctx, vector)
	if err != nil {
		return 0, newPredictionError(ModelScore, len(vector), err)
	}
	return score, nil
}

// Price predicts a suggested price and derives the ±12% band, clamping the
// suggestion and both bounds to the fixed realistic band.
func (e *Engine) Price(ctx context.Context, vector []float64) (Quote, error) {
	if len(vector) != e.priceSchema.Len() {
		return Quote{}, newSchemaMismatchError(ModelPrice, len(vector), e.priceSchema.Len())
	}
	raw, err := e.pricer.Predict(ctx, vector)
	if err != nil {
		return Quote{}, newPredictionError(ModelPrice, len(vector), err)
	}

	suggested := clampPrice(int(math.Round(raw)))
	lower := clampPrice(int(math.Round(float64(suggested) * (1 - priceVariance))))
	upper := clampPrice(int(math.Round(float64(suggested) * (1 + priceVariance))))

	return Quote{Suggested: suggested, Lower: lower, Upper: upper}, nil
}

func clampPrice(p int) int {
	if p < PriceFloor {
		return PriceFloor
	}
	if p > PriceCeiling {
		return PriceCeiling
	}
	return p
}

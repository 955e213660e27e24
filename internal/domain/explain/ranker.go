// Package explain ranks per-feature contributions for one prediction.
//
// The attribution itself comes from an opaque trained-model capability (an
// additive feature-attribution method fitted alongside the model); this
// package only filters, collapses, and orders the raw impacts into the
// handful of reasons a user can act on.
package explain

import (
	"context"
	"math"
	"sort"

	"github.com/verifund/aiscore/internal/domain/model"
	"github.com/verifund/aiscore/internal/domain/schema"
)

const (
	// TopReasons caps the number of contributions returned per prediction.
	TopReasons = 5

	// impactThreshold keeps a zero-valued column only when its attribution
	// is still notable. Suppresses noise from inactive one-hot columns.
	impactThreshold = 0.01
)

// Attributor is the opaque per-model explanation capability: one signed
// impact per schema column for a single feature vector.
type Attributor interface {
	Attribute(ctx context.Context, vector []float64) ([]float64, error)
}

// Rank produces the top contributions for one prediction, sorted by
// descending absolute impact with schema order breaking ties.
//
// A column survives the filter when its input value is non-zero or its
// absolute impact exceeds the threshold. Active one-hot columns collapse to
// a single entry labeled with the source field and the category as display
// value; inactive ones are dropped entirely rather than shown as "not
// selected".
func Rank(ctx context.Context, vector []float64, attributor Attributor, s *schema.Schema) ([]model.Contribution, error) {
	if len(vector) != s.Len() {
		return nil, newVectorLengthError(len(vector), s.Len())
	}

	impacts, err := attributor.Attribute(ctx, vector)
	if err != nil {
		return nil, newAttributionError(err)
	}
	if len(impacts) != s.Len() {
		return nil, newVectorLengthError(len(impacts), s.Len())
	}

	contributions := make([]model.Contribution, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		value := vector[i]
		impact := round2(impacts[i])
		if value == 0 && math.Abs(impacts[i]) <= impactThreshold {
			continue
		}

		col := s.Column(i)
		if e, ok := s.Expansion(col); ok {
			if value != 1 {
				continue
			}
			contributions = append(contributions, model.Contribution{
				Feature: e.SourceField,
				Value:   e.Category,
				Impact:  impact,
			})
			continue
		}

		contributions = append(contributions, model.Contribution{
			Feature: col,
			Value:   round2(value),
			Impact:  impact,
		})
	}

	sort.SliceStable(contributions, func(i, j int) bool {
		return math.Abs(contributions[i].Impact) > math.Abs(contributions[j].Impact)
	})

	if len(contributions) > TopReasons {
		contributions = contributions[:TopReasons]
	}
	return contributions, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

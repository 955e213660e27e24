// Package features converts validated creator records into schema-aligned
// feature vectors.
//
// Reconcile must reproduce the training-time encoding exactly: the output
// vector's length and positional meaning always match the schema, whatever
// the record contains. Any divergence here silently corrupts predictions
// with no error signal, so the mapping is covered by a round-trip test
// against the exact training schema.
package features

import (
	"github.com/verifund/aiscore/internal/domain/model"
	"github.com/verifund/aiscore/internal/domain/schema"
)

// Reconcile encodes a record against a schema. Numeric columns are copied
// verbatim, the expansion column matching the record's category is set to 1,
// and every other column defaults to 0. Unknown categories (already rejected
// upstream) leave all expansion columns at 0 rather than erroring.
func Reconcile(record model.CreatorRecord, s *schema.Schema) []float64 {
	numeric := record.NumericFields()
	categorical := record.CategoricalFields()
	vector := make([]float64, s.Len())

	for i, col := range s.Columns() {
		if e, ok := s.Expansion(col); ok {
			if categorical[e.SourceField] == e.Category {
				vector[i] = 1
			}
			continue
		}
		if v, ok := numeric[col]; ok {
			vector[i] = v
		}
	}

	return vector
}

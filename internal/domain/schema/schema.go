// Package schema defines the ordered feature column contract a model was
// trained against.
//
// A Schema is immutable after construction. Each loaded model owns its own
// Schema; nothing in the service assumes the score and price models share
// one column list.
package schema

import (
	"strings"
)

// Expansion identifies a one-hot column derived from a categorical source
// field at training time.
type Expansion struct {
	SourceField string
	Category    string
}

// Schema is the ordered, read-only list of model input columns.
type Schema struct {
	columns    []string
	index      map[string]int
	expansions map[string]Expansion
}

// Option applies a configuration option during construction.
type Option func(*builder)

type builder struct {
	categoricalFields []string
}

// WithCategoricalField declares a source field whose one-hot expansion
// columns appear in the column list as "<field>_<category>".
func WithCategoricalField(field string) Option {
	return func(b *builder) {
		if field != "" {
			b.categoricalFields = append(b.categoricalFields, field)
		}
	}
}

// New builds a Schema from the training column list. Column order is
// preserved exactly; it is the contract the model's feature vectors must
// honor for the lifetime of the deployment.
func New(columns []string, opts ...Option) (*Schema, error) {
	if len(columns) == 0 {
		return nil, ErrEmptySchema
	}

	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}

	s := &Schema{
		columns:    make([]string, len(columns)),
		index:      make(map[string]int, len(columns)),
		expansions: make(map[string]Expansion),
	}
	copy(s.columns, columns)

	for i, col := range s.columns {
		if _, dup := s.index[col]; dup {
			return nil, newDuplicateColumnError(col)
		}
		s.index[col] = i

		for _, field := range b.categoricalFields {
			prefix := field + "_"
			if strings.HasPrefix(col, prefix) && len(col) > len(prefix) {
				s.expansions[col] = Expansion{
					SourceField: field,
					Category:    col[len(prefix):],
				}
				break
			}
		}
	}

	return s, nil
}

// Columns returns a copy of the ordered column list.
func (s *Schema) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return len(s.columns)
}

// Column returns the column name at position i.
func (s *Schema) Column(i int) string {
	return s.columns[i]
}

// Index returns the position of a column, or false if the column is not
// part of the schema.
func (s *Schema) Index(column string) (int, bool) {
	i, ok := s.index[column]
	return i, ok
}

// Expansion reports whether a column is a categorical expansion and, if so,
// its source field and category value.
func (s *Schema) Expansion(column string) (Expansion, bool) {
	e, ok := s.expansions[column]
	return e, ok
}

// Categories returns the known category values for a source field, in
// column order.
func (s *Schema) Categories(field string) []string {
	var out []string
	for _, col := range s.columns {
		if e, ok := s.expansions[col]; ok && e.SourceField == field {
			out = append(out, e.Category)
		}
	}
	return out
}

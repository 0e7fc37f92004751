// Package dataset loads tabular input for the star coordinates view.
//
// A dataset is a fixed table read once at load time: numeric columns become
// the projection dimensions, non-numeric columns become nominal display
// attributes, and one column (or a generated fallback) names each point.
package dataset

import (
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
)

// NameColumn is the preferred header for the point identifier column.
// When absent, the first nominal column is used; when there are no nominal
// columns at all, identifiers are generated.
const NameColumn = "name"

// Table is an immutable, column-addressable dataset. All columns have the
// same length, fixed at load time.
type Table struct {
	names      []string
	dimensions []string
	nominals   []string
	values     map[string][]float64
	labels     map[string][]string
	source     string
}

// NewTable assembles a Table from parsed columns. Every dimension column in
// values and every nominal column in labels must have exactly len(names)
// entries.
func NewTable(source string, names []string, dimensions []string, values map[string][]float64, nominals []string, labels map[string][]string) (*Table, error) {
	n := len(names)
	if n == 0 {
		return nil, fmt.Errorf("dataset %q has no rows", source)
	}
	if len(dimensions) == 0 {
		return nil, fmt.Errorf("dataset %q has no numeric columns", source)
	}
	for _, dim := range dimensions {
		col, ok := values[dim]
		if !ok {
			return nil, fmt.Errorf("dimension %q has no value column", dim)
		}
		if len(col) != n {
			return nil, fmt.Errorf("dimension %q has %d values, want %d", dim, len(col), n)
		}
	}
	for _, nom := range nominals {
		col, ok := labels[nom]
		if !ok {
			return nil, fmt.Errorf("nominal column %q has no values", nom)
		}
		if len(col) != n {
			return nil, fmt.Errorf("nominal column %q has %d values, want %d", nom, len(col), n)
		}
	}
	return &Table{
		names:      names,
		dimensions: dimensions,
		nominals:   nominals,
		values:     values,
		labels:     labels,
		source:     source,
	}, nil
}

// Source returns the file (or table) the dataset was loaded from.
func (t *Table) Source() string { return t.source }

// NumPoints returns the number of rows.
func (t *Table) NumPoints() int { return len(t.names) }

// Names returns a copy of the point identifiers, in row order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Dimensions returns a copy of the numeric column labels, in file order.
func (t *Table) Dimensions() []string {
	out := make([]string, len(t.dimensions))
	copy(out, t.dimensions)
	return out
}

// Nominals returns a copy of the non-numeric column labels, in file order.
func (t *Table) Nominals() []string {
	out := make([]string, len(t.nominals))
	copy(out, t.nominals)
	return out
}

// Column returns a copy of the named dimension column.
func (t *Table) Column(dim string) ([]float64, error) {
	col, ok := t.values[dim]
	if !ok {
		return nil, fmt.Errorf("unknown dimension %q", dim)
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out, nil
}

// NominalColumn returns a copy of the named nominal column.
func (t *Table) NominalColumn(label string) ([]string, error) {
	col, ok := t.labels[label]
	if !ok {
		return nil, fmt.Errorf("unknown nominal column %q", label)
	}
	out := make([]string, len(col))
	copy(out, col)
	return out, nil
}

// Matrix returns the dimension values as a dense NumPoints x len(Dimensions)
// matrix, column order matching Dimensions().
func (t *Table) Matrix() *mat.Dense {
	n := t.NumPoints()
	d := len(t.dimensions)
	m := mat.NewDense(n, d, nil)
	for j, dim := range t.dimensions {
		col := t.values[dim]
		for i := 0; i < n; i++ {
			m.Set(i, j, col[i])
		}
	}
	return m
}

// generatedNames produces stable-within-load identifiers for rows that have
// no label column.
func generatedNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = "point-" + uuid.NewString()[:8]
	}
	return names
}

// Package render provides the shared mutable buffer the web layer observes.
//
// The buffer is a key-to-column-vector store with a fixed row count. Writers
// only ever replace whole named columns; there are no cell-level writes. The
// buffer is owned by the view's event-handling path, so writes are not
// internally locked — observers take snapshots through the owner.
package render

import "fmt"

// Well-known column names.
const (
	ColX        = "x"
	ColY        = "y"
	ColSize     = "size"
	ColColor    = "color"
	ColCategory = "category"
	ColName     = "name"
	ColError    = "error"
)

// Buffer holds the render columns for a fixed point set.
type Buffer struct {
	n       int
	floats  map[string][]float64
	strings map[string][]string
	order   []string
	version uint64
}

// NewBuffer creates a buffer for n points with no columns.
func NewBuffer(n int) *Buffer {
	return &Buffer{
		n:       n,
		floats:  make(map[string][]float64),
		strings: make(map[string][]string),
	}
}

// Len returns the fixed row count.
func (b *Buffer) Len() int { return b.n }

// Version increments on every column replacement; observers use it to detect
// staleness cheaply.
func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) track(name string) {
	if _, f := b.floats[name]; f {
		return
	}
	if _, s := b.strings[name]; s {
		return
	}
	b.order = append(b.order, name)
}

// SetFloats replaces a numeric column. The replacement must cover every row.
func (b *Buffer) SetFloats(name string, col []float64) error {
	if len(col) != b.n {
		return fmt.Errorf("column %q has %d rows, buffer holds %d", name, len(col), b.n)
	}
	if _, ok := b.strings[name]; ok {
		return fmt.Errorf("column %q already holds strings", name)
	}
	b.track(name)
	stored := make([]float64, b.n)
	copy(stored, col)
	b.floats[name] = stored
	b.version++
	return nil
}

// SetStrings replaces a string column. The replacement must cover every row.
func (b *Buffer) SetStrings(name string, col []string) error {
	if len(col) != b.n {
		return fmt.Errorf("column %q has %d rows, buffer holds %d", name, len(col), b.n)
	}
	if _, ok := b.floats[name]; ok {
		return fmt.Errorf("column %q already holds floats", name)
	}
	b.track(name)
	stored := make([]string, b.n)
	copy(stored, col)
	b.strings[name] = stored
	b.version++
	return nil
}

// Floats returns a copy of a numeric column.
func (b *Buffer) Floats(name string) ([]float64, error) {
	col, ok := b.floats[name]
	if !ok {
		return nil, fmt.Errorf("unknown numeric column %q", name)
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out, nil
}

// Strings returns a copy of a string column.
func (b *Buffer) Strings(name string) ([]string, error) {
	col, ok := b.strings[name]
	if !ok {
		return nil, fmt.Errorf("unknown string column %q", name)
	}
	out := make([]string, len(col))
	copy(out, col)
	return out, nil
}

// Columns returns the column names in insertion order.
func (b *Buffer) Columns() []string {
	return append([]string(nil), b.order...)
}

// Snapshot returns a deep copy of every column keyed by name, suitable for
// JSON encoding or handoff to another goroutine.
func (b *Buffer) Snapshot() map[string]any {
	out := make(map[string]any, len(b.order))
	for name, col := range b.floats {
		c := make([]float64, len(col))
		copy(c, col)
		out[name] = c
	}
	for name, col := range b.strings {
		c := make([]string, len(col))
		copy(c, col)
		out[name] = c
	}
	return out
}

package star

// Layout is a complete point layout: one (x, y) position per point, keyed by
// row order with Names carrying the point identifiers. Layouts are always
// produced whole; a recompute never patches a previous layout in place.
type Layout struct {
	Names []string
	X     []float64
	Y     []float64
}

// NewLayout allocates a layout for the given identifiers.
func NewLayout(names []string) *Layout {
	return &Layout{
		Names: names,
		X:     make([]float64, len(names)),
		Y:     make([]float64, len(names)),
	}
}

// Len returns the number of points in the layout.
func (l *Layout) Len() int { return len(l.Names) }

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() *Layout {
	c := NewLayout(l.Names)
	copy(c.X, l.X)
	copy(c.Y, l.Y)
	return c
}

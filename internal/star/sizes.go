package star

// Point size bounds. InitialSize draws the point with the minimum error,
// FinalSize the point with the maximum error.
const (
	DefaultInitialSize = 4.0
	DefaultFinalSize   = 12.0
	MinPointSize       = 1.0
)

// SizeScaler maps normalized projection error to point sizes along the line
// through (0, initial) and (1, final). Both bounds are clamped to
// MinPointSize.
type SizeScaler struct {
	initial float64
	final   float64
}

// NewSizeScaler creates a scaler with the given bounds, clamped.
func NewSizeScaler(initial, final float64) *SizeScaler {
	return &SizeScaler{
		initial: clampSize(initial),
		final:   clampSize(final),
	}
}

func clampSize(size float64) float64 {
	if size < MinPointSize {
		return MinPointSize
	}
	return size
}

// Initial returns the size at normalized error 0.
func (s *SizeScaler) Initial() float64 { return s.initial }

// Final returns the size at normalized error 1.
func (s *SizeScaler) Final() float64 { return s.final }

// SetInitial updates the size at error 0, clamped to MinPointSize.
func (s *SizeScaler) SetInitial(size float64) { s.initial = clampSize(size) }

// SetFinal updates the size at error 1, clamped to MinPointSize.
func (s *SizeScaler) SetFinal(size float64) { s.final = clampSize(size) }

// Sizes computes the full size vector for the given normalized errors:
// size = m*err + c with (m, c) solved from the two bound control points.
func (s *SizeScaler) Sizes(normalizedErrors []float64) []float64 {
	eq := SolveLine(0, s.initial, 1, s.final)
	out := make([]float64, len(normalizedErrors))
	for i, e := range normalizedErrors {
		out[i] = eq.YAt(e)
	}
	return out
}

// Uniform returns a size vector with every entry set to the same clamped
// size, bypassing the line equation and leaving the stored bounds untouched.
func (s *SizeScaler) Uniform(n int, size float64) []float64 {
	size = clampSize(size)
	out := make([]float64, n)
	for i := range out {
		out[i] = size
	}
	return out
}

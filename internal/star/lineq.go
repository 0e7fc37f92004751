package star

// LineEquation is the slope/intercept form y = M*x + C solved from two
// coordinate pairs. It backs both the animation trajectories and the
// point-size scaling.
type LineEquation struct {
	M float64
	C float64
	// Vertical marks a degenerate fit where both endpoints share the same
	// x but differ in y. M and C are meaningless in that case; callers
	// must hold x constant and interpolate y directly.
	Vertical bool
}

// SolveLine fits a line through (x0, y0) and (x1, y1).
//
// When the x delta is zero the slope is undefined. If the y delta is also
// zero the two endpoints coincide and the fit collapses to the horizontal
// line y = y0. Otherwise the line is reported as vertical rather than
// dividing by zero.
func SolveLine(x0, y0, x1, y1 float64) LineEquation {
	if x1 == x0 {
		if y1 == y0 {
			return LineEquation{M: 0, C: y0}
		}
		return LineEquation{Vertical: true}
	}
	m := (y1 - y0) / (x1 - x0)
	return LineEquation{M: m, C: y0 - m*x0}
}

// YAt evaluates the line at x. Undefined for vertical lines.
func (l LineEquation) YAt(x float64) float64 {
	return l.M*x + l.C
}

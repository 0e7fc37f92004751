package star

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Error metric identifiers.
const (
	ErrorAbsoluteSumID = "absolute_sum"
	ErrorSquaredSumID  = "squared_sum"
)

// ErrorMetric computes a per-point deviation between the original normalized
// representation and its 2D projection. The returned vector is in raw metric
// units; callers normalize with NormalizeErrors before scaling sizes or
// colors. Recompute is always full-dataset.
type ErrorMetric interface {
	Name() string
	Compute(values *mat.Dense, vectors *VectorTable, layout *Layout) ([]float64, error)
}

// NewErrorRegistry registers the built-in error metrics with the absolute
// residual sum active by default.
func NewErrorRegistry() *Registry[ErrorMetric] {
	ids := []string{ErrorAbsoluteSumID, ErrorSquaredSumID}
	return NewRegistry(ids, map[string]ErrorMetric{
		ErrorAbsoluteSumID: AbsoluteSumError{},
		ErrorSquaredSumID:  SquaredSumError{},
	})
}

// axisResiduals accumulates, for each point, the per-axis difference between
// the original normalized value and the value read back by projecting the
// mapped 2D position onto that axis. Hidden axes are skipped: a dimension
// excluded from the mapping cannot contribute projection error. combine
// folds each |residual| into the running total.
func axisResiduals(values *mat.Dense, vectors *VectorTable, layout *Layout, combine func(acc, residual float64) float64) ([]float64, error) {
	rows, cols := values.Dims()
	if rows != layout.Len() {
		return nil, fmt.Errorf("value matrix has %d rows for %d layout points", rows, layout.Len())
	}
	if cols != vectors.Len() {
		return nil, fmt.Errorf("value matrix has %d dimensions for %d axes", cols, vectors.Len())
	}
	errs := make([]float64, rows)
	for j, v := range vectors.All() {
		if !v.Visible {
			continue
		}
		norm2 := v.X*v.X + v.Y*v.Y
		if norm2 == 0 {
			continue
		}
		for i := 0; i < rows; i++ {
			reconstructed := (layout.X[i]*v.X + layout.Y[i]*v.Y) / norm2
			errs[i] = combine(errs[i], math.Abs(values.At(i, j)-reconstructed))
		}
	}
	return errs, nil
}

// AbsoluteSumError sums the absolute per-axis residuals.
type AbsoluteSumError struct{}

func (AbsoluteSumError) Name() string { return ErrorAbsoluteSumID }

func (AbsoluteSumError) Compute(values *mat.Dense, vectors *VectorTable, layout *Layout) ([]float64, error) {
	return axisResiduals(values, vectors, layout, func(acc, r float64) float64 {
		return acc + r
	})
}

// SquaredSumError sums the squared per-axis residuals, penalising large
// single-axis deviations more heavily.
type SquaredSumError struct{}

func (SquaredSumError) Name() string { return ErrorSquaredSumID }

func (SquaredSumError) Compute(values *mat.Dense, vectors *VectorTable, layout *Layout) ([]float64, error) {
	return axisResiduals(values, vectors, layout, func(acc, r float64) float64 {
		return acc + r*r
	})
}

package star

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Normalization strategy identifiers.
const (
	NormalizeMinMaxID        = "min_max"
	NormalizeStandardScoreID = "standard_score"
)

// Normalizer rescales raw dimension values column by column before mapping.
// The output matrix has the same shape as the input; the input is never
// modified.
type Normalizer interface {
	Name() string
	Normalize(values *mat.Dense) *mat.Dense
}

// NewNormalizerRegistry registers the built-in normalization strategies with
// min-max active by default.
func NewNormalizerRegistry() *Registry[Normalizer] {
	ids := []string{NormalizeMinMaxID, NormalizeStandardScoreID}
	return NewRegistry(ids, map[string]Normalizer{
		NormalizeMinMaxID:        MinMaxNormalizer{},
		NormalizeStandardScoreID: StandardScoreNormalizer{},
	})
}

// MinMaxNormalizer rescales each column to [0, 1]. A constant column maps to
// all zeros rather than dividing by a zero range.
type MinMaxNormalizer struct{}

func (MinMaxNormalizer) Name() string { return NormalizeMinMaxID }

func (MinMaxNormalizer) Normalize(values *mat.Dense) *mat.Dense {
	rows, cols := values.Dims()
	out := mat.NewDense(rows, cols, nil)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, values)
		min := floats.Min(col)
		span := floats.Max(col) - min
		for i := 0; i < rows; i++ {
			if span == 0 {
				out.Set(i, j, 0)
				continue
			}
			out.Set(i, j, (col[i]-min)/span)
		}
	}
	return out
}

// StandardScoreNormalizer rescales each column to zero mean and unit
// standard deviation. A constant column maps to all zeros.
type StandardScoreNormalizer struct{}

func (StandardScoreNormalizer) Name() string { return NormalizeStandardScoreID }

func (StandardScoreNormalizer) Normalize(values *mat.Dense) *mat.Dense {
	rows, cols := values.Dims()
	out := mat.NewDense(rows, cols, nil)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, values)
		mean, std := stat.MeanStdDev(col, nil)
		for i := 0; i < rows; i++ {
			if std == 0 {
				out.Set(i, j, 0)
				continue
			}
			out.Set(i, j, (col[i]-mean)/std)
		}
	}
	return out
}

// NormalizeErrors min-max scales an error vector to [0, 1] in place-free
// fashion: the minimum maps to 0, the maximum to 1, and an all-equal vector
// maps to all zeros.
func NormalizeErrors(errs []float64) []float64 {
	out := make([]float64, len(errs))
	if len(errs) == 0 {
		return out
	}
	min := floats.Min(errs)
	span := floats.Max(errs) - min
	if span == 0 {
		return out
	}
	for i, e := range errs {
		out[i] = (e - min) / span
	}
	return out
}

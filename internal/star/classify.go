package star

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Classification source identifiers. The classifier is the one strategy
// category whose "algorithm" is a choice of category source rather than a
// computation: none (inactive), the clustering output, or a nominal column.
const (
	ClassifyNoneID    = "none"
	ClassifyClusterID = "cluster"
	ClassifyNominalID = "nominal"
)

// Classifier relocates axis endpoints from category structure: each axis
// keeps its current direction but is re-lengthened by how well its dimension
// separates the active categories. Dimensions whose between-category spread
// is large stretch toward unit length; undiscriminating dimensions shrink.
type Classifier struct {
	source        string
	nominalColumn string
}

// NewClassifier starts inactive.
func NewClassifier() *Classifier {
	return &Classifier{source: ClassifyNoneID}
}

// Sources lists the selectable category sources.
func (c *Classifier) Sources() []string {
	return []string{ClassifyNoneID, ClassifyClusterID, ClassifyNominalID}
}

// ActiveSource returns the current category source identifier.
func (c *Classifier) ActiveSource() string { return c.source }

// NominalColumn returns the nominal column used when the source is nominal.
func (c *Classifier) NominalColumn() string { return c.nominalColumn }

// SetSource selects the category source. The nominal source additionally
// needs a column name.
func (c *Classifier) SetSource(source, nominalColumn string) error {
	switch source {
	case ClassifyNoneID, ClassifyClusterID:
		c.source = source
		c.nominalColumn = ""
		return nil
	case ClassifyNominalID:
		if nominalColumn == "" {
			return fmt.Errorf("nominal classification needs a column name")
		}
		c.source = source
		c.nominalColumn = nominalColumn
		return nil
	default:
		return fmt.Errorf("unknown classification source %q", source)
	}
}

// Active reports whether relocation should run after a classification or
// clustering change.
func (c *Classifier) Active() bool { return c.source != ClassifyNoneID }

// Relocate computes new axis endpoints from the normalized values and the
// per-point categories. The axis identifier set is exactly the dimension
// set of the vector table; directions are preserved and only lengths change.
func (c *Classifier) Relocate(values *mat.Dense, vectors *VectorTable, categories []string) (map[string][2]float64, error) {
	rows, cols := values.Dims()
	if len(categories) != rows {
		return nil, fmt.Errorf("%d categories for %d points", len(categories), rows)
	}
	if cols != vectors.Len() {
		return nil, fmt.Errorf("value matrix has %d dimensions for %d axes", cols, vectors.Len())
	}

	groups := make(map[string][]int)
	for i, cat := range categories {
		groups[cat] = append(groups[cat], i)
	}

	// Between-category spread per dimension: the standard deviation of the
	// category means, normalized below across dimensions.
	spread := make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, values)
		means := make([]float64, 0, len(groups))
		for _, idxs := range groups {
			sum := 0.0
			for _, i := range idxs {
				sum += col[i]
			}
			means = append(means, sum/float64(len(idxs)))
		}
		if len(means) > 1 {
			spread[j] = stat.StdDev(means, nil)
		}
	}

	maxSpread := 0.0
	for _, s := range spread {
		if s > maxSpread {
			maxSpread = s
		}
	}

	endpoints := make(map[string][2]float64, cols)
	for j, v := range vectors.All() {
		length := math.Hypot(v.X, v.Y)
		if length == 0 {
			endpoints[v.ID] = [2]float64{0, 0}
			continue
		}
		scale := 1.0
		if maxSpread > 0 {
			scale = spread[j] / maxSpread
		}
		endpoints[v.ID] = [2]float64{v.X / length * scale, v.Y / length * scale}
	}
	return endpoints, nil
}

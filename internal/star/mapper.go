package star

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Mapping strategy identifiers.
const (
	MapStarID         = "star_coordinates"
	MapAveragedStarID = "averaged_star"
)

// Mapper projects normalized per-dimension values through the current axis
// vectors into a complete 2D layout. The output always covers every point in
// the input and fully replaces any previous layout.
type Mapper interface {
	Name() string
	Map(names []string, values *mat.Dense, vectors *VectorTable) (*Layout, error)
}

// NewMapperRegistry registers the built-in mapping strategies with the plain
// star-coordinates sum active by default.
func NewMapperRegistry() *Registry[Mapper] {
	ids := []string{MapStarID, MapAveragedStarID}
	return NewRegistry(ids, map[string]Mapper{
		MapStarID:         StarMapper{},
		MapAveragedStarID: AveragedStarMapper{},
	})
}

// starProduct performs the core linear combination: for each point p,
// position[p] = sum over axes a of values[p][a] * vector[a]. Hidden axes
// contribute zero rows in the vector matrix and so drop out of the sum for
// this recompute only.
func starProduct(names []string, values *mat.Dense, vectors *VectorTable) (*mat.Dense, error) {
	rows, cols := values.Dims()
	if rows != len(names) {
		return nil, fmt.Errorf("value matrix has %d rows for %d points", rows, len(names))
	}
	if cols != vectors.Len() {
		return nil, fmt.Errorf("value matrix has %d dimensions for %d axes", cols, vectors.Len())
	}
	var pos mat.Dense
	pos.Mul(values, vectors.Matrix())
	return &pos, nil
}

func layoutFromPositions(names []string, pos *mat.Dense) *Layout {
	l := NewLayout(names)
	for i := range names {
		l.X[i] = pos.At(i, 0)
		l.Y[i] = pos.At(i, 1)
	}
	return l
}

// StarMapper is the classic star-coordinates projection: the plain sum of
// dimension values scaled by their axis vectors.
type StarMapper struct{}

func (StarMapper) Name() string { return MapStarID }

func (StarMapper) Map(names []string, values *mat.Dense, vectors *VectorTable) (*Layout, error) {
	pos, err := starProduct(names, values, vectors)
	if err != nil {
		return nil, err
	}
	return layoutFromPositions(names, pos), nil
}

// AveragedStarMapper divides the star-coordinates sum by the number of
// visible axes, keeping the layout scale stable when axes are toggled.
type AveragedStarMapper struct{}

func (AveragedStarMapper) Name() string { return MapAveragedStarID }

func (AveragedStarMapper) Map(names []string, values *mat.Dense, vectors *VectorTable) (*Layout, error) {
	pos, err := starProduct(names, values, vectors)
	if err != nil {
		return nil, err
	}
	active := 0
	for _, v := range vectors.All() {
		if v.Visible {
			active++
		}
	}
	if active > 1 {
		pos.Scale(1/float64(active), pos)
	}
	return layoutFromPositions(names, pos), nil
}

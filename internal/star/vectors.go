package star

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Default display attributes for axis segments, matching the web UI styling.
const (
	DefaultAxisColor = "#F4A582"
	DefaultAxisWidth = 2.0
)

// Vector is a single star-coordinates axis: a 2D direction anchored at the
// origin, identified by the dimension label it projects.
type Vector struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Visible bool    `json:"visible"`
	Color   string  `json:"color"`
	Width   float64 `json:"width"`
}

// VectorTable holds one axis vector per dataset dimension, in dimension
// order. Vectors are mutated by drag interactions and axis relocation; the
// identifier set never changes after construction.
type VectorTable struct {
	order   []string
	vectors map[string]*Vector
}

// NewVectorTable creates one unit-length vector per dimension, spaced evenly
// around the origin starting from the positive x axis. All axes start
// visible.
func NewVectorTable(dimensions []string) *VectorTable {
	vt := &VectorTable{
		order:   append([]string(nil), dimensions...),
		vectors: make(map[string]*Vector, len(dimensions)),
	}
	n := len(dimensions)
	for i, dim := range dimensions {
		theta := 2 * math.Pi * float64(i) / float64(n)
		vt.vectors[dim] = &Vector{
			ID:      dim,
			X:       math.Cos(theta),
			Y:       math.Sin(theta),
			Visible: true,
			Color:   DefaultAxisColor,
			Width:   DefaultAxisWidth,
		}
	}
	return vt
}

// IDs returns the axis identifiers in dimension order.
func (vt *VectorTable) IDs() []string {
	return append([]string(nil), vt.order...)
}

// Len returns the number of axes.
func (vt *VectorTable) Len() int { return len(vt.order) }

// Get returns a copy of the named vector.
func (vt *VectorTable) Get(id string) (Vector, error) {
	v, ok := vt.vectors[id]
	if !ok {
		return Vector{}, fmt.Errorf("unknown axis %q", id)
	}
	return *v, nil
}

// Update moves the endpoint of the named axis. This is the drag-interaction
// entry point: the axis keeps its visibility and display attributes.
func (vt *VectorTable) Update(id string, x, y float64) error {
	v, ok := vt.vectors[id]
	if !ok {
		return fmt.Errorf("unknown axis %q", id)
	}
	v.X = x
	v.Y = y
	return nil
}

// SetVisible flags the named axis in or out of the active set. Hiding an
// axis does not destroy its stored vector.
func (vt *VectorTable) SetVisible(id string, visible bool) error {
	v, ok := vt.vectors[id]
	if !ok {
		return fmt.Errorf("unknown axis %q", id)
	}
	v.Visible = visible
	return nil
}

// UpdateAll moves the endpoints of every axis named in endpoints. Used by
// axis relocation after classification. Unknown identifiers are rejected
// before any endpoint is touched, so a failed update leaves the table
// unchanged.
func (vt *VectorTable) UpdateAll(endpoints map[string][2]float64) error {
	for id := range endpoints {
		if _, ok := vt.vectors[id]; !ok {
			return fmt.Errorf("unknown axis %q", id)
		}
	}
	for id, p := range endpoints {
		v := vt.vectors[id]
		v.X = p[0]
		v.Y = p[1]
	}
	return nil
}

// All returns copies of every vector, in dimension order.
func (vt *VectorTable) All() []Vector {
	out := make([]Vector, 0, len(vt.order))
	for _, id := range vt.order {
		out = append(out, *vt.vectors[id])
	}
	return out
}

// Matrix returns the axes as a len(dimensions) x 2 matrix in dimension
// order. Hidden axes contribute zero rows, which excludes them from the
// mapping product without discarding their stored direction.
func (vt *VectorTable) Matrix() *mat.Dense {
	m := mat.NewDense(len(vt.order), 2, nil)
	for i, id := range vt.order {
		v := vt.vectors[id]
		if !v.Visible {
			continue
		}
		m.Set(i, 0, v.X)
		m.Set(i, 1, v.Y)
	}
	return m
}

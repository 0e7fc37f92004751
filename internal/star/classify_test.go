package star

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestClassifierSourceSelection(t *testing.T) {
	c := NewClassifier()
	if c.Active() {
		t.Error("new classifier should start inactive")
	}

	if err := c.SetSource(ClassifyClusterID, ""); err != nil {
		t.Fatalf("SetSource(cluster) failed: %v", err)
	}
	if !c.Active() {
		t.Error("cluster source should be active")
	}

	if err := c.SetSource(ClassifyNominalID, ""); err == nil {
		t.Error("nominal source without a column must fail")
	}
	if c.ActiveSource() != ClassifyClusterID {
		t.Errorf("failed SetSource changed state to %q", c.ActiveSource())
	}

	if err := c.SetSource(ClassifyNominalID, "species"); err != nil {
		t.Fatalf("SetSource(nominal) failed: %v", err)
	}
	if c.NominalColumn() != "species" {
		t.Errorf("nominal column = %q, want species", c.NominalColumn())
	}

	if err := c.SetSource("bogus", ""); err == nil {
		t.Error("unknown source must fail")
	}
}

func TestRelocatePreservesDirection(t *testing.T) {
	vt := NewVectorTable([]string{"a", "b"})

	// Dimension a separates the two categories; b does not.
	values := mat.NewDense(4, 2, []float64{
		0.0, 0.5,
		0.1, 0.5,
		0.9, 0.5,
		1.0, 0.5,
	})
	categories := []string{"g0", "g0", "g1", "g1"}

	c := NewClassifier()
	endpoints, err := c.Relocate(values, vt, categories)
	if err != nil {
		t.Fatalf("Relocate failed: %v", err)
	}
	if len(endpoints) != 2 {
		t.Fatalf("got endpoints for %d axes, want 2", len(endpoints))
	}

	// The discriminating axis stretches to unit length, keeping direction.
	a, _ := vt.Get("a")
	ea := endpoints["a"]
	lenA := math.Hypot(ea[0], ea[1])
	if math.Abs(lenA-1) > 1e-9 {
		t.Errorf("axis a length = %v, want 1", lenA)
	}
	origLen := math.Hypot(a.X, a.Y)
	cross := a.X/origLen*ea[1] - a.Y/origLen*ea[0]
	if math.Abs(cross) > 1e-9 {
		t.Errorf("axis a changed direction: cross product %v", cross)
	}

	// The flat dimension collapses.
	eb := endpoints["b"]
	if math.Hypot(eb[0], eb[1]) > 1e-9 {
		t.Errorf("undiscriminating axis b kept length %v", math.Hypot(eb[0], eb[1]))
	}
}

func TestRelocateShapeChecks(t *testing.T) {
	vt := NewVectorTable([]string{"a"})
	values := mat.NewDense(2, 1, nil)
	c := NewClassifier()

	if _, err := c.Relocate(values, vt, []string{"only-one"}); err == nil {
		t.Error("expected error for category count mismatch")
	}

	wide := mat.NewDense(2, 3, nil)
	if _, err := c.Relocate(wide, vt, []string{"x", "y"}); err == nil {
		t.Error("expected error for dimension mismatch")
	}
}

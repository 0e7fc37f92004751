package star

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestStarMapperLinearCombination(t *testing.T) {
	vt := NewVectorTable([]string{"a", "b"})
	if err := vt.Update("a", 1, 0); err != nil {
		t.Fatal(err)
	}
	if err := vt.Update("b", 0, 1); err != nil {
		t.Fatal(err)
	}

	values := mat.NewDense(2, 2, []float64{
		0.5, 0.25,
		1.0, 0.0,
	})
	layout, err := StarMapper{}.Map([]string{"p0", "p1"}, values, vt)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	if layout.X[0] != 0.5 || layout.Y[0] != 0.25 {
		t.Errorf("p0 = (%v, %v), want (0.5, 0.25)", layout.X[0], layout.Y[0])
	}
	if layout.X[1] != 1.0 || layout.Y[1] != 0.0 {
		t.Errorf("p1 = (%v, %v), want (1, 0)", layout.X[1], layout.Y[1])
	}
}

func TestStarMapperHiddenAxisDropsOut(t *testing.T) {
	vt := NewVectorTable([]string{"a", "b", "c"})
	values := mat.NewDense(1, 3, []float64{0.3, 0.6, 0.9})
	names := []string{"p0"}

	full, err := StarMapper{}.Map(names, values, vt)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	if err := vt.SetVisible("b", false); err != nil {
		t.Fatal(err)
	}
	partial, err := StarMapper{}.Map(names, values, vt)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	// Hiding b must equal subtracting b's contribution from the full sum.
	b, _ := vt.Get("b")
	wantX := full.X[0] - 0.6*b.X
	wantY := full.Y[0] - 0.6*b.Y
	if math.Abs(partial.X[0]-wantX) > 1e-12 || math.Abs(partial.Y[0]-wantY) > 1e-12 {
		t.Errorf("hidden axis layout = (%v, %v), want (%v, %v)", partial.X[0], partial.Y[0], wantX, wantY)
	}

	// Restoring visibility restores the original mapping: hiding never
	// destroys the stored vector.
	if err := vt.SetVisible("b", true); err != nil {
		t.Fatal(err)
	}
	restored, err := StarMapper{}.Map(names, values, vt)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	if restored.X[0] != full.X[0] || restored.Y[0] != full.Y[0] {
		t.Errorf("restored layout = (%v, %v), want (%v, %v)", restored.X[0], restored.Y[0], full.X[0], full.Y[0])
	}
}

func TestAveragedStarMapperScales(t *testing.T) {
	vt := NewVectorTable([]string{"a", "b"})
	values := mat.NewDense(1, 2, []float64{1, 1})
	names := []string{"p0"}

	plain, err := StarMapper{}.Map(names, values, vt)
	if err != nil {
		t.Fatal(err)
	}
	averaged, err := AveragedStarMapper{}.Map(names, values, vt)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(averaged.X[0]-plain.X[0]/2) > 1e-12 {
		t.Errorf("averaged x = %v, want %v", averaged.X[0], plain.X[0]/2)
	}
}

func TestStarMapperDimensionMismatch(t *testing.T) {
	vt := NewVectorTable([]string{"a", "b"})
	values := mat.NewDense(1, 3, []float64{1, 2, 3})
	if _, err := (StarMapper{}).Map([]string{"p0"}, values, vt); err == nil {
		t.Fatal("expected error for dimension mismatch")
	}

	values = mat.NewDense(2, 2, nil)
	if _, err := (StarMapper{}).Map([]string{"p0"}, values, vt); err == nil {
		t.Fatal("expected error for row count mismatch")
	}
}

package star

import "testing"

func TestCategoryColorsStable(t *testing.T) {
	c := NewColorMapper()
	cats := []string{"b", "a", "b", "c"}
	first := c.CategoryColors(cats)
	second := c.CategoryColors([]string{"c", "b", "a"})
	for cat, color := range first {
		if second[cat] != color {
			t.Errorf("category %s color changed with input order: %s vs %s", cat, color, second[cat])
		}
	}
}

func TestColorsByCategory(t *testing.T) {
	c := NewColorMapper()
	names := []string{"p0", "p1", "p2"}
	cats := []string{"x", "y", "x"}
	out, err := c.Colors(names, cats, nil)
	if err != nil {
		t.Fatalf("Colors failed: %v", err)
	}
	if out[0] != out[2] {
		t.Error("same category got different colors")
	}
	if out[0] == out[1] {
		t.Error("different categories got the same color")
	}
}

func TestColorsByAxisGradient(t *testing.T) {
	c := NewColorMapper()
	if err := c.SetMethod(ColorByAxisID); err != nil {
		t.Fatal(err)
	}
	if err := c.SetPalette(PaletteWarmID); err != nil {
		t.Fatal(err)
	}

	names := []string{"p0", "p1"}
	out, err := c.Colors(names, nil, []float64{0, 1})
	if err != nil {
		t.Fatalf("Colors failed: %v", err)
	}
	cycle := palettes[PaletteWarmID]
	if out[0] != cycle[0] {
		t.Errorf("value 0 colored %s, want first palette entry %s", out[0], cycle[0])
	}
	if out[1] != cycle[len(cycle)-1] {
		t.Errorf("value 1 colored %s, want last palette entry %s", out[1], cycle[len(cycle)-1])
	}
}

func TestColorsSelectedPointOverride(t *testing.T) {
	c := NewColorMapper()
	c.SelectPoint("p1")
	out, err := c.Colors([]string{"p0", "p1"}, []string{"x", "x"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out[1] != SelectionColor {
		t.Errorf("selected point colored %s, want %s", out[1], SelectionColor)
	}
	if out[0] == SelectionColor {
		t.Error("unselected point got the selection color")
	}

	c.UnselectPoint()
	out, err = c.Colors([]string{"p0", "p1"}, []string{"x", "x"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out[1] == SelectionColor {
		t.Error("unselect did not clear the highlight")
	}
}

func TestSetPaletteUnknown(t *testing.T) {
	c := NewColorMapper()
	if err := c.SetPalette("neon"); err == nil {
		t.Error("expected error for unknown palette")
	}
	if c.Palette() != PaletteCategoryID {
		t.Errorf("failed SetPalette changed palette to %q", c.Palette())
	}
}

func TestColorsLengthMismatch(t *testing.T) {
	c := NewColorMapper()
	if _, err := c.Colors([]string{"p0", "p1"}, []string{"x"}, nil); err == nil {
		t.Error("expected error for category count mismatch")
	}
}

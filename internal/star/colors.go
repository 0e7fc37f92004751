package star

import (
	"fmt"
	"sort"
)

// Color methods: color points by category label or by a gradient over one
// selected dimension's normalized value.
const (
	ColorByCategoryID = "category"
	ColorByAxisID     = "axis"
)

// Palette names. Each palette is an ordered color cycle for categories; the
// first and last entries double as the gradient endpoints in axis mode.
const (
	PaletteWarmID     = "warm"
	PaletteCoolID     = "cool"
	PaletteCategoryID = "category10"
)

// SelectionColor highlights the currently selected point.
const SelectionColor = "#D62728"

var palettes = map[string][]string{
	PaletteWarmID: {
		"#FFF5EB", "#FDD49E", "#FDBB84", "#FC8D59", "#EF6548", "#D7301F", "#7F0000",
	},
	PaletteCoolID: {
		"#F7FBFF", "#C6DBEF", "#9ECAE1", "#6BAED6", "#4292C6", "#2171B5", "#084594",
	},
	PaletteCategoryID: {
		"#1F77B4", "#FF7F0E", "#2CA02C", "#D62728", "#9467BD",
		"#8C564B", "#E377C2", "#7F7F7F", "#BCBD22", "#17BECF",
	},
}

// PaletteNames returns the available palette identifiers, sorted.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ColorMapper assigns the full color column for the point set. It owns the
// active palette, the color method, the axis selected for gradient mode and
// the highlighted point, mirroring the interactive controls.
type ColorMapper struct {
	method        string
	palette       string
	selectedAxis  string
	selectedPoint string
}

// NewColorMapper starts in category mode with the category palette.
func NewColorMapper() *ColorMapper {
	return &ColorMapper{
		method:  ColorByCategoryID,
		palette: PaletteCategoryID,
	}
}

// Methods lists the selectable color methods.
func (c *ColorMapper) Methods() []string {
	return []string{ColorByCategoryID, ColorByAxisID}
}

// Method returns the active color method.
func (c *ColorMapper) Method() string { return c.method }

// SetMethod selects the color method.
func (c *ColorMapper) SetMethod(method string) error {
	if method != ColorByCategoryID && method != ColorByAxisID {
		return fmt.Errorf("unknown color method %q", method)
	}
	c.method = method
	return nil
}

// Palette returns the active palette identifier.
func (c *ColorMapper) Palette() string { return c.palette }

// SetPalette selects the palette.
func (c *ColorMapper) SetPalette(name string) error {
	if _, ok := palettes[name]; !ok {
		return fmt.Errorf("unknown palette %q", name)
	}
	c.palette = name
	return nil
}

// SelectedAxis returns the dimension used by axis mode.
func (c *ColorMapper) SelectedAxis() string { return c.selectedAxis }

// SetSelectedAxis picks the dimension whose value drives the gradient.
func (c *ColorMapper) SetSelectedAxis(axis string) { c.selectedAxis = axis }

// SelectPoint highlights one point by name; Colors paints it with
// SelectionColor until UnselectPoint.
func (c *ColorMapper) SelectPoint(name string) { c.selectedPoint = name }

// UnselectPoint clears the highlight.
func (c *ColorMapper) UnselectPoint() { c.selectedPoint = "" }

// SelectedPoint returns the highlighted point name, empty when none.
func (c *ColorMapper) SelectedPoint() string { return c.selectedPoint }

// CategoryColors assigns palette colors to the sorted distinct categories,
// cycling when there are more categories than palette entries.
func (c *ColorMapper) CategoryColors(categories []string) map[string]string {
	distinct := make([]string, 0)
	seen := make(map[string]bool)
	for _, cat := range categories {
		if !seen[cat] {
			seen[cat] = true
			distinct = append(distinct, cat)
		}
	}
	sort.Strings(distinct)
	cycle := palettes[c.palette]
	out := make(map[string]string, len(distinct))
	for i, cat := range distinct {
		out[cat] = cycle[i%len(cycle)]
	}
	return out
}

// Colors produces the full color column. In category mode every point takes
// its category's palette color; in axis mode the point takes the palette
// entry indexed by its normalized value on the selected axis. The selected
// point, if any, is painted with SelectionColor on top of either method.
func (c *ColorMapper) Colors(names, categories []string, axisValues []float64) ([]string, error) {
	n := len(names)
	out := make([]string, n)
	switch c.method {
	case ColorByCategoryID:
		if len(categories) != n {
			return nil, fmt.Errorf("%d categories for %d points", len(categories), n)
		}
		byCat := c.CategoryColors(categories)
		for i := range out {
			out[i] = byCat[categories[i]]
		}
	case ColorByAxisID:
		if len(axisValues) != n {
			return nil, fmt.Errorf("%d axis values for %d points", len(axisValues), n)
		}
		cycle := palettes[c.palette]
		for i, v := range axisValues {
			idx := int(v * float64(len(cycle)-1))
			if idx < 0 {
				idx = 0
			}
			if idx >= len(cycle) {
				idx = len(cycle) - 1
			}
			out[i] = cycle[idx]
		}
	default:
		return nil, fmt.Errorf("unknown color method %q", c.method)
	}
	if c.selectedPoint != "" {
		for i, name := range names {
			if name == c.selectedPoint {
				out[i] = SelectionColor
			}
		}
	}
	return out, nil
}

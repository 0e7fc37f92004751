package view

import (
	"github.com/niloxx/davil/internal/monitoring"
	"github.com/niloxx/davil/internal/star"
)

// AlgorithmState describes one strategy registry for the UI: the selectable
// identifiers and the active one.
type AlgorithmState struct {
	Options []string `json:"options"`
	Active  string   `json:"active"`
}

// ClassificationState describes the category-source selection.
type ClassificationState struct {
	Sources       []string `json:"sources"`
	Active        string   `json:"active"`
	NominalColumn string   `json:"nominal_column,omitempty"`
}

// ColorState describes the coloring controls.
type ColorState struct {
	Methods       []string `json:"methods"`
	Active        string   `json:"active"`
	Palettes      []string `json:"palettes"`
	Palette       string   `json:"palette"`
	SelectedAxis  string   `json:"selected_axis,omitempty"`
	SelectedPoint string   `json:"selected_point,omitempty"`
}

// SizeState describes the point size bounds.
type SizeState struct {
	Initial float64 `json:"initial"`
	Final   float64 `json:"final"`
}

// ViewState is the full UI-facing state snapshot served by /api/state.
type ViewState struct {
	Dataset        string              `json:"dataset"`
	Files          []string            `json:"files"`
	Points         int                 `json:"points"`
	Dimensions     []string            `json:"dimensions"`
	Nominals       []string            `json:"nominals"`
	Axes           []star.Vector       `json:"axes"`
	Mapping        AlgorithmState      `json:"mapping"`
	Normalization  AlgorithmState      `json:"normalization"`
	Error          AlgorithmState      `json:"error"`
	Clustering     AlgorithmState      `json:"clustering"`
	Classification ClassificationState `json:"classification"`
	Color          ColorState          `json:"color"`
	Sizes          SizeState           `json:"sizes"`
	ClusterCount   int                 `json:"cluster_count"`
	PointLabels    bool                `json:"point_labels"`
	Version        uint64              `json:"version"`
}

// State assembles the full UI state under the view lock.
func (v *StarView) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()

	files, err := v.catalog.Files()
	if err != nil {
		monitoring.Logf("failed to list dataset files: %v", err)
	}

	return ViewState{
		Dataset:    v.catalog.Active(),
		Files:      files,
		Points:     v.table.NumPoints(),
		Dimensions: v.table.Dimensions(),
		Nominals:   v.table.Nominals(),
		Axes:       v.vectors.All(),
		Mapping: AlgorithmState{
			Options: v.mappers.Options(),
			Active:  v.mappers.ActiveID(),
		},
		Normalization: AlgorithmState{
			Options: v.normalizers.Options(),
			Active:  v.normalizers.ActiveID(),
		},
		Error: AlgorithmState{
			Options: v.errorMetrics.Options(),
			Active:  v.errorMetrics.ActiveID(),
		},
		Clustering: AlgorithmState{
			Options: v.clusterers.Options(),
			Active:  v.clusterers.ActiveID(),
		},
		Classification: ClassificationState{
			Sources:       v.classifier.Sources(),
			Active:        v.classifier.ActiveSource(),
			NominalColumn: v.classifier.NominalColumn(),
		},
		Color: ColorState{
			Methods:       v.colors.Methods(),
			Active:        v.colors.Method(),
			Palettes:      star.PaletteNames(),
			Palette:       v.colors.Palette(),
			SelectedAxis:  v.colors.SelectedAxis(),
			SelectedPoint: v.colors.SelectedPoint(),
		},
		Sizes: SizeState{
			Initial: v.sizer.Initial(),
			Final:   v.sizer.Final(),
		},
		ClusterCount: v.clusterCount,
		PointLabels:  v.labelsVisible,
		Version:      v.buffer.Version(),
	}
}

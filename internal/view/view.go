// Package view wires the star coordinates core to the web front-end.
//
// StarView owns all projection state: the loaded dataset, the axis vectors,
// the algorithm registries and the shared render buffer the web layer
// snapshots. Every public operation runs to completion under one lock, so
// recomputes are strictly sequential: a mapping, error, sizing or animation
// pass finishes before the next event is handled.
package view

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/niloxx/davil/internal/config"
	"github.com/niloxx/davil/internal/dataset"
	"github.com/niloxx/davil/internal/monitoring"
	"github.com/niloxx/davil/internal/render"
	"github.com/niloxx/davil/internal/star"
)

// StarView is the single owner of the interactive projection state.
type StarView struct {
	mu sync.Mutex

	cfg     *config.ViewConfig
	catalog *dataset.Catalog
	table   *dataset.Table

	raw        *mat.Dense
	normalized *mat.Dense
	vectors    *star.VectorTable
	buffer     *render.Buffer

	mappers      *star.Registry[star.Mapper]
	normalizers  *star.Registry[star.Normalizer]
	errorMetrics *star.Registry[star.ErrorMetric]
	clusterers   *star.Registry[star.Clusterer]
	classifier   *star.Classifier
	colors       *star.ColorMapper
	sizer        *star.SizeScaler
	animator     *star.Animator

	clusterCount  int
	categories    []string
	lastLayout    *star.Layout
	lastErrors    []float64
	labelsVisible bool

	// onFrame, when set, receives every render-buffer publication
	// (including each animation frame) for live push to clients.
	onFrame func(frame map[string]any)
}

// NewStarView loads the catalog's active dataset and fully initializes the
// projection: normalization, clustering, mapping, error, sizes and colors.
func NewStarView(catalog *dataset.Catalog, cfg *config.ViewConfig) (*StarView, error) {
	v := &StarView{
		cfg:          cfg,
		catalog:      catalog,
		mappers:      star.NewMapperRegistry(),
		normalizers:  star.NewNormalizerRegistry(),
		errorMetrics: star.NewErrorRegistry(),
		clusterers:   star.NewClustererRegistry(),
		classifier:   star.NewClassifier(),
		colors:       star.NewColorMapper(),
		sizer:        star.NewSizeScaler(cfg.GetInitialPointSize(), cfg.GetFinalPointSize()),
		animator:     star.NewAnimator(cfg.GetAnimationFrameInterval(), cfg.GetAnimationMaxTime()),
		clusterCount: cfg.GetClusterCount(),
	}
	if err := v.colors.SetPalette(cfg.GetPalette()); err != nil {
		return nil, err
	}

	table, err := catalog.Load("")
	if err != nil {
		return nil, err
	}
	if err := v.initState(table); err != nil {
		return nil, err
	}
	return v, nil
}

// SetFrameSink registers the live-push callback. Pass nil to detach.
func (v *StarView) SetFrameSink(sink func(frame map[string]any)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onFrame = sink
}

// initState rebuilds everything from a freshly loaded table. Runs both at
// construction and on dataset switch; callers hold the lock on the latter
// path.
func (v *StarView) initState(table *dataset.Table) error {
	v.table = table
	v.raw = table.Matrix()
	v.normalized = v.normalizers.Active().Normalize(v.raw)
	v.vectors = star.NewVectorTable(table.Dimensions())
	v.buffer = render.NewBuffer(table.NumPoints())
	v.lastLayout = nil
	v.lastErrors = nil

	if err := v.buffer.SetStrings(render.ColName, table.Names()); err != nil {
		return err
	}
	v.attachAttributes()

	if err := v.executeClustering(); err != nil {
		return err
	}
	// First mapping snaps into place; there is no previous layout to
	// animate from.
	if err := v.executeMapping(false); err != nil {
		return err
	}
	return v.updateColors()
}

// attachAttributes copies the nominal and raw dimensional columns into the
// buffer so the front-end can show them in tooltips. Labels that collide
// with reserved render columns are skipped.
func (v *StarView) attachAttributes() {
	reserved := map[string]bool{
		render.ColX: true, render.ColY: true, render.ColSize: true,
		render.ColColor: true, render.ColCategory: true,
		render.ColName: true, render.ColError: true,
	}
	for _, nom := range v.table.Nominals() {
		if reserved[nom] {
			continue
		}
		col, err := v.table.NominalColumn(nom)
		if err == nil {
			if err := v.buffer.SetStrings(nom, col); err != nil {
				monitoring.Logf("skipping attribute column %q: %v", nom, err)
			}
		}
	}
	for _, dim := range v.table.Dimensions() {
		if reserved[dim] {
			continue
		}
		col, err := v.table.Column(dim)
		if err == nil {
			if err := v.buffer.SetFloats(dim, col); err != nil {
				monitoring.Logf("skipping attribute column %q: %v", dim, err)
			}
		}
	}
}

// pushPositions publishes one full position replacement to the buffer and
// the live sink. Used directly and as the animator's frame sink.
func (v *StarView) pushPositions(x, y []float64) {
	if err := v.buffer.SetFloats(render.ColX, x); err != nil {
		monitoring.Logf("failed to push x column: %v", err)
		return
	}
	if err := v.buffer.SetFloats(render.ColY, y); err != nil {
		monitoring.Logf("failed to push y column: %v", err)
		return
	}
	if v.onFrame != nil {
		v.onFrame(map[string]any{
			"x":       x,
			"y":       y,
			"version": v.buffer.Version(),
		})
	}
}

// publish sends the full buffer snapshot to the live sink after a
// non-positional recompute (sizes, colors, categories).
func (v *StarView) publish() {
	if v.onFrame == nil {
		return
	}
	frame := v.buffer.Snapshot()
	frame["version"] = v.buffer.Version()
	v.onFrame(frame)
}

// executeMapping recomputes the layout with the active mapping strategy,
// optionally animating from the previous layout, then refreshes errors and
// sizes. The previous layout stays in place if the mapper fails.
func (v *StarView) executeMapping(animate bool) error {
	mapped, err := v.mappers.Active().Map(v.table.Names(), v.normalized, v.vectors)
	if err != nil {
		return err
	}
	if animate && v.lastLayout != nil {
		if err := v.animator.Animate(v.lastLayout, mapped, v.pushPositions); err != nil {
			return err
		}
	} else {
		final := mapped.Clone()
		v.pushPositions(final.X, final.Y)
	}
	v.lastLayout = mapped
	return v.executeErrorRecalc()
}

// executeErrorRecalc recomputes the raw error vector with the active metric
// and pushes the normalized errors and the derived sizes.
func (v *StarView) executeErrorRecalc() error {
	errs, err := v.errorMetrics.Active().Compute(v.normalized, v.vectors, v.lastLayout)
	if err != nil {
		return err
	}
	v.lastErrors = errs
	if err := v.buffer.SetFloats(render.ColError, star.NormalizeErrors(errs)); err != nil {
		return err
	}
	return v.updateSizes()
}

// updateSizes pushes the full size vector derived from the normalized
// errors and the current bounds.
func (v *StarView) updateSizes() error {
	sizes := v.sizer.Sizes(star.NormalizeErrors(v.lastErrors))
	if err := v.buffer.SetFloats(render.ColSize, sizes); err != nil {
		return err
	}
	v.publish()
	return nil
}

// updateColors pushes the full color vector for the active method.
func (v *StarView) updateColors() error {
	axisValues, err := v.selectedAxisValues()
	if err != nil {
		return err
	}
	colors, err := v.colors.Colors(v.table.Names(), v.categories, axisValues)
	if err != nil {
		return err
	}
	if err := v.buffer.SetStrings(render.ColColor, colors); err != nil {
		return err
	}
	v.publish()
	return nil
}

// selectedAxisValues returns the normalized column for the axis driving
// gradient coloring, defaulting to the first dimension.
func (v *StarView) selectedAxisValues() ([]float64, error) {
	dims := v.table.Dimensions()
	axis := v.colors.SelectedAxis()
	if axis == "" {
		axis = dims[0]
	}
	idx := -1
	for j, dim := range dims {
		if dim == axis {
			idx = j
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("unknown axis %q selected for coloring", axis)
	}
	out := make([]float64, v.table.NumPoints())
	mat.Col(out, idx, v.normalized)
	return out, nil
}

// executeClustering reruns the active clustering strategy and, when
// classification follows the clusters, relocates the axes.
func (v *StarView) executeClustering() error {
	cats, err := v.clusterers.Active().Cluster(v.normalized, v.clusterCount)
	if err != nil {
		return err
	}
	v.categories = cats
	if err := v.buffer.SetStrings(render.ColCategory, cats); err != nil {
		return err
	}
	if v.classifier.Active() && v.classifier.ActiveSource() == star.ClassifyClusterID {
		return v.executeClassification()
	}
	return v.updateColors()
}

// executeClassification resolves the category source, relocates the axes
// and remaps.
func (v *StarView) executeClassification() error {
	if !v.classifier.Active() {
		return v.updateColors()
	}
	cats := v.categories
	if v.classifier.ActiveSource() == star.ClassifyNominalID {
		col, err := v.table.NominalColumn(v.classifier.NominalColumn())
		if err != nil {
			return err
		}
		cats = col
	}
	endpoints, err := v.classifier.Relocate(v.normalized, v.vectors, cats)
	if err != nil {
		return err
	}
	if err := v.vectors.UpdateAll(endpoints); err != nil {
		return err
	}
	if err := v.updateColors(); err != nil {
		return err
	}
	return v.executeMapping(true)
}

// executeNormalization reruns the active normalizer over the raw values and
// remaps.
func (v *StarView) executeNormalization() error {
	v.normalized = v.normalizers.Active().Normalize(v.raw)
	return v.executeMapping(true)
}

// DragAxis moves an axis endpoint and triggers a remapping. This is the
// axis-interaction entry point for (axis_id, new_x, new_y) drag events.
func (v *StarView) DragAxis(id string, x, y float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.vectors.Update(id, x, y); err != nil {
		return err
	}
	return v.executeMapping(true)
}

// SetAxisVisible toggles an axis in or out of the active set and remaps.
func (v *StarView) SetAxisVisible(id string, visible bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.vectors.SetVisible(id, visible); err != nil {
		return err
	}
	return v.executeMapping(true)
}

// SetMappingAlgorithm activates a mapping strategy and remaps.
func (v *StarView) SetMappingAlgorithm(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.mappers.Activate(id); err != nil {
		return err
	}
	return v.executeMapping(true)
}

// SetNormalizationAlgorithm activates a normalization strategy and reruns
// normalization plus mapping.
func (v *StarView) SetNormalizationAlgorithm(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.normalizers.Activate(id); err != nil {
		return err
	}
	return v.executeNormalization()
}

// SetErrorMetric activates an error metric and recomputes errors and sizes.
func (v *StarView) SetErrorMetric(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.errorMetrics.Activate(id); err != nil {
		return err
	}
	return v.executeErrorRecalc()
}

// SetClusteringAlgorithm activates a clustering strategy and reclusters.
func (v *StarView) SetClusteringAlgorithm(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.clusterers.Activate(id); err != nil {
		return err
	}
	return v.executeClustering()
}

// SetClusterCount changes k and reclusters.
func (v *StarView) SetClusterCount(k int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if k < 1 {
		return fmt.Errorf("cluster count must be >= 1, got %d", k)
	}
	v.clusterCount = k
	return v.executeClustering()
}

// SetClassificationSource selects the category source for axis relocation
// and reruns classification.
func (v *StarView) SetClassificationSource(source, nominalColumn string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.classifier.SetSource(source, nominalColumn); err != nil {
		return err
	}
	return v.executeClassification()
}

// SetInitialSize updates the size at minimum error and pushes new sizes.
func (v *StarView) SetInitialSize(size float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sizer.SetInitial(size)
	return v.updateSizes()
}

// SetFinalSize updates the size at maximum error and pushes new sizes.
func (v *StarView) SetFinalSize(size float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sizer.SetFinal(size)
	return v.updateSizes()
}

// SetUniformSize overrides every point with one size, leaving the stored
// bounds untouched.
func (v *StarView) SetUniformSize(size float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	sizes := v.sizer.Uniform(v.buffer.Len(), size)
	if err := v.buffer.SetFloats(render.ColSize, sizes); err != nil {
		return err
	}
	v.publish()
	return nil
}

// SetColorMethod switches between category and axis coloring.
func (v *StarView) SetColorMethod(method string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.colors.SetMethod(method); err != nil {
		return err
	}
	return v.updateColors()
}

// SetPalette switches the active palette.
func (v *StarView) SetPalette(name string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.colors.SetPalette(name); err != nil {
		return err
	}
	return v.updateColors()
}

// SetSelectedAxis picks the dimension driving axis-mode coloring.
func (v *StarView) SetSelectedAxis(axis string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	found := false
	for _, dim := range v.table.Dimensions() {
		if dim == axis {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("unknown axis %q", axis)
	}
	v.colors.SetSelectedAxis(axis)
	return v.updateColors()
}

// SelectPoint highlights a point by name; an unknown name clears the
// highlight instead of failing, matching the interactive behaviour of
// clicking empty space.
func (v *StarView) SelectPoint(name string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	valid := false
	for _, n := range v.table.Names() {
		if n == name {
			valid = true
			break
		}
	}
	if valid {
		v.colors.SelectPoint(name)
	} else {
		v.colors.UnselectPoint()
	}
	return v.updateColors()
}

// SetPointLabelsVisible toggles point labels in the front-end.
func (v *StarView) SetPointLabelsVisible(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.labelsVisible = visible
	v.publish()
}

// Reload switches the active dataset file and rebuilds all state. The
// previous state survives a failed load.
func (v *StarView) Reload(file string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	previous := v.catalog.Active()
	if err := v.catalog.SetActive(file); err != nil {
		return err
	}
	table, err := v.catalog.Load("")
	if err != nil {
		// Restore the catalog selection; nothing else was touched yet.
		if restoreErr := v.catalog.SetActive(previous); restoreErr != nil {
			monitoring.Logf("failed to restore dataset %q: %v", previous, restoreErr)
		}
		return err
	}
	return v.initState(table)
}

// Snapshot returns a deep copy of the render buffer plus its version.
func (v *StarView) Snapshot() (map[string]any, uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.buffer.Snapshot(), v.buffer.Version()
}

// Axes returns copies of the axis vectors in dimension order.
func (v *StarView) Axes() []star.Vector {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.vectors.All()
}

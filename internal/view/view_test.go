package view

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niloxx/davil/internal/config"
	"github.com/niloxx/davil/internal/dataset"
	"github.com/niloxx/davil/internal/render"
	"github.com/niloxx/davil/internal/star"
)

const testCSV = `name,alcohol,acidity,sugar,region
wine-1,12.5,3.1,2.0,north
wine-2,13.0,2.9,1.5,north
wine-3,11.8,3.4,4.2,south
wine-4,14.1,2.7,1.1,south
wine-5,12.0,3.2,3.8,south
wine-6,13.5,2.8,1.3,north
`

// fastConfig keeps animations effectively instant so tests do not sleep.
func fastConfig() *config.ViewConfig {
	interval := "1us"
	budget := "10us"
	return &config.ViewConfig{
		AnimationFrameInterval: &interval,
		AnimationMaxTime:       &budget,
	}
}

func testView(t *testing.T) *StarView {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wines.csv"), []byte(testCSV), 0644))

	catalog, err := dataset.NewCatalog(dir, "")
	require.NoError(t, err)

	v, err := NewStarView(catalog, fastConfig())
	require.NoError(t, err)
	return v
}

func TestNewStarViewPopulatesBuffer(t *testing.T) {
	v := testView(t)
	snap, version := v.Snapshot()

	for _, col := range []string{render.ColX, render.ColY, render.ColSize, render.ColError} {
		floats, ok := snap[col].([]float64)
		require.True(t, ok, "missing numeric column %q", col)
		assert.Len(t, floats, 6)
	}
	for _, col := range []string{render.ColName, render.ColCategory, render.ColColor} {
		strs, ok := snap[col].([]string)
		require.True(t, ok, "missing string column %q", col)
		assert.Len(t, strs, 6)
	}
	// Nominal attributes ride along for tooltips.
	regions, ok := snap["region"].([]string)
	require.True(t, ok)
	assert.Equal(t, "north", regions[0])

	assert.Greater(t, version, uint64(0))
}

func TestDragAxisRemaps(t *testing.T) {
	v := testView(t)
	before, v0 := v.Snapshot()

	require.NoError(t, v.DragAxis("alcohol", 0.1, 0.9))

	after, v1 := v.Snapshot()
	assert.Greater(t, v1, v0)
	assert.NotEqual(t, before[render.ColX], after[render.ColX])
}

func TestDragAxisUnknownLeavesStateUntouched(t *testing.T) {
	v := testView(t)
	before, v0 := v.Snapshot()

	require.Error(t, v.DragAxis("bogus", 0, 0))

	after, v1 := v.Snapshot()
	assert.Equal(t, v0, v1)
	assert.Equal(t, before[render.ColX], after[render.ColX])
}

func TestAxisVisibilityRoundTrip(t *testing.T) {
	v := testView(t)
	full, _ := v.Snapshot()

	require.NoError(t, v.SetAxisVisible("sugar", false))
	hidden, _ := v.Snapshot()
	assert.NotEqual(t, full[render.ColX], hidden[render.ColX])

	require.NoError(t, v.SetAxisVisible("sugar", true))
	restored, _ := v.Snapshot()
	assert.Equal(t, full[render.ColX], restored[render.ColX])
	assert.Equal(t, full[render.ColY], restored[render.ColY])
}

func TestSetMappingAlgorithm(t *testing.T) {
	v := testView(t)

	require.Error(t, v.SetMappingAlgorithm("bogus"))
	assert.Equal(t, star.MapStarID, v.State().Mapping.Active)

	plain, _ := v.Snapshot()
	require.NoError(t, v.SetMappingAlgorithm(star.MapAveragedStarID))
	averaged, _ := v.Snapshot()

	px := plain[render.ColX].([]float64)
	ax := averaged[render.ColX].([]float64)
	for i := range px {
		assert.InDelta(t, px[i]/3, ax[i], 1e-9)
	}
}

func TestSetErrorMetricRecomputesSizes(t *testing.T) {
	v := testView(t)
	require.NoError(t, v.SetErrorMetric(star.ErrorSquaredSumID))
	assert.Equal(t, star.ErrorSquaredSumID, v.State().Error.Active)

	snap, _ := v.Snapshot()
	sizes := snap[render.ColSize].([]float64)
	for _, s := range sizes {
		assert.GreaterOrEqual(t, s, star.MinPointSize)
	}
}

func TestSetUniformSize(t *testing.T) {
	v := testView(t)
	require.NoError(t, v.SetUniformSize(7))

	snap, _ := v.Snapshot()
	for _, s := range snap[render.ColSize].([]float64) {
		assert.Equal(t, 7.0, s)
	}
	// Bounds stay for the next error-driven recompute.
	state := v.State()
	assert.Equal(t, 4.0, state.Sizes.Initial)
	assert.Equal(t, 12.0, state.Sizes.Final)
}

func TestSetClusterCount(t *testing.T) {
	v := testView(t)
	require.Error(t, v.SetClusterCount(0))

	require.NoError(t, v.SetClusterCount(2))
	snap, _ := v.Snapshot()
	cats := snap[render.ColCategory].([]string)
	distinct := map[string]bool{}
	for _, c := range cats {
		distinct[c] = true
	}
	assert.LessOrEqual(t, len(distinct), 2)
}

func TestClassificationByNominalRelocatesAxes(t *testing.T) {
	v := testView(t)
	before := v.Axes()

	require.Error(t, v.SetClassificationSource(star.ClassifyNominalID, ""))
	require.NoError(t, v.SetClassificationSource(star.ClassifyNominalID, "region"))

	after := v.Axes()
	moved := false
	for i := range before {
		if before[i].X != after[i].X || before[i].Y != after[i].Y {
			moved = true
		}
	}
	assert.True(t, moved, "relocation left every axis in place")

	state := v.State()
	assert.Equal(t, star.ClassifyNominalID, state.Classification.Active)
	assert.Equal(t, "region", state.Classification.NominalColumn)
}

func TestSelectPointHighlight(t *testing.T) {
	v := testView(t)
	require.NoError(t, v.SelectPoint("wine-3"))

	snap, _ := v.Snapshot()
	colors := snap[render.ColColor].([]string)
	assert.Equal(t, star.SelectionColor, colors[2])

	// Unknown name clears the highlight instead of failing.
	require.NoError(t, v.SelectPoint("no-such-wine"))
	snap, _ = v.Snapshot()
	colors = snap[render.ColColor].([]string)
	assert.NotEqual(t, star.SelectionColor, colors[2])
}

func TestFrameSinkSeesAnimationAndTarget(t *testing.T) {
	v := testView(t)

	var frames []map[string]any
	v.SetFrameSink(func(frame map[string]any) {
		frames = append(frames, frame)
	})

	require.NoError(t, v.DragAxis("alcohol", -0.5, 0.5))
	require.NotEmpty(t, frames)

	// The last positional frame matches the settled buffer exactly.
	snap, _ := v.Snapshot()
	var lastX []float64
	for _, f := range frames {
		if x, ok := f["x"].([]float64); ok {
			lastX = x
		}
	}
	require.NotNil(t, lastX)
	assert.Equal(t, snap[render.ColX].([]float64), lastX)
}

func TestReloadRestoresSelectionOnFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.csv"), []byte(testCSV), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.csv"), []byte("name\nonly-nominal\n"), 0644))

	catalog, err := dataset.NewCatalog(dir, "good.csv")
	require.NoError(t, err)
	v, err := NewStarView(catalog, fastConfig())
	require.NoError(t, err)

	require.Error(t, v.Reload("broken.csv"))
	assert.Equal(t, "good.csv", v.State().Dataset)

	require.Error(t, v.Reload("missing.csv"))
	assert.Equal(t, "good.csv", v.State().Dataset)
}

func TestStateSnapshot(t *testing.T) {
	v := testView(t)
	state := v.State()

	assert.Equal(t, "wines.csv", state.Dataset)
	assert.Equal(t, 6, state.Points)
	assert.Equal(t, []string{"alcohol", "acidity", "sugar"}, state.Dimensions)
	assert.Equal(t, []string{"name", "region"}, state.Nominals)
	assert.Len(t, state.Axes, 3)
	assert.Equal(t, star.MapStarID, state.Mapping.Active)
	assert.Equal(t, star.NormalizeMinMaxID, state.Normalization.Active)
	assert.Equal(t, star.ClusterKMeansID, state.Clustering.Active)
	assert.Equal(t, 3, state.ClusterCount)
}

package view

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/niloxx/davil/internal/render"
)

// echartsAssetsPrefix serves the echarts runtime from the public assets
// mirror; the charts are debugging/inspection pages, not the main UI.
const echartsAssetsPrefix = "https://go-echarts.github.io/go-echarts-assets/assets/"

// RegisterChartRoutes registers the standalone chart pages on the provided
// mux.
func (ws *WebServer) RegisterChartRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/charts/projection", ws.handleProjectionChart)
	mux.HandleFunc("/charts/error", ws.handleErrorChart)
}

// handleProjectionChart renders the current star-coordinates projection as a
// standalone echarts scatter page: one series per category plus the axis
// endpoints as a separate series.
func (ws *WebServer) handleProjectionChart(w http.ResponseWriter, r *http.Request) {
	snapshot, _ := ws.view.Snapshot()
	axes := ws.view.Axes()

	x, okX := snapshot[render.ColX].([]float64)
	y, okY := snapshot[render.ColY].([]float64)
	cats, okC := snapshot[render.ColCategory].([]string)
	if !okX || !okY || !okC {
		ws.writeJSONError(w, http.StatusInternalServerError, "render buffer is missing position columns")
		return
	}

	// Group points by category so each gets its own legend entry.
	byCat := make(map[string][]opts.ScatterData)
	for i := range x {
		byCat[cats[i]] = append(byCat[cats[i]], opts.ScatterData{Value: []interface{}{x[i], y[i]}})
	}
	catNames := make([]string, 0, len(byCat))
	for cat := range byCat {
		catNames = append(catNames, cat)
	}
	sort.Strings(catNames)

	maxAbs := 0.0
	for i := range x {
		maxAbs = maxAbsOf(maxAbs, x[i], y[i])
	}
	axisPts := make([]opts.ScatterData, 0, len(axes))
	for _, a := range axes {
		if !a.Visible {
			continue
		}
		axisPts = append(axisPts, opts.ScatterData{Value: []interface{}{a.X, a.Y}, Name: a.ID})
		maxAbs = maxAbsOf(maxAbs, a.X, a.Y)
	}

	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Star Coordinates", Theme: "dark", Width: "900px", Height: "900px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{Title: "Star Coordinates Projection", Subtitle: fmt.Sprintf("dataset=%s points=%d", ws.view.State().Dataset, len(x))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad}),
	)

	for _, cat := range catNames {
		scatter.AddSeries(cat, byCat[cat], charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	}
	scatter.AddSeries("axes", axisPts,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 12, Symbol: "rect"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#74ADD1"}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleErrorChart renders the projection colored by normalized error with a
// visual map, useful to spot points the 2D layout misrepresents.
func (ws *WebServer) handleErrorChart(w http.ResponseWriter, r *http.Request) {
	snapshot, _ := ws.view.Snapshot()

	x, okX := snapshot[render.ColX].([]float64)
	y, okY := snapshot[render.ColY].([]float64)
	errs, okE := snapshot[render.ColError].([]float64)
	if !okX || !okY || !okE {
		ws.writeJSONError(w, http.StatusInternalServerError, "render buffer is missing error columns")
		return
	}

	data := make([]opts.ScatterData, 0, len(x))
	maxAbs := 0.0
	for i := range x {
		data = append(data, opts.ScatterData{Value: []interface{}{x[i], y[i], errs[i]}})
		maxAbs = maxAbsOf(maxAbs, x[i], y[i])
	}
	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Projection Error", Theme: "dark", Width: "900px", Height: "900px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{Title: "Projection Error", Subtitle: "normalized per-point error"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        1,
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#31688e", "#35b779", "#fde725"}},
		}),
	)

	scatter.AddSeries("error", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func maxAbsOf(current float64, values ...float64) float64 {
	for _, v := range values {
		if v < 0 {
			v = -v
		}
		if v > current {
			current = v
		}
	}
	return current
}

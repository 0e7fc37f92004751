package view

import (
	"fmt"
	"image/color"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/niloxx/davil/internal/render"
)

// handleExportPlot writes the current projection to a PNG under the OS temp
// directory using gonum/plot and reports the path. The export path is
// generated internally so no user-controlled data flows into file system
// operations.
func (ws *WebServer) handleExportPlot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snapshot, _ := ws.view.Snapshot()
	axes := ws.view.Axes()

	x, okX := snapshot[render.ColX].([]float64)
	y, okY := snapshot[render.ColY].([]float64)
	if !okX || !okY {
		ws.writeJSONError(w, http.StatusInternalServerError, "render buffer is missing position columns")
		return
	}

	p := plot.New()
	p.Title.Text = "Star Coordinates Projection"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to build scatter: %v", err))
		return
	}
	scatter.GlyphStyle.Radius = vg.Points(2)
	scatter.GlyphStyle.Color = color.RGBA{R: 0x1F, G: 0x77, B: 0xB4, A: 0xFF}
	p.Add(scatter)

	// Axis segments from the origin to each visible endpoint.
	for _, a := range axes {
		if !a.Visible {
			continue
		}
		seg := plotter.XYs{{X: 0, Y: 0}, {X: a.X, Y: a.Y}}
		line, err := plotter.NewLine(seg)
		if err != nil {
			ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to build axis line: %v", err))
			return
		}
		line.Width = vg.Points(1)
		line.Color = color.RGBA{R: 0xF4, G: 0xA5, B: 0x82, A: 0xFF}
		p.Add(line)
		p.Legend.Add(a.ID, line)
	}

	exportDir := filepath.Join(os.TempDir(), "davil-exports")
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to create export dir: %v", err))
		return
	}
	file := filepath.Join(exportDir, fmt.Sprintf("projection_%s.png", uuid.NewString()[:8]))
	if err := p.Save(8*vg.Inch, 8*vg.Inch, file); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to save plot: %v", err))
		return
	}

	ws.writeJSON(w, map[string]string{"status": "ok", "file": file})
}

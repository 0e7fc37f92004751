package view

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// RegisterAPIRoutes registers the JSON state and control routes on the
// provided mux.
func (ws *WebServer) RegisterAPIRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/state", ws.handleState)
	mux.HandleFunc("/api/points", ws.handlePoints)
	mux.HandleFunc("/api/algorithms", ws.handleAlgorithms)
	mux.HandleFunc("/api/axes/drag", ws.handleAxisDrag)
	mux.HandleFunc("/api/axes/visibility", ws.handleAxisVisibility)
	mux.HandleFunc("/api/sizes", ws.handleSizes)
	mux.HandleFunc("/api/clusters", ws.handleClusters)
	mux.HandleFunc("/api/colors", ws.handleColors)
	mux.HandleFunc("/api/points/select", ws.handlePointSelect)
	mux.HandleFunc("/api/labels", ws.handleLabels)
	mux.HandleFunc("/api/files", ws.handleFiles)
	mux.HandleFunc("/api/export/plot", ws.handleExportPlot)
}

// handleState serves the full UI state.
func (ws *WebServer) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ws.writeJSON(w, ws.view.State())
}

// handlePoints serves the current render buffer snapshot.
func (ws *WebServer) handlePoints(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	snapshot, version := ws.view.Snapshot()
	snapshot["version"] = version
	ws.writeJSON(w, snapshot)
}

// AlgorithmRequest selects the active strategy of one category.
type AlgorithmRequest struct {
	Category string `json:"category"` // "mapping", "normalization", "error", "clustering", "classification"
	ID       string `json:"id"`
	// NominalColumn qualifies the classification category when ID is
	// "nominal".
	NominalColumn string `json:"nominal_column,omitempty"`
}

// handleAlgorithms reads or updates the active algorithm per category.
func (ws *WebServer) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		state := ws.view.State()
		ws.writeJSON(w, map[string]any{
			"mapping":        state.Mapping,
			"normalization":  state.Normalization,
			"error":          state.Error,
			"clustering":     state.Clustering,
			"classification": state.Classification,
		})
	case http.MethodPost:
		var req AlgorithmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			ws.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
			return
		}
		var err error
		switch req.Category {
		case "mapping":
			err = ws.view.SetMappingAlgorithm(req.ID)
		case "normalization":
			err = ws.view.SetNormalizationAlgorithm(req.ID)
		case "error":
			err = ws.view.SetErrorMetric(req.ID)
		case "clustering":
			err = ws.view.SetClusteringAlgorithm(req.ID)
		case "classification":
			err = ws.view.SetClassificationSource(req.ID, req.NominalColumn)
		default:
			ws.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown algorithm category %q", req.Category))
			return
		}
		if err != nil {
			ws.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		ws.writeJSON(w, map[string]string{"status": "ok"})
	default:
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// AxisDragRequest carries one axis drag event.
type AxisDragRequest struct {
	AxisID string  `json:"axis_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// handleAxisDrag applies a drag event to the addressed axis and remaps.
func (ws *WebServer) handleAxisDrag(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req AxisDragRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ws.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if err := ws.view.DragAxis(req.AxisID, req.X, req.Y); err != nil {
		ws.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	ws.writeJSON(w, map[string]string{"status": "ok"})
}

// AxisVisibilityRequest toggles one axis.
type AxisVisibilityRequest struct {
	AxisID  string `json:"axis_id"`
	Visible bool   `json:"visible"`
}

func (ws *WebServer) handleAxisVisibility(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req AxisVisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ws.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if err := ws.view.SetAxisVisible(req.AxisID, req.Visible); err != nil {
		ws.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	ws.writeJSON(w, map[string]string{"status": "ok"})
}

// SizeRequest updates the point size controls. Exactly one of the fields is
// expected per request.
type SizeRequest struct {
	Initial *float64 `json:"initial,omitempty"`
	Final   *float64 `json:"final,omitempty"`
	Uniform *float64 `json:"uniform,omitempty"`
}

func (ws *WebServer) handleSizes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ws.writeJSON(w, ws.view.State().Sizes)
	case http.MethodPost:
		var req SizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			ws.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
			return
		}
		var err error
		switch {
		case req.Initial != nil:
			err = ws.view.SetInitialSize(*req.Initial)
		case req.Final != nil:
			err = ws.view.SetFinalSize(*req.Final)
		case req.Uniform != nil:
			err = ws.view.SetUniformSize(*req.Uniform)
		default:
			ws.writeJSONError(w, http.StatusBadRequest, "no size field provided")
			return
		}
		if err != nil {
			ws.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		ws.writeJSON(w, map[string]string{"status": "ok"})
	default:
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// ClusterRequest updates the cluster count.
type ClusterRequest struct {
	Count int `json:"count"`
}

func (ws *WebServer) handleClusters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req ClusterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ws.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if err := ws.view.SetClusterCount(req.Count); err != nil {
		ws.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	ws.writeJSON(w, map[string]string{"status": "ok"})
}

// ColorRequest updates the coloring controls. Fields are applied in order:
// method, palette, selected axis.
type ColorRequest struct {
	Method       *string `json:"method,omitempty"`
	Palette      *string `json:"palette,omitempty"`
	SelectedAxis *string `json:"selected_axis,omitempty"`
}

func (ws *WebServer) handleColors(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ws.writeJSON(w, ws.view.State().Color)
	case http.MethodPost:
		var req ColorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			ws.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
			return
		}
		if req.Method != nil {
			if err := ws.view.SetColorMethod(*req.Method); err != nil {
				ws.writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		if req.Palette != nil {
			if err := ws.view.SetPalette(*req.Palette); err != nil {
				ws.writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		if req.SelectedAxis != nil {
			if err := ws.view.SetSelectedAxis(*req.SelectedAxis); err != nil {
				ws.writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		ws.writeJSON(w, map[string]string{"status": "ok"})
	default:
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// PointSelectRequest highlights one point; an empty or unknown name clears
// the highlight.
type PointSelectRequest struct {
	Name string `json:"name"`
}

func (ws *WebServer) handlePointSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req PointSelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ws.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if err := ws.view.SelectPoint(req.Name); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	ws.writeJSON(w, map[string]string{"status": "ok"})
}

// LabelRequest toggles point labels.
type LabelRequest struct {
	Visible bool `json:"visible"`
}

func (ws *WebServer) handleLabels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req LabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ws.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	ws.view.SetPointLabelsVisible(req.Visible)
	ws.writeJSON(w, map[string]string{"status": "ok"})
}

// FileRequest switches the active dataset file.
type FileRequest struct {
	File string `json:"file"`
}

func (ws *WebServer) handleFiles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		state := ws.view.State()
		ws.writeJSON(w, map[string]any{
			"files":  state.Files,
			"active": state.Dataset,
		})
	case http.MethodPost:
		var req FileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			ws.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
			return
		}
		if err := ws.view.Reload(req.File); err != nil {
			ws.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		ws.writeJSON(w, map[string]string{"status": "ok"})
	default:
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

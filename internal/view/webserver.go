package view

import (
	"context"
	"embed"
	"log"
	"net/http"
	"time"

	"github.com/niloxx/davil/internal/httputil"
	"github.com/niloxx/davil/internal/version"
)

//go:embed static/index.html
var staticFiles embed.FS

// WebServer handles the HTTP interface for the star coordinates view: the
// embedded UI page, the JSON state API, the echarts chart pages and the
// websocket channel for drag events and frame pushes.
type WebServer struct {
	address string
	view    *StarView
	hub     *Hub
	server  *http.Server
}

// WebServerConfig contains configuration options for the web server.
type WebServerConfig struct {
	Address string
	View    *StarView
}

// NewWebServer creates a new web server with the provided configuration and
// attaches the websocket hub as the view's frame sink.
func NewWebServer(config WebServerConfig) *WebServer {
	ws := &WebServer{
		address: config.Address,
		view:    config.View,
		hub:     NewHub(config.View),
	}
	config.View.SetFrameSink(ws.hub.Broadcast)

	ws.server = &http.Server{
		Addr:    ws.address,
		Handler: ws.setupRoutes(),
	}

	return ws
}

func (ws *WebServer) writeJSONError(w http.ResponseWriter, status int, msg string) {
	httputil.WriteJSONError(w, status, msg)
}

func (ws *WebServer) writeJSON(w http.ResponseWriter, payload any) {
	httputil.WriteJSONOK(w, payload)
}

// Start begins the HTTP server in a goroutine and handles graceful shutdown
// when the context is cancelled.
func (ws *WebServer) Start(ctx context.Context) error {
	go func() {
		log.Printf("Starting HTTP server on %s", ws.address)
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		if err := ws.server.Close(); err != nil {
			log.Printf("HTTP server force close error: %v", err)
		}
	}

	log.Printf("HTTP server routine stopped")
	return nil
}

// setupRoutes configures the HTTP routes and handlers.
func (ws *WebServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", ws.handleHealth)
	mux.HandleFunc("/", ws.handleIndex)
	mux.HandleFunc("/ws", ws.hub.HandleWebSocket)

	ws.RegisterAPIRoutes(mux)
	ws.RegisterChartRoutes(mux)

	return mux
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	ws.writeJSON(w, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

func (ws *WebServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, "missing UI page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// Package server serves the assembled scene as JSON for browser renderers.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/chazu/pipeworks/internal/loader"
	"github.com/chazu/pipeworks/pkg/scene"
)

// Server is the local development server. Settings are reloaded from disk
// on every request so edits show up without a restart.
type Server struct {
	settingsPath string
	port         int
}

// New creates a server for the given settings file. An empty path serves
// the defaults.
func New(settingsPath string, port int) *Server {
	return &Server{
		settingsPath: settingsPath,
		port:         port,
	}
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/scene", s.handleScene)
	mux.HandleFunc("GET /api/settings", s.handleSettings)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	return mux
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("pipeworks server starting on http://localhost%s", addr)
	if s.settingsPath != "" {
		log.Printf("Settings: %s", s.settingsPath)
	}
	return http.ListenAndServe(addr, s.Handler())
}

// sceneResponse is the body of GET /api/scene.
type sceneResponse struct {
	Scene    *scene.Scene            `json:"scene"`
	Findings []scene.ValidationError `json:"findings"`
}

// validationResponse is the body of GET /api/validation.
type validationResponse struct {
	Valid    bool                    `json:"valid"`
	Errors   []scene.ValidationError `json:"errors"`
	Warnings []scene.ValidationError `json:"warnings"`
	Summary  string                  `json:"summary"`
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>pipeworks</title></head>
<body style="font-family:system-ui">
<h1>pipeworks</h1>
<p>JSON endpoints: <a href="/api/scene">/api/scene</a>, <a href="/api/settings">/api/settings</a>, <a href="/api/validation">/api/validation</a>.</p>
</body></html>`)
}

func (s *Server) handleSettings(w http.ResponseWriter, _ *http.Request) {
	settings, err := loader.Load(s.settingsPath)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, settings)
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	sc, findings, err := s.assemble(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if findings == nil {
		findings = []scene.ValidationError{}
	}
	writeJSON(w, sceneResponse{Scene: sc, Findings: findings})
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	_, findings, err := s.assemble(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	resp := validationResponse{
		Errors:   []scene.ValidationError{},
		Warnings: []scene.ValidationError{},
	}
	for _, f := range findings {
		if f.Severity == scene.SeverityError {
			resp.Errors = append(resp.Errors, f)
		} else {
			resp.Warnings = append(resp.Warnings, f)
		}
	}
	resp.Valid = len(resp.Errors) == 0
	resp.Summary = fmt.Sprintf("%d errors, %d warnings", len(resp.Errors), len(resp.Warnings))
	writeJSON(w, resp)
}

// assemble loads the settings and builds the scene for the viewport width
// in the optional ?viewport= query parameter.
func (s *Server) assemble(r *http.Request) (*scene.Scene, []scene.ValidationError, error) {
	viewport := 0.0
	if v := r.URL.Query().Get("viewport"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("viewport: %w", err)
		}
		viewport = f
	}

	settings, err := loader.Load(s.settingsPath)
	if err != nil {
		return nil, nil, err
	}
	sc := scene.Assemble(settings, nil, viewport)
	return sc, scene.Validate(sc), nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/chazu/pipeworks/pkg/engine"
	"github.com/chazu/pipeworks/pkg/kernel"
	"github.com/chazu/pipeworks/pkg/kernel/sdfx"
	"github.com/chazu/pipeworks/pkg/route"
	"github.com/chazu/pipeworks/pkg/scene"
	"github.com/chazu/pipeworks/pkg/selection"
	"github.com/chazu/pipeworks/pkg/tessellate"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrNoScene is returned by point selection before a scene was evaluated.
var ErrNoScene = errors.New("no scene evaluated yet")

// ErrMissedGrid is returned when a pick is not near any grid intersection.
var ErrMissedGrid = errors.New("no grid point near the pick")

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	kernel kernel.Kernel
	points *selection.Store

	mu       sync.Mutex
	scene    *scene.Scene
	viewport float64
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error or scene finding for the
// frontend. Subject is empty for script errors.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Scene    *scene.Scene    `json:"scene,omitempty"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp() *App {
	return newApp(sdfx.New())
}

func newApp(k kernel.Kernel) *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: k,
		points: selection.NewStore(),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// SetViewport records the canvas width used for responsive layout. It
// applies from the next Evaluate.
func (a *App) SetViewport(width float64) {
	a.mu.Lock()
	a.viewport = width
	a.mu.Unlock()
}

// Evaluate takes a scene script and returns the assembled scene, its
// meshes, and any errors or warnings.
// This is the primary binding called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the script into scene settings.
	s, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 2: Lay out the platforms and route the pipes.
	a.mu.Lock()
	viewport := a.viewport
	a.mu.Unlock()
	sc := scene.Assemble(s, route.New(s.Routing), viewport)

	// Step 3: Check the routed scene.
	findings := scene.Validate(sc)
	for _, f := range findings {
		e := EvalErrorData{Subject: f.Subject, Message: f.Message}
		if f.Severity == scene.SeverityError {
			result.Errors = append(result.Errors, e)
		} else {
			result.Warnings = append(result.Warnings, e)
		}
	}
	if scene.HasErrors(findings) {
		return result
	}

	// Step 4: Tessellate platforms, marker and pipes.
	meshes, err := tessellate.Scene(sc, a.kernel, tessellate.TubeOptions{})
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}
	for _, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			Name:     m.Name,
			Color:    m.Color,
		})
	}

	result.Scene = sc
	a.mu.Lock()
	a.scene = sc
	a.mu.Unlock()
	return result
}

// GeneratePipePath routes a single pipe with the routing configuration of
// the last evaluated scene, or the defaults before the first evaluation.
func (a *App) GeneratePipePath(req route.Request) route.PipePath {
	a.mu.Lock()
	sc := a.scene
	a.mu.Unlock()
	if sc == nil {
		return route.GeneratePipePath(req)
	}
	return route.New(sc.Settings.Routing).GeneratePipePath(req)
}

// SelectPoint snaps a world-space hit on a platform to its grid and
// records the snapped point.
func (a *App) SelectPoint(platformID int, x, y, z float64) (selection.Point, error) {
	a.mu.Lock()
	sc := a.scene
	a.mu.Unlock()
	if sc == nil {
		return selection.Point{}, ErrNoScene
	}

	p, ok := sc.Platform(platformID)
	if !ok {
		return selection.Point{}, fmt.Errorf("platform %d not in scene", platformID)
	}
	if p.Grid == nil {
		return selection.Point{}, fmt.Errorf("platform %d has no visible grid", platformID)
	}
	pos, ok := p.Grid.Pick(v3.Vec{X: x, Y: y, Z: z}, p.Edges.Center)
	if !ok {
		return selection.Point{}, ErrMissedGrid
	}
	return a.points.Add(platformID, pos), nil
}

// SelectedPoints returns every selected point in selection order.
func (a *App) SelectedPoints() []selection.Point {
	return a.points.Points()
}

// RemovePoint deletes one selected point.
func (a *App) RemovePoint(id string) error {
	return a.points.Remove(id)
}

// ClearPoints deletes every selected point.
func (a *App) ClearPoints() {
	a.points.Clear()
}

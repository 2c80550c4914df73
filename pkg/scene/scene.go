package scene

import (
	"github.com/chazu/pipeworks/pkg/pipedebug"
	"github.com/chazu/pipeworks/pkg/platform"
	"github.com/chazu/pipeworks/pkg/route"
	"github.com/chazu/pipeworks/pkg/selection"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Rhombus marker placement and appearance.
var (
	RhombusOffset = v3.Vec{Y: 1}
	RhombusSize   = v3.Vec{X: 1, Y: 1, Z: 0.2}
)

const RhombusColor = "#4a90e2"

// Platform is one laid-out platform.
type Platform struct {
	ID       int             `json:"id"` // 1-based
	Position v3.Vec          `json:"position"`
	Edges    platform.Edges  `json:"edges"`
	Color    string          `json:"color"`
	Grid     *selection.Grid `json:"grid,omitempty"`
}

// Pipe is the routed pipe feeding one platform.
type Pipe struct {
	PlatformID int                `json:"platformId"`
	Path       route.PipePath     `json:"path"`
	Overlay    *pipedebug.Overlay `json:"overlay,omitempty"`
}

// Scene is a fully assembled scene.
type Scene struct {
	Settings  Settings   `json:"settings"`
	Platforms []Platform `json:"platforms"`
	Rhombus   v3.Vec     `json:"rhombus"`
	Pipes     []Pipe     `json:"pipes"`
	Camera    CameraPose `json:"camera"`
}

// Assemble lays out the platforms and routes one pipe per platform. The
// first pipe drops from the rhombus marker onto platform 1; every other
// pipe runs from the previous platform's bottom-right corner to the
// platform's top-left corner. A nil router uses s.Routing.
func Assemble(s *Settings, r *route.Router, viewportWidth float64) *Scene {
	if r == nil {
		r = route.New(s.Routing)
	}
	d := s.Dimensions
	positions := PlatformPositions(s, viewportWidth)

	sc := &Scene{
		Settings: *s,
		Rhombus:  positions[0].Add(RhombusOffset),
		Camera:   Camera(s),
	}

	for i, pos := range positions {
		p := Platform{
			ID:       i + 1,
			Position: pos,
			Edges:    platform.EdgesFor(pos, d.Width, d.Depth, d.Height),
			Color:    PlatformColor(s, i, false),
		}
		if s.ShowGrids && i < len(s.Grids) && s.Grids[i].Visible {
			g := s.Grids[i]
			p.Grid = selection.NewGrid(d.Width, d.Depth, g.Offset, g.Subdivisions)
		}
		sc.Platforms = append(sc.Platforms, p)
	}

	opts := pipedebug.Options{
		ShowLabels:            s.Debug.Labels,
		ShowConstructionLines: s.Debug.ConstructionLines,
		ShowMetadata:          true,
	}
	for i, p := range sc.Platforms {
		req := route.Request{
			PlatformID: p.ID,
			Edges:      p.Edges,
			Width:      d.Width,
			Depth:      d.Depth,
			Height:     d.Height,
			Debug:      s.Debug.Pipes,
		}
		if i == 0 {
			req.Start = sc.Rhombus
		} else {
			prev := sc.Platforms[i-1].Edges
			req.Start = prev.BottomRight
			req.Previous = &prev
		}

		pipe := Pipe{PlatformID: p.ID, Path: r.GeneratePipePath(req)}
		if s.Debug.Pipes {
			pipe.Overlay = pipedebug.BuildOverlay(pipe.Path.Points, pipe.Path.DebugInfo, opts)
		}
		sc.Pipes = append(sc.Pipes, pipe)
	}
	return sc
}

// Platform returns the platform with the given 1-based id.
func (sc *Scene) Platform(id int) (Platform, bool) {
	for _, p := range sc.Platforms {
		if p.ID == id {
			return p, true
		}
	}
	return Platform{}, false
}

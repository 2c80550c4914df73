package route

import (
	"math"

	"github.com/chazu/pipeworks/pkg/curve"
	"github.com/chazu/pipeworks/pkg/pipedebug"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Orientation selects the plane axis an elbow bends around.
type Orientation = curve.Orientation

const (
	Horizontal = curve.Horizontal
	Vertical   = curve.Vertical
)

// Direction selects one of the two quarter-circle solutions.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// directionOf returns Clockwise when positive is true.
func directionOf(positive bool) Direction {
	if positive {
		return Clockwise
	}
	return CounterClockwise
}

func (d Direction) sign() float64 {
	if d < 0 {
		return -1
	}
	return 1
}

// piece is a run of points produced by one primitive.
type piece struct {
	kind   pipedebug.SegmentType
	points []v3.Vec
}

func flatten(pieces []piece) []v3.Vec {
	n := 0
	for _, p := range pieces {
		n += len(p.points)
	}
	pts := make([]v3.Vec, 0, n)
	for _, p := range pieces {
		pts = append(pts, p.points...)
	}
	return pts
}

func lerp(a, b v3.Vec, t float64) v3.Vec {
	return v3.Vec{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// Shaft returns segments+1 points evenly spaced from start to end, both
// included. segments below one is treated as one. Coincident endpoints
// yield repeated copies of the same point.
func Shaft(start, end v3.Vec, segments int) []v3.Vec {
	if segments < 1 {
		segments = 1
	}
	pts := make([]v3.Vec, 0, segments+1)
	for i := 0; i <= segments; i++ {
		pts = append(pts, lerp(start, end, float64(i)/float64(segments)))
	}
	pts[segments] = end
	return pts
}

// ElbowConfig describes one quarter-circle arc.
type ElbowConfig struct {
	Start       v3.Vec
	End         v3.Vec // informational; the arc is fully determined by Start
	Radius      float64
	Orientation Orientation
	Direction   Direction
	Segments    int // below one uses SegmentsPerQuarter
}

// ElbowArc samples a quarter circle of the given radius starting at
// cfg.Start. The center is offset from Start by Radius along x for
// Horizontal and along y for Vertical, signed by Direction. The arc lies in
// the x-y plane at Start's z. It always returns Segments+1 points; a zero
// radius collapses to repeated copies of Start.
func ElbowArc(cfg ElbowConfig) []v3.Vec {
	n := cfg.Segments
	if n < 1 {
		n = SegmentsPerQuarter
	}
	d := cfg.Direction.sign()
	r := cfg.Radius
	s := cfg.Start

	center := v3.Vec{X: s.X, Y: s.Y + d*r, Z: s.Z}
	if cfg.Orientation == Horizontal {
		center = v3.Vec{X: s.X + d*r, Y: s.Y, Z: s.Z}
	}

	pts := make([]v3.Vec, 0, n+1)
	for i := 0; i <= n; i++ {
		theta := float64(i) / float64(n) * (math.Pi / 2)
		cos, sin := math.Cos(theta), math.Sin(theta)
		if cfg.Orientation == Horizontal {
			pts = append(pts, v3.Vec{
				X: center.X - d*cos*r,
				Y: center.Y + d*sin*r,
				Z: center.Z,
			})
		} else {
			pts = append(pts, v3.Vec{
				X: center.X + d*sin*r,
				Y: center.Y - d*cos*r,
				Z: center.Z,
			})
		}
	}
	return pts
}

// arcAnchors returns where the arc of an elbow connection starts and ends.
func arcAnchors(start, end v3.Vec, radius float64, o Orientation, dir Direction) (v3.Vec, v3.Vec) {
	d := dir.sign()
	if o == Horizontal {
		return v3.Vec{X: end.X - d*radius, Y: start.Y, Z: start.Z},
			v3.Vec{X: end.X, Y: start.Y + d*radius, Z: start.Z}
	}
	return v3.Vec{X: start.X, Y: end.Y - d*radius, Z: start.Z},
		v3.Vec{X: start.X + d*radius, Y: end.Y, Z: start.Z}
}

func (r *Router) elbowPieces(start, end v3.Vec, radius float64, o Orientation, dir Direction) []piece {
	arcStart, arcEnd := arcAnchors(start, end, radius, o, dir)

	pieces := make([]piece, 0, 3)
	if start != arcStart {
		pieces = append(pieces, piece{
			kind:   pipedebug.SegmentShaft,
			points: Shaft(start, arcStart, r.cfg.ShaftSegments),
		})
	}
	pieces = append(pieces, piece{
		kind: pipedebug.SegmentElbow,
		points: ElbowArc(ElbowConfig{
			Start:       arcStart,
			End:         arcEnd,
			Radius:      radius,
			Orientation: o,
			Direction:   dir,
			Segments:    r.cfg.ArcSegments,
		}),
	})
	if end != arcEnd {
		pieces = append(pieces, piece{
			kind:   pipedebug.SegmentShaft,
			points: Shaft(arcEnd, end, r.cfg.ShaftSegments),
		})
	}
	return pieces
}

// ElbowConnection joins start to end with an optional leading shaft, a
// quarter arc and an optional trailing shaft. A shaft is omitted when its
// endpoints coincide. Pieces are concatenated as-is, so the vertex shared
// by a shaft and the arc appears twice in a row.
func (r *Router) ElbowConnection(start, end v3.Vec, radius float64, o Orientation, dir Direction) []v3.Vec {
	return flatten(r.elbowPieces(start, end, radius, o, dir))
}

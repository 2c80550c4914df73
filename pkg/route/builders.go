package route

import (
	"math"

	"github.com/chazu/pipeworks/pkg/pipedebug"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// EdgeWrapPath routes around the start platform's side. It wraps right
// when the end platform lies at larger x, left otherwise, keeping
// EdgeOffsetFactor*radius away from the edge.
func (r *Router) EdgeWrapPath(c Connection, radius float64) []v3.Vec {
	return flatten(r.edgeWrapPieces(c, radius))
}

func (r *Router) edgeWrapPieces(c Connection, radius float64) []piece {
	wrapRight := c.EndPlatform.Center.X > c.StartPlatform.Center.X
	offset := radius * r.cfg.EdgeOffsetFactor

	x := c.StartPlatform.Left.X - offset
	if wrapRight {
		x = c.StartPlatform.Right.X + offset
	}

	waypoints := []v3.Vec{
		c.Start,
		{X: x, Y: c.Start.Y, Z: c.Start.Z},
		{X: x, Y: c.End.Y + radius, Z: c.End.Z},
		c.End,
	}

	dir := directionOf(wrapRight)
	var pieces []piece
	for i := 0; i < len(waypoints)-1; i++ {
		o := Horizontal
		if i == 1 {
			o = Vertical
		}
		pieces = append(pieces, r.elbowPieces(waypoints[i], waypoints[i+1], radius, o, dir)...)
	}
	return pieces
}

// UndersidePath drops below both ends by dropDepth, crosses at the
// midpoint x and rises to the end. Legs alternate vertical and horizontal
// elbows; only the first leg turns counter-clockwise.
func (r *Router) UndersidePath(c Connection, radius, dropDepth float64) []v3.Vec {
	return flatten(r.undersidePieces(c, radius, dropDepth))
}

func (r *Router) undersidePieces(c Connection, radius, dropDepth float64) []piece {
	midY := math.Min(c.Start.Y, c.End.Y) - dropDepth
	midX := (c.Start.X + c.End.X) / 2

	waypoints := []v3.Vec{
		c.Start,
		{X: c.Start.X, Y: midY, Z: c.Start.Z},
		{X: midX, Y: midY, Z: c.Start.Z},
		{X: c.End.X, Y: midY, Z: c.End.Z},
		c.End,
	}

	var pieces []piece
	for i := 0; i < len(waypoints)-1; i++ {
		o := Horizontal
		if i%2 == 0 {
			o = Vertical
		}
		dir := Clockwise
		if i == 0 {
			dir = CounterClockwise
		}
		pieces = append(pieces, r.elbowPieces(waypoints[i], waypoints[i+1], radius, o, dir)...)
	}
	return pieces
}

// OptimalPath classifies the hop with AnalyzePathRequirements and builds
// the matching route. The direct route is one horizontal elbow connection
// turning toward the end.
func (r *Router) OptimalPath(c Connection, radius float64) []v3.Vec {
	_, pieces := r.optimalPieces(c, radius)
	return flatten(pieces)
}

func (r *Router) optimalPieces(c Connection, radius float64) (RoutingType, []piece) {
	rt := r.AnalyzePathRequirements(c.StartPlatform, c.EndPlatform)
	Logger().Debug("route: strategy selected", "routing", rt.String())

	switch rt {
	case EdgeWrap:
		return rt, r.edgeWrapPieces(c, radius)
	case Underside:
		return rt, r.undersidePieces(c, radius, r.cfg.DropDepth)
	}
	return rt, r.elbowPieces(c.Start, c.End, radius, Horizontal, directionOf(c.End.X > c.Start.X))
}

// routeSegmentType maps a strategy to the debug tag of its whole route.
func routeSegmentType(rt RoutingType) (pipedebug.SegmentType, bool) {
	switch rt {
	case EdgeWrap:
		return pipedebug.SegmentWrap, true
	case Underside:
		return pipedebug.SegmentUnderside, true
	}
	return 0, false
}

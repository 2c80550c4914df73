package platform

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrInvalidSide is returned when an edge midpoint is requested for a side
// that is not top, bottom, left or right.
var ErrInvalidSide = errors.New("invalid platform side")

// Side names one of the four edge midpoints of a platform.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// ParseSide converts a side name into a Side.
func ParseSide(name string) (Side, error) {
	switch name {
	case "top":
		return SideTop, nil
	case "bottom":
		return SideBottom, nil
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSide, name)
}

// DefaultConstructionPadding is the half-width of a construction box.
const DefaultConstructionPadding = 0.1

// Geometry wraps one platform's edge snapshot and footprint. It is built
// per request and never mutated.
type Geometry struct {
	edges  Edges
	width  float64
	depth  float64
	height float64
	bounds sdf.Box3
}

// NewGeometry creates a Geometry from an edge set and footprint.
func NewGeometry(edges Edges, width, depth, height float64) *Geometry {
	return &Geometry{
		edges:  edges,
		width:  width,
		depth:  depth,
		height: height,
		bounds: boundsOf(edges.Corners()),
	}
}

func boundsOf(pts [4]v3.Vec) sdf.Box3 {
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = v3.Vec{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = v3.Vec{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	return sdf.Box3{Min: lo, Max: hi}
}

// Edges returns the edge snapshot.
func (g *Geometry) Edges() Edges {
	return g.edges
}

// Dimensions returns width, depth and height.
func (g *Geometry) Dimensions() (width, depth, height float64) {
	return g.width, g.depth, g.height
}

// Bounds returns the axis-aligned box enclosing the four corners.
func (g *Geometry) Bounds() sdf.Box3 {
	return g.bounds
}

// Center returns the center point.
func (g *Geometry) Center() v3.Vec {
	return g.edges.Center
}

// RhombusBase returns the center lowered by the platform height.
func (g *Geometry) RhombusBase() v3.Vec {
	c := g.edges.Center
	return v3.Vec{X: c.X, Y: c.Y - g.height, Z: c.Z}
}

// EdgeMidpoint returns the precomputed midpoint of the given side.
func (g *Geometry) EdgeMidpoint(side Side) (v3.Vec, error) {
	switch side {
	case SideTop:
		return g.edges.Top, nil
	case SideBottom:
		return g.edges.Bottom, nil
	case SideLeft:
		return g.edges.Left, nil
	case SideRight:
		return g.edges.Right, nil
	}
	return v3.Vec{}, fmt.Errorf("%w: %s", ErrInvalidSide, side)
}

// ConstructionBox returns a cube of half-width padding centered on ref.
// A non-positive padding uses DefaultConstructionPadding. Only used for
// debug overlays.
func (g *Geometry) ConstructionBox(ref v3.Vec, padding float64) sdf.Box3 {
	if padding <= 0 {
		padding = DefaultConstructionPadding
	}
	p := v3.Vec{X: padding, Y: padding, Z: padding}
	return sdf.Box3{Min: ref.Sub(p), Max: ref.Add(p)}
}

// BoxEdges returns the 12 edges of an axis-aligned box as point pairs.
func BoxEdges(b sdf.Box3) [12][2]v3.Vec {
	lo, hi := b.Min, b.Max
	c := [8]v3.Vec{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}
	return [12][2]v3.Vec{
		{c[0], c[1]}, {c[1], c[2]}, {c[2], c[3]}, {c[3], c[0]},
		{c[4], c[5]}, {c[5], c[6]}, {c[6], c[7]}, {c[7], c[4]},
		{c[0], c[4]}, {c[1], c[5]}, {c[2], c[6]}, {c[3], c[7]},
	}
}

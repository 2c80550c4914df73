// Package selection provides the snapping grid over a platform surface and
// the in-memory store of points picked on it.
package selection

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// PickRadius is the largest distance from a grid intersection that still
// snaps to it.
const PickRadius = 0.5

// Subdivisions is the number of grid cells along x and along z.
type Subdivisions struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Grid is a rectangular shell around a platform footprint, in the
// platform's local frame, subdivided into selectable intersections.
type Grid struct {
	Bounds        sdf.Box3     `json:"bounds"`
	Vertices      [4]v3.Vec    `json:"vertices"`
	Edges         [4][2]v3.Vec `json:"edges"`
	Lines         [][2]v3.Vec  `json:"lines"`
	Intersections []v3.Vec     `json:"intersections"`
}

// NewGrid builds the shell of a width x depth footprint grown by offset on
// every side, at local height zero. Subdivision counts below one are
// treated as one.
func NewGrid(width, depth, offset float64, sub Subdivisions) *Grid {
	if sub.X < 1 {
		sub.X = 1
	}
	if sub.Y < 1 {
		sub.Y = 1
	}
	hw := width/2 + offset
	hd := depth/2 + offset

	g := &Grid{
		Vertices: [4]v3.Vec{
			{X: -hw, Z: -hd},
			{X: hw, Z: -hd},
			{X: hw, Z: hd},
			{X: -hw, Z: hd},
		},
	}
	for i := range g.Vertices {
		g.Edges[i] = [2]v3.Vec{g.Vertices[i], g.Vertices[(i+1)%4]}
	}
	g.Bounds = sdf.Box3{Min: g.Vertices[0], Max: g.Vertices[2]}

	lo, hi := g.Bounds.Min, g.Bounds.Max
	xStep := (hi.X - lo.X) / float64(sub.X)
	zStep := (hi.Z - lo.Z) / float64(sub.Y)

	for j := 0; j <= sub.Y; j++ {
		z := lo.Z + zStep*float64(j)
		g.Lines = append(g.Lines, [2]v3.Vec{{X: lo.X, Z: z}, {X: hi.X, Z: z}})
	}
	for i := 0; i <= sub.X; i++ {
		x := lo.X + xStep*float64(i)
		g.Lines = append(g.Lines, [2]v3.Vec{{X: x, Z: lo.Z}, {X: x, Z: hi.Z}})
	}

	g.Intersections = make([]v3.Vec, 0, (sub.X+1)*(sub.Y+1))
	for i := 0; i <= sub.X; i++ {
		for j := 0; j <= sub.Y; j++ {
			g.Intersections = append(g.Intersections, v3.Vec{
				X: lo.X + xStep*float64(i),
				Z: lo.Z + zStep*float64(j),
			})
		}
	}
	return g
}

// Closest returns the intersection nearest to local and its distance. Ties
// keep the earlier intersection.
func (g *Grid) Closest(local v3.Vec) (v3.Vec, float64) {
	best, bestDist := v3.Vec{}, math.Inf(1)
	for _, p := range g.Intersections {
		if d := local.Sub(p).Length(); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, bestDist
}

// Pick snaps a world-space hit to the grid of a platform at origin. It
// reports false when no intersection lies within PickRadius.
func (g *Grid) Pick(world, origin v3.Vec) (v3.Vec, bool) {
	p, d := g.Closest(world.Sub(origin))
	if d >= PickRadius {
		return v3.Vec{}, false
	}
	return p.Add(origin), true
}

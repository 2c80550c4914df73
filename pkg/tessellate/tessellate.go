// Package tessellate turns an assembled scene into triangle meshes: one
// per platform, one for the rhombus marker and one tube per routed pipe.
package tessellate

import (
	"fmt"
	"math"

	"github.com/chazu/pipeworks/pkg/kernel"
	"github.com/chazu/pipeworks/pkg/scene"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// PlatformRounding is the edge radius of platform boxes.
const PlatformRounding = 0.1

// DefaultRadialSegments is the number of vertices around a tube ring.
const DefaultRadialSegments = 8

// TubeOptions controls pipe tube meshes.
type TubeOptions struct {
	// Radius of the tube. Zero uses the scene's pipe height.
	Radius float64
	// RadialSegments is the ring resolution. Values below 3 use
	// DefaultRadialSegments.
	RadialSegments int
}

// Scene produces the meshes of sc. The tessellator is read-only and
// never mutates the scene. Pipes with fewer than two points are skipped.
func Scene(sc *scene.Scene, k kernel.Kernel, opts TubeOptions) ([]*kernel.Mesh, error) {
	if sc == nil {
		return nil, nil
	}
	if opts.Radius <= 0 {
		opts.Radius = sc.Settings.Pipe.Height
	}

	var meshes []*kernel.Mesh
	d := sc.Settings.Dimensions

	for _, p := range sc.Platforms {
		// The top face sits at Position.Y + height, where the edges are.
		solid := k.Box(d.Width, d.Height, d.Depth, PlatformRounding)
		solid = k.Translate(solid, p.Position.X, p.Position.Y+d.Height/2, p.Position.Z)
		mesh, err := k.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: platform %d: %w", p.ID, err)
		}
		mesh.Name = fmt.Sprintf("platform-%d", p.ID)
		mesh.Color = p.Color
		meshes = append(meshes, mesh)
	}

	if len(sc.Platforms) > 0 {
		rs := scene.RhombusSize
		solid := k.Translate(k.Box(rs.X, rs.Y, rs.Z, 0), sc.Rhombus.X, sc.Rhombus.Y, sc.Rhombus.Z)
		mesh, err := k.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: rhombus: %w", err)
		}
		mesh.Name = "rhombus"
		mesh.Color = scene.RhombusColor
		meshes = append(meshes, mesh)
	}

	for _, pipe := range sc.Pipes {
		mesh := Tube(pipe.Path.Points, opts)
		if mesh == nil {
			continue
		}
		mesh.Name = fmt.Sprintf("pipe-%d", pipe.PlatformID)
		mesh.Color = sc.Settings.Pipe.Color
		meshes = append(meshes, mesh)
	}

	return meshes, nil
}

// Tube sweeps a ring of opts.RadialSegments vertices along points and
// returns the open tube surface, or nil for fewer than two points. Ring
// frames are carried from point to point so the tube does not twist.
func Tube(points []v3.Vec, opts TubeOptions) *kernel.Mesh {
	if len(points) < 2 {
		return nil
	}
	radial := opts.RadialSegments
	if radial < 3 {
		radial = DefaultRadialSegments
	}

	tangents := tangentsOf(points)
	normal := initialNormal(tangents[0])

	m := &kernel.Mesh{
		Vertices: make([]float32, 0, len(points)*radial*3),
		Normals:  make([]float32, 0, len(points)*radial*3),
		Indices:  make([]uint32, 0, (len(points)-1)*radial*6),
	}

	for i, p := range points {
		t := tangents[i]
		if i > 0 {
			// Project the previous normal onto the new ring plane.
			n := normal.Sub(t.MulScalar(dot(normal, t)))
			if n.Length() < 1e-9 {
				n = initialNormal(t)
			}
			normal = unit(n)
		}
		binormal := cross(t, normal)

		for j := 0; j < radial; j++ {
			a := 2 * math.Pi * float64(j) / float64(radial)
			dir := normal.MulScalar(math.Cos(a)).Add(binormal.MulScalar(math.Sin(a)))
			v := p.Add(dir.MulScalar(opts.Radius))
			m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			m.Normals = append(m.Normals, float32(dir.X), float32(dir.Y), float32(dir.Z))
		}
	}

	r := uint32(radial)
	for i := uint32(0); i < uint32(len(points)-1); i++ {
		for j := uint32(0); j < r; j++ {
			a := i*r + j
			b := i*r + (j+1)%r
			c := a + r
			d := b + r
			m.Indices = append(m.Indices, a, c, b, b, c, d)
		}
	}
	return m
}

// tangentsOf returns a unit tangent per point. Zero-length steps reuse the
// nearest usable direction; a fully degenerate path points along +Y.
func tangentsOf(points []v3.Vec) []v3.Vec {
	n := len(points)
	out := make([]v3.Vec, n)
	for i := range points {
		lo, hi := i-1, i+1
		if lo < 0 {
			lo = 0
		}
		if hi > n-1 {
			hi = n - 1
		}
		out[i] = points[hi].Sub(points[lo])
	}

	fallback := v3.Vec{Y: 1}
	for i := range out {
		if out[i].Length() > 1e-12 {
			fallback = out[i]
			break
		}
	}
	for i := range out {
		if out[i].Length() <= 1e-12 {
			out[i] = fallback
		} else {
			fallback = out[i]
		}
		out[i] = unit(out[i])
	}
	return out
}

// initialNormal picks a unit vector perpendicular to t, crossing t with
// the axis it is least aligned with.
func initialNormal(t v3.Vec) v3.Vec {
	axis := v3.Vec{X: 1}
	ax, ay, az := math.Abs(t.X), math.Abs(t.Y), math.Abs(t.Z)
	switch {
	case ay <= ax && ay <= az:
		axis = v3.Vec{Y: 1}
	case az <= ax && az <= ay:
		axis = v3.Vec{Z: 1}
	}
	return unit(cross(t, axis))
}

func dot(a, b v3.Vec) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func cross(a, b v3.Vec) v3.Vec {
	return v3.Vec{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func unit(v v3.Vec) v3.Vec {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.MulScalar(1 / l)
}

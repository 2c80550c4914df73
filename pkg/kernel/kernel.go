// Package kernel defines the geometry kernel used to turn scene solids
// into triangle meshes. The sdfx subpackage is the only backend.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel builds the solids a scene needs.
type Kernel interface {
	// Box creates a box of the given size centered on the origin. round
	// is the edge rounding radius; zero gives sharp edges.
	Box(x, y, z, round float64) Solid

	// Translate moves a solid by (x, y, z).
	Translate(s Solid, x, y, z float64) Solid

	// ToMesh converts a solid to a triangle mesh.
	ToMesh(s Solid) (*Mesh, error)
}

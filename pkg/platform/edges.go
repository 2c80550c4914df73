package platform

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Edges holds the nine named reference points of a platform's top face.
// "top" is the -z side of the rectangle, "left" the -x side.
type Edges struct {
	Center      v3.Vec `json:"center"`
	Top         v3.Vec `json:"top"`
	Bottom      v3.Vec `json:"bottom"`
	Left        v3.Vec `json:"left"`
	Right       v3.Vec `json:"right"`
	TopLeft     v3.Vec `json:"topLeft"`
	TopRight    v3.Vec `json:"topRight"`
	BottomLeft  v3.Vec `json:"bottomLeft"`
	BottomRight v3.Vec `json:"bottomRight"`
}

// EdgesFor computes the edge set of a platform placed at position with the
// given footprint. Every point sits at position.Y + height.
func EdgesFor(position v3.Vec, width, depth, height float64) Edges {
	hw := width / 2
	hd := depth / 2
	y := position.Y + height

	at := func(dx, dz float64) v3.Vec {
		return v3.Vec{X: position.X + dx, Y: y, Z: position.Z + dz}
	}

	return Edges{
		Center:      at(0, 0),
		Top:         at(0, -hd),
		Bottom:      at(0, hd),
		Left:        at(-hw, 0),
		Right:       at(hw, 0),
		TopLeft:     at(-hw, -hd),
		TopRight:    at(hw, -hd),
		BottomLeft:  at(-hw, hd),
		BottomRight: at(hw, hd),
	}
}

// Corners returns the rectangle corners: topLeft, topRight, bottomLeft,
// bottomRight.
func (e Edges) Corners() [4]v3.Vec {
	return [4]v3.Vec{e.TopLeft, e.TopRight, e.BottomLeft, e.BottomRight}
}

package scene

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ResponsiveBreakpoint is the viewport width below which a responsive
// layout stacks the platforms vertically.
const ResponsiveBreakpoint = 768

// HoverColor replaces the color of a hovered platform.
const HoverColor = "#e0e0e0"

// PlatformPositions returns the base position of each platform. A
// non-positive viewport width means unknown and never stacks.
func PlatformPositions(s *Settings, viewportWidth float64) [PlatformCount]v3.Vec {
	if s.Positioning.Responsive && viewportWidth > 0 && viewportWidth < ResponsiveBreakpoint {
		return [PlatformCount]v3.Vec{
			{X: 0, Y: 0, Z: 0},
			{X: 0, Y: -2, Z: 0},
			{X: 0, Y: -4, Z: 0},
		}
	}
	h, v := s.Positioning.HorizontalOffset, s.Positioning.VerticalStagger
	return [PlatformCount]v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: h, Y: -v, Z: 0},
		{X: 2 * h, Y: -2 * v, Z: 0},
	}
}

// CameraPose is where the camera sits and what it looks at.
type CameraPose struct {
	Position v3.Vec  `json:"position"`
	Target   v3.Vec  `json:"target"`
	FOV      float64 `json:"fov"`
	Zoom     float64 `json:"zoom"`
	Orbit    bool    `json:"orbit"` // free orbiting, perspective view only
}

// Camera derives the camera pose from the view settings.
func Camera(s *Settings) CameraPose {
	d, pan := s.View.CameraDistance, s.View.Pan
	if s.View.Axonometric {
		return CameraPose{
			Position: v3.Vec{X: d + pan.X, Y: d + pan.Y, Z: d + pan.Z},
			Target:   pan,
			FOV:      45,
			Zoom:     1.5,
		}
	}
	return CameraPose{
		Position: v3.Vec{X: d + pan.X, Y: d/2 + pan.Y, Z: d + pan.Z},
		Target:   pan,
		FOV:      60,
		Zoom:     1,
		Orbit:    true,
	}
}

// PlatformColor returns the display color of platform index (0-based).
// Linked colors ignore hovering.
func PlatformColor(s *Settings, index int, hovered bool) string {
	if s.Colors.Link {
		return s.Colors.Platform1
	}
	if hovered {
		return HoverColor
	}
	return s.Colors.PlatformColorAt(index)
}

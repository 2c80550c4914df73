package pipedebug

import (
	"fmt"
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Options mirrors the overlay toggles of the debug view.
type Options struct {
	ShowLabels            bool
	ShowConstructionLines bool
	ShowMetadata          bool
}

// DefaultOptions shows the info panel only.
func DefaultOptions() Options {
	return Options{ShowMetadata: true}
}

// OverlayPoint is a resolved point marker.
type OverlayPoint struct {
	Position v3.Vec  `json:"position"`
	Label    string  `json:"label"`
	Color    string  `json:"color"`
	Opacity  float64 `json:"opacity"`
}

// OverlayLine is a resolved line or polyline.
type OverlayLine struct {
	Points    []v3.Vec `json:"points"`
	Color     string   `json:"color"`
	Opacity   float64  `json:"opacity"`
	LineWidth float64  `json:"lineWidth"`
	Dashed    bool     `json:"dashed"`
}

// Overlay is everything a renderer draws for one pipe's debug view.
type Overlay struct {
	Lines  []OverlayLine  `json:"lines"`
	Points []OverlayPoint `json:"points"`
	Panel  []string       `json:"panel,omitempty"`
}

func resolve(style Style, tagColor string, defaultOpacity float64) (string, float64) {
	c := style.Color
	if c == "" {
		c = tagColor
	}
	o := style.Opacity
	if o == 0 {
		o = defaultOpacity
	}
	return c, o
}

func pointOpacity(t PointType) float64 {
	if t == PointControl {
		return 0.5
	}
	return 0.7
}

func lineOpacity(t LineType) float64 {
	if t == LineConstruction {
		return 0.3
	}
	return 1
}

// BuildOverlay resolves points and debug info into drawable elements.
// It returns nil when there are fewer than two points. Without debug info
// the bare path is drawn with P0..Pn anchors.
func BuildOverlay(points []v3.Vec, info *PathDebugInfo, opts Options) *Overlay {
	if len(points) < 2 {
		return nil
	}

	ov := &Overlay{Lines: []OverlayLine{}, Points: []OverlayPoint{}}

	if info == nil {
		ov.Lines = append(ov.Lines, OverlayLine{
			Points:    points,
			Color:     LinePath.Color(),
			Opacity:   1,
			LineWidth: 2,
		})
		if opts.ShowLabels {
			for i, p := range points {
				ov.Points = append(ov.Points, OverlayPoint{
					Position: p,
					Label:    fmt.Sprintf("P%d", i),
					Color:    PointAnchor.Color(),
					Opacity:  pointOpacity(PointAnchor),
				})
			}
		}
	} else {
		if opts.ShowConstructionLines {
			for _, l := range info.Lines {
				if l.Type != LineConstruction {
					continue
				}
				c, o := resolve(l.Style, l.Type.Color(), lineOpacity(l.Type))
				ov.Lines = append(ov.Lines, OverlayLine{
					Points:    []v3.Vec{l.Start, l.End},
					Color:     c,
					Opacity:   o,
					LineWidth: 1,
					Dashed:    true,
				})
			}
		}
		for _, s := range info.Segments {
			c, o := resolve(s.Style, s.Type.Color(), 1)
			ov.Lines = append(ov.Lines, OverlayLine{
				Points:    s.Points,
				Color:     c,
				Opacity:   o,
				LineWidth: 2,
			})
		}
		if opts.ShowLabels {
			for _, p := range info.Points {
				c, o := resolve(p.Style, p.Type.Color(), pointOpacity(p.Type))
				ov.Points = append(ov.Points, OverlayPoint{
					Position: p.Position,
					Label:    p.Label,
					Color:    c,
					Opacity:  o,
				})
			}
		}
	}

	if opts.ShowMetadata {
		ov.Panel = InfoPanel(points, info)
	}
	return ov
}

// InfoPanel returns the text lines of the overlay info panel: the point
// count, then the routing type and metadata sorted by key when info is set.
func InfoPanel(points []v3.Vec, info *PathDebugInfo) []string {
	lines := []string{fmt.Sprintf("Points: %d", len(points))}
	if info == nil {
		return lines
	}
	lines = append(lines, "Type: "+info.RoutingType)

	keys := make([]string, 0, len(info.Metadata))
	for k := range info.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, k+": "+info.Metadata[k])
	}
	return lines
}

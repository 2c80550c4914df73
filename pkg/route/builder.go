package route

import (
	"errors"
	"fmt"

	"github.com/chazu/pipeworks/pkg/curve"
	"github.com/chazu/pipeworks/pkg/platform"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrTooFewPlatforms is returned by PathBuilder.GeneratePath when fewer
// than two platforms were added.
var ErrTooFewPlatforms = errors.New("route: at least two platforms are required")

// Default PathBuilder spacing values.
const (
	DefaultVerticalOffset   = -0.25
	DefaultHorizontalOffset = 0.0
)

// PathBuilderConfig configures a PathBuilder.
type PathBuilderConfig struct {
	ElbowRadius       float64 `json:"elbowRadius" yaml:"elbow_radius"`
	SwitchbackSpacing float64 `json:"switchbackSpacing" yaml:"switchback_spacing"`
	VerticalOffset    float64 `json:"verticalOffset" yaml:"vertical_offset"`
	HorizontalOffset  float64 `json:"horizontalOffset" yaml:"horizontal_offset"` // reserved, unused by the builder
	CurveSegments     int     `json:"curveSegments" yaml:"curve_segments"`
}

// DefaultPathBuilderConfig returns the builder defaults.
func DefaultPathBuilderConfig() PathBuilderConfig {
	return PathBuilderConfig{
		ElbowRadius:       DefaultElbowRadius,
		SwitchbackSpacing: DefaultSwitchbackSpacing,
		VerticalOffset:    DefaultVerticalOffset,
		HorizontalOffset:  DefaultHorizontalOffset,
		CurveSegments:     curve.DefaultSegments,
	}
}

// PathBuilder chains platforms with Bezier elbows and switchbacks. It is
// an alternative to GeneratePipePath and is not safe for concurrent use.
type PathBuilder struct {
	cfg       PathBuilderConfig
	platforms []*platform.Geometry
	segments  []*curve.Segment
}

// NewPathBuilder returns an empty builder.
func NewPathBuilder(cfg PathBuilderConfig) *PathBuilder {
	if cfg.CurveSegments < 1 {
		cfg.CurveSegments = curve.DefaultSegments
	}
	return &PathBuilder{cfg: cfg}
}

// AddPlatform appends a platform to the chain.
func (b *PathBuilder) AddPlatform(edges platform.Edges, width, depth, height float64) {
	b.platforms = append(b.platforms, platform.NewGeometry(edges, width, depth, height))
}

// Len returns the number of platforms added.
func (b *PathBuilder) Len() int {
	return len(b.platforms)
}

// GeneratePath builds the chained path. For every consecutive pair a
// vertical Bezier elbow runs from the rhombus base of the first platform to
// the left midpoint of the second; the second and third hops are followed
// by a switchback of one and two turns. Repeated calls rebuild the path
// from scratch.
func (b *PathBuilder) GeneratePath() ([]v3.Vec, error) {
	if len(b.platforms) < 2 {
		return nil, fmt.Errorf("generate path with %d platform(s): %w", len(b.platforms), ErrTooFewPlatforms)
	}

	b.segments = b.segments[:0]
	var points []v3.Vec
	for i := 0; i < len(b.platforms)-1; i++ {
		start := b.platforms[i].RhombusBase()
		end, err := b.platforms[i+1].EdgeMidpoint(platform.SideLeft)
		if err != nil {
			return nil, err
		}

		seg := b.elbow(start, end)
		b.segments = append(b.segments, seg)
		points = append(points, seg.Points()...)

		switch i {
		case 1:
			points = append(points, b.switchback(end, 1)...)
		case 2:
			points = append(points, b.switchback(end, 2)...)
		}
	}
	return points, nil
}

func (b *PathBuilder) elbow(start, end v3.Vec) *curve.Segment {
	c1, c2 := curve.Elbow(start, end, b.cfg.ElbowRadius, curve.Vertical).Controls()
	return curve.New(curve.Config{
		Start:    start,
		End:      end,
		Control1: c1,
		Control2: c2,
		Segments: b.cfg.CurveSegments,
	})
}

// switchback zig-zags from start: each turn moves SwitchbackSpacing along
// x, alternating sign, then drops VerticalOffset except after the last
// turn. The returned slice begins with start.
func (b *PathBuilder) switchback(start v3.Vec, turns int) []v3.Vec {
	points := []v3.Vec{start}
	for i := 0; i < turns; i++ {
		dir := 1.0
		if i%2 == 1 {
			dir = -1
		}
		h := points[len(points)-1].Add(v3.Vec{X: dir * b.cfg.SwitchbackSpacing})
		points = append(points, h)
		if i < turns-1 {
			points = append(points, h.Add(v3.Vec{Y: b.cfg.VerticalOffset}))
		}
	}
	return points
}

// DebugPoints returns the sample points of every elbow built by the last
// GeneratePath call.
func (b *PathBuilder) DebugPoints() []v3.Vec {
	var pts []v3.Vec
	for _, s := range b.segments {
		pts = append(pts, s.Points()...)
	}
	return pts
}

// PathBuilder returns a builder using the router's PathBuilder settings.
func (r *Router) PathBuilder() *PathBuilder {
	return NewPathBuilder(r.cfg.PathBuilder)
}

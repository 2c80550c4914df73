// Package curve samples cubic Bezier segments in 3D and builds the
// single-segment Bezier approximation of a pipe elbow.
package curve

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultSegments is the sample count used when Config.Segments is unset.
const DefaultSegments = 12

// Orientation selects the axis along which elbow control points are offset.
type Orientation int

const (
	Horizontal Orientation = iota // x axis
	Vertical                      // y axis
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// Config defines a cubic Bezier segment.
type Config struct {
	Start    v3.Vec
	End      v3.Vec
	Control1 v3.Vec
	Control2 v3.Vec
	Segments int // values below 1 fall back to DefaultSegments
}

// Segment is a cubic Bezier curve with a fixed sampling resolution.
type Segment struct {
	p0, p1, p2, p3 v3.Vec
	segments       int
}

// New creates a Segment from cfg.
func New(cfg Config) *Segment {
	n := cfg.Segments
	if n < 1 {
		n = DefaultSegments
	}
	return &Segment{
		p0:       cfg.Start,
		p1:       cfg.Control1,
		p2:       cfg.Control2,
		p3:       cfg.End,
		segments: n,
	}
}

// Segments returns the sampling resolution.
func (s *Segment) Segments() int {
	return s.segments
}

// Controls returns the two control points.
func (s *Segment) Controls() (v3.Vec, v3.Vec) {
	return s.p1, s.p2
}

// Points samples the curve uniformly in t and returns Segments()+1 points.
// The first point is the start and the last the end.
func (s *Segment) Points() []v3.Vec {
	pts := make([]v3.Vec, 0, s.segments+1)
	for i := 0; i <= s.segments; i++ {
		pts = append(pts, s.PointAt(float64(i)/float64(s.segments)))
	}
	// Pin the endpoints so rounding never moves them.
	pts[0] = s.p0
	pts[len(pts)-1] = s.p3
	return pts
}

// PointAt evaluates the curve at t. Values outside [0,1] extrapolate the
// Bernstein polynomial; they are not clamped.
func (s *Segment) PointAt(t float64) v3.Vec {
	mt := 1 - t
	b0 := mt * mt * mt
	b1 := 3 * mt * mt * t
	b2 := 3 * mt * t * t
	b3 := t * t * t
	return s.p0.MulScalar(b0).
		Add(s.p1.MulScalar(b1)).
		Add(s.p2.MulScalar(b2)).
		Add(s.p3.MulScalar(b3))
}

// DerivativeAt returns the first derivative of the curve at t.
func (s *Segment) DerivativeAt(t float64) v3.Vec {
	mt := 1 - t
	d0 := s.p1.Sub(s.p0).MulScalar(3 * mt * mt)
	d1 := s.p2.Sub(s.p1).MulScalar(6 * mt * t)
	d2 := s.p3.Sub(s.p2).MulScalar(3 * t * t)
	return d0.Add(d1).Add(d2)
}

// TangentAt returns the unit tangent at t, or the zero vector where the
// derivative vanishes.
func (s *Segment) TangentAt(t float64) v3.Vec {
	d := s.DerivativeAt(t)
	l := d.Length()
	if l < 1e-12 {
		return v3.Vec{}
	}
	return d.MulScalar(1 / l)
}

// Elbow builds a Bezier quarter-bend from start to end. The first control
// point leaves start along the orientation axis, the second arrives at end
// along the other axis, both offset by radius.
func Elbow(start, end v3.Vec, radius float64, o Orientation) *Segment {
	var c1, c2 v3.Vec
	if o == Horizontal {
		c1 = start.Add(v3.Vec{X: radius})
		c2 = end.Sub(v3.Vec{Y: radius})
	} else {
		c1 = start.Add(v3.Vec{Y: radius})
		c2 = end.Sub(v3.Vec{X: radius})
	}
	return New(Config{
		Start:    start,
		End:      end,
		Control1: c1,
		Control2: c2,
	})
}

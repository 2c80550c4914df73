package route

import (
	"math"

	"github.com/chazu/pipeworks/pkg/pipedebug"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// PathAnalysis is the result of AnalyzePath.
type PathAnalysis struct {
	RoutingType         RoutingType              `json:"routingType"`
	Constraints         PathConstraints          `json:"constraints"`
	ClearanceViolations bool                     `json:"clearanceViolations"`
	TurnAngles          []float64                `json:"turnAngles"` // radians
	SegmentLengths      []float64                `json:"segmentLengths"`
	TotalLength         float64                  `json:"totalLength"`
	DebugInfo           *pipedebug.PathDebugInfo `json:"debugInfo"`
}

// normalize returns the unit vector of v, or zero for a zero vector.
func normalize(v v3.Vec) v3.Vec {
	l := v.Length()
	if l == 0 {
		return v3.Vec{}
	}
	return v.MulScalar(1 / l)
}

// AnalyzePath measures the straight hop between the connection endpoints
// and labels it.
//
// The label is underside when the vertical gap is below MinVerticalSpace,
// edge-wrap when the horizontal gap exceeds MaxTurnAngle, compound on a
// clearance violation, direct otherwise. MaxTurnAngle is in radians while
// the horizontal gap is a distance; the comparison is kept as-is and
// pinned by tests until the intended threshold is settled.
func (r *Router) AnalyzePath(c Connection, constraints PathConstraints) PathAnalysis {
	verticalDiff := c.End.Y - c.Start.Y
	horizontalDiff := c.End.X - c.Start.X
	distance := c.End.Sub(c.Start).Length()

	// angle against world up; the dot product reduces to the y component
	dir := normalize(c.End.Sub(c.Start))
	dot := math.Max(-1, math.Min(1, dir.Y))
	turnAngles := []float64{math.Acos(dot)}

	violated := r.CheckClearanceViolations(c.Start, c.End, c.StartPlatform, c.EndPlatform, constraints.PreferredClearance)

	rt := Direct
	switch {
	case math.Abs(verticalDiff) < constraints.MinVerticalSpace:
		rt = Underside
	case math.Abs(horizontalDiff) > constraints.MaxTurnAngle:
		rt = EdgeWrap
	case violated:
		rt = Compound
	}

	info := pipedebug.New(rt.String())
	info.Points = append(info.Points,
		pipedebug.Point{Position: c.Start, Label: "Start", Type: pipedebug.PointAnchor, Style: pipedebug.Style{Color: "green"}},
		pipedebug.Point{Position: c.End, Label: "End", Type: pipedebug.PointAnchor, Style: pipedebug.Style{Color: "red"}},
	)
	line := pipedebug.Line{Start: c.Start, End: c.End, Type: pipedebug.LinePath, Style: pipedebug.Style{Color: "green"}}
	if violated {
		line.Type = pipedebug.LineClearance
		line.Color = "red"
	}
	info.Lines = append(info.Lines, line)

	return PathAnalysis{
		RoutingType:         rt,
		Constraints:         constraints,
		ClearanceViolations: violated,
		TurnAngles:          turnAngles,
		SegmentLengths:      []float64{distance},
		TotalLength:         distance,
		DebugInfo:           info,
	}
}

package route

import (
	"strconv"

	"github.com/chazu/pipeworks/pkg/pipedebug"
	"github.com/chazu/pipeworks/pkg/platform"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Request is the input of GeneratePipePath.
type Request struct {
	PlatformID int             `json:"platformId"`
	Edges      platform.Edges  `json:"edges"`
	Start      v3.Vec          `json:"start"`
	Width      float64         `json:"width"`
	Depth      float64         `json:"depth"`
	Height     float64         `json:"height"`
	Previous   *platform.Edges `json:"previous,omitempty"`
	Debug      bool            `json:"debug"`
}

// PipePath is a routed point sequence. Points is never nil.
type PipePath struct {
	Points    []v3.Vec                 `json:"points"`
	DebugInfo *pipedebug.PathDebugInfo `json:"debugInfo,omitempty"`
	Analysis  *PathAnalysis            `json:"-"`
	Routing   RoutingType              `json:"routing"`
}

// GeneratePipePath routes the pipe feeding a platform using the default
// router.
func GeneratePipePath(req Request) PipePath {
	return defaultRouter.GeneratePipePath(req)
}

// GeneratePipePath routes the pipe feeding the platform in req.
//
// Platform 1 has no predecessor: the pipe is one counter-clockwise vertical
// elbow connection from Start down to the platform center, with no debug
// info. Any other platform needs Previous; the pipe then runs from Start to
// the platform's top-left corner along the strategy chosen by
// AnalyzePathRequirements, and the debug info comes from AnalyzePath. With
// Debug set, the debug info is enriched with the routed geometry. Without
// Previous the path is empty.
func (r *Router) GeneratePipePath(req Request) PipePath {
	radius := r.cfg.ElbowRadius

	if req.PlatformID == 1 {
		return PipePath{
			Points:  r.ElbowConnection(req.Start, req.Edges.Center, radius, Vertical, CounterClockwise),
			Routing: Direct,
		}
	}
	if req.Previous == nil {
		return PipePath{Points: []v3.Vec{}}
	}

	c := Connection{
		Start:         req.Start,
		End:           req.Edges.TopLeft,
		StartPlatform: *req.Previous,
		EndPlatform:   req.Edges,
	}

	analysis := r.AnalyzePath(c, r.cfg.Constraints)
	routed, pieces := r.optimalPieces(c, radius)
	points := flatten(pieces)

	if analysis.RoutingType != routed {
		Logger().Debug("route: analysis label differs from routed strategy",
			"platform", req.PlatformID,
			"label", analysis.RoutingType.String(),
			"routed", routed.String())
	}

	info := analysis.DebugInfo
	if req.Debug {
		r.annotate(info, req, routed, pieces, points, analysis)
	}

	return PipePath{
		Points:    points,
		DebugInfo: info,
		Analysis:  &analysis,
		Routing:   routed,
	}
}

// annotate adds the routed geometry to the analyzer's debug info.
func (r *Router) annotate(info *pipedebug.PathDebugInfo, req Request, routed RoutingType, pieces []piece, points []v3.Vec, analysis PathAnalysis) {
	elbows := 0
	for _, p := range pieces {
		info.Segments = append(info.Segments, pipedebug.Segment{Points: p.points, Type: p.kind})
		if p.kind == pipedebug.SegmentElbow && len(p.points) > 0 {
			elbows++
			info.Points = append(info.Points, pipedebug.Point{
				Position: p.points[len(p.points)/2],
				Label:    "Elbow " + strconv.Itoa(elbows),
				Type:     pipedebug.PointElbow,
			})
		}
	}
	if kind, ok := routeSegmentType(routed); ok {
		info.Segments = append(info.Segments, pipedebug.Segment{Points: points, Type: kind})
	}

	geom := platform.NewGeometry(req.Edges, req.Width, req.Depth, req.Height)
	box := geom.ConstructionBox(req.Edges.TopLeft, platform.DefaultConstructionPadding)
	for _, e := range platform.BoxEdges(box) {
		info.Lines = append(info.Lines, pipedebug.Line{Start: e[0], End: e[1], Type: pipedebug.LineConstruction})
	}
	info.Points = append(info.Points, pipedebug.Point{
		Position: geom.RhombusBase(),
		Label:    "Base",
		Type:     pipedebug.PointIntersection,
	})

	info.SetMeta("pointCount", strconv.Itoa(len(points)))
	info.SetMeta("routedAs", routed.String())
	info.SetMeta("totalLength", strconv.FormatFloat(PolylineLength(points), 'f', 3, 64))
	info.SetMeta("turnAngle", strconv.FormatFloat(analysis.TurnAngles[0], 'f', 4, 64))
}

// PolylineLength returns the summed length of consecutive segments.
func PolylineLength(points []v3.Vec) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i].Sub(points[i-1]).Length()
	}
	return total
}

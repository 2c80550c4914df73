package route

import (
	"fmt"
	"math"

	"github.com/chazu/pipeworks/pkg/platform"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// RoutingType names a routing strategy.
type RoutingType int

const (
	Direct RoutingType = iota
	EdgeWrap
	Underside
	Compound // only produced by AnalyzePath
)

func (t RoutingType) String() string {
	switch t {
	case Direct:
		return "direct"
	case EdgeWrap:
		return "edge-wrap"
	case Underside:
		return "underside"
	case Compound:
		return "compound"
	default:
		return fmt.Sprintf("RoutingType(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t RoutingType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Connection is one pipe hop between two platforms.
type Connection struct {
	Start         v3.Vec         `json:"start"`
	End           v3.Vec         `json:"end"`
	StartPlatform platform.Edges `json:"startPlatform"`
	EndPlatform   platform.Edges `json:"endPlatform"`
}

// AnalyzePathRequirements picks the strategy for a hop from the platform
// centers. Underside wins over edge-wrap; Compound is never returned.
func (r *Router) AnalyzePathRequirements(start, end platform.Edges) RoutingType {
	th := r.cfg.Classifier
	verticalDiff := end.Center.Y - start.Center.Y
	horizontalDiff := end.Center.X - start.Center.X
	depthDiff := math.Abs(end.Center.Z - start.Center.Z)

	switch {
	case math.Abs(verticalDiff) < th.MinVerticalSpace && math.Abs(horizontalDiff) > th.MinHorizontalSpace:
		return Underside
	case depthDiff > 2*th.MinHorizontalSpace:
		return EdgeWrap
	}
	return Direct
}

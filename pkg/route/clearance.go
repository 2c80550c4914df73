package route

import (
	"github.com/chazu/pipeworks/pkg/platform"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// CheckClearanceViolations samples ClearanceSteps+1 evenly spaced points on
// the straight segment start->end and reports whether any lies closer than
// clearance to a corner of either platform. It is a coarse pre-check: only
// the straight line and the corner points are considered.
func (r *Router) CheckClearanceViolations(start, end v3.Vec, startPlatform, endPlatform platform.Edges, clearance float64) bool {
	steps := r.cfg.ClearanceSteps
	sc, ec := startPlatform.Corners(), endPlatform.Corners()
	corners := append(sc[:], ec[:]...)

	for i := 0; i <= steps; i++ {
		p := lerp(start, end, float64(i)/float64(steps))
		for _, c := range corners {
			if p.Sub(c).Length() < clearance {
				return true
			}
		}
	}
	return false
}

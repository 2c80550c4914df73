// Package route computes pipe paths between staggered platforms.
//
// A path is a plain sequence of points built from three primitives: straight
// shafts, literal quarter-circle arcs, and elbow connections composed of a
// shaft, an arc and a second shaft. Three strategies compose elbow
// connections into full routes:
//
//   - direct: a single horizontal elbow connection
//   - edge-wrap: around the side edge of the start platform
//   - underside: down below both platforms, across, and back up
//
// The strategy is picked by AnalyzePathRequirements. AnalyzePath runs a
// separate, independent analysis whose label only feeds the debug info; the
// two can disagree and the returned geometry always follows the former.
//
// Every function is a pure computation over its arguments. A Router holds
// only immutable configuration and may be shared between goroutines.
package route

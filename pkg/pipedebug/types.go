// Package pipedebug carries the tagged geometric annotations that describe
// how a pipe path was derived, and maps them to overlay colors.
package pipedebug

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// PointType tags a debug point.
type PointType int

const (
	PointAnchor PointType = iota
	PointControl
	PointElbow
	PointIntersection
)

func (t PointType) String() string {
	switch t {
	case PointAnchor:
		return "anchor"
	case PointControl:
		return "control"
	case PointElbow:
		return "elbow"
	case PointIntersection:
		return "intersection"
	default:
		return fmt.Sprintf("PointType(%d)", int(t))
	}
}

// Color returns the overlay color for the tag.
func (t PointType) Color() string {
	switch t {
	case PointAnchor:
		return "#00ff00"
	case PointControl:
		return "#ffff00"
	case PointElbow:
		return "#00ffff"
	case PointIntersection:
		return "#ff0000"
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler.
func (t PointType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// LineType tags a debug line.
type LineType int

const (
	LinePath LineType = iota
	LineConstruction
	LineClearance
)

func (t LineType) String() string {
	switch t {
	case LinePath:
		return "path"
	case LineConstruction:
		return "construction"
	case LineClearance:
		return "clearance"
	default:
		return fmt.Sprintf("LineType(%d)", int(t))
	}
}

// Color returns the overlay color for the tag.
func (t LineType) Color() string {
	switch t {
	case LinePath:
		return "#ff6b00"
	case LineConstruction:
		return "#888888"
	case LineClearance:
		return "#ff00ff"
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler.
func (t LineType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// SegmentType tags a debug segment. SegmentPath marks a whole routed
// polyline and shares the path line color.
type SegmentType int

const (
	SegmentShaft SegmentType = iota
	SegmentElbow
	SegmentWrap
	SegmentUnderside
	SegmentPath
)

func (t SegmentType) String() string {
	switch t {
	case SegmentShaft:
		return "shaft"
	case SegmentElbow:
		return "elbow"
	case SegmentWrap:
		return "wrap"
	case SegmentUnderside:
		return "underside"
	case SegmentPath:
		return "path"
	default:
		return fmt.Sprintf("SegmentType(%d)", int(t))
	}
}

// Color returns the overlay color for the tag.
func (t SegmentType) Color() string {
	switch t {
	case SegmentShaft:
		return "#00ff00"
	case SegmentElbow:
		return "#00ffff"
	case SegmentWrap:
		return "#ff00ff"
	case SegmentUnderside:
		return "#ffaa00"
	case SegmentPath:
		return LinePath.Color()
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler.
func (t SegmentType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Style carries optional per-element overrides. An empty Color means the
// tag color; a zero Opacity means the renderer default.
type Style struct {
	Color   string  `json:"color,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
}

// Point is a labeled debug point.
type Point struct {
	Position v3.Vec    `json:"position"`
	Label    string    `json:"label"`
	Type     PointType `json:"type"`
	Style
}

// Line is a debug line between two points.
type Line struct {
	Start v3.Vec   `json:"start"`
	End   v3.Vec   `json:"end"`
	Type  LineType `json:"type"`
	Style
}

// Segment is a debug polyline.
type Segment struct {
	Points []v3.Vec    `json:"points"`
	Type   SegmentType `json:"type"`
	Style
}

// PathDebugInfo describes how a path was derived. It is for display only.
type PathDebugInfo struct {
	Points      []Point           `json:"points"`
	Lines       []Line            `json:"lines"`
	Segments    []Segment         `json:"segments"`
	RoutingType string            `json:"routingType"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// New returns an empty PathDebugInfo with non-nil slices.
func New(routingType string) *PathDebugInfo {
	return &PathDebugInfo{
		Points:      []Point{},
		Lines:       []Line{},
		Segments:    []Segment{},
		RoutingType: routingType,
	}
}

// SetMeta records a metadata entry, creating the map on first use.
func (d *PathDebugInfo) SetMeta(key, value string) {
	if d.Metadata == nil {
		d.Metadata = make(map[string]string)
	}
	d.Metadata[key] = value
}

// CalculateDebugInfo annotates a bare point sequence: one anchor per point
// labeled P0..Pn, a construction line between consecutive points and a
// single path segment through all of them.
func CalculateDebugInfo(points []v3.Vec, routingType string, metadata map[string]string) *PathDebugInfo {
	if routingType == "" {
		routingType = "direct"
	}
	info := New(routingType)
	for i, p := range points {
		info.Points = append(info.Points, Point{Position: p, Label: fmt.Sprintf("P%d", i), Type: PointAnchor})
	}
	for i := 1; i < len(points); i++ {
		info.Lines = append(info.Lines, Line{Start: points[i-1], End: points[i], Type: LineConstruction})
	}
	info.Segments = append(info.Segments, Segment{Points: points, Type: SegmentPath})
	for k, v := range metadata {
		info.SetMeta(k, v)
	}
	return info
}

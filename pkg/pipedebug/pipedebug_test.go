package pipedebug

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestColorTable(t *testing.T) {
	points := map[PointType]string{
		PointAnchor:       "#00ff00",
		PointControl:      "#ffff00",
		PointElbow:        "#00ffff",
		PointIntersection: "#ff0000",
	}
	for tag, want := range points {
		if got := tag.Color(); got != want {
			t.Errorf("%s color = %q, want %q", tag, got, want)
		}
	}

	lines := map[LineType]string{
		LinePath:         "#ff6b00",
		LineConstruction: "#888888",
		LineClearance:    "#ff00ff",
	}
	for tag, want := range lines {
		if got := tag.Color(); got != want {
			t.Errorf("%s color = %q, want %q", tag, got, want)
		}
	}

	segments := map[SegmentType]string{
		SegmentShaft:     "#00ff00",
		SegmentElbow:     "#00ffff",
		SegmentWrap:      "#ff00ff",
		SegmentUnderside: "#ffaa00",
		SegmentPath:      "#ff6b00",
	}
	for tag, want := range segments {
		if got := tag.Color(); got != want {
			t.Errorf("%s color = %q, want %q", tag, got, want)
		}
	}
}

func TestTagNames(t *testing.T) {
	if PointIntersection.String() != "intersection" {
		t.Errorf("got %q", PointIntersection.String())
	}
	if LineClearance.String() != "clearance" {
		t.Errorf("got %q", LineClearance.String())
	}
	if SegmentUnderside.String() != "underside" {
		t.Errorf("got %q", SegmentUnderside.String())
	}
	b, err := SegmentWrap.MarshalText()
	if err != nil || string(b) != "wrap" {
		t.Errorf("MarshalText = %q, %v", b, err)
	}
}

func samplePoints() []v3.Vec {
	return []v3.Vec{{X: 0}, {X: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}
}

func TestCalculateDebugInfo(t *testing.T) {
	pts := samplePoints()
	info := CalculateDebugInfo(pts, "", map[string]string{"source": "test"})

	if info.RoutingType != "direct" {
		t.Errorf("routing type = %q, want direct", info.RoutingType)
	}
	if len(info.Points) != len(pts) {
		t.Fatalf("points = %d, want %d", len(info.Points), len(pts))
	}
	if info.Points[2].Label != "P2" || info.Points[2].Type != PointAnchor {
		t.Errorf("point 2 = %+v", info.Points[2])
	}
	if len(info.Lines) != len(pts)-1 {
		t.Errorf("lines = %d, want %d", len(info.Lines), len(pts)-1)
	}
	for _, l := range info.Lines {
		if l.Type != LineConstruction {
			t.Errorf("line type = %s, want construction", l.Type)
		}
	}
	if len(info.Segments) != 1 || info.Segments[0].Type != SegmentPath {
		t.Errorf("segments = %+v", info.Segments)
	}
	if info.Metadata["source"] != "test" {
		t.Errorf("metadata = %v", info.Metadata)
	}
}

func TestBuildOverlayTooFewPoints(t *testing.T) {
	if ov := BuildOverlay([]v3.Vec{{}}, nil, DefaultOptions()); ov != nil {
		t.Errorf("expected nil overlay, got %+v", ov)
	}
}

func TestBuildOverlayFallback(t *testing.T) {
	pts := samplePoints()
	ov := BuildOverlay(pts, nil, Options{ShowLabels: true, ShowMetadata: true})

	if len(ov.Lines) != 1 || ov.Lines[0].Color != "#ff6b00" {
		t.Fatalf("fallback lines = %+v", ov.Lines)
	}
	if len(ov.Points) != len(pts) || ov.Points[3].Label != "P3" {
		t.Errorf("fallback points = %+v", ov.Points)
	}
	if len(ov.Panel) != 1 || ov.Panel[0] != "Points: 4" {
		t.Errorf("panel = %v", ov.Panel)
	}
}

func TestBuildOverlayFiltersConstruction(t *testing.T) {
	pts := samplePoints()
	info := New("edge-wrap")
	info.Lines = append(info.Lines,
		Line{Start: pts[0], End: pts[1], Type: LineConstruction},
		Line{Start: pts[1], End: pts[2], Type: LinePath},
	)
	info.Segments = append(info.Segments, Segment{Points: pts, Type: SegmentWrap})
	info.Points = append(info.Points,
		Point{Position: pts[0], Label: "Start", Type: PointAnchor, Style: Style{Color: "green"}},
		Point{Position: pts[1], Label: "c", Type: PointControl},
	)

	hidden := BuildOverlay(pts, info, Options{})
	if len(hidden.Lines) != 1 {
		t.Fatalf("expected segment only, got %d lines", len(hidden.Lines))
	}
	if len(hidden.Points) != 0 || hidden.Panel != nil {
		t.Errorf("labels/panel should be hidden: %+v", hidden)
	}

	shown := BuildOverlay(pts, info, Options{ShowLabels: true, ShowConstructionLines: true})
	if len(shown.Lines) != 2 {
		t.Fatalf("expected construction + segment, got %d lines", len(shown.Lines))
	}
	c := shown.Lines[0]
	if !c.Dashed || c.Opacity != 0.3 || c.Color != "#888888" {
		t.Errorf("construction line = %+v", c)
	}
	if shown.Lines[1].Color != "#ff00ff" {
		t.Errorf("wrap segment color = %q", shown.Lines[1].Color)
	}
	if shown.Points[0].Color != "green" || shown.Points[0].Opacity != 0.7 {
		t.Errorf("override point = %+v", shown.Points[0])
	}
	if shown.Points[1].Color != "#ffff00" || shown.Points[1].Opacity != 0.5 {
		t.Errorf("control point = %+v", shown.Points[1])
	}
}

func TestInfoPanelSortsMetadata(t *testing.T) {
	info := New("underside")
	info.SetMeta("zeta", "1")
	info.SetMeta("alpha", "2")

	got := InfoPanel(samplePoints(), info)
	want := []string{"Points: 4", "Type: underside", "alpha: 2", "zeta: 1"}
	if len(got) != len(want) {
		t.Fatalf("panel = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("panel[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

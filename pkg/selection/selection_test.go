package selection

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/google/uuid"
)

const eps = 1e-9

func nearVec(a, b v3.Vec) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestNewGridShell(t *testing.T) {
	g := NewGrid(3, 2, 0.1, Subdivisions{X: 4, Y: 2})

	wantMin := v3.Vec{X: -1.6, Z: -1.1}
	wantMax := v3.Vec{X: 1.6, Z: 1.1}
	if !nearVec(g.Bounds.Min, wantMin) || !nearVec(g.Bounds.Max, wantMax) {
		t.Errorf("bounds = %v..%v, want %v..%v", g.Bounds.Min, g.Bounds.Max, wantMin, wantMax)
	}
	for i, e := range g.Edges {
		if e[1] != g.Edges[(i+1)%4][0] {
			t.Errorf("edge %d does not join edge %d", i, (i+1)%4)
		}
	}
}

func TestNewGridLinesAndIntersections(t *testing.T) {
	tests := []struct {
		name string
		sub  Subdivisions
		want Subdivisions
	}{
		{"square", Subdivisions{X: 3, Y: 3}, Subdivisions{X: 3, Y: 3}},
		{"wide", Subdivisions{X: 6, Y: 2}, Subdivisions{X: 6, Y: 2}},
		{"zero clamps to one", Subdivisions{}, Subdivisions{X: 1, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(3, 2, 0, tt.sub)
			if got, want := len(g.Lines), tt.want.X+tt.want.Y+2; got != want {
				t.Errorf("got %d lines, want %d", got, want)
			}
			if got, want := len(g.Intersections), (tt.want.X+1)*(tt.want.Y+1); got != want {
				t.Fatalf("got %d intersections, want %d", got, want)
			}

			// lines along x come first
			first := g.Lines[0]
			if first[0].Z != first[1].Z {
				t.Errorf("first line %v is not along x", first)
			}
			// intersections are x-major
			if g.Intersections[0].X != g.Intersections[1].X {
				t.Errorf("intersections not x-major: %v, %v", g.Intersections[0], g.Intersections[1])
			}
			if !nearVec(g.Intersections[0], g.Bounds.Min) {
				t.Errorf("first intersection = %v, want %v", g.Intersections[0], g.Bounds.Min)
			}
			last := g.Intersections[len(g.Intersections)-1]
			if !nearVec(last, g.Bounds.Max) {
				t.Errorf("last intersection = %v, want %v", last, g.Bounds.Max)
			}
		})
	}
}

func TestGridPick(t *testing.T) {
	g := NewGrid(2, 2, 0, Subdivisions{X: 2, Y: 2})
	origin := v3.Vec{X: 4, Y: -1, Z: 0}

	p, ok := g.Pick(origin.Add(v3.Vec{X: 0.9, Y: 0.1, Z: 0.05}), origin)
	if !ok {
		t.Fatal("expected a pick near the corner")
	}
	if want := origin.Add(v3.Vec{X: 1, Z: 0}); !nearVec(p, want) {
		t.Errorf("pick = %v, want %v", p, want)
	}

	if _, ok := g.Pick(origin.Add(v3.Vec{X: 5}), origin); ok {
		t.Error("expected no pick far from the grid")
	}

	// exactly at the pick radius is rejected
	if _, ok := g.Pick(origin.Add(v3.Vec{Y: PickRadius}), origin); ok {
		t.Error("expected no pick at the radius boundary")
	}
}

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	a := s.Add(1, v3.Vec{X: 1})
	b := s.Add(2, v3.Vec{X: 2})
	s.Add(1, v3.Vec{X: 3})

	if !strings.HasPrefix(a.ID, "point-1-") {
		t.Errorf("id %q lacks platform prefix", a.ID)
	}
	if _, err := uuid.Parse(strings.TrimPrefix(a.ID, "point-1-")); err != nil {
		t.Errorf("id %q suffix is not a uuid: %v", a.ID, err)
	}
	if a.ID == b.ID {
		t.Error("ids collide")
	}

	if got := len(s.Points()); got != 3 {
		t.Errorf("got %d points, want 3", got)
	}
	if got := len(s.ForPlatform(1)); got != 2 {
		t.Errorf("platform 1 has %d points, want 2", got)
	}

	if err := s.Update(b.ID, v3.Vec{Y: 9}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := s.ForPlatform(2)[0].Position; got != (v3.Vec{Y: 9}) {
		t.Errorf("updated position = %v", got)
	}

	if err := s.Remove(a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second remove err = %v, want ErrNotFound", err)
	}
	if err := s.Update("nope", v3.Vec{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update unknown err = %v, want ErrNotFound", err)
	}

	s.Clear()
	if got := len(s.Points()); got != 0 {
		t.Errorf("after clear got %d points", got)
	}
	if got := s.ForPlatform(1); got == nil || len(got) != 0 {
		t.Errorf("ForPlatform after clear = %v, want empty", got)
	}
}

func TestStorePointsIsCopy(t *testing.T) {
	s := NewStore()
	s.Add(1, v3.Vec{X: 1})
	pts := s.Points()
	pts[0].Position = v3.Vec{X: 99}
	if s.Points()[0].Position.X != 1 {
		t.Error("Points exposed internal storage")
	}
}

func TestStoreConcurrent(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := s.Add(i%3+1, v3.Vec{X: float64(i)})
			_ = s.Update(p.ID, v3.Vec{Y: float64(i)})
			_ = s.ForPlatform(1)
		}(i)
	}
	wg.Wait()
	if got := len(s.Points()); got != 50 {
		t.Errorf("got %d points, want 50", got)
	}
}

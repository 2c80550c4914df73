package selection

import (
	"errors"
	"fmt"
	"sync"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/google/uuid"
)

// ErrNotFound is returned for an unknown point id.
var ErrNotFound = errors.New("selection: point not found")

// Point is a grid point picked on a platform.
type Point struct {
	ID         string `json:"id"`
	Position   v3.Vec `json:"position"`
	PlatformID int    `json:"platformId"`
}

// Store keeps picked points in insertion order. It is safe for concurrent
// use. Nothing is persisted.
type Store struct {
	mu     sync.RWMutex
	points []Point
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// NewID returns a fresh point id for a platform.
func NewID(platformID int) string {
	return fmt.Sprintf("point-%d-%s", platformID, uuid.NewString())
}

// Add records a new point and returns it.
func (s *Store) Add(platformID int, pos v3.Vec) Point {
	p := Point{ID: NewID(platformID), Position: pos, PlatformID: platformID}
	s.mu.Lock()
	s.points = append(s.points, p)
	s.mu.Unlock()
	return p
}

// Remove deletes the point with the given id.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.points {
		if p.ID == id {
			s.points = append(s.points[:i], s.points[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove %q: %w", id, ErrNotFound)
}

// Update moves the point with the given id.
func (s *Store) Update(id string, pos v3.Vec) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.points {
		if s.points[i].ID == id {
			s.points[i].Position = pos
			return nil
		}
	}
	return fmt.Errorf("update %q: %w", id, ErrNotFound)
}

// Clear removes every point.
func (s *Store) Clear() {
	s.mu.Lock()
	s.points = nil
	s.mu.Unlock()
}

// Points returns a copy of all points.
func (s *Store) Points() []Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// ForPlatform returns a copy of the points picked on one platform.
func (s *Store) ForPlatform(platformID int) []Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Point{}
	for _, p := range s.points {
		if p.PlatformID == platformID {
			out = append(out, p)
		}
	}
	return out
}

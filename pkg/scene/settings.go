// Package scene lays out the three-platform scene, routes its pipes and
// checks the result. Settings are the designer-tunable controls; they come
// from DefaultSettings, a YAML file, or a scene script.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/chazu/pipeworks/pkg/route"
	"github.com/chazu/pipeworks/pkg/selection"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gopkg.in/yaml.v3"
)

// PlatformCount is the number of platforms in a scene.
const PlatformCount = 3

// ErrInvalidSettings is returned when settings fail validation.
var ErrInvalidSettings = errors.New("scene: invalid settings")

// Dimensions is the footprint shared by every platform.
type Dimensions struct {
	Width  float64 `json:"width" yaml:"width"`
	Depth  float64 `json:"depth" yaml:"depth"`
	Height float64 `json:"height" yaml:"height"`
}

// Positioning controls the staircase layout.
type Positioning struct {
	HorizontalOffset float64 `json:"horizontalOffset" yaml:"horizontal_offset"`
	VerticalStagger  float64 `json:"verticalStagger" yaml:"vertical_stagger"`
	Responsive       bool    `json:"responsive" yaml:"responsive"`
}

// View controls the camera.
type View struct {
	Axonometric    bool    `json:"axonometric" yaml:"axonometric"`
	CameraDistance float64 `json:"cameraDistance" yaml:"camera_distance"`
	Pan            v3.Vec  `json:"pan" yaml:"pan"`
}

// Colors holds the platform colors. With Link set every platform uses
// Platform1.
type Colors struct {
	Link      bool   `json:"link" yaml:"link"`
	Platform1 string `json:"platform1" yaml:"platform_1"`
	Platform2 string `json:"platform2" yaml:"platform_2"`
	Platform3 string `json:"platform3" yaml:"platform_3"`
}

// PipeStyle is the pipe appearance.
type PipeStyle struct {
	Color  string  `json:"color" yaml:"color"`
	Width  float64 `json:"width" yaml:"width"`   // line width in scene units
	Height float64 `json:"height" yaml:"height"` // tube radius
}

// Debug toggles the pipe debug overlay.
type Debug struct {
	Pipes             bool `json:"pipes" yaml:"pipes"`
	Labels            bool `json:"labels" yaml:"labels"`
	ConstructionLines bool `json:"constructionLines" yaml:"construction_lines"`
}

// Grid configures the selection grid of one platform.
type Grid struct {
	Subdivisions selection.Subdivisions `json:"subdivisions" yaml:"subdivisions"`
	Offset       float64                `json:"offset" yaml:"offset"`
	Visible      bool                   `json:"visible" yaml:"visible"`
}

// Settings is the full set of scene controls.
type Settings struct {
	Dimensions  Dimensions   `json:"dimensions" yaml:"dimensions"`
	Positioning Positioning  `json:"positioning" yaml:"positioning"`
	View        View         `json:"view" yaml:"view"`
	Colors      Colors       `json:"colors" yaml:"colors"`
	Pipe        PipeStyle    `json:"pipe" yaml:"pipe"`
	Debug       Debug        `json:"debug" yaml:"debug"`
	ShowGrids   bool         `json:"showGrids" yaml:"show_grids"`
	Grids       []Grid       `json:"grids" yaml:"grids"`
	Routing     route.Config `json:"routing" yaml:"routing"`
}

// DefaultSettings returns the control panel defaults.
func DefaultSettings() *Settings {
	s := &Settings{
		Dimensions: Dimensions{Width: 3, Depth: 2, Height: 0.2},
		Positioning: Positioning{
			HorizontalOffset: 4,
			VerticalStagger:  1,
			Responsive:       true,
		},
		View: View{CameraDistance: 10},
		Colors: Colors{
			Platform1: "#a8d5ff",
			Platform2: "#98ffb3",
			Platform3: "#ffb3b3",
		},
		Pipe: PipeStyle{Color: "#ff8c00", Width: 0.02, Height: 0.1},
		Routing: route.DefaultConfig(),
	}
	for i := 0; i < PlatformCount; i++ {
		s.Grids = append(s.Grids, Grid{
			Subdivisions: selection.Subdivisions{X: 4, Y: 4},
			Offset:       0.1,
			Visible:      true,
		})
	}
	return s
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate reports the first invalid setting.
func (s *Settings) Validate() error {
	d := s.Dimensions
	if d.Width <= 0 || d.Depth <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %gx%gx%g", ErrInvalidSettings, d.Width, d.Depth, d.Height)
	}
	if s.View.CameraDistance <= 0 {
		return fmt.Errorf("%w: camera distance must be positive, got %g", ErrInvalidSettings, s.View.CameraDistance)
	}
	for i, c := range []string{s.Colors.Platform1, s.Colors.Platform2, s.Colors.Platform3, s.Pipe.Color} {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("%w: color %d %q is not a hex color", ErrInvalidSettings, i+1, c)
		}
	}
	if len(s.Grids) != PlatformCount {
		return fmt.Errorf("%w: want %d grids, got %d", ErrInvalidSettings, PlatformCount, len(s.Grids))
	}
	for i, g := range s.Grids {
		if g.Subdivisions.X < 1 || g.Subdivisions.Y < 1 {
			return fmt.Errorf("%w: grid %d subdivisions must be at least 1", ErrInvalidSettings, i+1)
		}
	}
	if s.Routing.ElbowRadius < 0 {
		return fmt.Errorf("%w: negative elbow radius %g", ErrInvalidSettings, s.Routing.ElbowRadius)
	}
	return nil
}

// PlatformColorAt returns the configured color of platform index (0-based).
func (c Colors) PlatformColorAt(index int) string {
	switch index {
	case 1:
		return c.Platform2
	case 2:
		return c.Platform3
	}
	return c.Platform1
}

// DecodeSettings reads YAML settings layered over the defaults and
// validates the result.
func DecodeSettings(r io.Reader) (*Settings, error) {
	s := DefaultSettings()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadSettings reads a YAML settings file.
func LoadSettings(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	defer f.Close()

	s, err := DecodeSettings(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Marshal encodes settings as YAML.
func (s *Settings) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

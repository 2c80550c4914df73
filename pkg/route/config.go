package route

import (
	"math"
)

// Routing defaults.
const (
	DefaultElbowRadius       = 0.3
	SegmentsPerQuarter       = 8
	DefaultShaftSegments     = 2
	DefaultEdgeOffsetFactor  = 1.5
	DefaultDropDepth         = 1.0
	DefaultClearanceSteps    = 10
	DefaultSwitchbackSpacing = 0.5
)

// Thresholds drive AnalyzePathRequirements.
type Thresholds struct {
	MinVerticalSpace   float64 `json:"minVerticalSpace" yaml:"min_vertical_space"`
	MinHorizontalSpace float64 `json:"minHorizontalSpace" yaml:"min_horizontal_space"`
}

// PathConstraints drive AnalyzePath and the clearance pre-check.
type PathConstraints struct {
	MinVerticalSpace   float64 `json:"minVerticalSpace" yaml:"min_vertical_space"`
	MinHorizontalSpace float64 `json:"minHorizontalSpace" yaml:"min_horizontal_space"`
	MaxTurnAngle       float64 `json:"maxTurnAngle" yaml:"max_turn_angle"` // radians
	PreferredClearance float64 `json:"preferredClearance" yaml:"preferred_clearance"`
}

// Config holds every routing constant. Use DefaultConfig and override
// fields as needed.
type Config struct {
	ElbowRadius      float64         `json:"elbowRadius" yaml:"elbow_radius"`
	ArcSegments      int             `json:"arcSegments" yaml:"arc_segments"`
	ShaftSegments    int             `json:"shaftSegments" yaml:"shaft_segments"`
	EdgeOffsetFactor float64         `json:"edgeOffsetFactor" yaml:"edge_offset_factor"`
	DropDepth        float64         `json:"dropDepth" yaml:"drop_depth"`
	ClearanceSteps   int             `json:"clearanceSteps" yaml:"clearance_steps"`
	Classifier       Thresholds      `json:"classifier" yaml:"classifier"`
	Constraints      PathConstraints `json:"constraints" yaml:"constraints"`

	PathBuilder PathBuilderConfig `json:"pathBuilder" yaml:"path_builder"`
}

// DefaultConfig returns the stock routing configuration.
func DefaultConfig() Config {
	return Config{
		ElbowRadius:      DefaultElbowRadius,
		ArcSegments:      SegmentsPerQuarter,
		ShaftSegments:    DefaultShaftSegments,
		EdgeOffsetFactor: DefaultEdgeOffsetFactor,
		DropDepth:        DefaultDropDepth,
		ClearanceSteps:   DefaultClearanceSteps,
		Classifier: Thresholds{
			MinVerticalSpace:   1.0,
			MinHorizontalSpace: 0.5,
		},
		Constraints: PathConstraints{
			MinVerticalSpace:   1.0,
			MinHorizontalSpace: 0.5,
			MaxTurnAngle:       math.Pi / 3,
			PreferredClearance: 0.2,
		},
		PathBuilder: DefaultPathBuilderConfig(),
	}
}

// Router computes pipe paths with a fixed configuration.
type Router struct {
	cfg Config
}

// New returns a Router for cfg. Sample counts below one are replaced with
// their defaults; radii and thresholds are taken as given.
func New(cfg Config) *Router {
	if cfg.ArcSegments < 1 {
		cfg.ArcSegments = SegmentsPerQuarter
	}
	if cfg.ShaftSegments < 1 {
		cfg.ShaftSegments = DefaultShaftSegments
	}
	if cfg.ClearanceSteps < 1 {
		cfg.ClearanceSteps = DefaultClearanceSteps
	}
	return &Router{cfg: cfg}
}

// Config returns the router configuration.
func (r *Router) Config() Config {
	return r.cfg
}

var defaultRouter = New(DefaultConfig())

// Default returns a Router using DefaultConfig.
func Default() *Router {
	return defaultRouter
}

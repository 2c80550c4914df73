package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/pipeworks/pkg/scene"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms scene script source before passing it to
// zygomys. It performs three transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: show-grids -> show_grids
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
//  3. Line comments: ; and ;; become //, the zygomys comment syntax.
//
// All transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}


// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a v3.Vec so it can be returned from `vec3` and consumed
// by other builtins.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	order      []string
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// A keyword at the end with no value is recorded as SexpNull, which flags
// read as true.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			i++
			continue
		}
		result.order = append(result.order, name)
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
		} else {
			result.kw[name] = zygo.SexpNull
			i++
		}
	}
	return result
}

// allow rejects any keyword not in allowed.
func (pa kwArgs) allow(allowed ...string) error {
	for _, name := range pa.order {
		known := false
		for _, a := range allowed {
			if name == a {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown keyword :%s", name)
		}
	}
	return nil
}

func (pa kwArgs) float(key string, dst *float64) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func (pa kwArgs) integer(key string, dst *int) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	n, err := toInt(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func (pa kwArgs) flag(key string, dst *bool) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	b, err := toBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func (pa kwArgs) str(key string, dst *string) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	s, err := toString(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = s
	return nil
}

func (pa kwArgs) vec(key string, dst *v3.Vec) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	vec, err := toVec3(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = vec
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts a whole number.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok && !strings.HasPrefix(str.S, kwPrefix) {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toBool reads a flag: :on/:off, :true/:false, :yes/:no or a number.
func toBool(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return v.Val != 0, nil
	case *zygo.SexpFloat:
		return v.Val != 0, nil
	case *zygo.SexpStr:
		switch strings.TrimPrefix(v.S, kwPrefix) {
		case "on", "true", "yes":
			return true, nil
		case "off", "false", "no":
			return false, nil
		}
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return true, nil
		}
	}
	return false, fmt.Errorf("expected flag (:on or :off), got %s", s.SexpString(nil))
}

// toVec3 extracts a v3.Vec from a sexpVec3.
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// setter is the body of a settings builtin.
type setter func(pa kwArgs) error

// settingsFunc adapts a setter to a zygomys builtin. Errors are prefixed
// with the builtin name as written in scripts.
func settingsFunc(display string, allowed []string, set setter) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.allow(allowed...); err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", display, err)
		}
		if err := set(pa); err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", display, err)
		}
		return zygo.SexpNull, nil
	}
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene DSL builtins into a zygomys
// environment. Each builtin writes into s as it is evaluated, so later
// forms override earlier ones.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *scene.Settings) {

	// (vec3 1 2 3)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var c [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %c: %w", "xyz"[i], err)
			}
			c[i] = f
		}
		return &sexpVec3{vec: v3.Vec{X: c[0], Y: c[1], Z: c[2]}}, nil
	})

	// (dimensions :width 3 :depth 2 :height 0.2)
	env.AddFunction("dimensions", settingsFunc("dimensions",
		[]string{"width", "depth", "height"},
		func(pa kwArgs) error {
			d := &s.Dimensions
			return firstErr(
				pa.float("width", &d.Width),
				pa.float("depth", &d.Depth),
				pa.float("height", &d.Height),
			)
		}))

	// (positioning :horizontal-offset 4 :vertical-stagger 1 :responsive :on)
	env.AddFunction("positioning", settingsFunc("positioning",
		[]string{"horizontal-offset", "vertical-stagger", "responsive"},
		func(pa kwArgs) error {
			p := &s.Positioning
			return firstErr(
				pa.float("horizontal-offset", &p.HorizontalOffset),
				pa.float("vertical-stagger", &p.VerticalStagger),
				pa.flag("responsive", &p.Responsive),
			)
		}))

	// (view :axonometric :on :camera-distance 10 :pan (vec3 0 0 0))
	env.AddFunction("view", settingsFunc("view",
		[]string{"axonometric", "camera-distance", "pan"},
		func(pa kwArgs) error {
			v := &s.View
			return firstErr(
				pa.flag("axonometric", &v.Axonometric),
				pa.float("camera-distance", &v.CameraDistance),
				pa.vec("pan", &v.Pan),
			)
		}))

	// (colors :link :off :platform-1 "#a8d5ff" :platform-2 ... :platform-3 ...)
	env.AddFunction("colors", settingsFunc("colors",
		[]string{"link", "platform-1", "platform-2", "platform-3"},
		func(pa kwArgs) error {
			c := &s.Colors
			return firstErr(
				pa.flag("link", &c.Link),
				pa.str("platform-1", &c.Platform1),
				pa.str("platform-2", &c.Platform2),
				pa.str("platform-3", &c.Platform3),
			)
		}))

	// (pipe :color "#ff8c00" :width 0.02 :height 0.1)
	env.AddFunction("pipe", settingsFunc("pipe",
		[]string{"color", "width", "height"},
		func(pa kwArgs) error {
			p := &s.Pipe
			return firstErr(
				pa.str("color", &p.Color),
				pa.float("width", &p.Width),
				pa.float("height", &p.Height),
			)
		}))

	// (debug :pipes :on :labels :on :construction-lines :off)
	env.AddFunction("debug", settingsFunc("debug",
		[]string{"pipes", "labels", "construction-lines"},
		func(pa kwArgs) error {
			d := &s.Debug
			return firstErr(
				pa.flag("pipes", &d.Pipes),
				pa.flag("labels", &d.Labels),
				pa.flag("construction-lines", &d.ConstructionLines),
			)
		}))

	// (grids :show :on)
	env.AddFunction("grids", settingsFunc("grids",
		[]string{"show"},
		func(pa kwArgs) error {
			return pa.flag("show", &s.ShowGrids)
		}))

	// (grid 2 :subdivision-x 4 :subdivision-y 4 :offset 0.1 :visible :on)
	env.AddFunction("grid", settingsFunc("grid",
		[]string{"subdivision-x", "subdivision-y", "offset", "visible"},
		func(pa kwArgs) error {
			if len(pa.positional) != 1 {
				return fmt.Errorf("requires a platform number")
			}
			id, err := toInt(pa.positional[0])
			if err != nil {
				return fmt.Errorf("platform: %w", err)
			}
			if id < 1 || id > len(s.Grids) {
				return fmt.Errorf("platform %d out of range 1..%d", id, len(s.Grids))
			}
			g := &s.Grids[id-1]
			return firstErr(
				pa.integer("subdivision-x", &g.Subdivisions.X),
				pa.integer("subdivision-y", &g.Subdivisions.Y),
				pa.float("offset", &g.Offset),
				pa.flag("visible", &g.Visible),
			)
		}))

	// (routing :elbow-radius 0.3 :arc-segments 8 :drop-depth 1 :clearance 0.2)
	env.AddFunction("routing", settingsFunc("routing",
		[]string{
			"elbow-radius", "arc-segments", "shaft-segments", "edge-offset",
			"drop-depth", "clearance", "clearance-steps", "min-vertical-space",
			"min-horizontal-space", "max-turn-angle", "switchback-spacing",
		},
		func(pa kwArgs) error {
			r := &s.Routing
			return firstErr(
				pa.float("elbow-radius", &r.ElbowRadius),
				pa.integer("arc-segments", &r.ArcSegments),
				pa.integer("shaft-segments", &r.ShaftSegments),
				pa.float("edge-offset", &r.EdgeOffsetFactor),
				pa.float("drop-depth", &r.DropDepth),
				pa.float("clearance", &r.Constraints.PreferredClearance),
				pa.integer("clearance-steps", &r.ClearanceSteps),
				pa.float("min-vertical-space", &r.Constraints.MinVerticalSpace),
				pa.float("min-horizontal-space", &r.Constraints.MinHorizontalSpace),
				pa.float("max-turn-angle", &r.Constraints.MaxTurnAngle),
				pa.float("switchback-spacing", &r.PathBuilder.SwitchbackSpacing),
			)
		}))
}

package scene

import "fmt"

// ValidationSeverity indicates whether a finding blocks rendering or is
// advisory.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks rendering
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s ValidationSeverity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Subject  string             `json:"subject"` // "dimensions", "pipe 2", ...
	Message  string             `json:"message"`
	Severity ValidationSeverity `json:"severity"`
}

func (e ValidationError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Subject, e.Message)
}

// Validate checks an assembled scene. It never mutates the scene.
func Validate(sc *Scene) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateDimensions(sc)...)
	errs = append(errs, validatePipes(sc)...)
	return errs
}

// HasErrors reports whether any finding is blocking.
func HasErrors(findings []ValidationError) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

func validateDimensions(sc *Scene) []ValidationError {
	var errs []ValidationError
	d := sc.Settings.Dimensions
	for _, dim := range []struct {
		name string
		v    float64
	}{
		{"width", d.Width},
		{"depth", d.Depth},
		{"height", d.Height},
	} {
		if dim.v <= 0 {
			errs = append(errs, ValidationError{
				Subject:  "dimensions",
				Message:  fmt.Sprintf("platform %s is %.4f, must be positive", dim.name, dim.v),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

func validatePipes(sc *Scene) []ValidationError {
	var errs []ValidationError
	for _, p := range sc.Pipes {
		subject := fmt.Sprintf("pipe %d", p.PlatformID)
		if len(p.Path.Points) == 0 {
			if p.PlatformID > 1 {
				errs = append(errs, ValidationError{
					Subject:  subject,
					Message:  "no route was produced",
					Severity: SeverityError,
				})
			}
			continue
		}

		a := p.Path.Analysis
		if a == nil {
			continue
		}
		if a.ClearanceViolations {
			errs = append(errs, ValidationError{
				Subject: subject,
				Message: fmt.Sprintf("straight run passes within %.2f of a platform corner",
					a.Constraints.PreferredClearance),
				Severity: SeverityWarning,
			})
		}
		if a.RoutingType != p.Path.Routing {
			errs = append(errs, ValidationError{
				Subject: subject,
				Message: fmt.Sprintf("analysis suggests %s but the pipe is routed %s",
					a.RoutingType, p.Path.Routing),
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

package flatten

import (
	"github.com/npillmayer/gdsvg/core"
)

// Method selects the flattening strategy.
type Method int

const (
	// MethodFixed samples every segment at a fixed number of uniform
	// parameter steps, regardless of curvature.
	MethodFixed Method = iota
	// MethodAdaptive subdivides until the local chord error is within
	// tolerance: flat regions get few points, curved regions get many.
	MethodAdaptive
)

func (m Method) String() string {
	switch m {
	case MethodFixed:
		return "fixed"
	case MethodAdaptive:
		return "adaptive"
	}
	return "unknown"
}

// ParseMethod maps a configuration string onto a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "fixed", "":
		return MethodFixed, nil
	case "adaptive":
		return MethodAdaptive, nil
	}
	return MethodFixed, core.Error(core.EINVALID, "unknown flattening method '%s'", s)
}

// Default parameter values, matching the conversion tool's CLI defaults.
const (
	DefaultSteps     = 1000
	DefaultMaxError  = 0.01
	DefaultMaxPoints = 1 << 20
)

// Options configures the flattening stage.
type Options struct {
	Method   Method
	Steps    int     // sample count for MethodFixed
	MaxError float64 // chord-error tolerance for MethodAdaptive
	// MaxPoints caps the vertex count a single segment may produce
	// during adaptive subdivision. Untrusted input with a tolerance far
	// below the geometry's scale would otherwise subdivide without
	// bound; a breach is reported as a budget error, not as stack
	// exhaustion.
	MaxPoints int
}

// DefaultOptions returns Options with all defaults filled in.
func DefaultOptions() Options {
	return Options{
		Method:    MethodFixed,
		Steps:     DefaultSteps,
		MaxError:  DefaultMaxError,
		MaxPoints: DefaultMaxPoints,
	}
}

// Validate checks opts before any processing begins. A zero MaxPoints
// is replaced by the default budget.
func (opts *Options) Validate() error {
	switch opts.Method {
	case MethodFixed:
		if opts.Steps < 1 {
			return core.Error(core.EINVALID, "step count must be positive, is %d", opts.Steps)
		}
	case MethodAdaptive:
		if opts.MaxError <= 0 {
			return core.Error(core.EINVALID, "chord-error tolerance must be positive, is %g", opts.MaxError)
		}
	default:
		return core.Error(core.EINVALID, "unknown flattening method %d", opts.Method)
	}
	if opts.MaxPoints == 0 {
		opts.MaxPoints = DefaultMaxPoints
	}
	if opts.MaxPoints < 2 {
		return core.Error(core.EINVALID, "point budget must allow at least 2 points, is %d", opts.MaxPoints)
	}
	return nil
}

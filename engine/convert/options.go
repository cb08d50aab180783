package convert

import (
	"strconv"

	"github.com/npillmayer/schuko"

	"github.com/npillmayer/gdsvg/core"
	"github.com/npillmayer/gdsvg/engine/flatten"
)

// Options configures a conversion run.
type Options struct {
	Flatten     flatten.Options
	TargetWidth float64 // scale so the bounding box gets this wide; ≤ 0 = no scaling
	FlipY       bool    // mirror in y for the output coordinate convention
	Layer       int     // layer tag for all emitted polygons
}

// DefaultOptions returns a ready-to-use option set: fixed-step
// flattening, no scaling, y-flip enabled, layer 0.
func DefaultOptions() Options {
	return Options{
		Flatten: flatten.DefaultOptions(),
		FlipY:   true,
	}
}

// Validate checks the options before processing begins.
func (opts *Options) Validate() error {
	return opts.Flatten.Validate()
}

// Configuration keys recognized by OptionsFromConfiguration.
const (
	ConfMethod      = "gdsvg.method"       // "fixed" | "adaptive"
	ConfSteps       = "gdsvg.steps"        // positive integer
	ConfMaxError    = "gdsvg.max-error"    // positive float
	ConfTargetWidth = "gdsvg.target-width" // positive float, unset = no scaling
	ConfFlipY       = "gdsvg.flip-y"       // "true" | "false", default true
	ConfLayer       = "gdsvg.layer"        // integer, default 0
)

// OptionsFromConfiguration reads a conversion option set from an
// application configuration. Unset keys keep their defaults; malformed
// values are configuration errors.
func OptionsFromConfiguration(conf schuko.Configuration) (Options, error) {
	opts := DefaultOptions()
	if s := conf.GetString(ConfMethod); s != "" {
		m, err := flatten.ParseMethod(s)
		if err != nil {
			return opts, err
		}
		opts.Flatten.Method = m
	}
	if s := conf.GetString(ConfSteps); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return opts, core.WrapError(err, core.EINVALID, "step count '%s' is not a number", s)
		}
		opts.Flatten.Steps = n
	}
	if s := conf.GetString(ConfMaxError); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return opts, core.WrapError(err, core.EINVALID, "max-error '%s' is not a number", s)
		}
		opts.Flatten.MaxError = f
	}
	if s := conf.GetString(ConfTargetWidth); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return opts, core.WrapError(err, core.EINVALID, "target width '%s' is not a number", s)
		}
		if f <= 0 {
			return opts, core.Error(core.EINVALID, "target width must be positive, is %g", f)
		}
		opts.TargetWidth = f
	}
	if s := conf.GetString(ConfFlipY); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return opts, core.WrapError(err, core.EINVALID, "flip-y '%s' is not a boolean", s)
		}
		opts.FlipY = b
	}
	if s := conf.GetString(ConfLayer); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return opts, core.WrapError(err, core.EINVALID, "layer '%s' is not a number", s)
		}
		opts.Layer = n
	}
	err := opts.Validate()
	return opts, err
}

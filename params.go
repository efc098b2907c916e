package stitch

// Params are the pattern parameters of a synthesis request. Lengths are in
// millimetres and are converted to pixels with MMPerPx.
type Params struct {
	MMPerPx     float64  `json:"mm_per_px" yaml:"mm_per_px"`
	StitchLenMM float64  `json:"stitch_len_mm" yaml:"stitch_len_mm"`
	Density     float64  `json:"density" yaml:"density"`
	WidthMM     float64  `json:"width_mm" yaml:"width_mm"`
	Passes      int      `json:"passes" yaml:"passes"`
	Strategy    Strategy `json:"strategy" yaml:"strategy"`
	// Optimize reorders layers to shorten travel between them.
	Optimize bool `json:"optimize,omitempty" yaml:"optimize"`
	// Limits bounds the work a request may cause. The zero value selects
	// DefaultLimits.
	Limits Limits `json:"-" yaml:"-"`
}

// DefaultParams returns the parameters used when a request specifies none.
func DefaultParams() Params {
	return Params{
		MMPerPx:     0.26,
		StitchLenMM: 2.5,
		Density:     1.0,
		WidthMM:     2.0,
		Passes:      1,
		Strategy:    Outline,
	}
}

// Validate checks mm_per_px > 0, stitch_len_mm > 0, density > 0, width_mm ≥ 0,
// passes ≥ 1, and that the strategy is known. Non-finite values are rejected.
// Errors are of kind [ErrInvalidParameter].
func (p Params) Validate() error {
	const op = "validate params"
	switch {
	case !finite(p.MMPerPx) || p.MMPerPx <= 0:
		return invalid(op, "mm_per_px must be > 0, got %g", p.MMPerPx)
	case !finite(p.StitchLenMM) || p.StitchLenMM <= 0:
		return invalid(op, "stitch_len_mm must be > 0, got %g", p.StitchLenMM)
	case !finite(p.Density) || p.Density <= 0:
		return invalid(op, "density must be > 0, got %g", p.Density)
	case !finite(p.WidthMM) || p.WidthMM < 0:
		return invalid(op, "width_mm must be >= 0, got %g", p.WidthMM)
	case p.Passes < 1:
		return invalid(op, "passes must be >= 1, got %d", p.Passes)
	case !p.Strategy.Valid():
		return invalid(op, "unknown strategy %d", int(p.Strategy))
	}
	return p.Limits.validate()
}

// SpacingPx returns the stitch spacing in pixels: the stitch length converted
// to pixels and divided by the density, which is floored at 0.25.
func (p Params) SpacingPx() float64 {
	return (p.StitchLenMM / p.MMPerPx) / max(0.25, p.Density)
}

// WidthPx returns the pattern width in pixels.
func (p Params) WidthPx() float64 {
	return p.WidthMM / p.MMPerPx
}

// Geometry returns the pixel-space geometry for the strategy.
func (p Params) Geometry() Geometry {
	return Geometry{
		WidthPx:   p.WidthPx(),
		SpacingPx: p.SpacingPx(),
		Passes:    p.Passes,
	}
}

func (p Params) settings() *Settings {
	return &Settings{
		Strategy:    p.Strategy,
		MMPerPx:     p.MMPerPx,
		StitchLenMM: p.StitchLenMM,
		WidthMM:     p.WidthMM,
		Passes:      p.Passes,
	}
}

// Limits bounds the amount of work a single synthesis may do. Zero fields
// select the corresponding DefaultLimits value.
type Limits struct {
	// MaxSamples bounds the samples taken along all curves of a request.
	MaxSamples int `yaml:"max_samples"`
	// MaxStitches bounds the points of a plan.
	MaxStitches int `yaml:"max_stitches"`
	// MaxLayers bounds the number of layers, and thus the optimizer's input.
	MaxLayers int `yaml:"max_layers"`
}

// DefaultLimits are the limits used for zero Limits fields.
var DefaultLimits = Limits{
	MaxSamples:  1_000_000,
	MaxStitches: 2_000_000,
	MaxLayers:   10_000,
}

func (l Limits) withDefaults() Limits {
	if l.MaxSamples == 0 {
		l.MaxSamples = DefaultLimits.MaxSamples
	}
	if l.MaxStitches == 0 {
		l.MaxStitches = DefaultLimits.MaxStitches
	}
	if l.MaxLayers == 0 {
		l.MaxLayers = DefaultLimits.MaxLayers
	}
	return l
}

func (l Limits) validate() error {
	if l.MaxSamples < 0 || l.MaxStitches < 0 || l.MaxLayers < 0 {
		return invalid("validate limits", "limits must not be negative: %+v", l)
	}
	return nil
}

package stitch

import (
	"fmt"
	"math"
)

// Strategy is one of the stitch patterns laid along a curve.
type Strategy int

const (
	// Outline places one stitch per sample on the curve.
	Outline Strategy = iota
	// Satin alternates sides of the curve, with optional narrowing passes.
	Satin
	// Zigzag alternates sides at a fixed amplitude.
	Zigzag
	// DoubleSatin places two rails per sample on opposite sides.
	DoubleSatin
	// Fill sweeps across the width in bands at every sample.
	Fill
	// Contour is Fill with every other band, giving parallel lines.
	Contour
	// Meander offsets the curve by a sine wave.
	Meander
	// Ripple offsets one side of the curve by a raised sine wave.
	Ripple

	numStrategies
)

var strategyNames = [numStrategies]string{
	Outline:     "outline",
	Satin:       "satin",
	Zigzag:      "zigzag",
	DoubleSatin: "double_satin",
	Fill:        "fill",
	Contour:     "contour",
	Meander:     "meander",
	Ripple:      "ripple",
}

// Strategies returns all strategies in declaration order.
func Strategies() []Strategy {
	out := make([]Strategy, numStrategies)
	for i := range out {
		out[i] = Strategy(i)
	}
	return out
}

// ParseStrategy parses a strategy name. Unknown names are an error of kind
// [ErrInvalidParameter]; there is no fallback strategy.
func ParseStrategy(s string) (Strategy, error) {
	for i, name := range strategyNames {
		if name == s {
			return Strategy(i), nil
		}
	}
	return 0, invalid("parse strategy", "unknown strategy %q", s)
}

// Valid reports whether s is one of the declared strategies.
func (s Strategy) Valid() bool {
	return s >= 0 && s < numStrategies
}

func (s Strategy) String() string {
	if s.Valid() {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, invalid("marshal strategy", "invalid strategy %d", int(s))
	}
	return []byte(strategyNames[s]), nil
}

func (s *Strategy) UnmarshalText(b []byte) error {
	ss, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = ss
	return nil
}

// Geometry holds the pixel-space quantities a strategy works with.
type Geometry struct {
	// WidthPx is the full width of the pattern across the curve.
	WidthPx float64
	// SpacingPx is the stitch spacing along the curve.
	SpacingPx float64
	// Passes is the number of satin passes. Values below 1 count as 1.
	Passes int
}

func (g Geometry) passes() int {
	return max(1, g.Passes)
}

// bands is the band count used by Fill and Contour.
func (g Geometry) bands() int {
	return max(1, int(math.Floor(max(2, g.WidthPx)/max(1, g.SpacingPx))))
}

// PerSample returns the number of stitches s emits for each sample.
func (s Strategy) PerSample(g Geometry) int {
	switch s {
	case Satin:
		return g.passes()
	case DoubleSatin:
		return 2
	case Fill:
		return 2*g.bands() + 1
	case Contour:
		return g.bands() + 1
	default:
		return 1
	}
}

// Apply lays the pattern along the samples and returns the stitch positions in
// order. It panics if s isn't valid.
func (s Strategy) Apply(samples []Sample, g Geometry) []Point {
	if !s.Valid() {
		panic(fmt.Sprintf("invalid strategy %d", int(s)))
	}
	out := make([]Point, 0, len(samples)*s.PerSample(g))
	return patterns[s](out, samples, g)
}

type pattern func(dst []Point, samples []Sample, g Geometry) []Point

var patterns = [numStrategies]pattern{
	Outline:     outline,
	Satin:       satin,
	Zigzag:      zigzag,
	DoubleSatin: doubleSatin,
	Fill:        fill,
	Contour:     contour,
	Meander:     meander,
	Ripple:      ripple,
}

func outline(dst []Point, samples []Sample, g Geometry) []Point {
	for _, s := range samples {
		dst = append(dst, s.Point)
	}
	return dst
}

func satin(dst []Point, samples []Sample, g Geometry) []Point {
	passes := g.passes()
	side := 1.0
	for i, s := range samples {
		n := normalAt(samples, i)
		for pass := range passes {
			off := g.WidthPx * (1 - float64(pass)/float64(passes)) * 0.5
			dst = append(dst, s.Translate(n.Mul(side*off)))
		}
		side = -side
	}
	return dst
}

func zigzag(dst []Point, samples []Sample, g Geometry) []Point {
	amp := g.WidthPx * 0.5
	toggle := 1.0
	for i, s := range samples {
		n := normalAt(samples, i)
		dst = append(dst, s.Translate(n.Mul(toggle*amp)))
		toggle = -toggle
	}
	return dst
}

func doubleSatin(dst []Point, samples []Sample, g Geometry) []Point {
	offA := g.WidthPx * 0.25
	offB := g.WidthPx * 0.5
	for i, s := range samples {
		n := normalAt(samples, i)
		dst = append(dst,
			s.Translate(n.Mul(offA)),
			s.Translate(n.Mul(-offB)))
	}
	return dst
}

func fill(dst []Point, samples []Sample, g Geometry) []Point {
	return banded(dst, samples, g, 1)
}

func contour(dst []Point, samples []Sample, g Geometry) []Point {
	return banded(dst, samples, g, 2)
}

// banded emits one stitch per band index in [-bands, bands], advancing the
// index by step.
func banded(dst []Point, samples []Sample, g Geometry, step int) []Point {
	bands := g.bands()
	for i, s := range samples {
		n := normalAt(samples, i)
		for bi := -bands; bi <= bands; bi += step {
			off := float64(bi) / float64(bands) * (g.WidthPx * 0.5)
			dst = append(dst, s.Translate(n.Mul(off)))
		}
	}
	return dst
}

func meander(dst []Point, samples []Sample, g Geometry) []Point {
	freq := max(0.2, 2/max(1, g.SpacingPx))
	var phase float64
	for i, s := range samples {
		n := normalAt(samples, i)
		phase += freq
		off := math.Sin(phase) * (g.WidthPx * 0.5)
		dst = append(dst, s.Translate(n.Mul(off)))
	}
	return dst
}

// ripplePhaseStep is the phase advance of Ripple per sample, in radians.
const ripplePhaseStep = 0.5

func ripple(dst []Point, samples []Sample, g Geometry) []Point {
	var phase float64
	for i, s := range samples {
		n := normalAt(samples, i)
		phase += ripplePhaseStep
		amp := (0.5 + 0.5*math.Sin(phase)) * (g.WidthPx * 0.5)
		dst = append(dst, s.Translate(n.Mul(amp)))
	}
	return dst
}

// tangentAt returns the unit tangent at sample i. Samples that carry a curve
// tangent use it; otherwise it is estimated from the neighbours i-1 and i+1,
// or from the first or last pair at the ends. A zero tangent stays zero.
func tangentAt(samples []Sample, i int) Vec2 {
	if samples[i].HasTangent {
		return samples[i].Tangent.SafeNormalize()
	}
	if len(samples) < 2 {
		return Vec2{}
	}
	var a, b Point
	switch {
	case i <= 0:
		a, b = samples[0].Point, samples[1].Point
	case i >= len(samples)-1:
		a, b = samples[len(samples)-2].Point, samples[len(samples)-1].Point
	default:
		a, b = samples[i-1].Point, samples[i+1].Point
	}
	return b.Sub(a).SafeNormalize()
}

// normalAt returns the unit normal at sample i: the tangent turned by 90°.
func normalAt(samples []Sample, i int) Vec2 {
	return tangentAt(samples, i).Turn90()
}

package stitch

import (
	"math"
)

// Sample is a point taken from a curve. Samples of a [PathCurve] carry the
// curve's tangent; polyline samples don't, and patterns estimate one from the
// neighbouring samples.
type Sample struct {
	Point
	Tangent    Vec2
	HasTangent bool
}

const (
	minPolylineSpacing = 1.0
	minPathSpacing     = 0.5
)

// Resample walks c and returns samples spaced roughly spacing pixels apart.
//
// A [Polyline] is walked vertex by vertex with an arc length remainder carried
// across vertices (see [ResampleSegment]); it starts with the first vertex and
// always ends with the last one. Spacing is floored at 1 px.
//
// Any other curve is sampled at n+1 uniform parameter steps, where
// n = max(1, ⌊length/spacing⌋) and spacing is floored at 0.5 px. For a
// [PathCurve] this is uniform in arc length only where the curve has constant
// speed.
func Resample(c Curve, spacing float64) []Sample {
	if pl, ok := c.(Polyline); ok {
		return resamplePolyline(pl, spacing)
	}
	n := SampleCount(c, spacing)
	out := make([]Sample, 0, n+1)
	for k := 0; k <= n; k++ {
		t := float64(k) / float64(n)
		out = append(out, Sample{
			Point:      c.Eval(t),
			Tangent:    c.Tangent(t),
			HasTangent: true,
		})
	}
	return out
}

// SampleCount returns the number of uniform parameter steps Resample takes on a
// non-polyline curve: max(1, ⌊length/max(0.5, spacing)⌋). For a polyline, it
// returns an upper bound on the samples Resample emits, minus one.
func SampleCount(c Curve, spacing float64) int {
	if pl, ok := c.(Polyline); ok {
		return steps(pl.Length(), max(minPolylineSpacing, spacing)) + len(pl)
	}
	return max(1, steps(c.Length(), max(minPathSpacing, spacing)))
}

// steps returns ⌊length/spacing⌋, saturating at math.MaxInt32.
func steps(length, spacing float64) int {
	return int(min(math.Floor(length/spacing), math.MaxInt32))
}

func resamplePolyline(pl Polyline, spacing float64) []Sample {
	if len(pl) < 2 {
		out := make([]Sample, len(pl))
		for i, pt := range pl {
			out[i] = Sample{Point: pt}
		}
		return out
	}
	spacing = max(minPolylineSpacing, spacing)
	out := []Sample{{Point: pl[0]}}
	emit := func(pt Point) { out = append(out, Sample{Point: pt}) }
	var carry float64
	for i := 1; i < len(pl); i++ {
		carry = ResampleSegment(pl[i-1], pl[i], spacing, carry, emit)
	}
	if last := pl[len(pl)-1]; out[len(out)-1].Point != last {
		out = append(out, Sample{Point: last})
	}
	return out
}

// ResampleSegment is one step of the polyline resampling fold. Starting carry
// pixels into the segment from p0 to p1, it emits a point every spacing pixels
// while the next position still lies on the segment, and returns the carry for
// the next segment: (a + length) mod spacing, where a is the position of the
// last emitted point, or the incoming carry if none was emitted. Segments of
// length 1e-6 or less emit nothing and return carry unchanged.
func ResampleSegment(p0, p1 Point, spacing, carry float64, emit func(Point)) float64 {
	d := p1.Sub(p0)
	segLen := d.Hypot()
	if segLen <= degenerateLen {
		return carry
	}
	u := d.Mul(1 / segLen)
	acc := carry
	for acc+spacing <= segLen {
		acc += spacing
		emit(p0.Translate(u.Mul(acc)))
	}
	return math.Mod(acc+segLen, spacing)
}

package stitch

import (
	"math"
)

var _ ParametricCurve = QuadBez{}

// QuadBez is a quadratic Bézier segment, as written by SVG's Q and T
// commands.
type QuadBez struct {
	P0, P1, P2 Point
}

func (q QuadBez) Start() Point { return q.P0 }
func (q QuadBez) End() Point   { return q.P2 }

func (q QuadBez) Eval(t float64) Point {
	mt := 1 - t
	v := Vec2(q.P2).Mul(t).
		Add(Vec2(q.P1).Mul(2 * mt)).Mul(t).
		Add(Vec2(q.P0).Mul(mt * mt))
	return Point(v)
}

// Hodograph returns the derivative of the quadratic as a line between its two
// coefficients.
func (q QuadBez) Hodograph() Line {
	return Line{Point(q.P1.Sub(q.P0).Mul(2)), Point(q.P2.Sub(q.P1).Mul(2))}
}

func (q QuadBez) Deriv(t float64) Vec2 {
	return Vec2(q.Hodograph().Eval(t))
}

// Raise returns the cubic that traces exactly the same curve.
func (q QuadBez) Raise() CubicBez {
	const k = 2.0 / 3
	return CubicBez{
		q.P0,
		q.P0.Lerp(q.P1, k),
		q.P2.Lerp(q.P1, k),
		q.P2,
	}
}

// Extrema returns the parameters in (0, 1) where the derivative of either
// coordinate vanishes, in increasing order.
func (q QuadBez) Extrema() ([MaxExtrema]float64, int) {
	var out [MaxExtrema]float64
	n := 0
	d0 := q.P1.Sub(q.P0)
	dd := q.P2.Sub(q.P1).Sub(d0)
	for _, c := range [2][2]float64{{d0.X, dd.X}, {d0.Y, dd.Y}} {
		if c[1] == 0 {
			continue
		}
		if t := -c[0] / c[1]; t > 0 && t < 1 {
			out[n] = t
			n++
		}
	}
	if n == 2 && out[0] > out[1] {
		out[0], out[1] = out[1], out[0]
	}
	return out, n
}

func (q QuadBez) BoundingBox() Rect { return boundingBox(q) }

func (q QuadBez) Transform(aff Affine) QuadBez {
	return QuadBez{q.P0.Transform(aff), q.P1.Transform(aff), q.P2.Transform(aff)}
}

func (q QuadBez) Seg() PathSegment {
	return PathSegment{Kind: QuadKind, P0: q.P0, P1: q.P1, P2: q.P2}
}

// Arclen returns the length of the quadratic. It is computed in closed form
// and doesn't depend on accuracy, except for nearly straight curves, where
// the closed form loses precision and three point Gauss-Legendre quadrature is
// used instead.
func (q QuadBez) Arclen(accuracy float64) float64 {
	d1 := q.P1.Sub(q.P0)
	d2 := q.P2.Sub(q.P1).Sub(d1)
	a, c := d2.Hypot2(), d1.Hypot2()
	if a < 5e-4*c {
		// Speed at the three nodes, already weighted.
		s0 := Vec2(q.P0).Mul(-0.492943519233745).
			Add(Vec2(q.P1).Mul(0.430331482911935)).
			Add(Vec2(q.P2).Mul(0.0626120363218102))
		s1 := q.P2.Sub(q.P0).Mul(4.0 / 9)
		s2 := Vec2(q.P2).Mul(0.492943519233745).
			Sub(Vec2(q.P1).Mul(0.430331482911935)).
			Sub(Vec2(q.P0).Mul(0.0626120363218102))
		return s0.Hypot() + s1.Hypot() + s2.Hypot()
	}

	b := 2 * d2.Dot(d1)
	sabc := math.Sqrt(a + b + c)
	ra := 1 / math.Sqrt(a)
	c2 := 2 * math.Sqrt(c)
	bac := b*ra + c2

	l := 0.25*ra*ra*b*(2*sabc-c2) + sabc
	if bac < 1e-13 {
		// The curve doubles back on itself in a cusp.
		return l
	}
	return l + 0.25*ra*ra*ra*(4*c*a-b*b)*math.Log(((2*a+b)*ra+2*sabc)/bac)
}

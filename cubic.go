package stitch

import (
	"math"
	"sort"
)

var _ ParametricCurve = CubicBez{}

// CubicBez is a cubic Bézier segment. SVG's C and S commands and elliptical
// arcs all end up as cubics.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

func (c CubicBez) Start() Point { return c.P0 }
func (c CubicBez) End() Point   { return c.P3 }

func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	// Horner form of the Bernstein polynomial.
	v := Vec2(c.P3).Mul(t).
		Add(Vec2(c.P2).Mul(3 * mt)).Mul(t).
		Add(Vec2(c.P1).Mul(3 * mt * mt)).Mul(t).
		Add(Vec2(c.P0).Mul(mt * mt * mt))
	return Point(v)
}

// Hodograph returns the derivative of the cubic as a quadratic Bézier whose
// points are the derivative's coefficients.
func (c CubicBez) Hodograph() QuadBez {
	return QuadBez{
		Point(c.P1.Sub(c.P0).Mul(3)),
		Point(c.P2.Sub(c.P1).Mul(3)),
		Point(c.P3.Sub(c.P2).Mul(3)),
	}
}

func (c CubicBez) Deriv(t float64) Vec2 {
	return Vec2(c.Hodograph().Eval(t))
}

// Halves splits the cubic at t = 0.5 with de Casteljau's algorithm.
func (c CubicBez) Halves() (CubicBez, CubicBez) {
	p01 := c.P0.Midpoint(c.P1)
	p12 := c.P1.Midpoint(c.P2)
	p23 := c.P2.Midpoint(c.P3)
	p012 := p01.Midpoint(p12)
	p123 := p12.Midpoint(p23)
	mid := p012.Midpoint(p123)
	return CubicBez{c.P0, p01, p012, mid}, CubicBez{mid, p123, p23, c.P3}
}

// Extrema returns the parameters in (0, 1) where the derivative of either
// coordinate vanishes, in increasing order.
func (c CubicBez) Extrema() ([MaxExtrema]float64, int) {
	var out [MaxExtrema]float64
	n := 0
	d0, d1, d2 := c.P1.Sub(c.P0), c.P2.Sub(c.P1), c.P3.Sub(c.P2)
	for _, d := range [2][3]float64{{d0.X, d1.X, d2.X}, {d0.Y, d1.Y, d2.Y}} {
		roots, m := SolveQuadratic(d[0], 2*(d[1]-d[0]), d[0]-2*d[1]+d[2])
		for _, t := range roots[:m] {
			if t > 0 && t < 1 {
				out[n] = t
				n++
			}
		}
	}
	sort.Float64s(out[:n])
	return out, n
}

func (c CubicBez) BoundingBox() Rect { return boundingBox(c) }

func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{c.P0.Transform(aff), c.P1.Transform(aff), c.P2.Transform(aff), c.P3.Transform(aff)}
}

func (c CubicBez) Seg() PathSegment {
	return PathSegment{Kind: CubicKind, P0: c.P0, P1: c.P1, P2: c.P2, P3: c.P3}
}

// Arclen returns the length of the cubic to within accuracy.
//
// The integrand is expanded around the midpoint and integrated with 8, 16 or
// 24 point Gauss-Legendre quadrature, whichever is estimated to meet the
// accuracy; if none does, the cubic is halved and each half measured on its
// own, up to 20 levels deep.
func (c CubicBez) Arclen(accuracy float64) float64 {
	return c.arclen(accuracy, 0)
}

func (c CubicBez) arclen(accuracy float64, depth int) float64 {
	d01, d12, d23 := c.P1.Sub(c.P0), c.P2.Sub(c.P1), c.P3.Sub(c.P2)
	// How far the control polygon is from the chord.
	slack := d01.Hypot() + d12.Hypot() + d23.Hypot() - c.P3.Sub(c.P0).Hypot()

	dd1, dd2 := d12.Sub(d01), d23.Sub(d12)
	// Taylor coefficients of the derivative at the midpoint, without the
	// common factor of 3.
	dm := d01.Add(d23).Mul(0.25).Add(d12.Mul(0.5))
	dm1 := dd2.Add(dd1).Mul(0.5)
	dm2 := dd2.Sub(dd1).Mul(0.25)

	var curviness float64
	for _, wx := range gauss8 {
		w, x := wx[0], wx[1]
		d := dm.Add(dm1.Mul(x)).Add(dm2.Mul(x * x)).Hypot2()
		dd := dm1.Add(dm2.Mul(2 * x)).Hypot2()
		curviness += w * dd / d
	}
	if math.IsNaN(curviness) {
		// The derivative vanishes somewhere on a degenerate cubic.
		curviness = 0
	}

	switch {
	case min(math.Pow(curviness, 3)*2.5e-6, 3e-2)*slack < accuracy:
		return gaussArclen(gauss8Half[:], dm, dm1, dm2)
	case min(math.Pow(curviness, 6)*1.5e-11, 9e-3)*slack < accuracy:
		return gaussArclen(gauss16Half[:], dm, dm1, dm2)
	case min(math.Pow(curviness, 9)*3.5e-16, 3.5e-3)*slack < accuracy || depth >= 20:
		return gaussArclen(gauss24Half[:], dm, dm1, dm2)
	}
	a, b := c.Halves()
	return a.arclen(accuracy/2, depth+1) + b.arclen(accuracy/2, depth+1)
}

// gaussArclen integrates the speed of the cubic with the given symmetric
// quadrature, evaluating both ±x for every tabulated x.
func gaussArclen(table [][2]float64, dm, dm1, dm2 Vec2) float64 {
	var sum float64
	for _, wx := range table {
		w, x := wx[0], wx[1]
		even := dm.Add(dm2.Mul(x * x))
		odd := dm1.Mul(x)
		sum += w * (even.Add(odd).Hypot() + even.Sub(odd).Hypot())
	}
	return 1.5 * sum
}

// Gauss-Legendre weights and abscissae on [-1, 1]. The half tables hold the
// positive abscissae only.
var (
	gauss8 = [...][2]float64{
		{0.3626837833783620, -0.1834346424956498},
		{0.3626837833783620, 0.1834346424956498},
		{0.3137066458778873, -0.5255324099163290},
		{0.3137066458778873, 0.5255324099163290},
		{0.2223810344533745, -0.7966664774136267},
		{0.2223810344533745, 0.7966664774136267},
		{0.1012285362903763, -0.9602898564975363},
		{0.1012285362903763, 0.9602898564975363},
	}
	gauss8Half = [...][2]float64{
		{0.3626837833783620, 0.1834346424956498},
		{0.3137066458778873, 0.5255324099163290},
		{0.2223810344533745, 0.7966664774136267},
		{0.1012285362903763, 0.9602898564975363},
	}
	gauss16Half = [...][2]float64{
		{0.1894506104550685, 0.0950125098376374},
		{0.1826034150449236, 0.2816035507792589},
		{0.1691565193950025, 0.4580167776572274},
		{0.1495959888165767, 0.6178762444026438},
		{0.1246289712555339, 0.7554044083550030},
		{0.0951585116824928, 0.8656312023878318},
		{0.0622535239386479, 0.9445750230732326},
		{0.0271524594117541, 0.9894009349916499},
	}
	gauss24Half = [...][2]float64{
		{0.1279381953467522, 0.0640568928626056},
		{0.1258374563468283, 0.1911188674736163},
		{0.1216704729278034, 0.3150426796961634},
		{0.1155056680537256, 0.4337935076260451},
		{0.1074442701159656, 0.5454214713888396},
		{0.0976186521041139, 0.6480936519369755},
		{0.0861901615319533, 0.7401241915785544},
		{0.0733464814110803, 0.8200019859739029},
		{0.0592985849154368, 0.8864155270044011},
		{0.0442774388174198, 0.9382745520027328},
		{0.0285313886289337, 0.9747285559713095},
		{0.0123412297999872, 0.9951872199970213},
	}
)

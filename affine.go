package stitch

import "math"

// Affine is a 2D affine transform with the coefficients of SVG's
// matrix(a b c d e f), mapping (x, y) to
//
//	(N0·x + N2·y + N4, N1·x + N3·y + N5)
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

var Identity = Affine{1, 0, 0, 1, 0, 0}

func Scale(x, y float64) Affine { return Affine{x, 0, 0, y, 0, 0} }

func Translate(v Vec2) Affine { return Affine{1, 0, 0, 1, v.X, v.Y} }

// Rotate turns the positive x axis towards positive y by th radians, which is
// clockwise on screen and matches SVG's rotate().
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// RotateAbout is Rotate with center as the fixed point.
func RotateAbout(th float64, center Point) Affine {
	c := Vec2(center)
	return Translate(c).Mul(Rotate(th)).Mul(Translate(c.Negate()))
}

// Skew shears by the tangents x and y; SVG's skewX(a) is Skew(tan(a), 0).
func Skew(x, y float64) Affine { return Affine{1, y, x, 1, 0, 0} }

func NewAffine(n [6]float64) Affine { return Affine{n[0], n[1], n[2], n[3], n[4], n[5]} }

// Mul composes two transforms so that applying aff.Mul(o) is the same as
// applying o first and aff second. Nested SVG transforms compose outer to
// inner with it.
func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		N0: aff.N0*o.N0 + aff.N2*o.N1,
		N1: aff.N1*o.N0 + aff.N3*o.N1,
		N2: aff.N0*o.N2 + aff.N2*o.N3,
		N3: aff.N1*o.N2 + aff.N3*o.N3,
		N4: aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		N5: aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// ThenTranslate appends a translation by v, which equals Translate(v).Mul(aff).
func (aff Affine) ThenTranslate(v Vec2) Affine {
	aff.N4 += v.X
	aff.N5 += v.Y
	return aff
}

package stitch

import (
	"fmt"
	"math"
)

// Point is a position in pixel space. Y grows downwards.
type Point struct {
	X float64
	Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (pt Point) String() string { return fmt.Sprintf("(%g, %g)", pt.X, pt.Y) }

// Translate moves pt by v.
func (pt Point) Translate(v Vec2) Point {
	return Point{pt.X + v.X, pt.Y + v.Y}
}

func (pt Point) Transform(aff Affine) Point {
	return Point{
		X: aff.N0*pt.X + aff.N2*pt.Y + aff.N4,
		Y: aff.N1*pt.X + aff.N3*pt.Y + aff.N5,
	}
}

// Sub returns the vector from o to pt.
func (pt Point) Sub(o Point) Vec2 {
	return Vec2{pt.X - o.X, pt.Y - o.Y}
}

// Lerp returns the point a fraction t of the way from pt to o.
func (pt Point) Lerp(o Point, t float64) Point {
	return pt.Translate(o.Sub(pt).Mul(t))
}

func (pt Point) Midpoint(o Point) Point {
	return Point{(pt.X + o.X) / 2, (pt.Y + o.Y) / 2}
}

func (pt Point) Distance(o Point) float64 { return pt.Sub(o).Hypot() }

// DistanceSquared avoids the square root of Distance; nearest neighbour
// searches compare with it.
func (pt Point) DistanceSquared(o Point) float64 { return pt.Sub(o).Hypot2() }

func (pt Point) IsNaN() bool { return math.IsNaN(pt.X) || math.IsNaN(pt.Y) }

func (pt Point) isFinite() bool { return finite(pt.X) && finite(pt.Y) }

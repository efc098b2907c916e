package stitch

import (
	"fmt"
	"math"
)

// Vec2 is a displacement in pixel space, as opposed to the position a Point
// describes.
type Vec2 struct {
	X float64
	Y float64
}

func Vec(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) String() string { return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y) }

func (v Vec2) Add(o Vec2) Vec2    { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2    { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Negate() Vec2       { return Vec2{-v.X, -v.Y} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Hypot() float64     { return math.Hypot(v.X, v.Y) }
func (v Vec2) Hypot2() float64    { return v.Dot(v) }

func (v Vec2) Lerp(o Vec2, t float64) Vec2 { return v.Add(o.Sub(v).Mul(t)) }

// Angle is the direction of v in radians, measured from the positive x axis
// towards positive y.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Normalize scales v to unit length. The zero vector becomes NaN; use
// SafeNormalize where that can happen.
func (v Vec2) Normalize() Vec2 { return v.Mul(1 / v.Hypot()) }

// SafeNormalize is Normalize, except that the zero vector stays zero. Stitch
// offsets along a degenerate tangent collapse onto the centre line this way.
func (v Vec2) SafeNormalize() Vec2 {
	if h := v.Hypot(); h != 0 {
		return v.Mul(1 / h)
	}
	return Vec2{}
}

// Turn90 rotates v a quarter turn, from positive x towards positive y. In
// pixel space that is clockwise.
func (v Vec2) Turn90() Vec2 { return Vec2{-v.Y, v.X} }

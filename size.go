package stitch

import "fmt"

// Size is the extent of a canvas or rectangle.
type Size struct {
	Width  float64
	Height float64
}

func Sz(w, h float64) Size { return Size{Width: w, Height: h} }

func (sz Size) String() string { return fmt.Sprintf("%g×%g", sz.Width, sz.Height) }

// AsVec2 returns the diagonal of a rectangle of this size.
func (sz Size) AsVec2() Vec2 { return Vec2{sz.Width, sz.Height} }

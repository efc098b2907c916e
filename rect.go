package stitch

import (
	"iter"
	"slices"
)

// Rect is an axis-aligned rectangle from (X0, Y0) to (X1, Y1). Most
// operations expect X0 <= X1 and Y0 <= Y1.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRectFromPoints returns the rectangle spanned by two opposite corners.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{
		X0: min(p0.X, p1.X),
		Y0: min(p0.Y, p1.Y),
		X1: max(p0.X, p1.X),
		Y1: max(p0.Y, p1.Y),
	}
}

// NewRectFromOrigin returns the rectangle of the given size whose top left
// corner is origin, as SVG's x, y, width and height attributes describe it.
func NewRectFromOrigin(origin Point, size Size) Rect {
	return NewRectFromPoints(origin, origin.Translate(size.AsVec2()))
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }
func (r Rect) Size() Size      { return Size{r.Width(), r.Height()} }

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{min(r.X0, o.X0), min(r.Y0, o.Y0), max(r.X1, o.X1), max(r.Y1, o.Y1)}
}

// UnionPoint grows r to contain pt. Starting from a zero-area rectangle at
// the first point, repeated calls compute the bounds of a point set.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{min(r.X0, pt.X), min(r.Y0, pt.Y), max(r.X1, pt.X), max(r.Y1, pt.Y)}
}

// Path returns the outline of r as a closed subpath, clockwise in pixel space
// from the top left corner.
func (r Rect) Path() BezPath { return slices.Collect(r.PathElements()) }

func (r Rect) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		_ = yield(MoveTo(Pt(r.X0, r.Y0))) &&
			yield(LineTo(Pt(r.X1, r.Y0))) &&
			yield(LineTo(Pt(r.X1, r.Y1))) &&
			yield(LineTo(Pt(r.X0, r.Y1))) &&
			yield(ClosePath())
	}
}

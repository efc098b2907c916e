package stitch

import (
	"fmt"
	"iter"
	"slices"
)

type PathElementKind int

const (
	MoveToKind PathElementKind = iota + 1
	LineToKind
	QuadToKind
	CubicToKind
	ClosePathKind
)

var elementNames = [...]string{
	MoveToKind:    "MoveTo",
	LineToKind:    "LineTo",
	QuadToKind:    "QuadTo",
	CubicToKind:   "CubicTo",
	ClosePathKind: "ClosePath",
}

func (k PathElementKind) String() string {
	if k < MoveToKind || k > ClosePathKind {
		return fmt.Sprintf("PathElementKind(%d)", int(k))
	}
	return elementNames[k]
}

// PathElement is one drawing instruction of a [BezPath]. It uses as many of
// its points as its kind needs: one for MoveTo and LineTo, two for QuadTo,
// three for CubicTo and none for ClosePath. The start of a curve is implied
// by the preceding element.
type PathElement struct {
	Kind PathElementKind
	P0   Point
	P1   Point
	P2   Point
}

func MoveTo(pt Point) PathElement     { return PathElement{Kind: MoveToKind, P0: pt} }
func LineTo(pt Point) PathElement     { return PathElement{Kind: LineToKind, P0: pt} }
func QuadTo(p0, p1 Point) PathElement { return PathElement{Kind: QuadToKind, P0: p0, P1: p1} }
func ClosePath() PathElement          { return PathElement{Kind: ClosePathKind} }

func CubicTo(p0, p1, p2 Point) PathElement {
	return PathElement{Kind: CubicToKind, P0: p0, P1: p1, P2: p2}
}

func (el PathElement) String() string {
	return fmt.Sprintf("%s(%s, %s, %s)", el.Kind, el.P0, el.P1, el.P2)
}

// Transform applies aff to the element's points. Unused points stay zero.
func (el PathElement) Transform(aff Affine) PathElement {
	switch el.Kind {
	case MoveToKind, LineToKind:
		el.P0 = el.P0.Transform(aff)
	case QuadToKind:
		el.P0, el.P1 = el.P0.Transform(aff), el.P1.Transform(aff)
	case CubicToKind:
		el.P0, el.P1, el.P2 = el.P0.Transform(aff), el.P1.Transform(aff), el.P2.Transform(aff)
	}
	return el
}

func (el PathElement) isFinite() bool {
	return el.P0.isFinite() && el.P1.isFinite() && el.P2.isFinite()
}

// EndPoint returns where the pen is after el. ClosePath has no end point of
// its own and reports false.
func (el PathElement) EndPoint() (Point, bool) {
	switch el.Kind {
	case MoveToKind, LineToKind:
		return el.P0, true
	case QuadToKind:
		return el.P1, true
	case CubicToKind:
		return el.P2, true
	}
	return Point{}, false
}

type PathSegmentKind int

const (
	LineKind PathSegmentKind = iota + 1
	QuadKind
	CubicKind
)

// PathSegment is a [Line], [QuadBez] or [CubicBez] with its start point made
// explicit, tagged by Kind.
type PathSegment struct {
	Kind PathSegmentKind
	P0   Point
	P1   Point
	P2   Point
	P3   Point
}

var _ ParametricCurve = PathSegment{}

// segment is what every concrete segment type implements.
type segment interface {
	ParametricCurve
	Arclen(accuracy float64) float64
	Extrema() ([MaxExtrema]float64, int)
	BoundingBox() Rect
}

func (seg PathSegment) curve() segment {
	switch seg.Kind {
	case QuadKind:
		return seg.Quad()
	case CubicKind:
		return seg.Cubic()
	default:
		return seg.Line()
	}
}

// Line, Quad and Cubic reinterpret the segment's points; only the one
// matching Kind describes the segment.
func (seg PathSegment) Line() Line           { return Line{seg.P0, seg.P1} }
func (seg PathSegment) Quad() QuadBez        { return QuadBez{seg.P0, seg.P1, seg.P2} }
func (seg PathSegment) Cubic() CubicBez      { return CubicBez{seg.P0, seg.P1, seg.P2, seg.P3} }
func (seg PathSegment) Start() Point         { return seg.P0 }
func (seg PathSegment) End() Point           { return seg.curve().End() }
func (seg PathSegment) Eval(t float64) Point { return seg.curve().Eval(t) }
func (seg PathSegment) Deriv(t float64) Vec2 { return seg.curve().Deriv(t) }
func (seg PathSegment) BoundingBox() Rect    { return seg.curve().BoundingBox() }

func (seg PathSegment) Arclen(accuracy float64) float64 {
	return seg.curve().Arclen(accuracy)
}

func (seg PathSegment) Extrema() ([MaxExtrema]float64, int) {
	return seg.curve().Extrema()
}

// BezPath is a sequence of subpaths, each opened by a MoveTo and optionally
// ended by a ClosePath. SVG path data, basic shapes and arcs all parse into
// one.
type BezPath []PathElement

func (p *BezPath) Push(el PathElement)      { *p = append(*p, el) }
func (p *BezPath) MoveTo(pt Point)          { p.Push(MoveTo(pt)) }
func (p *BezPath) LineTo(pt Point)          { p.Push(LineTo(pt)) }
func (p *BezPath) QuadTo(p1, p2 Point)      { p.Push(QuadTo(p1, p2)) }
func (p *BezPath) CubicTo(p1, p2, p3 Point) { p.Push(CubicTo(p1, p2, p3)) }
func (p *BezPath) ClosePath()               { p.Push(ClosePath()) }

func (p BezPath) Elements() iter.Seq[PathElement] { return slices.Values(p) }
func (p BezPath) Segments() iter.Seq[PathSegment] { return Segments(slices.Values(p)) }

// Transform returns a copy of p with aff applied to every element.
func (p BezPath) Transform(aff Affine) BezPath {
	out := make(BezPath, len(p))
	for i, el := range p {
		out[i] = el.Transform(aff)
	}
	return out
}

// Arclen sums the lengths of all segments, each to within accuracy.
func (p BezPath) Arclen(accuracy float64) float64 {
	var sum float64
	for seg := range p.Segments() {
		sum += seg.Arclen(accuracy)
	}
	return sum
}

// BoundingBox returns the tight bounds of the drawn segments, ignoring
// trailing MoveTos. It is the zero Rect if nothing is drawn.
func (p BezPath) BoundingBox() Rect {
	var bbox Rect
	first := true
	for seg := range p.Segments() {
		if first {
			bbox, first = seg.BoundingBox(), false
		} else {
			bbox = bbox.Union(seg.BoundingBox())
		}
	}
	return bbox
}

// HasSegments reports whether p draws anything at all.
func (p BezPath) HasSegments() bool {
	return slices.ContainsFunc(p, func(el PathElement) bool {
		return el.Kind != MoveToKind && el.Kind != ClosePathKind
	})
}

// Validate reports paths that don't start with a MoveTo, hold unknown element
// kinds or have non-finite coordinates, wrapping [ErrMalformedInput].
func (p BezPath) Validate() error {
	if len(p) > 0 && p[0].Kind != MoveToKind {
		return Malformed("validate path", fmt.Errorf("path starts with %s, not MoveTo", p[0].Kind))
	}
	for i, el := range p {
		if el.Kind < MoveToKind || el.Kind > ClosePathKind {
			return Malformed("validate path", fmt.Errorf("element %d has invalid kind %d", i, el.Kind))
		}
		if !el.isFinite() {
			return Malformed("validate path", fmt.Errorf("element %d has non-finite coordinates", i))
		}
	}
	return nil
}

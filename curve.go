package stitch

import (
	"fmt"
	"iter"
	"math"
)

// MaxExtrema bounds the number of interior extrema a segment can have: two
// per axis for a cubic Bézier.
const MaxExtrema = 4

// ParametricCurve is a curve segment parametrized over [0, 1].
type ParametricCurve interface {
	Eval(t float64) Point
	Deriv(t float64) Vec2
	Start() Point
	End() Point
}

// boundingBox returns the bounds of a segment from its end points and its
// interior extrema.
func boundingBox(c interface {
	ParametricCurve
	Extrema() ([MaxExtrema]float64, int)
}) Rect {
	r := NewRectFromPoints(c.Start(), c.End())
	ex, n := c.Extrema()
	for _, t := range ex[:n] {
		r = r.UnionPoint(c.Eval(t))
	}
	return r
}

// Segments turns path elements into drawable segments. MoveTo elements start
// a new subpath and emit nothing; ClosePath emits the closing line unless the
// subpath already ends at its start.
//
// Without a leading MoveTo, the first element only sets the start point. A
// leading ClosePath panics; [BezPath.Validate] rejects such paths.
func Segments(seq iter.Seq[PathElement]) iter.Seq[PathSegment] {
	return func(yield func(PathSegment) bool) {
		var start, pen Point
		started := false
		for el := range seq {
			if !started {
				end, ok := el.EndPoint()
				if !ok {
					panic("path starts with ClosePath")
				}
				start, pen = end, end
				started = true
				continue
			}

			var seg PathSegment
			switch el.Kind {
			case MoveToKind:
				start, pen = el.P0, el.P0
				continue
			case LineToKind:
				seg = Line{pen, el.P0}.Seg()
			case QuadToKind:
				seg = QuadBez{pen, el.P0, el.P1}.Seg()
			case CubicToKind:
				seg = CubicBez{pen, el.P0, el.P1, el.P2}.Seg()
			case ClosePathKind:
				if pen == start {
					continue
				}
				seg = Line{pen, start}.Seg()
			default:
				panic(fmt.Sprintf("unhandled path element kind %v", el.Kind))
			}
			pen = seg.End()
			if !yield(seg) {
				return
			}
		}
	}
}

// SolveQuadratic returns the real roots x of c0 + c1·x + c2·x² = 0 in
// increasing order.
//
// A vanishing c2 makes the equation linear, and if all coefficients are zero
// the single root 0 is reported.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0, sc1 := c0/c2, c1/c2
	if !finite(sc0) || !finite(sc1) {
		switch root := -c0 / c1; {
		case finite(root):
			return [2]float64{root}, 1
		case c0 == 0 && c1 == 0:
			return [2]float64{0}, 1
		default:
			return [2]float64{}, 0
		}
	}

	var r1 float64
	disc := sc1*sc1 - 4*sc0
	switch {
	case math.IsInf(disc, 0):
		// sc1² overflowed; the large root is close to -sc1.
		r1 = -sc1
	case disc < 0:
		return [2]float64{}, 0
	case disc == 0:
		return [2]float64{-0.5 * sc1}, 1
	default:
		// Pick the sign that avoids cancellation, then get the other root
		// from the product of the roots.
		r1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(disc), sc1))
	}
	r2 := sc0 / r1
	switch {
	case !finite(r2):
		return [2]float64{r1}, 1
	case r2 > r1:
		return [2]float64{r1, r2}, 2
	default:
		return [2]float64{r2, r1}, 2
	}
}

func finite(x float64) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

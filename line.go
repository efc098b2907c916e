package stitch

var _ ParametricCurve = Line{}

// Line is a straight segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

func (l Line) Start() Point         { return l.P0 }
func (l Line) End() Point           { return l.P1 }
func (l Line) Eval(t float64) Point { return l.P0.Lerp(l.P1, t) }
func (l Line) Deriv(float64) Vec2   { return l.P1.Sub(l.P0) }
func (l Line) Length() float64      { return l.P1.Sub(l.P0).Hypot() }

// Arclen returns the exact length; accuracy is ignored.
func (l Line) Arclen(accuracy float64) float64 { return l.Length() }

// Extrema reports no extrema: a line's bounds are its end points.
func (l Line) Extrema() ([MaxExtrema]float64, int) { return [MaxExtrema]float64{}, 0 }

func (l Line) BoundingBox() Rect { return NewRectFromPoints(l.P0, l.P1) }

func (l Line) Transform(aff Affine) Line {
	return Line{l.P0.Transform(aff), l.P1.Transform(aff)}
}

func (l Line) Seg() PathSegment {
	return PathSegment{Kind: LineKind, P0: l.P0, P1: l.P1}
}

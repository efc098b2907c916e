package stitch

// Curve is what the resampler walks: a position and a tangent at every
// parameter t ∈ [0, 1], and a total length. [PathCurve] and [Polyline] are the
// two implementations.
type Curve interface {
	Eval(t float64) Point
	Tangent(t float64) Vec2
	Length() float64
}

// degenerateLen is the length below which a polyline segment is ignored.
const degenerateLen = 1e-6

// Polyline is a curve through a sequence of vertices, linearly interpolated and
// parametrized by arc length. Segments shorter than 1e-6 px are skipped.
type Polyline []Point

var _ Curve = Polyline(nil)

// Length returns the sum of the non-degenerate segment lengths.
func (pl Polyline) Length() float64 {
	var sum float64
	for i := 1; i < len(pl); i++ {
		if d := pl[i].Distance(pl[i-1]); d > degenerateLen {
			sum += d
		}
	}
	return sum
}

// locate finds the segment containing arc length t·Length and the fraction
// along it. It returns -1 if the polyline has no non-degenerate segment.
func (pl Polyline) locate(t float64) (int, float64) {
	t = min(max(t, 0), 1)
	target := t * pl.Length()
	last := -1
	var acc float64
	for i := 1; i < len(pl); i++ {
		d := pl[i].Distance(pl[i-1])
		if d <= degenerateLen {
			continue
		}
		last = i
		if target <= acc+d {
			return i, (target - acc) / d
		}
		acc += d
	}
	if last == -1 {
		return -1, 0
	}
	return last, 1
}

// Eval returns the point at arc length t·Length.
func (pl Polyline) Eval(t float64) Point {
	if len(pl) == 0 {
		return Point{}
	}
	i, u := pl.locate(t)
	if i < 0 {
		return pl[0]
	}
	return pl[i-1].Lerp(pl[i], u)
}

// Tangent returns the direction of the segment containing t, with the
// segment's length as magnitude.
func (pl Polyline) Tangent(t float64) Vec2 {
	i, _ := pl.locate(t)
	if i < 0 {
		return Vec2{}
	}
	return pl[i].Sub(pl[i-1])
}

func (pl Polyline) isFinite() bool {
	for _, pt := range pl {
		if !pt.isFinite() {
			return false
		}
	}
	return true
}

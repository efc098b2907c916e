package stitch

// pathAccuracy is the arc length accuracy used when splitting a path's
// parameter range across its segments.
const pathAccuracy = 1e-3

// PathCurve is a [BezPath] viewed as one curve. The parameter T ∈ [0, 1] is
// divided among the segments in proportion to their arc lengths; within a
// segment, the local parameter is linear in T. Segments of zero length get no
// share of T, and subpaths are joined in order.
//
// Because the local parameter isn't reparametrized by arc length, equal steps in
// T are equal distances along the curve only where the segment has constant
// speed, which holds for lines but not in general for Béziers.
type PathCurve struct {
	segs []PathSegment
	// ends holds the cumulative arc length at the end of each segment.
	ends   []float64
	length float64
	start  Point
}

var _ Curve = (*PathCurve)(nil)

// NewPathCurve builds the curve for p. The path must be valid, see
// [BezPath.Validate].
func NewPathCurve(p BezPath) *PathCurve {
	pc := &PathCurve{}
	if len(p) > 0 {
		pc.start, _ = p[0].EndPoint()
	}
	for seg := range p.Segments() {
		l := seg.Arclen(pathAccuracy)
		if l <= 0 {
			continue
		}
		pc.length += l
		pc.segs = append(pc.segs, seg)
		pc.ends = append(pc.ends, pc.length)
	}
	return pc
}

// Length returns the total arc length of the path.
func (pc *PathCurve) Length() float64 {
	return pc.length
}

// Segments returns the number of non-degenerate segments.
func (pc *PathCurve) Segments() int {
	return len(pc.segs)
}

// locate maps the global parameter to a segment and its local parameter.
func (pc *PathCurve) locate(t float64) (int, float64) {
	if len(pc.segs) == 0 {
		return -1, 0
	}
	t = min(max(t, 0), 1)
	target := t * pc.length
	var segStart float64
	for i, end := range pc.ends {
		if target <= end || i == len(pc.ends)-1 {
			u := (target - segStart) / (end - segStart)
			return i, min(max(u, 0), 1)
		}
		segStart = end
	}
	panic("unreachable")
}

func (pc *PathCurve) Eval(t float64) Point {
	i, u := pc.locate(t)
	if i < 0 {
		return pc.start
	}
	return pc.segs[i].Eval(u)
}

// Tangent returns the derivative of the segment at the local parameter.
func (pc *PathCurve) Tangent(t float64) Vec2 {
	i, u := pc.locate(t)
	if i < 0 {
		return Vec2{}
	}
	return pc.segs[i].Deriv(u)
}

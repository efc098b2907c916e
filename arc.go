package stitch

import (
	"iter"
	"math"
	"slices"
)

// Arc is a single elliptical arc segment.
type Arc struct {
	Center     Point
	Radii      Vec2
	StartAngle float64
	SweepAngle float64
	XRotation  float64
}

// Ellipse returns the closed arc describing a full ellipse, starting at angle 0.
func Ellipse(center Point, radii Vec2) Arc {
	return Arc{
		Center:     center,
		Radii:      radii,
		SweepAngle: 2 * math.Pi,
	}
}

// SVGArc describes an elliptical arc in the endpoint parametrization used by
// SVG's A command.
type SVGArc struct {
	From      Point
	To        Point
	Radii     Vec2
	XRotation float64
	LargeArc  bool
	Sweep     bool
}

// IsStraightLine reports whether the arc degenerates to a straight line, which
// is the case when either radius is (almost) zero or the end points coincide.
func (arc SVGArc) IsStraightLine() bool {
	return math.Abs(arc.Radii.X) <= 1e-5 || math.Abs(arc.Radii.Y) <= 1e-5 || arc.From == arc.To
}

// Arc converts the endpoint parametrization to a center parametrization, following
// the SVG implementation notes (F.6.5 and F.6.6). Radii that are too small to span
// the end points are scaled up. It returns false if the arc is a straight line.
func (arc SVGArc) Arc() (Arc, bool) {
	if arc.IsStraightLine() {
		return Arc{}, false
	}
	rx := math.Abs(arc.Radii.X)
	ry := math.Abs(arc.Radii.Y)
	xr := math.Mod(arc.XRotation, 2*math.Pi)
	sinPhi, cosPhi := math.Sincos(xr)
	hdX := (arc.From.X - arc.To.X) * 0.5
	hdY := (arc.From.Y - arc.To.Y) * 0.5
	hsX := (arc.From.X + arc.To.X) * 0.5
	hsY := (arc.From.Y + arc.To.Y) * 0.5

	p := Vec2{
		X: cosPhi*hdX + sinPhi*hdY,
		Y: -sinPhi*hdX + cosPhi*hdY,
	}

	if rf := p.X*p.X/(rx*rx) + p.Y*p.Y/(ry*ry); rf > 1.0 {
		rx *= math.Sqrt(rf)
		ry *= math.Sqrt(rf)
	}

	rxry := rx * ry
	rxpy := rx * p.Y
	rypx := ry * p.X
	sumOfSq := rxpy*rxpy + rypx*rypx

	signCoe := 1.0
	if arc.LargeArc == arc.Sweep {
		signCoe = -1.0
	}
	coe := signCoe * math.Sqrt(math.Abs((rxry*rxry-sumOfSq)/sumOfSq))
	tcx := coe * rxpy / ry
	tcy := -coe * rypx / rx

	center := Point{
		X: cosPhi*tcx - sinPhi*tcy + hsX,
		Y: sinPhi*tcx + cosPhi*tcy + hsY,
	}
	startV := Vec2{X: (p.X - tcx) / rx, Y: (p.Y - tcy) / ry}
	endV := Vec2{X: (-p.X - tcx) / rx, Y: (-p.Y - tcy) / ry}
	startAngle := startV.Angle()
	sweepAngle := math.Mod(endV.Angle()-startAngle, 2*math.Pi)
	if arc.Sweep && sweepAngle < 0 {
		sweepAngle += 2 * math.Pi
	} else if !arc.Sweep && sweepAngle > 0 {
		sweepAngle -= 2 * math.Pi
	}
	return Arc{
		Center:     center,
		Radii:      Vec2{X: rx, Y: ry},
		StartAngle: startAngle,
		SweepAngle: sweepAngle,
		XRotation:  arc.XRotation,
	}, true
}

func (a Arc) Path(tolerance float64) BezPath { return slices.Collect(a.PathElements(tolerance)) }

// PathElements returns a MoveTo to the arc's start followed by cubic Béziers
// approximating the arc to within tolerance.
func (a Arc) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		p0 := sampleEllipse(a.Radii, a.XRotation, a.StartAngle)
		if !yield(MoveTo(a.Center.Translate(p0))) {
			return
		}
		for el := range a.Cubics(tolerance) {
			if !yield(el) {
				return
			}
		}
	}
}

// Cubics returns the CubicTo elements approximating the arc, without the leading
// MoveTo. It is meant for appending an arc to a path whose current point is the
// arc's start.
func (a Arc) Cubics(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		scaledError := max(a.Radii.X, a.Radii.Y) / tolerance
		// Number of subdivisions per ellipse based on error tolerance.
		nError := max(math.Pow(1.1163*scaledError, 1.0/6.0), 3.999_999)
		n := math.Ceil(nError * math.Abs(a.SweepAngle) * (1.0 / (2.0 * math.Pi)))
		angleStep := a.SweepAngle / n
		armLen := math.Copysign((4.0/3.0)*math.Tan(math.Abs(0.25*angleStep)), a.SweepAngle)
		angle0 := a.StartAngle
		p0 := sampleEllipse(a.Radii, a.XRotation, angle0)

		for range int(n) {
			angle1 := angle0 + angleStep
			p1 := p0.Add(sampleEllipse(a.Radii, a.XRotation, angle0+math.Pi/2).Mul(armLen))
			p3 := sampleEllipse(a.Radii, a.XRotation, angle1)
			p2 := p3.Sub(sampleEllipse(a.Radii, a.XRotation, angle1+math.Pi/2).Mul(armLen))

			angle0 = angle1
			p0 = p3

			if !yield(CubicTo(
				a.Center.Translate(p1),
				a.Center.Translate(p2),
				a.Center.Translate(p3),
			)) {
				return
			}
		}
	}
}

// sampleEllipse returns the point on the ellipse with the given radii and
// rotation at the given angle, relative to the center.
func sampleEllipse(radii Vec2, xRotation float64, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	u := radii.X * cos
	v := radii.Y * sin
	return rotatePt(Vec2{u, v}, xRotation)
}

// rotatePt rotates pt about the origin by angle radians.
func rotatePt(pt Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: pt.X*cos - pt.Y*sin,
		Y: pt.X*sin + pt.Y*cos,
	}
}

package stitch

import (
	"fmt"
)

// Freehand is a polyline drawn in pixel space on a canvas.
type Freehand struct {
	Points []Point
	// Canvas is the size of the drawing surface. It is recorded in the plan's
	// Info and doesn't affect synthesis.
	Canvas Size
	// Color is the thread colour of the layer. Nil selects Black.
	Color *RGB
}

// ColoredPath is a path with the colours it was drawn with.
type ColoredPath struct {
	Path   BezPath
	Stroke *RGB
	Fill   *RGB
}

// Color returns the layer colour for the path: the stroke, else the fill, else
// Black.
func (cp ColoredPath) Color() RGB {
	switch {
	case cp.Stroke != nil:
		return *cp.Stroke
	case cp.Fill != nil:
		return *cp.Fill
	default:
		return Black
	}
}

// FromPolyline synthesizes a single-layer plan from a freehand polyline.
//
// A polyline of fewer than two points is not an error; it yields an empty plan
// with a stitch count of zero.
func FromPolyline(in Freehand, p Params) (Plan, error) {
	const op = "from polyline"
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	pl := Polyline(in.Points)
	var plan Plan
	if len(pl) < 2 {
		plan = assemble(nil, p)
	} else {
		if !pl.isFinite() {
			return Plan{}, Malformed(op, fmt.Errorf("polyline has non-finite coordinates"))
		}
		b := newBudget(p)
		spacing := p.SpacingPx()
		if err := b.spendSamples(SampleCount(pl, spacing) + 1); err != nil {
			return Plan{}, err
		}
		samples := Resample(pl, spacing)
		if err := b.spendStitches(len(samples)*p.Strategy.PerSample(p.Geometry()) + 1); err != nil {
			return Plan{}, err
		}
		c := Black
		if in.Color != nil {
			c = *in.Color
		}
		layer := newLayer(0, c, p.Strategy.Apply(samples, p.Geometry()))
		plan = assemble([]Layer{layer}, p)
	}
	return plan.WithCanvas(in.Canvas), nil
}

// FromPaths synthesizes a plan with one layer per path. Paths of zero length
// are skipped, and a layer's Index is the index of its path in paths. If
// p.Optimize is set, layers are reordered with [Optimize].
func FromPaths(paths []ColoredPath, p Params) (Plan, error) {
	const op = "from paths"
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	b := newBudget(p)
	if len(paths) > b.limits.MaxLayers {
		return Plan{}, Malformed(op, fmt.Errorf("%d paths exceed the limit of %d layers", len(paths), b.limits.MaxLayers))
	}
	spacing := p.SpacingPx()
	geom := p.Geometry()
	var layers []Layer
	for i, cp := range paths {
		if err := cp.Path.Validate(); err != nil {
			return Plan{}, fmt.Errorf("path %d: %w", i, err)
		}
		pc := NewPathCurve(cp.Path)
		if pc.Length() <= 0 {
			continue
		}
		if err := b.spendSamples(SampleCount(pc, spacing) + 1); err != nil {
			return Plan{}, fmt.Errorf("path %d: %w", i, err)
		}
		samples := Resample(pc, spacing)
		if err := b.spendStitches(len(samples)*p.Strategy.PerSample(geom) + 1); err != nil {
			return Plan{}, fmt.Errorf("path %d: %w", i, err)
		}
		stitches := p.Strategy.Apply(samples, geom)
		if len(stitches) == 0 {
			continue
		}
		layers = append(layers, newLayer(i, cp.Color(), stitches))
	}
	if p.Optimize {
		layers = Optimize(layers)
	}
	return assemble(layers, p), nil
}

// WithCanvas returns a copy of the plan recording the canvas size in Info.
func (p Plan) WithCanvas(sz Size) Plan {
	p.Info.CanvasWidth = sz.Width
	p.Info.CanvasHeight = sz.Height
	return p
}

// budget tracks work against Limits across the curves of one request.
type budget struct {
	limits   Limits
	samples  int
	stitches int
}

func newBudget(p Params) *budget {
	return &budget{limits: p.Limits.withDefaults()}
}

func (b *budget) spendSamples(n int) error {
	b.samples += n
	if b.samples > b.limits.MaxSamples {
		return invalid("resample", "stitch spacing too dense: %d samples exceed the limit of %d", b.samples, b.limits.MaxSamples)
	}
	return nil
}

func (b *budget) spendStitches(n int) error {
	b.stitches += n
	if b.stitches > b.limits.MaxStitches {
		return invalid("apply strategy", "%d stitches exceed the limit of %d", b.stitches, b.limits.MaxStitches)
	}
	return nil
}

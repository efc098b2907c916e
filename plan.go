package stitch

import (
	"fmt"
)

// Plan is an ordered sequence of machine commands. The order of Points is the
// stitch order. Plans are built once and not modified afterwards; functions
// that transform a plan return a new one.
type Plan struct {
	Points []StitchPoint `json:"points"`
	Info   Info          `json:"info"`
}

// Info summarizes a plan. StitchCount is always the number of StitchKind
// points. Generated plans carry Settings and Layers; plans built from arbitrary
// command sequences, such as decoded machine files, carry Counts.
type Info struct {
	StitchCount int `json:"stitch_count"`
	*Settings
	*Counts
	Layers       []LayerInfo `json:"layers,omitempty"`
	CanvasWidth  float64     `json:"canvas_width,omitempty"`
	CanvasHeight float64     `json:"canvas_height,omitempty"`
}

// Settings records the parameters a plan was generated with.
type Settings struct {
	Strategy    Strategy `json:"strategy"`
	MMPerPx     float64  `json:"mm_per_px"`
	StitchLenMM float64  `json:"stitch_len_mm"`
	WidthMM     float64  `json:"width_mm"`
	Passes      int      `json:"passes"`
}

// Counts holds the per-kind counts of non-stitch commands.
type Counts struct {
	JumpCount    int `json:"jump_count"`
	TrimCount    int `json:"trim_count"`
	ColorChanges int `json:"color_changes"`
}

// LayerInfo describes one layer of a generated plan: the index of its source
// curve, the number of stitches it holds, and its colour.
type LayerInfo struct {
	Index int `json:"index"`
	Count int `json:"count"`
	Color RGB `json:"color"`
}

// Layer is a run of points opened by a ColorChange point, as produced for one
// source curve.
type Layer struct {
	// Index identifies the source curve.
	Index int
	Color RGB
	// Points starts with the ColorChange marker.
	Points []StitchPoint
}

// First returns the position of the layer's first point.
func (l Layer) First() Point { return l.Points[0].Pos() }

// Last returns the position of the layer's last point.
func (l Layer) Last() Point { return l.Points[len(l.Points)-1].Pos() }

func (l Layer) info() LayerInfo {
	return LayerInfo{Index: l.Index, Count: len(l.Points) - 1, Color: l.Color}
}

// newLayer builds a layer from stitch positions, placing the ColorChange marker
// at the first stitch.
func newLayer(index int, c RGB, stitches []Point) Layer {
	pts := make([]StitchPoint, 0, len(stitches)+1)
	pts = append(pts, colorChangeAt(stitches[0], c))
	for _, pt := range stitches {
		pts = append(pts, stitchAt(pt))
	}
	return Layer{Index: index, Color: c, Points: pts}
}

// assemble concatenates layers into a generated plan.
func assemble(layers []Layer, p Params) Plan {
	var n int
	for _, l := range layers {
		n += len(l.Points)
	}
	pts := make([]StitchPoint, 0, n)
	infos := make([]LayerInfo, 0, len(layers))
	for _, l := range layers {
		pts = append(pts, l.Points...)
		infos = append(infos, l.info())
	}
	return Plan{
		Points: pts,
		Info: Info{
			StitchCount: countKind(pts, StitchKind),
			Settings:    p.settings(),
			Layers:      infos,
		},
	}
}

// PlanFromPoints returns a plan over an arbitrary command sequence, with
// per-kind counts in Info. The slice is not copied.
func PlanFromPoints(pts []StitchPoint) Plan {
	return Plan{
		Points: pts,
		Info: Info{
			StitchCount: countKind(pts, StitchKind),
			Counts: &Counts{
				JumpCount:    countKind(pts, JumpKind),
				TrimCount:    countKind(pts, TrimKind),
				ColorChanges: countKind(pts, ColorChangeKind),
			},
		},
	}
}

func countKind(pts []StitchPoint, k Kind) int {
	var n int
	for _, pt := range pts {
		if pt.Kind == k {
			n++
		}
	}
	return n
}

// Check verifies the plan's invariants: StitchCount matches the points, and
// if the plan has layers, each layer opens with a ColorChange followed only by
// stitches.
func (p Plan) Check() error {
	if n := countKind(p.Points, StitchKind); n != p.Info.StitchCount {
		return Malformed("check plan", fmt.Errorf("stitch_count is %d, plan has %d stitches", p.Info.StitchCount, n))
	}
	if len(p.Info.Layers) == 0 {
		return nil
	}
	layers := p.Split()
	if len(layers) != len(p.Info.Layers) {
		return Malformed("check plan", fmt.Errorf("info lists %d layers, plan has %d", len(p.Info.Layers), len(layers)))
	}
	for i, l := range layers {
		for _, pt := range l.Points[1:] {
			if pt.Kind != StitchKind {
				return Malformed("check plan", fmt.Errorf("layer %d contains a %s point", i, pt.Kind))
			}
		}
		if len(l.Points)-1 != p.Info.Layers[i].Count {
			return Malformed("check plan", fmt.Errorf("layer %d has %d stitches, info says %d", i, len(l.Points)-1, p.Info.Layers[i].Count))
		}
	}
	return nil
}

// Split divides the plan into layers at its ColorChange points. Points before
// the first ColorChange form a layer of their own. Layer indices are taken from
// Info.Layers when it matches, and are positional otherwise.
func (p Plan) Split() []Layer {
	var layers []Layer
	for i, pt := range p.Points {
		if pt.Kind == ColorChangeKind || i == 0 {
			var c RGB
			if pt.Color != nil {
				c = *pt.Color
			}
			layers = append(layers, Layer{Index: len(layers), Color: c})
		}
		l := &layers[len(layers)-1]
		l.Points = append(l.Points, pt)
	}
	if len(p.Info.Layers) == len(layers) {
		for i := range layers {
			layers[i].Index = p.Info.Layers[i].Index
		}
	}
	return layers
}

// Bounds returns the bounding box of all points, or the zero Rect for an empty
// plan.
func (p Plan) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}
	r := NewRectFromPoints(p.Points[0].Pos(), p.Points[0].Pos())
	for _, pt := range p.Points[1:] {
		r = r.UnionPoint(pt.Pos())
	}
	return r
}

// Translate returns a copy of the plan with every point moved by v.
func (p Plan) Translate(v Vec2) Plan {
	pts := make([]StitchPoint, len(p.Points))
	for i, pt := range p.Points {
		pt.X += v.X
		pt.Y += v.Y
		pts[i] = pt
	}
	p.Points = pts
	return p
}

// AtOrigin returns the plan translated so that its first point is at (0, 0).
func (p Plan) AtOrigin() Plan {
	if len(p.Points) == 0 {
		return p
	}
	return p.Translate(Point{}.Sub(p.Points[0].Pos()))
}

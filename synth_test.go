package stitch

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func straightFreehand() Freehand {
	return Freehand{
		Points: []Point{Pt(0, 0), Pt(100, 0)},
		Canvas: Sz(200, 100),
	}
}

func TestFromPolylineOutline(t *testing.T) {
	plan, err := FromPolyline(straightFreehand(), DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if err := plan.Check(); err != nil {
		t.Fatal(err)
	}
	// Start, ten interior samples, and the end point.
	if plan.Info.StitchCount != 12 {
		t.Errorf("got %d stitches, want 12", plan.Info.StitchCount)
	}
	first := plan.Points[0]
	if first.Kind != ColorChangeKind || first.Color == nil || *first.Color != Black {
		t.Errorf("plan opens with %v, want a black colour change", first)
	}
	diff(t, Pt(0, 0), first.Pos())
	diff(t, Pt(100, 0), plan.Points[len(plan.Points)-1].Pos())

	spacing := DefaultParams().SpacingPx()
	for i := 2; i < len(plan.Points)-1; i++ {
		d := plan.Points[i].Pos().Distance(plan.Points[i-1].Pos())
		diff(t, spacing, d, cmpopts.EquateApprox(0, 1e-9))
	}

	diff(t, 200.0, plan.Info.CanvasWidth)
	diff(t, &Settings{Strategy: Outline, MMPerPx: 0.26, StitchLenMM: 2.5, WidthMM: 2, Passes: 1}, plan.Info.Settings)
	diff(t, []LayerInfo{{Index: 0, Count: 12, Color: Black}}, plan.Info.Layers)
}

func TestFromPolylineFill(t *testing.T) {
	p := DefaultParams()
	p.Strategy = Fill
	plan, err := FromPolyline(straightFreehand(), p)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Info.StitchCount != 3*12 {
		t.Errorf("got %d stitches, want %d", plan.Info.StitchCount, 3*12)
	}
}

func TestFromPolylineDegenerate(t *testing.T) {
	inputs := [][]Point{nil, {}, {Pt(4, 2)}, {Pt(math.NaN(), 1)}}
	for _, s := range Strategies() {
		for _, pts := range inputs {
			p := DefaultParams()
			p.Strategy = s
			plan, err := FromPolyline(Freehand{Points: pts}, p)
			if err != nil {
				t.Fatalf("%s: %s", s, err)
			}
			if plan.Info.StitchCount != 0 || len(plan.Points) != 0 {
				t.Errorf("%s: got %d points, want an empty plan", s, len(plan.Points))
			}
			if err := plan.Check(); err != nil {
				t.Errorf("%s: %s", s, err)
			}
		}
	}
}

func TestFromPolylineDeterministic(t *testing.T) {
	in := Freehand{
		Points: []Point{Pt(3, 7), Pt(40, 12), Pt(41, 60), Pt(5, 33), Pt(80, 80)},
		Canvas: Sz(100, 100),
	}
	for _, s := range Strategies() {
		p := DefaultParams()
		p.Strategy = s
		p.Passes = 3
		a, err := FromPolyline(in, p)
		if err != nil {
			t.Fatal(err)
		}
		b, err := FromPolyline(in, p)
		if err != nil {
			t.Fatal(err)
		}
		ja, _ := json.Marshal(a)
		jb, _ := json.Marshal(b)
		if string(ja) != string(jb) {
			t.Errorf("%s: repeated synthesis differs", s)
		}
		if err := a.Check(); err != nil {
			t.Errorf("%s: %s", s, err)
		}
	}
}

func TestDensityMonotonic(t *testing.T) {
	in := Freehand{Points: []Point{Pt(3, 4), Pt(120, 77)}}
	var path BezPath
	path.MoveTo(Pt(0, 0))
	path.QuadTo(Pt(60, 90), Pt(120, 10))
	path.LineTo(Pt(10, 40))
	paths := []ColoredPath{{Path: path}}

	prevLine, prevPath := -1, -1
	for d := 0.1; d <= 4; d += 0.1 {
		p := DefaultParams()
		p.Density = d
		line, err := FromPolyline(in, p)
		if err != nil {
			t.Fatal(err)
		}
		if line.Info.StitchCount < prevLine {
			t.Errorf("density %g: polyline stitch count fell from %d to %d", d, prevLine, line.Info.StitchCount)
		}
		prevLine = line.Info.StitchCount

		curve, err := FromPaths(paths, p)
		if err != nil {
			t.Fatal(err)
		}
		if curve.Info.StitchCount < prevPath {
			t.Errorf("density %g: path stitch count fell from %d to %d", d, prevPath, curve.Info.StitchCount)
		}
		prevPath = curve.Info.StitchCount
	}
}

func TestFromPolylineErrors(t *testing.T) {
	p := DefaultParams()
	p.Passes = 0
	if _, err := FromPolyline(straightFreehand(), p); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want an invalid parameter error", err)
	}

	in := Freehand{Points: []Point{Pt(0, 0), Pt(math.Inf(1), 0)}}
	if _, err := FromPolyline(in, DefaultParams()); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("got %v, want a malformed input error", err)
	}

	p = DefaultParams()
	p.Limits.MaxSamples = 5
	if _, err := FromPolyline(straightFreehand(), p); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want the sample limit to be hit", err)
	}

	p = DefaultParams()
	p.Strategy = Fill
	p.Limits.MaxStitches = 20
	if _, err := FromPolyline(straightFreehand(), p); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want the stitch limit to be hit", err)
	}
}

func TestFromPolylineColor(t *testing.T) {
	in := straightFreehand()
	red := RGB{255, 0, 0}
	in.Color = &red
	plan, err := FromPolyline(in, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	diff(t, &red, plan.Points[0].Color)
}

func linePath(p0, p1 Point) BezPath {
	var p BezPath
	p.MoveTo(p0)
	p.LineTo(p1)
	return p
}

func TestFromPaths(t *testing.T) {
	red := RGB{255, 0, 0}
	blue := RGB{0, 0, 255}
	paths := []ColoredPath{
		{Path: linePath(Pt(0, 0), Pt(50, 0)), Stroke: &red, Fill: &blue},
		{Path: linePath(Pt(9, 9), Pt(9, 9))},
		{Path: linePath(Pt(0, 10), Pt(50, 10)), Fill: &blue},
		{Path: linePath(Pt(0, 20), Pt(50, 20))},
	}
	plan, err := FromPaths(paths, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if err := plan.Check(); err != nil {
		t.Fatal(err)
	}
	// The zero-length path is skipped; indices refer to the input.
	layers := plan.Split()
	if len(layers) != 3 {
		t.Fatalf("got %d layers, want 3", len(layers))
	}
	wantIdx := []int{0, 2, 3}
	wantColor := []RGB{red, blue, Black}
	for i, l := range layers {
		diff(t, wantIdx[i], l.Index)
		diff(t, wantColor[i], l.Color)
		diff(t, ColorChangeKind, l.Points[0].Kind)
		diff(t, l.Points[1].Pos(), l.Points[0].Pos())
	}
	// 50 px at 9.6 px spacing: n = 5, so six samples per line.
	if plan.Info.StitchCount != 18 {
		t.Errorf("got %d stitches, want 18", plan.Info.StitchCount)
	}
}

func TestFromPathsOptimize(t *testing.T) {
	paths := []ColoredPath{
		{Path: linePath(Pt(0, 0), Pt(10, 0))},
		{Path: linePath(Pt(100, 0), Pt(110, 0))},
		{Path: linePath(Pt(20, 0), Pt(30, 0))},
	}
	p := DefaultParams()
	p.Optimize = true
	plan, err := FromPaths(paths, p)
	if err != nil {
		t.Fatal(err)
	}
	var got []int
	for _, l := range plan.Info.Layers {
		got = append(got, l.Index)
	}
	diff(t, []int{0, 2, 1}, got)
	if err := plan.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestFromPathsErrors(t *testing.T) {
	bad := []ColoredPath{{Path: BezPath{LineTo(Pt(1, 1))}}}
	if _, err := FromPaths(bad, DefaultParams()); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("got %v, want a malformed input error", err)
	}

	p := DefaultParams()
	p.Limits.MaxLayers = 1
	two := []ColoredPath{
		{Path: linePath(Pt(0, 0), Pt(10, 0))},
		{Path: linePath(Pt(0, 5), Pt(10, 5))},
	}
	if _, err := FromPaths(two, p); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("got %v, want too many layers to be rejected", err)
	}

	p = DefaultParams()
	p.Density = -1
	if _, err := FromPaths(two, p); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want an invalid parameter error", err)
	}

	plan, err := FromPaths(nil, DefaultParams())
	if err != nil || len(plan.Points) != 0 {
		t.Errorf("got %v, %v for no paths", plan, err)
	}
}

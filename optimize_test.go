package stitch

import (
	"math/rand/v2"
	"testing"
)

func randomLayers(r *rand.Rand, n int) []Layer {
	layers := make([]Layer, n)
	for i := range layers {
		pts := make([]Point, 1+r.IntN(4))
		for j := range pts {
			pts[j] = Pt(float64(r.IntN(50)), float64(r.IntN(50)))
		}
		layers[i] = newLayer(i, Black, pts)
	}
	return layers
}

func TestOptimizeGreedy(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for iter := range 200 {
		layers := randomLayers(r, 1+r.IntN(8))
		got := Optimize(layers)
		if len(got) != len(layers) {
			t.Fatalf("got %d layers, want %d", len(got), len(layers))
		}
		if got[0].Index != layers[0].Index {
			t.Fatalf("iteration %d: first layer moved", iter)
		}

		// Brute force: at every step, the chosen layer must be the nearest
		// remaining one, and the earliest of equally near ones.
		placed := map[int]bool{got[0].Index: true}
		for step := 1; step < len(got); step++ {
			cur := got[step-1].Last()
			best := -1
			for _, l := range layers {
				if placed[l.Index] {
					continue
				}
				if best == -1 || cur.Distance(l.First()) < cur.Distance(layers[best].First()) {
					best = l.Index
				}
			}
			if got[step].Index != best {
				t.Fatalf("iteration %d, step %d: chose layer %d, want %d", iter, step, got[step].Index, best)
			}
			placed[best] = true
		}
	}
}

func TestOptimizeTies(t *testing.T) {
	layers := []Layer{
		newLayer(0, Black, []Point{Pt(0, 0)}),
		newLayer(1, Black, []Point{Pt(5, 0)}),
		newLayer(2, Black, []Point{Pt(-5, 0)}),
	}
	got := Optimize(layers)
	diff(t, []int{0, 1, 2}, layerIndices(got))
}

func TestOptimizeReducesTravel(t *testing.T) {
	layers := []Layer{
		newLayer(0, Black, []Point{Pt(0, 0), Pt(1, 0)}),
		newLayer(1, Black, []Point{Pt(100, 0), Pt(101, 0)}),
		newLayer(2, Black, []Point{Pt(2, 0), Pt(3, 0)}),
		newLayer(3, Black, []Point{Pt(50, 0), Pt(51, 0)}),
	}
	got := Optimize(layers)
	diff(t, []int{0, 2, 3, 1}, layerIndices(got))
	if a, b := TravelLength(got), TravelLength(layers); a > b {
		t.Errorf("travel grew from %v to %v", b, a)
	}
	diff(t, 97.0, TravelLength(got))

	// The input isn't modified.
	diff(t, []int{0, 1, 2, 3}, layerIndices(layers))
}

func TestOptimizePlan(t *testing.T) {
	plan := assemble([]Layer{
		newLayer(0, Black, []Point{Pt(0, 0), Pt(1, 0)}),
		newLayer(1, Black, []Point{Pt(100, 0), Pt(101, 0)}),
		newLayer(2, Black, []Point{Pt(2, 0), Pt(3, 0)}),
	}, DefaultParams())
	got := OptimizePlan(plan)
	if err := got.Check(); err != nil {
		t.Fatal(err)
	}
	diff(t, []int{0, 2, 1}, layerIndices(got.Split()))
	diff(t, plan.Info.StitchCount, got.Info.StitchCount)
}

func TestOptimizePlanKeepsEndLast(t *testing.T) {
	cc := func(x float64) StitchPoint { return StitchPoint{X: x, Kind: ColorChangeKind} }
	st := func(x float64) StitchPoint { return StitchPoint{X: x, Kind: StitchKind} }
	plan := PlanFromPoints([]StitchPoint{
		cc(0), st(0), st(90),
		cc(200), st(200),
		cc(100), st(100), {X: 100, Kind: EndKind},
	})
	got := OptimizePlan(plan)
	want := []StitchPoint{
		cc(0), st(0), st(90),
		cc(100), st(100),
		cc(200), st(200), {X: 200, Kind: EndKind},
	}
	diff(t, want, got.Points)
	diff(t, plan.Info, got.Info)

	only := PlanFromPoints([]StitchPoint{{X: 5, Kind: EndKind}})
	diff(t, only.Points, OptimizePlan(only).Points)
}

func TestOptimizeSmall(t *testing.T) {
	if got := Optimize(nil); len(got) != 0 {
		t.Errorf("got %d layers", len(got))
	}
	two := randomLayers(rand.New(rand.NewPCG(3, 4)), 2)
	diff(t, layerIndices(two), layerIndices(Optimize(two)))
}

func layerIndices(layers []Layer) []int {
	out := make([]int, len(layers))
	for i, l := range layers {
		out[i] = l.Index
	}
	return out
}

package stitch

import (
	"errors"
	"iter"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestClosePathReturnsToSubpathStart(t *testing.T) {
	last := func(seq iter.Seq[PathSegment]) PathSegment {
		var el PathSegment
		for el = range seq {
		}
		return el
	}
	var p BezPath
	p.MoveTo(Pt(5.0, 5.0))
	p.LineTo(Pt(15.0, 15.0))
	p.MoveTo(Pt(10.0, 10.0))
	p.LineTo(Pt(15.0, 15.0))
	p.ClosePath()

	want := Line{Pt(15, 15), Pt(10, 10)}.Seg()
	diff(t, want, last(p.Segments()))
}

func TestClosePathOnStartEmitsNothing(t *testing.T) {
	var p BezPath
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(10, 0))
	p.LineTo(Pt(0, 0))
	p.ClosePath()
	if n := len(slices.Collect(p.Segments())); n != 2 {
		t.Errorf("got %d segments, want 2", n)
	}
}

func TestBezPathArclen(t *testing.T) {
	p := Rect{0, 0, 10, 20}.Path()
	diff(t, 60.0, p.Arclen(1e-9), cmpopts.EquateApprox(0, 1e-9))
	diff(t, Rect{0, 0, 10, 20}, p.BoundingBox())
}

func TestBezPathTransform(t *testing.T) {
	var p BezPath
	p.MoveTo(Pt(1, 1))
	p.QuadTo(Pt(2, 3), Pt(4, 1))
	p.CubicTo(Pt(5, 0), Pt(6, 0), Pt(7, 1))
	p.ClosePath()

	got := p.Transform(Translate(Vec(10, 20)))
	want := BezPath{
		MoveTo(Pt(11, 21)),
		QuadTo(Pt(12, 23), Pt(14, 21)),
		CubicTo(Pt(15, 20), Pt(16, 20), Pt(17, 21)),
		ClosePath(),
	}
	diff(t, want, got)
	diff(t, "CubicTo((15, 20), (16, 20), (17, 21))", got[2].String())
	diff(t, "PathElementKind(42)", PathElementKind(42).String())
}

func TestBezPathHasSegments(t *testing.T) {
	var p BezPath
	if p.HasSegments() {
		t.Error("empty path has segments")
	}
	p.MoveTo(Pt(1, 1))
	p.ClosePath()
	if p.HasSegments() {
		t.Error("path of MoveTo and ClosePath has segments")
	}
	p.LineTo(Pt(2, 2))
	if !p.HasSegments() {
		t.Error("path with LineTo has no segments")
	}
}

func TestBezPathValidate(t *testing.T) {
	tests := []struct {
		name string
		path BezPath
		ok   bool
	}{
		{"empty", nil, true},
		{"line", BezPath{MoveTo(Pt(0, 0)), LineTo(Pt(1, 1))}, true},
		{"no move", BezPath{LineTo(Pt(1, 1))}, false},
		{"leading close", BezPath{ClosePath()}, false},
		{"nan", BezPath{MoveTo(Pt(0, 0)), LineTo(Pt(math.NaN(), 1))}, false},
		{"inf", BezPath{MoveTo(Pt(0, math.Inf(-1)))}, false},
		{"bad kind", BezPath{MoveTo(Pt(0, 0)), {Kind: 42}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.path.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if !tt.ok && !errors.Is(err, ErrMalformedInput) {
				t.Fatalf("got %v, want a malformed input error", err)
			}
		})
	}
}

func TestPathSegmentEndpoints(t *testing.T) {
	segs := []PathSegment{
		Line{Pt(1, 2), Pt(3, 4)}.Seg(),
		QuadBez{Pt(1, 2), Pt(5, 5), Pt(3, 4)}.Seg(),
		CubicBez{Pt(1, 2), Pt(5, 5), Pt(6, 6), Pt(3, 4)}.Seg(),
	}
	for _, seg := range segs {
		diff(t, Pt(1, 2), seg.Start())
		diff(t, Pt(3, 4), seg.End())
		assertNear(t, seg.Eval(0), seg.Start(), 1e-12)
		assertNear(t, seg.Eval(1), seg.End(), 1e-12)
	}
}

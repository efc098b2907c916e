package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/stitch"
)

func assertPoint(t *testing.T, want, got stitch.Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y of %v", got)
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		in   string
		p    stitch.Point
		want stitch.Point
	}{
		{"translate(10 20)", pt(1, 1), pt(11, 21)},
		{"translate(10)", pt(1, 1), pt(11, 1)},
		{"scale(2,3)", pt(1, 1), pt(2, 3)},
		{"scale(2)", pt(1, 1), pt(2, 2)},
		// The rightmost function applies first.
		{"translate(10) scale(2)", pt(1, 1), pt(12, 2)},
		{"scale(2), translate(10)", pt(1, 1), pt(22, 2)},
		{"rotate(90)", pt(1, 0), pt(0, 1)},
		{"rotate(90 10 10)", pt(20, 10), pt(10, 20)},
		{"matrix(1 0 0 1 5 6)", pt(1, 1), pt(6, 7)},
		{"skewX(45)", pt(0, 10), pt(10, 10)},
		{"skewY(45)", pt(10, 0), pt(10, 10)},
		{"", pt(3, 4), pt(3, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			aff, err := ParseTransform(tt.in)
			require.NoError(t, err)
			assertPoint(t, tt.want, tt.p.Transform(aff))
		})
	}
}

func TestParseTransformErrors(t *testing.T) {
	for _, in := range []string{
		"rotate(1 2)",
		"matrix(1 2 3)",
		"foo(1)",
		"translate(1",
		"scale(a)",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTransform(in)
			assert.ErrorIs(t, err, stitch.ErrMalformedInput)
		})
	}
}

func TestViewBoxTransform(t *testing.T) {
	vb := stitch.NewRectFromPoints(pt(0, 0), pt(10, 10))
	aff := viewBoxTransform(vb, 100, 50)
	assertPoint(t, pt(25, 0), pt(0, 0).Transform(aff))
	assertPoint(t, pt(75, 50), pt(10, 10).Transform(aff))

	vb = stitch.NewRectFromPoints(pt(-5, -5), pt(5, 5))
	aff = viewBoxTransform(vb, 20, 20)
	assertPoint(t, pt(10, 10), pt(0, 0).Transform(aff))

	assert.Equal(t, stitch.Identity, viewBoxTransform(stitch.Rect{}, 20, 20))
	assert.Equal(t, stitch.Identity, viewBoxTransform(vb, 0, 20))
}

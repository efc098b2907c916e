package svg

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/stitch"
)

const testDocument = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="100mm" height="50mm" viewBox="0 0 200 100">
  <defs><path d="M0 0 L1 1"/></defs>
  <title>test</title>
  <g stroke="red" transform="translate(10 10)">
    <path d="M0 0 L10 0"/>
    <line x1="0" y1="0" x2="0" y2="5" stroke="blue"/>
    <g style="display:none"><circle cx="0" cy="0" r="5"/></g>
  </g>
  <polygon points="0,0 10,0 10,10" fill="#00ff00"/>
  <polyline points="0,0 1,1"/>
  <rect x="0" y="0" width="10" height="20"/>
  <rect width="0" height="5"/>
  <circle cx="50" cy="50" r="10" fill="none" stroke="currentColor" color="navy"/>
  <ellipse cx="0" cy="0" rx="4" ry="2"/>
  <text>ignored</text>
</svg>`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(testDocument))
	require.NoError(t, err)

	assert.InDelta(t, 100*96/25.4, doc.Width, 1e-9)
	assert.InDelta(t, 50*96/25.4, doc.Height, 1e-9)
	assert.Equal(t, stitch.NewRectFromPoints(pt(0, 0), pt(200, 100)), doc.ViewBox)
	assert.Equal(t, stitch.Sz(doc.Width, doc.Height), doc.Size())
	assert.Equal(t, map[string]int{"defs": 1, "title": 1, "g": 1, "rect": 1, "text": 1}, doc.Skipped)

	require.Len(t, doc.Paths, 7)
	red := &stitch.RGB{R: 0xff}
	blue := &stitch.RGB{B: 0xff}
	green := &stitch.RGB{G: 0xff}
	navy := &stitch.RGB{B: 0x80}

	path := doc.Paths[0]
	assert.Equal(t, stitch.BezPath{stitch.MoveTo(pt(10, 10)), stitch.LineTo(pt(20, 10))}, path.Path)
	assert.Equal(t, red, path.Stroke)
	assert.Nil(t, path.Fill)

	line := doc.Paths[1]
	assert.Equal(t, stitch.BezPath{stitch.MoveTo(pt(10, 10)), stitch.LineTo(pt(10, 15))}, line.Path)
	assert.Equal(t, blue, line.Stroke)

	polygon := doc.Paths[2]
	assert.Equal(t, stitch.BezPath{
		stitch.MoveTo(pt(0, 0)),
		stitch.LineTo(pt(10, 0)),
		stitch.LineTo(pt(10, 10)),
		stitch.ClosePath(),
	}, polygon.Path)
	assert.Nil(t, polygon.Stroke)
	assert.Equal(t, green, polygon.Fill)
	assert.Equal(t, *green, polygon.Color())

	polyline := doc.Paths[3]
	assert.Len(t, polyline.Path, 2)
	assert.Equal(t, stitch.Black, polyline.Color())

	rect := doc.Paths[4]
	assert.Equal(t, stitch.NewRectFromPoints(pt(0, 0), pt(10, 20)).Path(), rect.Path)

	circle := doc.Paths[5]
	assert.Equal(t, navy, circle.Stroke)
	assert.Nil(t, circle.Fill)
	bbox := circle.Path.BoundingBox()
	assert.InDelta(t, 40, bbox.X0, 1e-2)
	assert.InDelta(t, 60, bbox.X1, 1e-2)
	assert.InDelta(t, 2*math.Pi*10, circle.Path.Arclen(1e-6), 5e-2)
	assert.Equal(t, stitch.ClosePathKind, circle.Path[len(circle.Path)-1].Kind)

	ellipse := doc.Paths[6]
	bbox = ellipse.Path.BoundingBox()
	assert.InDelta(t, 8, bbox.Width(), 1e-2)
	assert.InDelta(t, 4, bbox.Height(), 1e-2)
}

func TestRoundedRect(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<svg><rect width="20" height="10" rx="2"/><rect width="4" height="4" ry="10"/></svg>`))
	require.NoError(t, err)
	require.Len(t, doc.Paths, 2)

	p := doc.Paths[0].Path
	assert.Equal(t, stitch.MoveTo(pt(2, 0)), p[0])
	assert.Equal(t, stitch.ClosePathKind, p[len(p)-1].Kind)
	bbox := p.BoundingBox()
	assert.InDelta(t, 0, bbox.X0, 1e-9)
	assert.InDelta(t, 20, bbox.X1, 1e-9)
	assert.InDelta(t, 0, bbox.Y0, 1e-9)
	assert.InDelta(t, 10, bbox.Y1, 1e-9)
	assert.InDelta(t, 44+2*math.Pi*2, p.Arclen(1e-6), 1e-2)

	// Radii are clamped to half the size, turning the rect into a circle.
	p = doc.Paths[1].Path
	assert.InDelta(t, 2*math.Pi*2, p.Arclen(1e-6), 1e-2)
}

func TestReaderApplyViewBox(t *testing.T) {
	const src = `<svg width="20" height="10" viewBox="0 0 2 1"><line x1="0" y1="0" x2="2" y2="1"/></svg>`

	doc, err := Reader{}.Read(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, doc.Paths, 1)
	assert.Equal(t, stitch.BezPath{stitch.MoveTo(pt(0, 0)), stitch.LineTo(pt(2, 1))}, doc.Paths[0].Path)

	doc, err = Reader{ApplyViewBox: true}.Read(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, doc.Paths, 1)
	end, ok := doc.Paths[0].Path[1].EndPoint()
	require.True(t, ok)
	assertPoint(t, pt(20, 10), end)
}

func TestReaderSizeFromViewBox(t *testing.T) {
	doc, err := ParseBytes([]byte(`<svg viewBox="0 0 30 40" width="50%"/>`))
	require.NoError(t, err)
	assert.Equal(t, 30.0, doc.Width)
	assert.Equal(t, 40.0, doc.Height)
	assert.Empty(t, doc.Paths)
}

func TestSizeFromDrawing(t *testing.T) {
	doc, err := ParseBytes([]byte(`<svg><line x1="5" y1="5" x2="20" y2="8"/><circle cx="50" cy="50" r="10"/></svg>`))
	require.NoError(t, err)
	assert.Zero(t, doc.Width)
	assert.Zero(t, doc.Height)
	size := doc.Size()
	assert.InDelta(t, 60, size.Width, DefaultTolerance)
	assert.InDelta(t, 60, size.Height, DefaultTolerance)

	empty, err := ParseBytes([]byte(`<svg/>`))
	require.NoError(t, err)
	assert.Equal(t, stitch.Size{}, empty.Size())
}

func TestReaderCharset(t *testing.T) {
	src := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<svg><title>caf\xe9</title><line x1=\"0\" y1=\"0\" x2=\"1\" y2=\"0\"/></svg>"
	doc, err := ParseBytes([]byte(src))
	require.NoError(t, err)
	assert.Len(t, doc.Paths, 1)

	_, err = ParseBytes([]byte(`<?xml version="1.0" encoding="x-no-such-charset"?><svg/>`))
	assert.ErrorIs(t, err, stitch.ErrMalformedInput)
}

func TestReaderErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"not svg", `<html><body/></html>`},
		{"empty", ``},
		{"bad path", `<svg><path d="L1 1"/></svg>`},
		{"bad points", `<svg><polyline points="1 2 3"/></svg>`},
		{"bad transform", `<svg><g transform="spin(3)"><path d="M0 0 L1 1"/></g></svg>`},
		{"bad length", `<svg><circle r="2em"/></svg>`},
		{"bad viewBox", `<svg viewBox="0 0 10"/>`},
		{"unclosed", `<svg><g></svg>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, stitch.ErrMalformedInput)
		})
	}

	t.Run("too many elements", func(t *testing.T) {
		src := `<svg><line x2="1"/><line x2="2"/></svg>`
		_, err := Reader{MaxElements: 1}.Read(strings.NewReader(src))
		assert.ErrorIs(t, err, stitch.ErrMalformedInput)

		doc, err := Reader{MaxElements: 2}.Read(strings.NewReader(src))
		require.NoError(t, err)
		assert.Len(t, doc.Paths, 2)
	})
}

package machine

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/stitch"
)

func TestDSTRecordEncoding(t *testing.T) {
	tests := []struct {
		rec  dstRecord
		want [3]byte
	}{
		{dstRecord{0, 0, dstStitch}, [3]byte{0x00, 0x00, 0x03}},
		{dstRecord{1, 0, dstStitch}, [3]byte{0x01, 0x00, 0x03}},
		{dstRecord{-1, 0, dstStitch}, [3]byte{0x02, 0x00, 0x03}},
		{dstRecord{0, 1, dstStitch}, [3]byte{0x80, 0x00, 0x03}},
		{dstRecord{0, -1, dstStitch}, [3]byte{0x40, 0x00, 0x03}},
		{dstRecord{121, 0, dstStitch}, [3]byte{0x05, 0x05, 0x07}},
		{dstRecord{0, -121, dstJump}, [3]byte{0x50, 0x50, 0x93}},
		{dstRecord{0, 0, dstColorChange}, [3]byte{0x00, 0x00, 0xC3}},
		{dstRecord{5, 5, dstEnd}, [3]byte{0x00, 0x00, 0xF3}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.rec.encode(), "%+v", tt.rec)
	}
}

func TestDSTRecordRoundTrip(t *testing.T) {
	for _, cmd := range []dstCommand{dstStitch, dstJump, dstColorChange} {
		for dx := -dstMaxMove; dx <= dstMaxMove; dx++ {
			for dy := -dstMaxMove; dy <= dstMaxMove; dy++ {
				rec := dstRecord{dx, dy, cmd}
				b := rec.encode()
				if got := decodeDSTRecord(b[:]); got != rec {
					t.Fatalf("decode(encode(%+v)) = %+v", rec, got)
				}
			}
		}
	}
	assert.Panics(t, func() { dstRecord{122, 0, dstStitch}.encode() })
}

func encodeDST(t *testing.T, d *DST, pts []stitch.StitchPoint) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, d.Encode(&buf, stitch.PlanFromPoints(pts)))
	return buf.Bytes()
}

func TestDSTHeader(t *testing.T) {
	d := NewDST(0.1, "flower\tpattern with a long name")
	data := encodeDST(t, d, []stitch.StitchPoint{
		sp(50, 50, stitch.StitchKind),
		sp(60, 50, stitch.StitchKind),
		sp(60, 70, stitch.StitchKind),
		sp(40, 30, stitch.StitchKind),
	})
	require.Len(t, data, dstHeaderSize+5*3)

	header := string(data[:dstHeaderSize])
	for _, field := range []string{
		"LA:flower_pattern w\r",
		"ST:      4\r",
		"CO:  0\r",
		"+X:   10\r",
		"-X:   10\r",
		"+Y:   20\r",
		"-Y:   20\r",
		"AX:-   10\r",
		"AY:+   20\r",
		"MX:+    0\r",
		"PD:******\r\x1a",
	} {
		assert.Contains(t, header, field)
	}
	assert.True(t, strings.HasPrefix(header, "LA:"))
	assert.True(t, strings.HasSuffix(header, "   "))
	assert.Equal(t, []byte{0x00, 0x00, 0xF3}, data[len(data)-3:])
}

func TestDSTRoundTrip(t *testing.T) {
	d := NewDST(0.1, "test")
	data := encodeDST(t, d, []stitch.StitchPoint{
		sp(5, 5, stitch.StitchKind),
		sp(15, 5, stitch.StitchKind),
		sp(15, -5, stitch.StitchKind),
	})
	got, err := d.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []stitch.StitchPoint{
		sp(0, 0, stitch.StitchKind),
		sp(10, 0, stitch.StitchKind),
		sp(10, -10, stitch.StitchKind),
		sp(10, -10, stitch.EndKind),
	}, got.Points)
	assert.Equal(t, 3, got.Info.StitchCount)
}

func TestDSTLongMoves(t *testing.T) {
	d := NewDST(0.1, "")
	data := encodeDST(t, d, []stitch.StitchPoint{
		sp(0, 0, stitch.StitchKind),
		sp(300, 0, stitch.JumpKind),
		sp(300, 0, stitch.StitchKind),
		sp(300, 250, stitch.StitchKind),
	})
	got, err := d.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []stitch.StitchPoint{
		sp(0, 0, stitch.StitchKind),
		sp(100, 0, stitch.JumpKind),
		sp(200, 0, stitch.JumpKind),
		sp(300, 0, stitch.JumpKind),
		sp(300, 0, stitch.StitchKind),
		sp(300, 83, stitch.StitchKind),
		sp(300, 166, stitch.StitchKind),
		sp(300, 250, stitch.StitchKind),
		sp(300, 250, stitch.EndKind),
	}, got.Points)
}

func TestDSTCommands(t *testing.T) {
	d := NewDST(0.1, "")
	red := stitch.RGB{R: 0xff}
	data := encodeDST(t, d, []stitch.StitchPoint{
		sp(0, 0, stitch.StitchKind),
		sp(10, 0, stitch.StitchKind),
		sp(10, 0, stitch.TrimKind),
		sp(50, 0, stitch.JumpKind),
		{X: 50, Y: 0, Kind: stitch.ColorChangeKind, Color: &red},
		sp(50, 0, stitch.StitchKind),
		sp(50, 0, stitch.StopKind),
		sp(60, 0, stitch.EndKind),
	})
	assert.Contains(t, string(data[:dstHeaderSize]), "CO:  2\r")
	assert.Contains(t, string(data[:dstHeaderSize]), "ST:     10\r")

	got, err := d.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []stitch.StitchPoint{
		sp(0, 0, stitch.StitchKind),
		sp(10, 0, stitch.StitchKind),
		sp(10, 0, stitch.TrimKind),
		sp(50, 0, stitch.JumpKind),
		sp(50, 0, stitch.ColorChangeKind),
		sp(50, 0, stitch.StitchKind),
		// Stops come back as colour changes, and a moving End is preceded
		// by a jump.
		sp(50, 0, stitch.ColorChangeKind),
		sp(60, 0, stitch.JumpKind),
		sp(60, 0, stitch.EndKind),
	}, got.Points)
	require.NotNil(t, got.Info.Counts)
	assert.Equal(t, stitch.Counts{JumpCount: 2, TrimCount: 1, ColorChanges: 2}, *got.Info.Counts)
}

func TestDSTScale(t *testing.T) {
	// 0.26 mm per pixel: 10 px is 2.6 mm, or 26 units.
	d := NewDST(0.26, "")
	data := encodeDST(t, d, []stitch.StitchPoint{
		sp(0, 0, stitch.StitchKind),
		sp(10, 0, stitch.StitchKind),
		sp(10, 3, stitch.StitchKind),
	})
	got, err := d.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, got.Points, 4)
	assert.InDelta(t, 10, got.Points[1].X, 1e-9)
	// 3 px is 7.8 units, rounded to 8.
	assert.InDelta(t, 8/2.6, got.Points[2].Y, 1e-9)

	// At 0.1 mm per pixel one pixel is one unit.
	d1 := d.WithScale(0.1).(*DST)
	assert.Equal(t, 0.1, d1.MMPerPx)
	assert.Equal(t, 0.26, d.MMPerPx)
	data = encodeDST(t, d1, []stitch.StitchPoint{sp(0, 0, stitch.StitchKind), sp(3, 0, stitch.StitchKind)})
	assert.Equal(t, []byte{0x00, 0x01, 0x03}, data[dstHeaderSize+3:dstHeaderSize+6])
}

func TestDSTErrors(t *testing.T) {
	var buf bytes.Buffer
	err := NewDST(0, "").Encode(&buf, stitch.Plan{})
	assert.ErrorIs(t, err, stitch.ErrInvalidParameter)
	_, err = NewDST(math.NaN(), "").Decode(&buf)
	assert.ErrorIs(t, err, stitch.ErrInvalidParameter)

	d := NewDST(0.26, "")
	err = d.Encode(&buf, stitch.PlanFromPoints([]stitch.StitchPoint{
		sp(0, 0, stitch.StitchKind),
		sp(math.NaN(), 0, stitch.StitchKind),
	}))
	assert.ErrorIs(t, err, stitch.ErrMalformedInput)

	err = d.Encode(&buf, stitch.PlanFromPoints([]stitch.StitchPoint{
		sp(0, 0, stitch.EndKind),
		sp(1, 0, stitch.StitchKind),
	}))
	assert.ErrorIs(t, err, stitch.ErrMalformedInput)

	// 1e6 px at 0.26 mm/px is 260 m, beyond what the header can describe.
	err = d.Encode(&buf, stitch.PlanFromPoints([]stitch.StitchPoint{
		sp(0, 0, stitch.StitchKind),
		sp(1e6, 0, stitch.JumpKind),
	}))
	assert.ErrorIs(t, err, stitch.ErrMalformedInput)
	assert.Zero(t, buf.Len())

	valid := encodeDST(t, d, []stitch.StitchPoint{sp(0, 0, stitch.StitchKind), sp(1, 1, stitch.StitchKind)})
	for name, data := range map[string][]byte{
		"short header": valid[:100],
		"missing end":  valid[:len(valid)-3],
		"partial end":  valid[:len(valid)-1],
	} {
		t.Run(name, func(t *testing.T) {
			_, err := d.Decode(bytes.NewReader(data))
			assert.ErrorIs(t, err, stitch.ErrMalformedInput)
		})
	}

	// Padding after the End record is ignored.
	got, err := d.Decode(bytes.NewReader(append(valid, 0x1a, 0x00)))
	require.NoError(t, err)
	assert.Len(t, got.Points, 3)
}

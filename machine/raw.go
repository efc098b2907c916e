package machine

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"honnef.co/go/stitch"
)

// Command flags of raw records. A decoded record takes the kind of its first
// set flag in this order; a record without flags is a stitch.
const (
	RawJump        = 0x01
	RawTrim        = 0x02
	RawColorChange = 0x04
	RawStop        = 0x08
	RawEnd         = 0x10
)

const (
	// RawRecordSize is the size of a raw record: little endian int32 dx and
	// dy followed by a flag byte.
	RawRecordSize = 9
	// RawUnitsPerPx is the resolution of raw deltas.
	RawUnitsPerPx = 1000
)

// Raw is the plain record container: one fixed-size record per plan point,
// holding the move from the previous point and the point's command, and a
// closing End record. It has no header.
//
// Positions are quantized to 1/1000 px before deltas are taken, so the error
// of decoded coordinates doesn't grow along the plan.
type Raw struct{}

var _ Codec = Raw{}

func (Raw) Name() string         { return "raw" }
func (Raw) Extensions() []string { return []string{".stitches", ".raw"} }

func rawFlag(k stitch.Kind) byte {
	switch k {
	case stitch.StitchKind:
		return 0
	case stitch.JumpKind:
		return RawJump
	case stitch.TrimKind:
		return RawTrim
	case stitch.ColorChangeKind:
		return RawColorChange
	case stitch.StopKind:
		return RawStop
	case stitch.EndKind:
		return RawEnd
	default:
		panic(fmt.Sprintf("unhandled stitch kind %v", k))
	}
}

func rawKind(flags byte) stitch.Kind {
	switch {
	case flags&RawJump != 0:
		return stitch.JumpKind
	case flags&RawTrim != 0:
		return stitch.TrimKind
	case flags&RawColorChange != 0:
		return stitch.ColorChangeKind
	case flags&RawStop != 0:
		return stitch.StopKind
	case flags&RawEnd != 0:
		return stitch.EndKind
	default:
		return stitch.StitchKind
	}
}

// quantize converts a pixel coordinate to raw units.
func quantize(v float64) (int64, error) {
	q := math.Round(v * RawUnitsPerPx)
	if math.IsNaN(q) || math.Abs(q) > 1<<52 {
		return 0, fmt.Errorf("coordinate %g out of range", v)
	}
	return int64(q), nil
}

func appendRawRecord(b []byte, dx, dy int32, flags byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, uint32(dx))
	b = binary.LittleEndian.AppendUint32(b, uint32(dy))
	return append(b, flags)
}

// Encode writes one record per point of p and an End record, unless p already
// ends with one. An End point anywhere else is an error.
func (Raw) Encode(w io.Writer, p stitch.Plan) error {
	const op = "encode raw"
	pts := p.Points
	if err := checkEnd(op, pts); err != nil {
		return err
	}
	o := origin(pts)
	buf := make([]byte, 0, (len(pts)+1)*RawRecordSize)
	var prevX, prevY int64
	for i, pt := range pts {
		x, err := quantize(pt.X - o.X)
		if err != nil {
			return stitch.Malformed(op, fmt.Errorf("point %d: %w", i, err))
		}
		y, err := quantize(pt.Y - o.Y)
		if err != nil {
			return stitch.Malformed(op, fmt.Errorf("point %d: %w", i, err))
		}
		dx, dy := x-prevX, y-prevY
		if dx != int64(int32(dx)) || dy != int64(int32(dy)) {
			return stitch.Malformed(op, fmt.Errorf("point %d: move of (%g, %g) px is too long",
				i, float64(dx)/RawUnitsPerPx, float64(dy)/RawUnitsPerPx))
		}
		buf = appendRawRecord(buf, int32(dx), int32(dy), rawFlag(pt.Kind))
		prevX, prevY = x, y
	}
	if !endsWithEnd(pts) {
		buf = appendRawRecord(buf, 0, 0, RawEnd)
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("machine: write raw: %w", err)
	}
	return nil
}

// Decode reads records up to and including the End record. Truncated records,
// a missing End record and data following it are errors.
func (Raw) Decode(r io.Reader) (stitch.Plan, error) {
	const op = "decode raw"
	data, err := io.ReadAll(r)
	if err != nil {
		return stitch.Plan{}, fmt.Errorf("machine: read raw: %w", err)
	}
	if len(data)%RawRecordSize != 0 {
		return stitch.Plan{}, stitch.Malformed(op, fmt.Errorf("%d bytes is not a whole number of %d-byte records", len(data), RawRecordSize))
	}
	pts := make([]stitch.StitchPoint, 0, len(data)/RawRecordSize)
	var x, y int64
	for off := 0; off < len(data); off += RawRecordSize {
		rec := data[off : off+RawRecordSize]
		x += int64(int32(binary.LittleEndian.Uint32(rec[0:4])))
		y += int64(int32(binary.LittleEndian.Uint32(rec[4:8])))
		kind := rawKind(rec[8])
		pts = append(pts, stitch.StitchPoint{
			X:    float64(x) / RawUnitsPerPx,
			Y:    float64(y) / RawUnitsPerPx,
			Kind: kind,
		})
		if kind == stitch.EndKind {
			if rest := len(data) - off - RawRecordSize; rest > 0 {
				return stitch.Plan{}, stitch.Malformed(op, fmt.Errorf("%d bytes after end record", rest))
			}
			return stitch.PlanFromPoints(pts), nil
		}
	}
	return stitch.Plan{}, stitch.Malformed(op, fmt.Errorf("missing end record"))
}

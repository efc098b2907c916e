package machine

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"honnef.co/go/stitch"
)

const (
	dstHeaderSize = 512
	// dstMaxMove is the longest move a single record can hold, per axis.
	dstMaxMove = 121
	// dstUnitsPerMM is the resolution of DST coordinates: 0.1 mm.
	dstUnitsPerMM = 10
	dstLabelSize  = 16
)

// DST is the Tajima DST format: a 512 byte text header followed by 3 byte
// records, each a move of up to 12.1 mm per axis in balanced ternary plus a
// command. DST has no trim or stop command and no colours:
//
//   - Trims are written as three short jumps that return to where they
//     started, and read back as a Trim.
//   - Stops are written as colour changes.
//   - Longer moves are split into several records; a Trim, ColorChange, Stop or
//     End that moves is preceded by jumps to its position.
//
// DST's y axis points up; plans are flipped on the way in and out.
type DST struct {
	// MMPerPx is the size of a plan pixel in millimetres.
	MMPerPx float64
	// Label is written into the header, truncated to 16 characters.
	Label string
}

var _ Scaler = (*DST)(nil)

// NewDST returns a DST codec for plans at the given scale.
func NewDST(mmPerPx float64, label string) *DST {
	return &DST{MMPerPx: mmPerPx, Label: label}
}

// WithScale returns a copy of d for plans at the given scale.
func (d *DST) WithScale(mmPerPx float64) Codec {
	d2 := *d
	d2.MMPerPx = mmPerPx
	return &d2
}

func (*DST) Name() string         { return "dst" }
func (*DST) Extensions() []string { return []string{".dst"} }

func (d *DST) unitsPerPx(op string) (float64, error) {
	if !(d.MMPerPx > 0) || math.IsInf(d.MMPerPx, 0) {
		return 0, stitch.InvalidParameter(op, fmt.Errorf("mm_per_px must be positive and finite, got %g", d.MMPerPx))
	}
	return d.MMPerPx * dstUnitsPerMM, nil
}

type dstCommand uint8

const (
	dstStitch dstCommand = iota
	dstJump
	dstColorChange
	dstEnd
)

type dstRecord struct {
	dx, dy int
	cmd    dstCommand
}

// A dstDigit is one balanced ternary digit of a coordinate: the byte and bits
// that add or subtract its weight.
type dstDigit struct {
	idx      int
	pos, neg byte
	weight   int
}

var (
	dstXDigits = [...]dstDigit{
		{2, 0x04, 0x08, 81},
		{1, 0x04, 0x08, 27},
		{0, 0x04, 0x08, 9},
		{1, 0x01, 0x02, 3},
		{0, 0x01, 0x02, 1},
	}
	dstYDigits = [...]dstDigit{
		{2, 0x20, 0x10, 81},
		{1, 0x20, 0x10, 27},
		{0, 0x20, 0x10, 9},
		{1, 0x80, 0x40, 3},
		{0, 0x80, 0x40, 1},
	}
)

// encode returns the record's bytes. Moves must be within ±dstMaxMove.
func (rec dstRecord) encode() [3]byte {
	var b [3]byte
	switch rec.cmd {
	case dstStitch:
		b[2] = 0x03
	case dstJump:
		b[2] = 0x83
	case dstColorChange:
		b[2] = 0xC3
	case dstEnd:
		return [3]byte{0x00, 0x00, 0xF3}
	}
	ternary := func(v int, digits []dstDigit) {
		for _, d := range digits {
			switch half := d.weight / 2; {
			case v > half:
				b[d.idx] |= d.pos
				v -= d.weight
			case v < -half:
				b[d.idx] |= d.neg
				v += d.weight
			}
		}
		if v != 0 {
			panic(fmt.Sprintf("DST move out of range by %d", v))
		}
	}
	ternary(rec.dx, dstXDigits[:])
	ternary(rec.dy, dstYDigits[:])
	return b
}

func decodeDSTRecord(b []byte) dstRecord {
	var rec dstRecord
	switch {
	case b[2]&0xF3 == 0xF3:
		rec.cmd = dstEnd
		return rec
	case b[2]&0xC3 == 0xC3:
		rec.cmd = dstColorChange
	case b[2]&0x83 == 0x83:
		rec.cmd = dstJump
	default:
		rec.cmd = dstStitch
	}
	value := func(digits []dstDigit) int {
		var v int
		for _, d := range digits {
			if b[d.idx]&d.pos != 0 {
				v += d.weight
			}
			if b[d.idx]&d.neg != 0 {
				v -= d.weight
			}
		}
		return v
	}
	rec.dx = value(dstXDigits[:])
	rec.dy = value(dstYDigits[:])
	return rec
}

// The trim idiom: three jumps that end where they started.
var dstTrim = [3]dstRecord{
	{2, 2, dstJump},
	{-4, -4, dstJump},
	{2, 2, dstJump},
}

func isDSTTrim(recs []dstRecord) bool {
	return len(recs) >= len(dstTrim) && [3]dstRecord(recs[:3]) == dstTrim
}

// dstEncoder accumulates records and the statistics the header needs.
type dstEncoder struct {
	buf    bytes.Buffer
	x, y   int
	count  int
	colors int
	// Extents of all positions, in DST units.
	minX, maxX, minY, maxY int
}

func (e *dstEncoder) emit(rec dstRecord) {
	b := rec.encode()
	e.buf.Write(b[:])
	if rec.cmd == dstEnd {
		return
	}
	e.count++
	if rec.cmd == dstColorChange {
		e.colors++
	}
	e.x += rec.dx
	e.y += rec.dy
	e.minX, e.maxX = min(e.minX, e.x), max(e.maxX, e.x)
	e.minY, e.maxY = min(e.minY, e.y), max(e.maxY, e.y)
}

// moveTo emits as many records of cmd as needed to reach (x, y), in equal
// steps. A jump to the current position emits nothing; a stitch emits a
// single record.
func (e *dstEncoder) moveTo(x, y int, cmd dstCommand) {
	dx, dy := x-e.x, y-e.y
	if cmd == dstJump && dx == 0 && dy == 0 {
		return
	}
	longest := max(abs(dx), abs(dy))
	steps := max(1, (longest+dstMaxMove-1)/dstMaxMove)
	var px, py int
	for i := 1; i <= steps; i++ {
		sx, sy := dx*i/steps, dy*i/steps
		e.emit(dstRecord{sx - px, sy - py, cmd})
		px, py = sx, sy
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Encode writes p as a DST file. Points are rounded to 0.1 mm.
func (d *DST) Encode(w io.Writer, p stitch.Plan) error {
	const op = "encode dst"
	scale, err := d.unitsPerPx(op)
	if err != nil {
		return err
	}
	pts := p.Points
	if err := checkEnd(op, pts); err != nil {
		return err
	}
	o := origin(pts)

	var e dstEncoder
	for i, pt := range pts {
		fx := math.Round((pt.X - o.X) * scale)
		fy := math.Round(-(pt.Y - o.Y) * scale)
		if math.IsNaN(fx) || math.IsNaN(fy) || math.Abs(fx) > 1<<30 || math.Abs(fy) > 1<<30 {
			return stitch.Malformed(op, fmt.Errorf("point %d: position (%g, %g) out of range", i, pt.X, pt.Y))
		}
		x, y := int(fx), int(fy)
		switch pt.Kind {
		case stitch.StitchKind:
			e.moveTo(x, y, dstStitch)
		case stitch.JumpKind:
			e.moveTo(x, y, dstJump)
		case stitch.TrimKind:
			e.moveTo(x, y, dstJump)
			for _, rec := range dstTrim {
				e.emit(rec)
			}
		case stitch.ColorChangeKind, stitch.StopKind:
			e.moveTo(x, y, dstJump)
			e.emit(dstRecord{cmd: dstColorChange})
		case stitch.EndKind:
			e.moveTo(x, y, dstJump)
		}
	}
	e.emit(dstRecord{cmd: dstEnd})

	header, err := d.header(&e)
	if err != nil {
		return stitch.Malformed(op, err)
	}
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("machine: write dst: %w", err)
	}
	if _, err := e.buf.WriteTo(w); err != nil {
		return fmt.Errorf("machine: write dst: %w", err)
	}
	return nil
}

func (d *DST) label() string {
	label := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return '_'
		}
		return r
	}, d.Label)
	if len(label) > dstLabelSize {
		label = label[:dstLabelSize]
	}
	return label
}

func (d *DST) header(e *dstEncoder) ([]byte, error) {
	const maxExtent = 99999
	for _, v := range []int{e.maxX, -e.minX, e.maxY, -e.minY} {
		if v > maxExtent {
			return nil, fmt.Errorf("design extends %.1f mm from its first point, more than a DST header can describe", float64(v)/dstUnitsPerMM)
		}
	}
	if e.count > 9_999_999 {
		return nil, fmt.Errorf("%d records are more than a DST header can describe", e.count)
	}
	signed := func(v int) string {
		if v < 0 {
			return fmt.Sprintf("-%5d", -v)
		}
		return fmt.Sprintf("+%5d", v)
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "LA:%-16s\r", d.label())
	fmt.Fprintf(&b, "ST:%7d\r", e.count)
	fmt.Fprintf(&b, "CO:%3d\r", e.colors)
	fmt.Fprintf(&b, "+X:%5d\r", e.maxX)
	fmt.Fprintf(&b, "-X:%5d\r", -e.minX)
	fmt.Fprintf(&b, "+Y:%5d\r", e.maxY)
	fmt.Fprintf(&b, "-Y:%5d\r", -e.minY)
	fmt.Fprintf(&b, "AX:%s\r", signed(e.x))
	fmt.Fprintf(&b, "AY:%s\r", signed(e.y))
	fmt.Fprintf(&b, "MX:%s\r", signed(0))
	fmt.Fprintf(&b, "MY:%s\r", signed(0))
	b.WriteString("PD:******\r")
	b.WriteByte(0x1A)
	b.Write(bytes.Repeat([]byte{' '}, dstHeaderSize-b.Len()))
	return b.Bytes(), nil
}

// Decode reads a DST file. The header is skipped; records are read up to the
// End record and anything after it is ignored.
func (d *DST) Decode(r io.Reader) (stitch.Plan, error) {
	const op = "decode dst"
	scale, err := d.unitsPerPx(op)
	if err != nil {
		return stitch.Plan{}, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return stitch.Plan{}, fmt.Errorf("machine: read dst: %w", err)
	}
	if len(data) < dstHeaderSize {
		return stitch.Plan{}, stitch.Malformed(op, fmt.Errorf("file of %d bytes is shorter than the header", len(data)))
	}
	body := data[dstHeaderSize:]

	var recs []dstRecord
	for off := 0; ; off += 3 {
		if off+3 > len(body) {
			return stitch.Plan{}, stitch.Malformed(op, fmt.Errorf("missing end record after %d records", len(recs)))
		}
		rec := decodeDSTRecord(body[off : off+3])
		recs = append(recs, rec)
		if rec.cmd == dstEnd {
			break
		}
	}

	pts := make([]stitch.StitchPoint, 0, len(recs))
	var x, y int
	at := func(k stitch.Kind) stitch.StitchPoint {
		return stitch.StitchPoint{X: float64(x) / scale, Y: float64(-y) / scale, Kind: k}
	}
	for i := 0; i < len(recs); i++ {
		rec := recs[i]
		if isDSTTrim(recs[i:]) {
			pts = append(pts, at(stitch.TrimKind))
			i += len(dstTrim) - 1
			continue
		}
		x += rec.dx
		y += rec.dy
		switch rec.cmd {
		case dstStitch:
			pts = append(pts, at(stitch.StitchKind))
		case dstJump:
			pts = append(pts, at(stitch.JumpKind))
		case dstColorChange:
			pts = append(pts, at(stitch.ColorChangeKind))
		case dstEnd:
			pts = append(pts, at(stitch.EndKind))
		}
	}
	return stitch.PlanFromPoints(pts), nil
}

package svg

import (
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2/strconv"

	"honnef.co/go/stitch"
)

// argCount is the number of arguments each path command takes.
var argCount = map[byte]int{
	'M': 2,
	'Z': 0,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
	'A': 7,
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f'
}

func skipCommaSpace(b []byte) int {
	i := 0
	for i < len(b) && (isSpace(b[i]) || b[i] == ',') {
		i++
	}
	return i
}

func startsNumber(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

// ParsePathData parses the d attribute of a path element. Elliptical arcs are
// converted to cubic Béziers within tolerance. Every subpath of the result
// starts with a MoveTo, including subpaths that implicitly start at the end of
// a closed one.
func ParsePathData(d string, tolerance float64) (stitch.BezPath, error) {
	b := []byte(d)
	i := skipCommaSpace(b)
	if i == len(b) {
		return nil, nil
	}
	if b[i] != 'M' && b[i] != 'm' {
		return nil, malformed("path data must start with a moveto, found %q", b[i])
	}

	var (
		path stitch.BezPath
		args [7]float64
		// cur is the current point, start the start of the current subpath.
		cur, start stitch.Point
		// ctrl is the last control point, for reflection by S and T.
		ctrl    stitch.Point
		prevCmd byte
		closed  bool
	)
	for {
		i += skipCommaSpace(b[i:])
		if i >= len(b) {
			break
		}

		cmd := prevCmd
		if prevCmd == 0 || prevCmd == 'z' || prevCmd == 'Z' || !startsNumber(b[i]) {
			cmd = b[i]
			i++
		}
		upper := cmd
		if 'a' <= cmd && cmd <= 'z' {
			upper -= 'a' - 'A'
		}
		n, ok := argCount[upper]
		if !ok {
			return nil, malformed("unknown path command %q at offset %d", cmd, i)
		}
		for j := range n {
			i += skipCommaSpace(b[i:])
			if upper == 'A' && (j == 3 || j == 4) {
				// Flags are a single digit and need no separator.
				if i >= len(b) || (b[i] != '0' && b[i] != '1') {
					return nil, malformed("arc flag must be 0 or 1 at offset %d", i)
				}
				args[j] = float64(b[i] - '0')
				i++
				continue
			}
			num, m := strconv.ParseFloat(b[i:])
			if m == 0 {
				return nil, malformed("command %q wants %d numbers, number %d missing at offset %d", cmd, n, j+1, i)
			}
			args[j] = num
			i += m
		}

		if closed && upper != 'M' {
			path.MoveTo(start)
		}
		closed = false

		rel := cmd != upper
		at := func(x, y float64) stitch.Point {
			if rel {
				return stitch.Pt(cur.X+x, cur.Y+y)
			}
			return stitch.Pt(x, y)
		}

		next := cmd
		switch upper {
		case 'M':
			cur = at(args[0], args[1])
			start = cur
			path.MoveTo(cur)
			// Further coordinate pairs are implicit linetos.
			if rel {
				next = 'l'
			} else {
				next = 'L'
			}
		case 'Z':
			path.ClosePath()
			cur = start
			closed = true
		case 'L':
			cur = at(args[0], args[1])
			path.LineTo(cur)
		case 'H':
			x := args[0]
			if rel {
				x += cur.X
			}
			cur = stitch.Pt(x, cur.Y)
			path.LineTo(cur)
		case 'V':
			y := args[0]
			if rel {
				y += cur.Y
			}
			cur = stitch.Pt(cur.X, y)
			path.LineTo(cur)
		case 'C':
			p1 := at(args[0], args[1])
			p2 := at(args[2], args[3])
			p3 := at(args[4], args[5])
			path.CubicTo(p1, p2, p3)
			ctrl, cur = p2, p3
		case 'S':
			p1 := cur
			if p := upperOf(prevCmd); p == 'C' || p == 'S' {
				p1 = reflect(ctrl, cur)
			}
			p2 := at(args[0], args[1])
			p3 := at(args[2], args[3])
			path.CubicTo(p1, p2, p3)
			ctrl, cur = p2, p3
		case 'Q':
			p1 := at(args[0], args[1])
			p2 := at(args[2], args[3])
			path.QuadTo(p1, p2)
			ctrl, cur = p1, p2
		case 'T':
			p1 := cur
			if p := upperOf(prevCmd); p == 'Q' || p == 'T' {
				p1 = reflect(ctrl, cur)
			}
			p2 := at(args[0], args[1])
			path.QuadTo(p1, p2)
			ctrl, cur = p1, p2
		case 'A':
			to := at(args[5], args[6])
			appendArc(&path, stitch.SVGArc{
				From:      cur,
				To:        to,
				Radii:     stitch.Vec(args[0], args[1]),
				XRotation: args[2] * (math.Pi / 180),
				LargeArc:  args[3] != 0,
				Sweep:     args[4] != 0,
			}, tolerance)
			cur = to
		}
		prevCmd = next
	}
	return path, nil
}

func upperOf(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// reflect returns the reflection of p about center.
func reflect(p, center stitch.Point) stitch.Point {
	return center.Translate(center.Sub(p))
}

// appendArc appends an SVG arc as cubics, or as a line if it is degenerate.
// The last cubic ends exactly on the arc's end point.
func appendArc(path *stitch.BezPath, arc stitch.SVGArc, tolerance float64) {
	a, ok := arc.Arc()
	if !ok {
		if arc.From != arc.To {
			path.LineTo(arc.To)
		}
		return
	}
	n := len(*path)
	for el := range a.Cubics(tolerance) {
		path.Push(el)
	}
	if len(*path) > n {
		(*path)[len(*path)-1].P2 = arc.To
	}
}

// ParsePoints parses the points attribute of polyline and polygon elements.
func ParsePoints(s string) ([]stitch.Point, error) {
	nums, err := parseNumbers(s)
	if err != nil {
		return nil, err
	}
	if len(nums)%2 != 0 {
		return nil, malformed("odd number of coordinates in points %q", s)
	}
	pts := make([]stitch.Point, len(nums)/2)
	for i := range pts {
		pts[i] = stitch.Pt(nums[2*i], nums[2*i+1])
	}
	return pts, nil
}

// parseNumbers parses a list of numbers separated by whitespace or commas.
func parseNumbers(s string) ([]float64, error) {
	b := []byte(s)
	var out []float64
	for i := skipCommaSpace(b); i < len(b); i += skipCommaSpace(b[i:]) {
		num, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return nil, malformed("invalid number at offset %d in %q", i, s)
		}
		out = append(out, num)
		i += n
	}
	return out, nil
}

func malformed(format string, args ...any) error {
	return stitch.Malformed("read svg", fmt.Errorf(format, args...))
}

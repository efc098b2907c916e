package svg

import (
	"math"
	"strings"

	"honnef.co/go/stitch"
)

// ParseTransform parses the value of a transform attribute: a list of
// matrix, translate, scale, rotate, skewX and skewY functions. The functions
// apply right to left, so the result maps a point the way nesting them as
// groups would.
func ParseTransform(s string) (stitch.Affine, error) {
	aff := stitch.Identity
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		end := strings.IndexByte(rest, ')')
		if open < 0 || end < open {
			return stitch.Identity, malformed("bad transform %q", s)
		}
		name := strings.TrimSpace(rest[:open])
		args, err := parseNumbers(rest[open+1 : end])
		if err != nil {
			return stitch.Identity, err
		}
		t, err := transformFunc(name, args)
		if err != nil {
			return stitch.Identity, err
		}
		aff = aff.Mul(t)
		rest = strings.TrimLeft(rest[end+1:], " \t\r\n,")
	}
	return aff, nil
}

func transformFunc(name string, args []float64) (stitch.Affine, error) {
	want := func(counts ...int) error {
		for _, n := range counts {
			if len(args) == n {
				return nil
			}
		}
		return malformed("%s takes %v arguments, got %d", name, counts, len(args))
	}
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	switch name {
	case "matrix":
		if err := want(6); err != nil {
			return stitch.Identity, err
		}
		return stitch.NewAffine([6]float64(args)), nil
	case "translate":
		if err := want(1, 2); err != nil {
			return stitch.Identity, err
		}
		v := stitch.Vec(args[0], 0)
		if len(args) == 2 {
			v.Y = args[1]
		}
		return stitch.Translate(v), nil
	case "scale":
		if err := want(1, 2); err != nil {
			return stitch.Identity, err
		}
		sx, sy := args[0], args[0]
		if len(args) == 2 {
			sy = args[1]
		}
		return stitch.Scale(sx, sy), nil
	case "rotate":
		if err := want(1, 3); err != nil {
			return stitch.Identity, err
		}
		if len(args) == 3 {
			return stitch.RotateAbout(rad(args[0]), stitch.Pt(args[1], args[2])), nil
		}
		return stitch.Rotate(rad(args[0])), nil
	case "skewX":
		if err := want(1); err != nil {
			return stitch.Identity, err
		}
		return stitch.Skew(math.Tan(rad(args[0])), 0), nil
	case "skewY":
		if err := want(1); err != nil {
			return stitch.Identity, err
		}
		return stitch.Skew(0, math.Tan(rad(args[0]))), nil
	default:
		return stitch.Identity, malformed("unknown transform function %q", name)
	}
}

// viewBoxTransform maps the viewBox onto the viewport of the given size,
// scaling uniformly and centring, as preserveAspectRatio="xMidYMid meet" does.
func viewBoxTransform(vb stitch.Rect, width, height float64) stitch.Affine {
	if vb.Width() <= 0 || vb.Height() <= 0 || width <= 0 || height <= 0 {
		return stitch.Identity
	}
	s := min(width/vb.Width(), height/vb.Height())
	tx := (width-vb.Width()*s)/2 - vb.X0*s
	ty := (height-vb.Height()*s)/2 - vb.Y0*s
	return stitch.Scale(s, s).ThenTranslate(stitch.Vec(tx, ty))
}

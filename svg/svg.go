// Package svg reads the drawable geometry of SVG documents as coloured Bézier
// paths.
//
// Supported are path, line, polyline, polygon, rect (including rounded
// corners), circle and ellipse elements, nested in any number of svg and g
// elements. Stroke, fill and color are inherited from ancestors, from either
// presentation attributes or style attributes, and transforms compose down the
// tree. Text, images, and anything inside defs, symbol, marker, pattern,
// clipPath and mask is not drawn and is skipped.
package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"honnef.co/go/stitch"
)

// DefaultTolerance is the default accuracy, in user units, with which arcs,
// circles and ellipses are converted to cubic Béziers.
const DefaultTolerance = 0.01

// DefaultMaxElements is the default bound on the number of drawable elements.
const DefaultMaxElements = 100_000

// Document is the drawable content of an SVG document.
type Document struct {
	// Width and Height are the size of the outermost svg element, in pixels,
	// from its width and height attributes or else its viewBox. They are zero
	// if neither is given.
	Width, Height float64
	// ViewBox is the viewBox of the outermost svg element, or the zero Rect.
	ViewBox stitch.Rect
	// Paths holds one path per drawable element, in document order.
	Paths []stitch.ColoredPath
	// Skipped counts ignored elements by name.
	Skipped map[string]int
}

// Size returns the document's canvas size. Without width, height or viewBox
// on the root, the canvas reaches from the origin to the far corner of the
// drawing's bounding box.
func (doc *Document) Size() stitch.Size {
	if doc.Width != 0 || doc.Height != 0 {
		return stitch.Sz(doc.Width, doc.Height)
	}
	var bbox stitch.Rect
	first := true
	for _, cp := range doc.Paths {
		if !cp.Path.HasSegments() {
			continue
		}
		if first {
			bbox, first = cp.Path.BoundingBox(), false
		} else {
			bbox = bbox.Union(cp.Path.BoundingBox())
		}
	}
	if first {
		return stitch.Size{}
	}
	return stitch.Sz(max(bbox.X1, 0), max(bbox.Y1, 0))
}

// Reader reads SVG documents. The zero value is ready to use.
type Reader struct {
	// Tolerance is the accuracy of arc conversion. Zero selects
	// DefaultTolerance.
	Tolerance float64
	// ApplyViewBox maps the viewBox of the outermost svg element onto its
	// width and height, so that paths are in pixels rather than user units.
	ApplyViewBox bool
	// MaxElements bounds the number of drawable elements. Zero selects
	// DefaultMaxElements.
	MaxElements int
}

// Parse reads an SVG document with the default Reader.
func Parse(r io.Reader) (*Document, error) {
	return Reader{}.Read(r)
}

// ParseBytes reads an SVG document from b with the default Reader.
func ParseBytes(b []byte) (*Document, error) {
	return Parse(bytes.NewReader(b))
}

// skippedContainers are elements whose content is not drawn in place.
var skippedContainers = map[string]bool{
	"defs":     true,
	"symbol":   true,
	"marker":   true,
	"pattern":  true,
	"clipPath": true,
	"mask":     true,
	"style":    true,
	"script":   true,
	"text":     true,
	"title":    true,
	"desc":     true,
	"metadata": true,
}

// Read parses an SVG document. Errors wrap [stitch.ErrMalformedInput].
func (rd Reader) Read(r io.Reader) (*Document, error) {
	if rd.Tolerance <= 0 {
		rd.Tolerance = DefaultTolerance
	}
	if rd.MaxElements <= 0 {
		rd.MaxElements = DefaultMaxElements
	}

	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	doc := &Document{Skipped: map[string]int{}}

	var stack []style
	root := true
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, stitch.Malformed("read svg", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if root && name != "svg" {
				return nil, malformed("root element is <%s>, not <svg>", name)
			}
			if skippedContainers[name] {
				doc.Skipped[name]++
				if err := dec.Skip(); err != nil {
					return nil, stitch.Malformed("read svg", err)
				}
				continue
			}

			parent := style{xform: stitch.Identity}
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			props := properties(t.Attr)
			st, err := parent.inherit(props)
			if err != nil {
				return nil, fmt.Errorf("svg: <%s>: %w", name, err)
			}
			if root {
				root = false
				if err := doc.readRoot(props); err != nil {
					return nil, err
				}
				if rd.ApplyViewBox {
					st.xform = st.xform.Mul(viewBoxTransform(doc.ViewBox, doc.Width, doc.Height))
				}
			}
			stack = append(stack, st)

			if st.hidden {
				doc.Skipped[name]++
				stack = stack[:len(stack)-1]
				if err := dec.Skip(); err != nil {
					return nil, stitch.Malformed("read svg", err)
				}
				continue
			}

			switch name {
			case "svg", "g", "a", "switch":
				continue
			}
			path, ok, err := shape(name, props, rd.Tolerance)
			if err != nil {
				return nil, fmt.Errorf("svg: <%s>: %w", name, err)
			}
			if !ok {
				doc.Skipped[name]++
				continue
			}
			if len(doc.Paths) >= rd.MaxElements {
				return nil, malformed("more than %d drawable elements", rd.MaxElements)
			}
			if st.xform != stitch.Identity {
				path = path.Transform(st.xform)
			}
			doc.Paths = append(doc.Paths, stitch.ColoredPath{
				Path:   path,
				Stroke: st.stroke.rgb(st.color),
				Fill:   st.fill.rgb(st.color),
			})
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if root {
		return nil, malformed("no svg element")
	}
	return doc, nil
}

func (doc *Document) readRoot(props map[string]string) error {
	if v, ok := props["viewBox"]; ok {
		nums, err := parseNumbers(v)
		if err != nil {
			return err
		}
		if len(nums) != 4 || nums[2] < 0 || nums[3] < 0 {
			return malformed("bad viewBox %q", v)
		}
		doc.ViewBox = stitch.NewRectFromOrigin(stitch.Pt(nums[0], nums[1]), stitch.Sz(nums[2], nums[3]))
	}
	doc.Width, doc.Height = doc.ViewBox.Width(), doc.ViewBox.Height()
	// Percentages and relative units describe the embedding context, not the
	// canvas; the viewBox stands in for them.
	if l, err := parseLength(props["width"]); err == nil && l > 0 {
		doc.Width = l
	}
	if l, err := parseLength(props["height"]); err == nil && l > 0 {
		doc.Height = l
	}
	return nil
}

// shape returns the outline of a drawable element. It returns false for
// elements that draw nothing, either because they aren't shapes or because
// their size disables rendering.
func shape(name string, props map[string]string, tol float64) (stitch.BezPath, bool, error) {
	num := func(names ...string) ([]float64, error) {
		out := make([]float64, len(names))
		for i, n := range names {
			l, err := lengthAttr(props, n)
			if err != nil {
				return nil, err
			}
			out[i] = l
		}
		return out, nil
	}

	switch name {
	case "path":
		p, err := ParsePathData(props["d"], tol)
		if err != nil {
			return nil, false, err
		}
		return p, p.HasSegments(), nil
	case "line":
		v, err := num("x1", "y1", "x2", "y2")
		if err != nil {
			return nil, false, err
		}
		var p stitch.BezPath
		p.MoveTo(stitch.Pt(v[0], v[1]))
		p.LineTo(stitch.Pt(v[2], v[3]))
		return p, true, nil
	case "polyline", "polygon":
		pts, err := ParsePoints(props["points"])
		if err != nil {
			return nil, false, err
		}
		if len(pts) < 2 {
			return nil, false, nil
		}
		var p stitch.BezPath
		p.MoveTo(pts[0])
		for _, pt := range pts[1:] {
			p.LineTo(pt)
		}
		if name == "polygon" {
			p.ClosePath()
		}
		return p, true, nil
	case "rect":
		v, err := num("x", "y", "width", "height")
		if err != nil {
			return nil, false, err
		}
		if v[2] <= 0 || v[3] <= 0 {
			return nil, false, nil
		}
		rx, ry, err := cornerRadii(props, v[2], v[3])
		if err != nil {
			return nil, false, err
		}
		r := stitch.NewRectFromOrigin(stitch.Pt(v[0], v[1]), stitch.Sz(v[2], v[3]))
		return roundedRect(r, rx, ry, tol), true, nil
	case "circle":
		v, err := num("cx", "cy", "r")
		if err != nil {
			return nil, false, err
		}
		if v[2] <= 0 {
			return nil, false, nil
		}
		return ellipse(stitch.Pt(v[0], v[1]), stitch.Vec(v[2], v[2]), tol), true, nil
	case "ellipse":
		v, err := num("cx", "cy", "rx", "ry")
		if err != nil {
			return nil, false, err
		}
		if v[2] <= 0 || v[3] <= 0 {
			return nil, false, nil
		}
		return ellipse(stitch.Pt(v[0], v[1]), stitch.Vec(v[2], v[3]), tol), true, nil
	default:
		return nil, false, nil
	}
}

// cornerRadii resolves the rx and ry of a rect: a missing radius takes the
// value of the other, and both are clamped to half the rect's size.
func cornerRadii(props map[string]string, w, h float64) (float64, float64, error) {
	_, hasRX := props["rx"]
	_, hasRY := props["ry"]
	rx, err := lengthAttr(props, "rx")
	if err != nil {
		return 0, 0, err
	}
	ry, err := lengthAttr(props, "ry")
	if err != nil {
		return 0, 0, err
	}
	switch {
	case hasRX && !hasRY:
		ry = rx
	case hasRY && !hasRX:
		rx = ry
	}
	return min(max(rx, 0), w/2), min(max(ry, 0), h/2), nil
}

func ellipse(center stitch.Point, radii stitch.Vec2, tol float64) stitch.BezPath {
	p := stitch.Ellipse(center, radii).Path(tol)
	p.ClosePath()
	return p
}

// roundedRect returns the outline of r with elliptical corners, starting at
// the end of the top left corner and running clockwise in y-down space.
func roundedRect(r stitch.Rect, rx, ry, tol float64) stitch.BezPath {
	if rx <= 0 || ry <= 0 {
		return r.Path()
	}
	radii := stitch.Vec(rx, ry)
	corner := func(p *stitch.BezPath, cx, cy, start float64) {
		arc := stitch.Arc{
			Center:     stitch.Pt(cx, cy),
			Radii:      radii,
			StartAngle: start,
			SweepAngle: math.Pi / 2,
		}
		for el := range arc.Cubics(tol) {
			p.Push(el)
		}
	}
	var p stitch.BezPath
	p.MoveTo(stitch.Pt(r.X0+rx, r.Y0))
	p.LineTo(stitch.Pt(r.X1-rx, r.Y0))
	corner(&p, r.X1-rx, r.Y0+ry, -math.Pi/2)
	p.LineTo(stitch.Pt(r.X1, r.Y1-ry))
	corner(&p, r.X1-rx, r.Y1-ry, 0)
	p.LineTo(stitch.Pt(r.X0+rx, r.Y1))
	corner(&p, r.X0+rx, r.Y1-ry, math.Pi/2)
	p.LineTo(stitch.Pt(r.X0, r.Y0+ry))
	corner(&p, r.X0+rx, r.Y0+ry, math.Pi)
	p.ClosePath()
	return p
}

// charsetReader decodes documents in legacy encodings declared in the XML
// prolog.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(strings.TrimSpace(label))
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

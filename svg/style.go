package svg

import (
	"encoding/xml"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"

	"honnef.co/go/stitch"
)

// paint is the computed value of a stroke or fill property.
type paint struct {
	set   bool
	none  bool
	color stitch.RGB
	// current is set for currentColor, which resolves to the color property.
	current bool
}

func (p paint) rgb(current paint) *stitch.RGB {
	if p.current {
		p = current
	}
	if !p.set || p.none {
		return nil
	}
	c := p.color
	return &c
}

// parsePaint parses a paint value. Values that aren't colours, such as
// gradient references, leave the property unset.
func parsePaint(v string) paint {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "none", "transparent":
		return paint{set: true, none: true}
	case "currentcolor":
		return paint{set: true, current: true}
	}
	c, err := stitch.ParseColor(v)
	if err != nil {
		return paint{}
	}
	return paint{set: true, color: c}
}

// style is the inherited state of an element.
type style struct {
	stroke, fill, color paint
	hidden              bool
	xform               stitch.Affine
}

// properties returns the element's presentation attributes merged with its
// style attribute, which takes precedence.
func properties(attrs []xml.Attr) map[string]string {
	props := map[string]string{}
	var inline string
	for _, a := range attrs {
		if a.Name.Space != "" {
			continue
		}
		if a.Name.Local == "style" {
			inline = a.Value
			continue
		}
		props[a.Name.Local] = a.Value
	}
	for _, decl := range strings.Split(inline, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "!important"))
		props[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return props
}

// inherit computes the style of a child element from its parent's.
func (st style) inherit(props map[string]string) (style, error) {
	if v, ok := props["stroke"]; ok && v != "inherit" {
		st.stroke = parsePaint(v)
	}
	if v, ok := props["fill"]; ok && v != "inherit" {
		st.fill = parsePaint(v)
	}
	if v, ok := props["color"]; ok && v != "inherit" && !strings.EqualFold(v, "currentColor") {
		st.color = parsePaint(v)
	}
	if props["display"] == "none" {
		st.hidden = true
	}
	if v, ok := props["transform"]; ok {
		t, err := ParseTransform(v)
		if err != nil {
			return st, err
		}
		st.xform = st.xform.Mul(t)
	}
	return st, nil
}

// pixelsPer holds the size of absolute CSS units in pixels.
var pixelsPer = map[string]float64{
	"":   1,
	"px": 1,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
	"pt": 96.0 / 72,
	"pc": 16,
}

// parseLength parses a length in absolute units, returning it in pixels.
// Relative units and percentages are rejected.
func parseLength(s string) (float64, error) {
	b := []byte(strings.TrimSpace(s))
	v, n := strconv.ParseFloat(b)
	if n == 0 {
		return 0, malformed("invalid length %q", s)
	}
	f, ok := pixelsPer[strings.ToLower(string(b[n:]))]
	if !ok {
		return 0, malformed("unsupported length unit in %q", s)
	}
	return v * f, nil
}

// lengthAttr returns the length in props[name], or 0 if it is absent.
func lengthAttr(props map[string]string, name string) (float64, error) {
	v, ok := props[name]
	if !ok || strings.TrimSpace(v) == "" {
		return 0, nil
	}
	l, err := parseLength(v)
	if err != nil {
		return 0, err
	}
	return l, nil
}

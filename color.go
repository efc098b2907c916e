package stitch

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// RGB is an opaque thread colour.
type RGB struct {
	R, G, B uint8
}

// Black is the colour of layers whose source specifies none.
var Black = RGB{}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA returns the colour as an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *RGB) UnmarshalText(b []byte) error {
	cc, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = cc
	return nil
}

// ParseColor parses a CSS colour: #rgb, #rrggbb, rgb(r, g, b) with integer or
// percentage components, or one of the SVG colour keywords. Alpha is dropped.
// The special values "none", "transparent" and the empty string are rejected.
func ParseColor(s string) (RGB, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "none" || s == "transparent":
		return RGB{}, Malformed("parse color", fmt.Errorf("no colour in %q", s))
	case strings.HasPrefix(s, "#"):
		cc, err := colorful.Hex(s)
		if err != nil {
			return RGB{}, Malformed("parse color", err)
		}
		r, g, b := cc.RGB255()
		return RGB{r, g, b}, nil
	case strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba("):
		return parseRGBFunc(s)
	}
	if named, ok := colornames.Map[s]; ok {
		return RGB{named.R, named.G, named.B}, nil
	}
	return RGB{}, Malformed("parse color", fmt.Errorf("unknown colour %q", s))
}

func parseRGBFunc(s string) (RGB, error) {
	open := strings.IndexByte(s, '(')
	if !strings.HasSuffix(s, ")") {
		return RGB{}, Malformed("parse color", fmt.Errorf("unterminated %q", s))
	}
	fields := strings.FieldsFunc(s[open+1:len(s)-1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(fields) < 3 {
		return RGB{}, Malformed("parse color", fmt.Errorf("want 3 components in %q", s))
	}
	var out [3]uint8
	for i, f := range fields[:3] {
		pct, isPct := strings.CutSuffix(f, "%")
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return RGB{}, Malformed("parse color", err)
		}
		if isPct {
			v = v * 255 / 100
		}
		out[i] = uint8(math.Round(min(max(v, 0), 255)))
	}
	return RGB{out[0], out[1], out[2]}, nil
}

// Package preview renders stitch plans to images.
//
// Stitches are drawn as thin lines in the colour of their layer on a plain
// background, scaled to fit the image. Layers without a colour, as in plans
// decoded from machine files, get colours from a fixed palette.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/vector"

	"honnef.co/go/stitch"
)

const maxSide = 1 << 14

// Options control rendering. The zero value renders an 800×800 image.
type Options struct {
	// Width and Height are the image size in pixels. Zero selects 800.
	Width, Height int
	// Margin is the empty border around the design, in image pixels. Zero
	// selects 16.
	Margin float64
	// ThreadWidth is the width of stitch lines in image pixels. Zero selects
	// 2.
	ThreadWidth float64
	// ShowJumps draws moves that aren't stitches as thin lines.
	ShowJumps bool
	// Background defaults to white, JumpColor to light grey.
	Background color.Color
	JumpColor  color.Color
}

func (o Options) withDefaults() (Options, error) {
	if o.Width == 0 {
		o.Width = 800
	}
	if o.Height == 0 {
		o.Height = 800
	}
	if o.Width < 0 || o.Height < 0 || o.Width > maxSide || o.Height > maxSide {
		return o, stitch.InvalidParameter("render preview", fmt.Errorf("image size %d×%d out of range", o.Width, o.Height))
	}
	if o.ThreadWidth <= 0 {
		o.ThreadWidth = 2
	}
	if o.Margin <= 0 {
		o.Margin = 16
	}
	o.Margin = max(o.Margin, o.ThreadWidth)
	if 2*o.Margin >= float64(min(o.Width, o.Height)) {
		return o, stitch.InvalidParameter("render preview", fmt.Errorf("margin %g leaves no room in a %d×%d image", o.Margin, o.Width, o.Height))
	}
	if o.Background == nil {
		o.Background = color.White
	}
	if o.JumpColor == nil {
		o.JumpColor = color.RGBA{0xc0, 0xc0, 0xc0, 0xff}
	}
	return o, nil
}

// Palette returns n visually distinct thread colours.
func Palette(n int) []stitch.RGB {
	out := make([]stitch.RGB, n)
	for i := range out {
		// Golden angle steps keep neighbouring layers apart in hue.
		h := math.Mod(float64(i)*137.508, 360)
		r, g, b := colorful.Hcl(h, 0.55, 0.55).Clamped().RGB255()
		out[i] = stitch.RGB{R: r, G: g, B: b}
	}
	return out
}

// fit returns the transform that scales and centres bounds in the image.
func fit(bounds stitch.Rect, o Options) stitch.Affine {
	w := float64(o.Width) - 2*o.Margin
	h := float64(o.Height) - 2*o.Margin
	s := math.Inf(1)
	if bounds.Width() > 0 {
		s = w / bounds.Width()
	}
	if bounds.Height() > 0 {
		s = min(s, h/bounds.Height())
	}
	if math.IsInf(s, 1) {
		s = 1
	}
	tx := (float64(o.Width)-bounds.Width()*s)/2 - bounds.X0*s
	ty := (float64(o.Height)-bounds.Height()*s)/2 - bounds.Y0*s
	return stitch.Scale(s, s).ThenTranslate(stitch.Vec(tx, ty))
}

// segment adds a line from a to b of the given width to the rasterizer. All
// segments wind the same way, so overlapping ones don't cancel out.
func segment(ras *vector.Rasterizer, a, b stitch.Point, width float64) {
	d := b.Sub(a)
	if d.Hypot2() == 0 {
		return
	}
	n := d.Turn90().Normalize().Mul(width / 2)
	p0, p1 := a.Translate(n), b.Translate(n)
	p2, p3 := b.Translate(n.Negate()), a.Translate(n.Negate())
	ras.MoveTo(float32(p0.X), float32(p0.Y))
	ras.LineTo(float32(p1.X), float32(p1.Y))
	ras.LineTo(float32(p2.X), float32(p2.Y))
	ras.LineTo(float32(p3.X), float32(p3.Y))
	ras.ClosePath()
}

// Render draws p into a new image.
func Render(p stitch.Plan, o Options) (*image.RGBA, error) {
	o, err := o.withDefaults()
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, o.Width, o.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(o.Background), image.Point{}, draw.Src)
	if len(p.Points) == 0 {
		return img, nil
	}
	for i, pt := range p.Points {
		if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) {
			return nil, stitch.Malformed("render preview", fmt.Errorf("point %d has non-finite coordinates", i))
		}
	}

	aff := fit(p.Bounds(), o)
	at := func(pt stitch.StitchPoint) stitch.Point { return pt.Pos().Transform(aff) }
	ras := vector.NewRasterizer(o.Width, o.Height)

	if o.ShowJumps {
		for i := 1; i < len(p.Points); i++ {
			prev, cur := p.Points[i-1], p.Points[i]
			if prev.Kind == stitch.StitchKind && cur.Kind == stitch.StitchKind {
				continue
			}
			segment(ras, at(prev), at(cur), o.ThreadWidth/2)
		}
		ras.Draw(img, img.Bounds(), image.NewUniform(o.JumpColor), image.Point{})
	}

	layers := p.Split()
	palette := Palette(len(layers))
	for li, l := range layers {
		c := palette[li]
		if l.Points[0].Color != nil {
			c = *l.Points[0].Color
		}
		ras.Reset(o.Width, o.Height)
		for i := 1; i < len(l.Points); i++ {
			if l.Points[i-1].Kind == stitch.StitchKind && l.Points[i].Kind == stitch.StitchKind {
				segment(ras, at(l.Points[i-1]), at(l.Points[i]), o.ThreadWidth)
			}
		}
		ras.Draw(img, img.Bounds(), image.NewUniform(c.RGBA()), image.Point{})
	}
	return img, nil
}

// WritePNG renders p and writes it to w as a PNG.
func WritePNG(w io.Writer, p stitch.Plan, o Options) error {
	img, err := Render(p, o)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("preview: encode png: %w", err)
	}
	return nil
}

// Package machine converts stitch plans to and from machine embroidery files.
//
// Formats are provided by [Codec] implementations and looked up through a
// [Registry]. A deployment that lacks a format simply doesn't register its
// codec; asking the registry for it then fails with
// [stitch.ErrUnsupportedCapability].
//
// Machine files can't represent everything a plan holds. In particular the
// colour carried by ColorChange points is lost, and decoded coordinates are
// relative to the first point of the encoded plan.
package machine

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"honnef.co/go/stitch"
)

// Codec encodes plans into one machine file format and decodes them back.
type Codec interface {
	// Name is the short name the codec is registered under, such as "dst".
	Name() string
	// Extensions lists the file extensions of the format, with leading dots.
	Extensions() []string
	// Encode writes p in the codec's format. The plan is translated so that
	// its first point is at the origin.
	Encode(w io.Writer, p stitch.Plan) error
	// Decode reads a file in the codec's format. The returned plan carries
	// per-kind counts in its Info.
	Decode(r io.Reader) (stitch.Plan, error)
}

// A Scaler is a codec whose file units are physical, so that it has to know
// the size of a plan pixel.
type Scaler interface {
	Codec
	// WithScale returns a copy of the codec for plans at the given scale.
	WithScale(mmPerPx float64) Codec
}

// Registry maps format names to codecs. Registering codecs is not safe for
// concurrent use; looking them up is.
type Registry struct {
	codecs map[string]Codec
}

// NewRegistry returns a registry holding the given codecs.
func NewRegistry(codecs ...Codec) *Registry {
	r := &Registry{codecs: make(map[string]Codec, len(codecs))}
	for _, c := range codecs {
		r.Register(c)
	}
	return r
}

// Standard returns a registry with every codec of this package. DST files are
// written with the given pixel scale and label.
func Standard(mmPerPx float64, label string) *Registry {
	return NewRegistry(Raw{}, NewDST(mmPerPx, label))
}

// Register adds c to the registry, replacing any codec of the same name.
func (r *Registry) Register(c Codec) {
	r.codecs[strings.ToLower(c.Name())] = c
}

// Lookup returns the codec registered under name, which is matched
// case-insensitively. A nil registry holds no codecs.
func (r *Registry) Lookup(name string) (Codec, error) {
	if r != nil {
		if c, ok := r.codecs[strings.ToLower(strings.TrimSpace(name))]; ok {
			return c, nil
		}
	}
	return nil, stitch.Unsupported("lookup codec", fmt.Errorf("no codec for format %q", name))
}

// ForPath returns the codec whose extensions include that of path.
func (r *Registry) ForPath(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if r != nil && ext != "" {
		for _, name := range r.Formats() {
			c := r.codecs[name]
			if slices.Contains(c.Extensions(), ext) {
				return c, nil
			}
		}
	}
	return nil, stitch.Unsupported("lookup codec", fmt.Errorf("no codec for file %q", filepath.Base(path)))
}

// Formats returns the names of the registered codecs in sorted order.
func (r *Registry) Formats() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Encode writes p to w in the named format.
func (r *Registry) Encode(w io.Writer, format string, p stitch.Plan) error {
	c, err := r.Lookup(format)
	if err != nil {
		return err
	}
	return c.Encode(w, p)
}

// Decode reads a plan in the named format from rd.
func (r *Registry) Decode(rd io.Reader, format string) (stitch.Plan, error) {
	c, err := r.Lookup(format)
	if err != nil {
		return stitch.Plan{}, err
	}
	return c.Decode(rd)
}

// checkEnd verifies that an End point, if any, is the last point.
func checkEnd(op string, pts []stitch.StitchPoint) error {
	for i, pt := range pts {
		if pt.Kind == stitch.EndKind && i != len(pts)-1 {
			return stitch.Malformed(op, fmt.Errorf("end command at point %d of %d", i, len(pts)))
		}
	}
	return nil
}

// origin returns the position encoded plans are made relative to.
func origin(pts []stitch.StitchPoint) stitch.Point {
	if len(pts) == 0 {
		return stitch.Point{}
	}
	return pts[0].Pos()
}

func endsWithEnd(pts []stitch.StitchPoint) bool {
	return len(pts) > 0 && pts[len(pts)-1].Kind == stitch.EndKind
}

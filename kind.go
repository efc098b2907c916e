package stitch

import (
	"fmt"
)

// Kind is the machine command of a [StitchPoint].
type Kind uint8

const (
	// StitchKind sews a stitch ending at the point. It is the zero value.
	StitchKind Kind = iota
	// JumpKind moves to the point without sewing.
	JumpKind
	// TrimKind cuts the thread.
	TrimKind
	// ColorChangeKind switches thread. In a generated plan it opens a layer
	// and carries the layer's colour.
	ColorChangeKind
	// StopKind pauses the machine.
	StopKind
	// EndKind ends the design.
	EndKind
)

var kindNames = [...]string{
	StitchKind:      "stitch",
	JumpKind:        "jump",
	TrimKind:        "trim",
	ColorChangeKind: "color_change",
	StopKind:        "stop",
	EndKind:         "end",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("invalid stitch kind %d", k)
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	kk, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = kk
	return nil
}

// ParseKind parses the name of a stitch kind, as produced by [Kind.String].
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, Malformed("parse kind", fmt.Errorf("unknown stitch type %q", s))
}

// StitchPoint is one machine command at an absolute position in pixel space.
type StitchPoint struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Kind Kind    `json:"type"`
	// Color is only set on ColorChange points of generated plans.
	Color *RGB `json:"color,omitempty"`
}

// Pos returns the point's position.
func (sp StitchPoint) Pos() Point {
	return Point{X: sp.X, Y: sp.Y}
}

func (sp StitchPoint) String() string {
	if sp.Color != nil {
		return fmt.Sprintf("%s(%g, %g, %s)", sp.Kind, sp.X, sp.Y, sp.Color)
	}
	return fmt.Sprintf("%s(%g, %g)", sp.Kind, sp.X, sp.Y)
}

func stitchAt(pt Point) StitchPoint {
	return StitchPoint{X: pt.X, Y: pt.Y, Kind: StitchKind}
}

func colorChangeAt(pt Point, c RGB) StitchPoint {
	return StitchPoint{X: pt.X, Y: pt.Y, Kind: ColorChangeKind, Color: &c}
}

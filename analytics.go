package stitch

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CostModel prices a design. All fields are optional.
type CostModel struct {
	// MMPerPx converts pixel lengths to millimetres. Zero selects 0.26.
	MMPerPx float64 `yaml:"mm_per_px" json:"mm_per_px"`
	// StitchesPerMinute is the machine speed. Zero selects 800.
	StitchesPerMinute float64 `yaml:"stitches_per_minute" json:"stitches_per_minute"`
	// ColorChangeTime is the time added per colour change. Zero selects 30s.
	ColorChangeTime time.Duration `yaml:"color_change_time" json:"color_change_time"`
	Base            float64       `yaml:"base" json:"base"`
	Per1000Stitches float64       `yaml:"per_1000_stitches" json:"per_1000_stitches"`
	PerColorChange  float64       `yaml:"per_color_change" json:"per_color_change"`
	PerMeterThread  float64       `yaml:"per_meter_thread" json:"per_meter_thread"`
}

// DefaultCostModel is a reasonable cost model for a single-head machine.
var DefaultCostModel = CostModel{
	MMPerPx:           0.26,
	StitchesPerMinute: 800,
	ColorChangeTime:   30 * time.Second,
	Base:              2.0,
	Per1000Stitches:   0.5,
	PerColorChange:    0.25,
	PerMeterThread:    0.02,
}

// Stats are metrics derived from a plan.
type Stats struct {
	Points       int `json:"points"`
	Stitches     int `json:"stitches"`
	Jumps        int `json:"jumps"`
	Trims        int `json:"trims"`
	ColorChanges int `json:"color_changes"`
	Stops        int `json:"stops"`
	Layers       int `json:"layers"`
	// ThreadPx is the summed length of moves that end in a stitch and start
	// at a stitch, in pixels.
	ThreadPx float64 `json:"thread_px"`
	ThreadMM float64 `json:"thread_mm"`
	// TravelPx is the summed length of moves into Jump, Trim and ColorChange
	// points, and into stitches that don't follow a stitch.
	TravelPx float64 `json:"travel_px"`
	// Bounds is the bounding box in pixels.
	Bounds   Rect          `json:"bounds"`
	WidthMM  float64       `json:"width_mm"`
	HeightMM float64       `json:"height_mm"`
	SewTime  time.Duration `json:"sew_time"`
	Cost     float64       `json:"cost"`
	// Colors lists the distinct layer colours in order of first use.
	Colors      []RGB     `json:"colors"`
	Fingerprint uuid.UUID `json:"fingerprint"`
}

// Analyze derives metrics from a plan. It only reads the plan.
func Analyze(p Plan, cm CostModel) Stats {
	if cm.MMPerPx <= 0 {
		cm.MMPerPx = DefaultCostModel.MMPerPx
	}
	if cm.StitchesPerMinute <= 0 {
		cm.StitchesPerMinute = DefaultCostModel.StitchesPerMinute
	}
	if cm.ColorChangeTime <= 0 {
		cm.ColorChangeTime = DefaultCostModel.ColorChangeTime
	}

	st := Stats{
		Points:      len(p.Points),
		Bounds:      p.Bounds(),
		Fingerprint: Fingerprint(p),
	}
	seen := map[RGB]bool{}
	for i, pt := range p.Points {
		switch pt.Kind {
		case StitchKind:
			st.Stitches++
		case JumpKind:
			st.Jumps++
		case TrimKind:
			st.Trims++
		case ColorChangeKind:
			st.ColorChanges++
			if pt.Color != nil && !seen[*pt.Color] {
				seen[*pt.Color] = true
				st.Colors = append(st.Colors, *pt.Color)
			}
		case StopKind:
			st.Stops++
		}
		if i == 0 {
			continue
		}
		prev := p.Points[i-1]
		d := prev.Pos().Distance(pt.Pos())
		if pt.Kind == StitchKind && prev.Kind == StitchKind {
			st.ThreadPx += d
		} else if pt.Kind != EndKind && pt.Kind != StopKind {
			st.TravelPx += d
		}
	}
	st.Layers = len(p.Info.Layers)
	if st.Layers == 0 {
		st.Layers = st.ColorChanges
	}
	st.ThreadMM = st.ThreadPx * cm.MMPerPx
	st.WidthMM = st.Bounds.Width() * cm.MMPerPx
	st.HeightMM = st.Bounds.Height() * cm.MMPerPx

	sewing := float64(st.Stitches) * float64(time.Minute) / cm.StitchesPerMinute
	st.SewTime = time.Duration(sewing) + time.Duration(st.ColorChanges)*cm.ColorChangeTime
	st.Cost = cm.Base +
		cm.Per1000Stitches*float64(st.Stitches)/1000 +
		cm.PerColorChange*float64(st.ColorChanges) +
		cm.PerMeterThread*st.ThreadMM/1000
	return st
}

var fingerprintSpace = uuid.MustParse("6f1c8a52-3b0e-4d8e-9a57-2f4c1e0b7d93")

// Fingerprint returns a name-based (SHA-1) UUID of the plan's points. Plans with
// identical points have identical fingerprints, whatever their Info.
func Fingerprint(p Plan) uuid.UUID {
	b, err := json.Marshal(p.Points)
	if err != nil {
		// Only invalid kinds fail to marshal. Fingerprint what we can.
		b = []byte(err.Error())
	}
	return uuid.NewSHA1(fingerprintSpace, b)
}

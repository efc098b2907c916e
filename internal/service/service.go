// Package service ties the stitch plan engine to its inputs and outputs.
//
// A Service is built with explicit capabilities: the reader that turns vector
// documents into paths, and the registry of machine codecs. An operation that
// needs a capability the Service wasn't given fails with an error of kind
// [stitch.ErrUnsupportedCapability].
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"honnef.co/go/stitch"
	"honnef.co/go/stitch/internal/logging"
	"honnef.co/go/stitch/machine"
	"honnef.co/go/stitch/preview"
	"honnef.co/go/stitch/svg"
)

// PathReader reads a vector document. [svg.Reader] implements it.
type PathReader interface {
	Read(r io.Reader) (*svg.Document, error)
}

var _ PathReader = svg.Reader{}

// Service runs synthesis, export, inspection and rendering requests.
// It is safe for concurrent use as long as its capabilities are.
type Service struct {
	paths  PathReader
	codecs *machine.Registry
	limits stitch.Limits
	cost   stitch.CostModel
	log    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPathReader installs the reader used by GenerateFromSVG.
func WithPathReader(pr PathReader) Option { return func(s *Service) { s.paths = pr } }

// WithCodecs installs the machine codecs used by Export and Inspect.
func WithCodecs(r *machine.Registry) Option { return func(s *Service) { s.codecs = r } }

// WithLimits sets the limits applied to requests that don't carry their own.
func WithLimits(l stitch.Limits) Option { return func(s *Service) { s.limits = l } }

// WithCostModel sets the cost model used by Stats.
func WithCostModel(cm stitch.CostModel) Option { return func(s *Service) { s.cost = cm } }

// WithLogger sets the logger. Without it the package logger of
// [logging.Logger] is used.
func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.log = l } }

// New returns a Service. Without WithPathReader and WithCodecs it has neither
// capability.
func New(opts ...Option) *Service {
	s := &Service{cost: stitch.DefaultCostModel}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logging.Logger()
	}
	return s
}

// PointsRequest is a freehand synthesis request. The embedded parameters are
// decoded from the same JSON object as the points.
type PointsRequest struct {
	Points       []stitch.Point `json:"points"`
	CanvasWidth  float64        `json:"canvas_width,omitempty"`
	CanvasHeight float64        `json:"canvas_height,omitempty"`
	Color        *stitch.RGB    `json:"color,omitempty"`
	stitch.Params
}

func (s *Service) params(p stitch.Params) stitch.Params {
	if p.Limits == (stitch.Limits{}) {
		p.Limits = s.limits
	}
	return p
}

func (s *Service) unsupported(ctx context.Context, op, capability string) error {
	s.log.WarnContext(ctx, "capability missing", "op", op, "capability", capability)
	return stitch.Unsupported(op, fmt.Errorf("no %s installed", capability))
}

// GenerateFromSVG reads a vector document and synthesizes a plan with one layer
// per path. The document's size is recorded as the plan's canvas.
func (s *Service) GenerateFromSVG(ctx context.Context, r io.Reader, p stitch.Params) (stitch.Plan, error) {
	const op = "generate from svg"
	if err := ctx.Err(); err != nil {
		return stitch.Plan{}, err
	}
	if s.paths == nil {
		return stitch.Plan{}, s.unsupported(ctx, op, "path reader")
	}
	p = s.params(p)
	if err := p.Validate(); err != nil {
		return stitch.Plan{}, err
	}
	start := time.Now()
	doc, err := s.paths.Read(r)
	if err != nil {
		return stitch.Plan{}, err
	}
	s.log.InfoContext(ctx, "request accepted",
		"op", op, "strategy", p.Strategy, "paths", len(doc.Paths), "skipped", len(doc.Skipped))
	if err := ctx.Err(); err != nil {
		return stitch.Plan{}, err
	}

	optimize := p.Optimize
	p.Optimize = false
	plan, err := stitch.FromPaths(doc.Paths, p)
	if err != nil {
		return stitch.Plan{}, err
	}
	if optimize {
		plan = s.optimize(ctx, plan)
	}
	plan = plan.WithCanvas(doc.Size())
	s.built(ctx, op, plan, start)
	return plan, nil
}

func (s *Service) optimize(ctx context.Context, plan stitch.Plan) stitch.Plan {
	before := stitch.TravelLength(plan.Split())
	plan = stitch.OptimizePlan(plan)
	after := stitch.TravelLength(plan.Split())
	s.log.DebugContext(ctx, "layers reordered",
		"layers", len(plan.Info.Layers), "travel_before_px", before, "travel_after_px", after)
	return plan
}

func (s *Service) built(ctx context.Context, op string, plan stitch.Plan, start time.Time) {
	s.log.InfoContext(ctx, "plan built",
		"op", op,
		"stitches", plan.Info.StitchCount,
		"points", len(plan.Points),
		"layers", len(plan.Info.Layers),
		"took", time.Since(start))
}

// GenerateFromPoints synthesizes a single-layer plan from a freehand polyline.
// Fewer than two points give an empty plan.
func (s *Service) GenerateFromPoints(ctx context.Context, req PointsRequest) (stitch.Plan, error) {
	const op = "generate from points"
	if err := ctx.Err(); err != nil {
		return stitch.Plan{}, err
	}
	start := time.Now()
	p := s.params(req.Params)
	s.log.InfoContext(ctx, "request accepted", "op", op, "strategy", p.Strategy, "points", len(req.Points))
	plan, err := stitch.FromPolyline(stitch.Freehand{
		Points: req.Points,
		Canvas: stitch.Sz(req.CanvasWidth, req.CanvasHeight),
		Color:  req.Color,
	}, p)
	if err != nil {
		return stitch.Plan{}, err
	}
	s.built(ctx, op, plan, start)
	return plan, nil
}

func (s *Service) codec(ctx context.Context, op, format string) (machine.Codec, error) {
	if s.codecs == nil {
		return nil, s.unsupported(ctx, op, "machine codecs")
	}
	c, err := s.codecs.Lookup(format)
	if err != nil {
		if errors.Is(err, stitch.ErrUnsupportedCapability) {
			s.log.WarnContext(ctx, "capability missing", "op", op, "format", format)
		}
		return nil, err
	}
	s.log.DebugContext(ctx, "codec chosen", "op", op, "codec", c.Name())
	return c, nil
}

// Export writes plan to w in the named machine format.
func (s *Service) Export(ctx context.Context, w io.Writer, format string, plan stitch.Plan) error {
	const op = "export"
	if err := ctx.Err(); err != nil {
		return err
	}
	c, err := s.codec(ctx, op, format)
	if err != nil {
		return err
	}
	if err := plan.Check(); err != nil {
		return err
	}
	// Generated plans know their own scale.
	if sc, ok := c.(machine.Scaler); ok && plan.Info.Settings != nil && plan.Info.MMPerPx > 0 {
		c = sc.WithScale(plan.Info.MMPerPx)
	}
	return c.Encode(w, plan)
}

// Inspect decodes a machine file in the named format.
func (s *Service) Inspect(ctx context.Context, r io.Reader, format string) (stitch.Plan, error) {
	const op = "inspect"
	if err := ctx.Err(); err != nil {
		return stitch.Plan{}, err
	}
	c, err := s.codec(ctx, op, format)
	if err != nil {
		return stitch.Plan{}, err
	}
	plan, err := c.Decode(r)
	if err != nil {
		return stitch.Plan{}, err
	}
	s.log.InfoContext(ctx, "machine file decoded", "codec", c.Name(), "points", len(plan.Points), "stitches", plan.Info.StitchCount)
	return plan, nil
}

// Stats analyzes plan with the Service's cost model.
func (s *Service) Stats(plan stitch.Plan) stitch.Stats {
	return stitch.Analyze(plan, s.cost)
}

// Preview renders plan as a PNG image.
func (s *Service) Preview(ctx context.Context, w io.Writer, plan stitch.Plan, o preview.Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return preview.WritePNG(w, plan, o)
}

// Capabilities describes what a Service can do.
type Capabilities struct {
	// Formats lists the registered machine formats.
	Formats    []string `json:"formats"`
	SVG        bool     `json:"svg"`
	Strategies []string `json:"strategies"`
}

// Capabilities reports the installed capabilities.
func (s *Service) Capabilities() Capabilities {
	caps := Capabilities{
		Formats: s.codecs.Formats(),
		SVG:     s.paths != nil,
	}
	if caps.Formats == nil {
		caps.Formats = []string{}
	}
	for _, st := range stitch.Strategies() {
		caps.Strategies = append(caps.Strategies, st.String())
	}
	return caps
}

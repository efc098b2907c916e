// Package stitch turns vector line art into embroidery stitch plans. It takes
// either Bézier paths or freehand pixel polylines and produces an ordered
// sequence of machine commands (stitches, jumps, trims, colour changes) that a
// machine codec can write to a file.
//
// # Geometry
//
// The package carries its own small set of 2D primitives: [Point], [Vec2],
// [Line], [QuadBez], [CubicBez], the [PathSegment] tagged union, [BezPath],
// [Arc], [Rect], [Affine], and [Size]. They follow the conventions of kurbo:
// curves are evaluated at t ∈ [0, 1], path elements are drawing commands
// ([MoveTo], [LineTo], ...) while path segments are self-contained pieces with
// explicit start points. Coordinates are pixels in a y-down space.
//
// # Curves and resampling
//
// [Curve] is the uniform interface over a parametric path ([PathCurve]) and
// a freehand polyline ([Polyline]). [Resample] walks a curve and emits samples
// at roughly equal spacing:
//
//   - polylines are walked segment by segment, carrying the arc length
//     remainder across vertices, and the last input point is always kept;
//   - paths are sampled at uniform parameter steps. This is uniform in arc
//     length only where the curve has constant speed. Within a segment the
//     parameter is not reparametrized by arc length.
//
// # Patterns
//
// A [Strategy] is one of a closed set of stitch patterns (outline, satin,
// zigzag, double satin, fill, contour, meander, ripple). Each turns samples
// into stitch points offset along the curve normal. The output of one source
// curve forms a layer, opened by a [ColorChangeKind] point carrying the layer
// colour.
//
// # Plans
//
// A [Plan] is immutable once built. [FromPolyline] and [FromPaths] are the
// two synthesis entry points; both validate their [Params] first. [Optimize]
// reorders layers greedily to shorten travel between them, and [Analyze]
// derives counts, thread length, and a cost estimate.
//
// Nothing in this package logs, retries, or blocks. All functions are safe
// for concurrent use on independent inputs.
package stitch

package stitch

// Optimize reorders layers to shorten the travel between them. The first layer
// stays first; after that, the next layer is always the remaining one whose
// first point is nearest to the last point placed so far, with ties going to
// the earliest layer in the input. Layers are never reversed or split.
//
// This is a greedy heuristic, quadratic in the number of layers, and not a
// shortest-path solution. The input slice is not modified.
func Optimize(layers []Layer) []Layer {
	if len(layers) <= 2 {
		return append([]Layer(nil), layers...)
	}
	out := make([]Layer, 0, len(layers))
	out = append(out, layers[0])
	used := make([]bool, len(layers))
	used[0] = true
	cur := layers[0].Last()
	for range len(layers) - 1 {
		best := -1
		var bestD float64
		for j, l := range layers {
			if used[j] {
				continue
			}
			// Squared distances order the same way as distances.
			if d := cur.DistanceSquared(l.First()); best == -1 || d < bestD {
				best, bestD = j, d
			}
		}
		used[best] = true
		out = append(out, layers[best])
		cur = layers[best].Last()
	}
	return out
}

// TravelLength returns the sum of distances from each layer's last point to
// the next layer's first point.
func TravelLength(layers []Layer) float64 {
	var sum float64
	for i := 1; i < len(layers); i++ {
		sum += layers[i-1].Last().Distance(layers[i].First())
	}
	return sum
}

// OptimizePlan splits a plan into layers, reorders them with [Optimize], and
// reassembles it. Info.Layers follows the new order. A trailing End point
// stays last and moves to the new final position.
func OptimizePlan(p Plan) Plan {
	body := p
	var end *StitchPoint
	if n := len(p.Points); n > 0 && p.Points[n-1].Kind == EndKind {
		e := p.Points[n-1]
		end = &e
		body.Points = p.Points[:n-1]
	}

	layers := Optimize(body.Split())
	pts := make([]StitchPoint, 0, len(p.Points))
	for _, l := range layers {
		pts = append(pts, l.Points...)
	}
	if end != nil {
		if len(pts) > 0 {
			end.X, end.Y = pts[len(pts)-1].X, pts[len(pts)-1].Y
		}
		pts = append(pts, *end)
	}

	out := p
	out.Points = pts
	if len(p.Info.Layers) == len(layers) {
		out.Info.Layers = make([]LayerInfo, len(layers))
		for i, l := range layers {
			out.Info.Layers[i] = l.info()
		}
	}
	return out
}

package geometry

import (
	"math"

	"github.com/fib-lab/opendrive-importer/model"
)

// applyLaneOffset shifts pts laterally by the road's lane-offset
// polynomials. Where offsets exist, an intermediate
// vertex is inserted at each offset anchor if the nearest existing vertex
// is farther than model.Epsilon away, then every vertex is shifted
// orthogonally by offset(pos) along its left-hand normal (positive offset
// moves toward the left side of travel). A degenerate local tangent (zero-length neighbouring
// segment) is a shift failure: warn and keep the vertex unshifted.
func applyLaneOffset(pts model.Polyline, offsets []model.CubicPoly, e *Engine) model.Polyline {
	if len(offsets) == 0 {
		return pts
	}
	pts = ensureOffsetAnchors(pts, offsets)

	out := make(model.Polyline, len(pts))
	pos := 0.0
	for i := range pts {
		if i > 0 {
			pos += pts[i-1].Distance2D(pts[i])
		}
		offset := activeOffsetValue(offsets, pos)
		tangent, ok := localTangent(pts, i)
		if !ok {
			e.warnf("Lane-offset shift failed at arclength %.3f (degenerate tangent), keeping vertex unshifted", pos)
			out[i] = pts[i]
			continue
		}
		// Left normal: rotate tangent by +90deg.
		nx, ny := -tangent.Y, tangent.X
		shifted := pts[i]
		shifted.X += offset * nx
		shifted.Y += offset * ny
		out[i] = shifted
	}
	return out
}

func activeOffsetValue(offsets []model.CubicPoly, pos float64) float64 {
	var best *model.CubicPoly
	for i := range offsets {
		if offsets[i].S <= pos {
			best = &offsets[i]
		} else {
			break
		}
	}
	if best == nil {
		return 0
	}
	return best.EvalAt(pos)
}

// localTangent returns the unit tangent at vertex i, using the segment to
// the next vertex, falling back to the segment from the previous vertex.
func localTangent(pts model.Polyline, i int) (model.Point, bool) {
	if i+1 < len(pts) {
		d := pts[i+1].Sub(pts[i])
		if n := math.Hypot(d.X, d.Y); n > model.Epsilon {
			return model.Point{X: d.X / n, Y: d.Y / n}, true
		}
	}
	if i > 0 {
		d := pts[i].Sub(pts[i-1])
		if n := math.Hypot(d.X, d.Y); n > model.Epsilon {
			return model.Point{X: d.X / n, Y: d.Y / n}, true
		}
	}
	return model.Point{}, false
}

// ensureOffsetAnchors inserts a vertex at each offset anchor's arclength
// if no existing vertex is within model.Epsilon of it.
func ensureOffsetAnchors(pts model.Polyline, offsets []model.CubicPoly) model.Polyline {
	cum := cumulativeArcLength(pts)
	for _, off := range offsets {
		target := off.S
		if target <= 0 || target >= cum[len(cum)-1] {
			continue
		}
		idx := nearestIndex(cum, target)
		if math.Abs(cum[idx]-target) <= model.Epsilon {
			continue
		}
		// Insert a projected point at `target` between the bracketing vertices.
		lo, hi := bracket(cum, target)
		if lo == hi {
			continue
		}
		frac := (target - cum[lo]) / (cum[hi] - cum[lo])
		pt := model.Point{
			X: pts[lo].X + frac*(pts[hi].X-pts[lo].X),
			Y: pts[lo].Y + frac*(pts[hi].Y-pts[lo].Y),
			Z: pts[lo].Z + frac*(pts[hi].Z-pts[lo].Z),
		}
		newPts := make(model.Polyline, 0, len(pts)+1)
		newPts = append(newPts, pts[:lo+1]...)
		newPts = append(newPts, pt)
		newPts = append(newPts, pts[hi:]...)
		pts = newPts
		cum = cumulativeArcLength(pts)
	}
	return pts
}

func cumulativeArcLength(pts model.Polyline) []float64 {
	cum := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		cum[i] = cum[i-1] + pts[i-1].Distance2D(pts[i])
	}
	return cum
}

func nearestIndex(cum []float64, target float64) int {
	best, bestDist := 0, math.Abs(cum[0]-target)
	for i, c := range cum {
		if d := math.Abs(c - target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func bracket(cum []float64, target float64) (lo, hi int) {
	for i := 1; i < len(cum); i++ {
		if cum[i-1] <= target && target <= cum[i] {
			return i - 1, i
		}
	}
	return 0, 0
}

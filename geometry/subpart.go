package geometry

import "github.com/fib-lab/opendrive-importer/model"

// PointAt returns the point at 2D arclength s along pl, interpolating
// between vertices as needed. s is clamped to [0, length].
func PointAt(pl model.Polyline, s float64) model.Point {
	if len(pl) == 0 {
		return model.Point{}
	}
	if s <= 0 {
		return pl[0]
	}
	cum := cumulativeArcLength(pl)
	total := cum[len(cum)-1]
	if s >= total {
		return pl[len(pl)-1]
	}
	lo, hi := bracket(cum, s)
	if lo == hi {
		return pl[lo]
	}
	frac := (s - cum[lo]) / (cum[hi] - cum[lo])
	return model.Point{
		X: pl[lo].X + frac*(pl[hi].X-pl[lo].X),
		Y: pl[lo].Y + frac*(pl[hi].Y-pl[lo].Y),
		Z: pl[lo].Z + frac*(pl[hi].Z-pl[lo].Z),
	}
}

// GetSubpart2D returns the portion of pl between 2D arclengths sFrom and
// sTo (sFrom may be greater than sTo; the result is always in increasing-s
// order along the source polyline, i.e. callers reverse it themselves for
// backward edges), including interpolated endpoints.
func GetSubpart2D(pl model.Polyline, sFrom, sTo float64) model.Polyline {
	if sFrom > sTo {
		sFrom, sTo = sTo, sFrom
	}
	cum := cumulativeArcLength(pl)
	total := cum[len(cum)-1]
	if sFrom < 0 {
		sFrom = 0
	}
	if sTo > total {
		sTo = total
	}
	out := model.Polyline{PointAt(pl, sFrom)}
	for i, c := range cum {
		if c > sFrom && c < sTo {
			out = append(out, pl[i])
		}
	}
	end := PointAt(pl, sTo)
	if !out[len(out)-1].AlmostSame(end, model.Epsilon) {
		out = append(out, end)
	}
	return out
}

package geometry

import "github.com/fib-lab/opendrive-importer/model"

// applyElevation lifts pts in place to 3D using the road's elevation
// polynomials: z = activeRecord(pos - activeRecord.S)
// where pos is accumulated 2D arclength and the active record is the one
// with the largest S <= pos. Absent any elevation record, z stays 0.
func applyElevation(pts model.Polyline, elev []model.CubicPoly) {
	if len(elev) == 0 {
		return
	}
	pos := 0.0
	for i := range pts {
		if i > 0 {
			pos += pts[i-1].Distance2D(pts[i])
		}
		active := activeElevation(elev, pos)
		if active != nil {
			pts[i].Z = active.EvalAt(pos)
		}
	}
}

func activeElevation(elev []model.CubicPoly, pos float64) *model.CubicPoly {
	var best *model.CubicPoly
	for i := range elev {
		if elev[i].S <= pos {
			best = &elev[i]
		} else {
			break
		}
	}
	return best
}

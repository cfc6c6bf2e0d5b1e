package flatten

import (
	"math"
	"strconv"

	"github.com/fib-lab/opendrive-importer/model"
)

// computeInternalShape builds the optional interior connection geometry for
// an inner road d: its own polyline, translated laterally by the
// cumulative half-width between the centre line and the reference
// lane entering at inLane/entryCP.
func computeInternalShape(d *model.Road, inLane int, entryCP model.ContactPoint) (model.Polyline, bool) {
	if len(d.Polyline) < 2 || len(d.LaneSections) == 0 {
		return nil, false
	}
	sec := d.LaneSections[0]
	if entryCP == model.ContactEnd {
		sec = d.LaneSections[len(d.LaneSections)-1]
	}
	side := model.SideRight
	if inLane > 0 {
		side = model.SideLeft
	}
	ref := findReferenceLane(sec, side, inLane, entryCP)
	if ref == nil {
		return nil, false
	}
	offset := cumulativeHalfWidth(sec, side, ref)
	if side == model.SideRight {
		offset = -offset
	}
	return offsetPolylinePerp(d.Polyline, offset), true
}

// findReferenceLane locates the lane on sec/side whose predecessor (start
// contact) or successor (end contact) equals the outer lane id that
// entered this connection.
func findReferenceLane(sec *model.LaneSection, side model.Side, outerLaneID int, entryCP model.ContactPoint) *model.Lane {
	want := strconv.Itoa(outerLaneID)
	for _, lane := range sec.LanesOnSide(side) {
		link := lane.Predecessor
		if entryCP == model.ContactEnd {
			link = lane.Successor
		}
		if link == want {
			return lane
		}
	}
	return nil
}

// cumulativeHalfWidth sums the full width of every lane between the centre
// line and ref (exclusive, walking centre-outward), plus half of ref's own
// width. Storage is outer-first, so the centre-outward walk is in reverse.
func cumulativeHalfWidth(sec *model.LaneSection, side model.Side, ref *model.Lane) float64 {
	lanes := sec.LanesOnSide(side)
	total := 0.0
	for i := len(lanes) - 1; i >= 0; i-- {
		lane := lanes[i]
		if lane == ref {
			total += lane.EffectiveWidth / 2
			break
		}
		total += lane.EffectiveWidth
	}
	return total
}

// offsetPolylinePerp translates every vertex of pl by offset along its
// local left-hand normal (positive offset moves left of the direction of
// travel), matching the sign convention lane corridors use elsewhere in
// the core.
func offsetPolylinePerp(pl model.Polyline, offset float64) model.Polyline {
	if offset == 0 {
		return append(model.Polyline{}, pl...)
	}
	out := make(model.Polyline, len(pl))
	for i, p := range pl {
		var heading float64
		switch {
		case i == 0:
			heading = pl[0].Heading2D(pl[1])
		case i == len(pl)-1:
			heading = pl[i-1].Heading2D(pl[i])
		default:
			heading = pl[i-1].Heading2D(pl[i+1])
		}
		nx, ny := -math.Sin(heading), math.Cos(heading)
		out[i] = model.Point{X: p.X + nx*offset, Y: p.Y + ny*offset, Z: p.Z}
	}
	return out
}

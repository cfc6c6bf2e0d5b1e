package lanesection

import (
	"math"
	"sort"
	"strconv"

	"github.com/fib-lab/opendrive-importer/model"
)

// splitByWidth is Pass B: split sections wherever a
// passenger-capable lane's width cubic crosses the configured minimum
// width, so the narrow interval gets its own section boundary instead of
// silently shrinking below wMin.
func (rs *Reshaper) splitByWidth(r *model.Road) {
	var out []*model.LaneSection
	for secIdx, sec := range r.LaneSections {
		sectionLen := rs.sectionLength(r, secIdx)
		splits := rs.candidateSplits(sec, sectionLen)
		splits = dedupSplits(splits, sectionLen)
		if len(splits) == 0 {
			out = append(out, sec)
			continue
		}
		bounds := append([]float64{0}, splits...)
		bounds = append(bounds, sectionLen)
		for i := 0; i < len(bounds)-1; i++ {
			start, end := bounds[i], bounds[i+1]
			clone := sec.Clone(sec.S + start)
			if i > 0 {
				// Synthetic boundary: straight pass-through connection.
				// Lane sections carry no assigned ID, and
				// InnerConnections parses Predecessor as the OpenDRIVE lane
				// id to look up in the previous section's LaneMap, so the
				// continuation must point back at the lane's own id.
				for _, side := range []model.Side{model.SideLeft, model.SideRight} {
					for _, lane := range clone.LanesOnSide(side) {
						lane.Predecessor = strconv.Itoa(lane.ID)
					}
				}
			}
			rs.recomputeEffectiveWidth(clone, sec, start, end)
			out = append(out, clone)
		}
	}
	r.LaneSections = out
}

func (rs *Reshaper) sectionLength(r *model.Road, idx int) float64 {
	sec := r.LaneSections[idx]
	if idx+1 < len(r.LaneSections) {
		return r.LaneSections[idx+1].S - sec.S
	}
	return r.Length - sec.S
}

// candidateSplits scans every passenger-capable lane's consecutive width
// cubics for a crossing of rs.MinWidth, linearly estimates the crossing
// position, then refines it onto the thin side.
func (rs *Reshaper) candidateSplits(sec *model.LaneSection, sectionLen float64) []float64 {
	var splits []float64
	for _, side := range []model.Side{model.SideLeft, model.SideRight} {
		for _, lane := range sec.LanesOnSide(side) {
			if !rs.passengerCapable(lane.Type) || len(lane.Widths) == 0 {
				continue
			}
			anchors := append([]float64{}, widthAnchors(lane)...)
			anchors = append(anchors, sectionLen)
			for i := 0; i < len(anchors)-1; i++ {
				sPrev, sEnd := anchors[i], anchors[i+1]
				if sEnd <= sPrev {
					continue
				}
				wPrev := lane.WidthAt(sPrev)
				w := lane.WidthAt(sEnd - 1e-9)
				if (wPrev-rs.MinWidth)*(w-rs.MinWidth) >= 0 {
					continue // same side of wMin, no crossing
				}
				splitPos := sPrev + (sEnd-sPrev)*math.Abs(rs.MinWidth-wPrev)/math.Abs(w-wPrev)
				splitPos = rs.refineToThinSide(lane, splitPos, sPrev, sEnd, w < wPrev)
				splits = append(splits, splitPos)
			}
		}
	}
	return splits
}

func widthAnchors(lane *model.Lane) []float64 {
	anchors := make([]float64, len(lane.Widths))
	for i, w := range lane.Widths {
		anchors[i] = w.SOffset
	}
	return anchors
}

// refineToThinSide steps splitPos by widthRefineStep toward the thin side
// (narrowing direction) until the lane's width there is on the thin side
// of wMin, staying within [sPrev,sEnd].
func (rs *Reshaper) refineToThinSide(lane *model.Lane, splitPos, sPrev, sEnd float64, narrowing bool) float64 {
	for i := 0; i < 50; i++ {
		w := lane.WidthAt(splitPos)
		onThinSide := w < rs.MinWidth
		if onThinSide {
			break
		}
		if narrowing {
			splitPos += widthRefineStep
		} else {
			splitPos -= widthRefineStep
		}
		if splitPos < sPrev || splitPos > sEnd {
			break
		}
	}
	if splitPos < sPrev {
		splitPos = sPrev
	}
	if splitPos > sEnd {
		splitPos = sEnd
	}
	return splitPos
}

// dedupSplits drops duplicate and near-duplicate candidates, and any
// candidate within minSplitDistance of the section end.
func dedupSplits(splits []float64, sectionLen float64) []float64 {
	if len(splits) == 0 {
		return nil
	}
	sort.Float64s(splits)
	var out []float64
	for _, s := range splits {
		if sectionLen-s < minSplitDistance {
			continue
		}
		if len(out) > 0 && s-out[len(out)-1] < minSplitDistance {
			continue
		}
		out = append(out, s)
	}
	return out
}

// recomputeEffectiveWidth sets each lane's EffectiveWidth for the new
// sub-interval [start,end) of the clone to the maximum of the owning
// width cubic evaluated at the interval's two corners and every enclosed
// width-cubic anchor.
func (rs *Reshaper) recomputeEffectiveWidth(clone, orig *model.LaneSection, start, end float64) {
	for _, side := range []model.Side{model.SideLeft, model.SideRight} {
		for _, lane := range clone.LanesOnSide(side) {
			origLane := orig.LaneByID(side, lane.ID)
			if origLane == nil {
				continue
			}
			corners := []float64{start, end}
			for _, a := range widthAnchors(origLane) {
				if a > start && a < end {
					corners = append(corners, a)
				}
			}
			max := 0.0
			for _, c := range corners {
				if w := origLane.WidthAt(c); w > max {
					max = w
				}
			}
			lane.EffectiveWidth = max
		}
	}
}

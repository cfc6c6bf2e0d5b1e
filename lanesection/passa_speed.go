package lanesection

import "github.com/fib-lab/opendrive-importer/model"

// splitBySpeed is Pass A: split every lane section at every
// sOffset where any lane on either side records a speed-limit change,
// propagating effective speed across the new boundaries. Returns whether
// any split occurred anywhere on the road.
func (rs *Reshaper) splitBySpeed(r *model.Road) bool {
	var out []*model.LaneSection
	anySplit := false
	for _, sec := range r.LaneSections {
		offsets := collectSpeedOffsets(sec)
		if len(offsets) == 0 {
			out = append(out, sec)
			continue
		}
		anySplit = true
		var prev *model.LaneSection
		for _, off := range offsets {
			clone := sec.Clone(sec.S + off)
			rs.propagateSpeed(clone, sec, off, prev)
			out = append(out, clone)
			prev = clone
		}
	}
	r.LaneSections = out
	return anySplit
}

func collectSpeedOffsets(sec *model.LaneSection) []float64 {
	seen := map[float64]bool{}
	var offsets []float64
	add := func(v float64) {
		if !seen[v] {
			seen[v] = true
			offsets = append(offsets, v)
		}
	}
	for _, side := range []model.Side{model.SideLeft, model.SideRight} {
		for _, lane := range sec.LanesOnSide(side) {
			for _, sp := range lane.Speeds {
				add(sp.SOffset)
			}
		}
	}
	if len(offsets) == 0 {
		return nil
	}
	add(0)
	sortFloats(offsets)
	return offsets
}

func sortFloats(vals []float64) {
	for i := 1; i < len(vals); i++ {
		for j := i; j > 0 && vals[j] < vals[j-1]; j-- {
			vals[j], vals[j-1] = vals[j-1], vals[j]
		}
	}
}

// propagateSpeed fills clone's lanes' EffectiveSpeed at split offset off.
// A lane with a matching (SOffset,Speed) entry in the original section
// uses it, converted to m/s from the entry's Unit by convertSpeed.
// Otherwise it inherits from prev's matching lane, or — for the very first
// split — the type-catalogue default.
func (rs *Reshaper) propagateSpeed(clone, orig *model.LaneSection, off float64, prev *model.LaneSection) {
	for _, side := range []model.Side{model.SideLeft, model.SideRight} {
		for _, lane := range clone.LanesOnSide(side) {
			origLane := orig.LaneByID(side, lane.ID)
			if origLane != nil {
				if sp, ok := origLane.SpeedAt(off); ok {
					lane.EffectiveSpeed = convertSpeed(sp.Speed, sp.Unit)
					continue
				}
			}
			if prev != nil {
				if prevLane := prev.LaneByID(side, lane.ID); prevLane != nil {
					lane.EffectiveSpeed = prevLane.EffectiveSpeed
					continue
				}
			}
			lane.EffectiveSpeed = rs.defaultSpeed(lane.Type)
		}
	}
}

// convertSpeed resolves an incoming speed to metres per second. Unknown
// units retain the raw value and the caller (parse layer) is responsible
// for having already warned about it.
func convertSpeed(v float64, unit string) float64 {
	switch unit {
	case "km/h":
		return v / 3.6
	case "mph":
		return v * 1.609344 / 3.6
	default:
		return v
	}
}

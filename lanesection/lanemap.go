package lanesection

import (
	"strings"

	"github.com/fib-lab/opendrive-importer/model"
)

// mapLanes assigns compact output-lane indices 0,1,... walking each side's
// lanes from the centre outward, skipping lanes whose type the catalogue
// discards, and records each side's joined type string.
func (rs *Reshaper) mapLanes(sec *model.LaneSection) {
	MapLanes(sec, rs.discarded)
}

// MapLanes is the standalone lane-mapping step, exported so the Edge
// Emitter can re-run it after it inserts a mid-road split for loop
// self-edges without duplicating the walk logic.
func MapLanes(sec *model.LaneSection, discard func(typ string) bool) {
	sec.LaneMap = make(map[int]int)
	sec.RightLaneNumber, sec.RightType = mapSide(sec, model.SideRight, discard)
	sec.LeftLaneNumber, sec.LeftType = mapSide(sec, model.SideLeft, discard)
}

// mapSide walks sec's lanes on the given side from the centre outward —
// i.e. in increasing |ID| order, which for our outer-first-ordered lane
// slices means reverse iteration — assigning compact indices to lanes
// whose type is not discarded.
func mapSide(sec *model.LaneSection, side model.Side, discard func(typ string) bool) (count int, joinedType string) {
	lanes := sec.LanesOnSide(side)
	var types []string
	idx := 0
	for i := len(lanes) - 1; i >= 0; i-- {
		lane := lanes[i]
		if discard != nil && discard(lane.Type) {
			continue
		}
		sec.LaneMap[lane.ID] = idx
		idx++
		types = append(types, lane.Type)
	}
	return idx, joinTypes(types)
}

func joinTypes(types []string) string {
	if len(types) == 0 {
		return ""
	}
	all := types[0]
	for _, t := range types[1:] {
		if t != all {
			return strings.Join(dedupStrings(types), "|")
		}
	}
	return all
}

func dedupStrings(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// discarded reports whether typ should be excluded from lane-mapping: when
// ImportAllLanes is false, lanes whose type is unknown to the catalogue or
// marked discarded by it are dropped from lane-mapping.
func (rs *Reshaper) discarded(typ string) bool {
	if rs.ImportAllLanes {
		return false
	}
	if rs.Catalogue == nil {
		return false
	}
	e, ok := rs.Catalogue.Lookup(typ)
	if !ok {
		return true // unknown type
	}
	return e.Discard
}

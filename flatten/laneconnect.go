package flatten

import (
	"strconv"

	"github.com/fib-lab/opendrive-importer/model"
)

// resolveThroughInner rewrites lane id inLane, entering inner road d at
// entryCP, into the lane id at which it exits d's opposite end. A
// single-section road connects a lane to itself; a multi-section road is
// walked sequentially following
// each section's successor (or predecessor, travelling the other way)
// link, since spacer lanes of type "none" can shift the numbering between
// sections.
func resolveThroughInner(d *model.Road, inLane int, entryCP model.ContactPoint) (int, bool) {
	secs := d.LaneSections
	if len(secs) <= 1 {
		return inLane, true
	}
	order := secs
	forward := entryCP == model.ContactStart
	if !forward {
		order = make([]*model.LaneSection, len(secs))
		for i, s := range secs {
			order[len(secs)-1-i] = s
		}
	}
	current := inLane
	for i := 0; i < len(order)-1; i++ {
		sec := order[i]
		side := model.SideRight
		if current > 0 {
			side = model.SideLeft
		}
		lane := sec.LaneByID(side, current)
		if lane == nil {
			return 0, false
		}
		next := lane.Successor
		if !forward {
			next = lane.Predecessor
		}
		if next == model.UnsetLaneID {
			return 0, false
		}
		id, err := strconv.Atoi(next)
		if err != nil {
			return 0, false
		}
		current = id
	}
	return current, true
}

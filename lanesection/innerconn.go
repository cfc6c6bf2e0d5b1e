package lanesection

import (
	"strconv"

	"github.com/fib-lab/opendrive-importer/model"
)

// LaneIndexPair is an intra-road continuation between two adjacent
// sections' compact lane indices.
type LaneIndexPair struct {
	FromIndex int
	ToIndex   int
}

// InnerConnections returns the intra-road continuations between section A
// (predecessor) and section B (successor) on the given side. For the
// right side the pair is
// (A-index, B-index); for the left side, because left-side travel runs
// opposite to increasing s, the pair is emitted reversed (B-index,
// A-index).
func InnerConnections(a, b *model.LaneSection, side model.Side) []LaneIndexPair {
	var pairs []LaneIndexPair
	for _, lane := range walkCentreOutward(b, side) {
		if lane.Predecessor == "" {
			continue
		}
		predID, err := strconv.Atoi(lane.Predecessor)
		if err != nil {
			continue
		}
		aIdx, ok := a.LaneMap[predID]
		if !ok {
			continue
		}
		bIdx, ok := b.LaneMap[lane.ID]
		if !ok {
			continue
		}
		if side == model.SideLeft {
			pairs = append(pairs, LaneIndexPair{FromIndex: bIdx, ToIndex: aIdx})
		} else {
			pairs = append(pairs, LaneIndexPair{FromIndex: aIdx, ToIndex: bIdx})
		}
	}
	return pairs
}

// walkCentreOutward returns side's lanes ordered centre-outward. Storage
// order is outer-first-by-|id|, so this reverses it.
func walkCentreOutward(sec *model.LaneSection, side model.Side) []*model.Lane {
	lanes := sec.LanesOnSide(side)
	out := make([]*model.Lane, len(lanes))
	for i, lane := range lanes {
		out[len(lanes)-1-i] = lane
	}
	return out
}

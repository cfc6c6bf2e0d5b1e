package lanesection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fib-lab/opendrive-importer/lanesection"
	"github.com/fib-lab/opendrive-importer/model"
	"github.com/fib-lab/opendrive-importer/warn"
)

func TestReshapeSplitsOnSpeedChange(t *testing.T) {
	sec := model.NewLaneSection(0)
	sec.Right = []*model.Lane{{
		ID:   -1,
		Type: "driving",
		Speeds: []model.SpeedEntry{
			{SOffset: 0, Speed: 13.89},
			{SOffset: 30, Speed: 8.33},
		},
	}}
	r := &model.Road{ID: "r1", Length: 60, LaneSections: []*model.LaneSection{sec}}

	rs := lanesection.NewReshaper(0, false, nil, warn.NewCollecting(nil))
	rs.Reshape(r)

	require.Len(t, r.LaneSections, 2)
	assert.Equal(t, 0.0, r.LaneSections[0].S)
	assert.Equal(t, 30.0, r.LaneSections[1].S)
	assert.InDelta(t, 13.89, r.LaneSections[0].Right[0].EffectiveSpeed, 1e-9)
	assert.InDelta(t, 8.33, r.LaneSections[1].Right[0].EffectiveSpeed, 1e-9)
}

func TestReshapeNoSpeedChangeKeepsSingleSection(t *testing.T) {
	sec := model.NewLaneSection(0)
	sec.Right = []*model.Lane{{ID: -1, Type: "driving"}}
	r := &model.Road{ID: "r1", Length: 60, LaneSections: []*model.LaneSection{sec}}

	rs := lanesection.NewReshaper(0, false, nil, warn.NewCollecting(nil))
	rs.Reshape(r)

	require.Len(t, r.LaneSections, 1)
}

func TestReshapeDropsTrailingDuplicateSectionForOuterRoads(t *testing.T) {
	secA := model.NewLaneSection(0)
	secB := model.NewLaneSection(0) // duplicate s after sort/normalise
	r := &model.Road{ID: "r1", JunctionID: "", LaneSections: []*model.LaneSection{secA, secB}}

	rs := lanesection.NewReshaper(0, false, nil, warn.NewCollecting(nil))
	rs.Reshape(r)

	assert.Len(t, r.LaneSections, 1)
}

func TestReshapeAssignsLaneMap(t *testing.T) {
	sec := model.NewLaneSection(0)
	sec.Right = []*model.Lane{{ID: -2, Type: "shoulder"}, {ID: -1, Type: "driving"}}
	r := &model.Road{ID: "r1", LaneSections: []*model.LaneSection{sec}}

	rs := lanesection.NewReshaper(0, false, nil, warn.NewCollecting(nil))
	rs.Reshape(r)

	assert.Equal(t, 0, sec.LaneMap[-1])
	assert.Equal(t, 1, sec.LaneMap[-2])
}

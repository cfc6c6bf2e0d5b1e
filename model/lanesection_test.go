package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fib-lab/opendrive-importer/model"
)

func TestLaneSectionLaneByID(t *testing.T) {
	sec := model.NewLaneSection(0)
	sec.Right = []*model.Lane{{ID: -1, Type: "driving"}, {ID: -2, Type: "shoulder"}}

	lane := sec.LaneByID(model.SideRight, -2)
	require.NotNil(t, lane)
	assert.Equal(t, "shoulder", lane.Type)

	assert.Nil(t, sec.LaneByID(model.SideRight, -3))
	assert.Nil(t, sec.LaneByID(model.SideLeft, -1))
}

func TestLaneSectionSetLanesOnSide(t *testing.T) {
	sec := model.NewLaneSection(0)
	lanes := []*model.Lane{{ID: 1, Type: "driving"}}
	sec.SetLanesOnSide(model.SideLeft, lanes)
	assert.Equal(t, lanes, sec.LanesOnSide(model.SideLeft))
}

func TestLaneSectionCloneIsDeepForLaneSlices(t *testing.T) {
	sec := model.NewLaneSection(5)
	sec.Right = []*model.Lane{{ID: -1, Type: "driving", Widths: []model.WidthEntry{{SOffset: 0}}}}
	sec.LaneMap[-1] = 0

	clone := sec.Clone(50)
	require.Len(t, clone.Right, 1)
	assert.Equal(t, 50.0, clone.S)
	assert.Equal(t, 5.0, clone.SOrig)
	assert.Equal(t, 0, clone.LaneMap[-1])

	// mutating the clone's lane must not affect the original.
	clone.Right[0].Type = "shoulder"
	assert.Equal(t, "driving", sec.Right[0].Type)

	clone.Right[0].Widths[0].SOffset = 99
	assert.Equal(t, 0.0, sec.Right[0].Widths[0].SOffset)
}

package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fib-lab/opendrive-importer/model"
)

func straightRoad() *model.Road {
	sec := model.NewLaneSection(0)
	sec.Right = []*model.Lane{{ID: -1, Type: "driving", Predecessor: "-1", EffectiveWidth: 3.5}}
	return &model.Road{
		ID:           "d1",
		Polyline:     model.Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}},
		LaneSections: []*model.LaneSection{sec},
	}
}

func TestComputeInternalShapeOffsetsByHalfWidth(t *testing.T) {
	d := straightRoad()
	shape, ok := computeInternalShape(d, -1, model.ContactStart)
	require.True(t, ok)
	require.Len(t, shape, 2)

	// the reference lane is right of centre, so the shape shifts right
	// (negative Y, given heading along +X).
	assert.Less(t, shape[0].Y, 0.0)
	assert.InDelta(t, -1.75, shape[0].Y, 1e-9)
}

func TestComputeInternalShapeReturnsFalseWhenNoReferenceLane(t *testing.T) {
	d := straightRoad()
	_, ok := computeInternalShape(d, -2, model.ContactStart)
	assert.False(t, ok)
}

func TestComputeInternalShapeReturnsFalseOnDegenerateGeometry(t *testing.T) {
	d := straightRoad()
	d.Polyline = model.Polyline{{X: 0, Y: 0}}
	_, ok := computeInternalShape(d, -1, model.ContactStart)
	assert.False(t, ok)
}

func TestOffsetPolylinePerpZeroOffsetCopiesPoints(t *testing.T) {
	pl := model.Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}}
	out := offsetPolylinePerp(pl, 0)
	assert.Equal(t, pl, out)
}

func TestFindReferenceLaneMatchesPredecessorAtStart(t *testing.T) {
	d := straightRoad()
	ref := findReferenceLane(d.LaneSections[0], model.SideRight, -1, model.ContactStart)
	require.NotNil(t, ref)
	assert.Equal(t, -1, ref.ID)
}

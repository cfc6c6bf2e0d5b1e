package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fib-lab/opendrive-importer/model"
)

func TestPointDistance2DIgnoresZ(t *testing.T) {
	a := model.Point{X: 0, Y: 0, Z: 100}
	b := model.Point{X: 3, Y: 4, Z: -100}
	assert.InDelta(t, 5.0, a.Distance2D(b), 1e-9)
}

func TestPointAlmostSame(t *testing.T) {
	a := model.Point{X: 0, Y: 0}
	b := model.Point{X: 0.0005, Y: 0}
	assert.True(t, a.AlmostSame(b, model.Epsilon))
	assert.False(t, a.AlmostSame(b, 1e-6))
}

func TestPolylineLength2D(t *testing.T) {
	pl := model.Polyline{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 8}}
	assert.InDelta(t, 9.0, pl.Length2D(), 1e-9)
}

func TestPolylineBoundingBoxAndUnion(t *testing.T) {
	pl := model.Polyline{{X: -1, Y: 2}, {X: 5, Y: -3}}
	box, ok := pl.BoundingBox()
	assert.True(t, ok)
	assert.Equal(t, model.BBox{MinX: -1, MaxX: 5, MinY: -3, MaxY: 2}, box)

	other := model.BBox{MinX: 0, MaxX: 10, MinY: 0, MaxY: 1}
	union := box.Union(other)
	assert.Equal(t, model.BBox{MinX: -1, MaxX: 10, MinY: -3, MaxY: 2}, union)
	assert.Equal(t, model.Point{X: 4.5, Y: -0.5}, union.Center())

	_, ok = model.Polyline{}.BoundingBox()
	assert.False(t, ok)
}

func TestPolylineReversed(t *testing.T) {
	pl := model.Polyline{{X: 0}, {X: 1}, {X: 2}}
	rev := pl.Reversed()
	assert.Equal(t, model.Polyline{{X: 2}, {X: 1}, {X: 0}}, rev)
	assert.Equal(t, model.Polyline{{X: 0}, {X: 1}, {X: 2}}, pl, "Reversed must not mutate the receiver")
}

func TestPointHeading2D(t *testing.T) {
	a := model.Point{X: 0, Y: 0}
	b := model.Point{X: 1, Y: 1}
	assert.InDelta(t, math.Pi/4, a.Heading2D(b), 1e-9)
}

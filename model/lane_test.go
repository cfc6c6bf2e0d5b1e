package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fib-lab/opendrive-importer/model"
)

func TestLaneWidthAtUsesActiveEntry(t *testing.T) {
	l := &model.Lane{Widths: []model.WidthEntry{
		{SOffset: 0, Poly: model.CubicPoly{A: 3.0}},
		{SOffset: 10, Poly: model.CubicPoly{A: 3.5}},
	}}
	assert.InDelta(t, 3.0, l.WidthAt(5), 1e-9)
	assert.InDelta(t, 3.5, l.WidthAt(10), 1e-9)
	assert.InDelta(t, 3.5, l.WidthAt(20), 1e-9)
}

func TestLaneWidthAtEmptyIsZero(t *testing.T) {
	l := &model.Lane{}
	assert.Equal(t, 0.0, l.WidthAt(5))
}

func TestLaneSpeedAt(t *testing.T) {
	l := &model.Lane{Speeds: []model.SpeedEntry{
		{SOffset: 0, Speed: 13.89},
		{SOffset: 30, Speed: 8.33},
	}}
	sp, ok := l.SpeedAt(10)
	assert.True(t, ok)
	assert.InDelta(t, 13.89, sp.Speed, 1e-9)

	sp, ok = l.SpeedAt(30)
	assert.True(t, ok)
	assert.InDelta(t, 8.33, sp.Speed, 1e-9)

	_, ok = (&model.Lane{}).SpeedAt(0)
	assert.False(t, ok)
}

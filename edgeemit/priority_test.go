package edgeemit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fib-lab/opendrive-importer/model"
)

func TestComputePriorityDefaultsToOneOnEachSide(t *testing.T) {
	right, left := computePriority(nil)
	assert.Equal(t, 1, right)
	assert.Equal(t, 1, left)
}

func TestComputePriorityPriorityRoadSignal(t *testing.T) {
	right, left := computePriority([]model.Signal{
		{Type: "301", Orientation: 1},
	})
	assert.Equal(t, 2, right)
	assert.Equal(t, 1, left)
}

func TestComputePriorityYieldSignalOnLeftSide(t *testing.T) {
	right, left := computePriority([]model.Signal{
		{Type: "205", Orientation: -1},
	})
	assert.Equal(t, 1, right)
	assert.Equal(t, 0, left)
}

func TestComputePriorityIgnoresUnknownSignalTypes(t *testing.T) {
	right, left := computePriority([]model.Signal{
		{Type: "999", Orientation: 1},
	})
	assert.Equal(t, 1, right)
	assert.Equal(t, 1, left)
}

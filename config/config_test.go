package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fib-lab/opendrive-importer/config"
)

func TestNewRuntimeConfigDefaultsZeroCurveResolution(t *testing.T) {
	rc := config.NewRuntimeConfig(config.Config{})
	assert.Equal(t, 1.0, rc.All.CurveResolution)
}

func TestNewRuntimeConfigKeepsExplicitCurveResolution(t *testing.T) {
	rc := config.NewRuntimeConfig(config.Config{CurveResolution: 0.25})
	assert.Equal(t, 0.25, rc.All.CurveResolution)
}

func TestNewRuntimeConfigPassesThroughOtherFields(t *testing.T) {
	rc := config.NewRuntimeConfig(config.Config{
		ImportAllLanes: true,
		IgnoreWidths:   true,
		MinWidth:       2.5,
		InternalShapes: true,
	})
	assert.True(t, rc.All.ImportAllLanes)
	assert.True(t, rc.All.IgnoreWidths)
	assert.Equal(t, 2.5, rc.All.MinWidth)
	assert.True(t, rc.All.InternalShapes)
}

// Package config holds the core's enumerated options: a plain
// YAML-serializable Config, wrapped in a RuntimeConfig that fills in
// defaults and is what actually gets threaded through the core.
package config

// Config is the YAML-serializable set of enumerated import options.
type Config struct {
	ImportAllLanes  bool    `yaml:"import-all-lanes"`
	IgnoreWidths    bool    `yaml:"ignore-widths"`
	MinWidth        float64 `yaml:"min-width"`
	InternalShapes  bool    `yaml:"internal-shapes"`
	CurveResolution float64 `yaml:"curve-resolution"`
}

// RuntimeConfig is the resolved configuration threaded through every core
// subsystem as an immutable value, never a process-wide global.
type RuntimeConfig struct {
	All Config
}

// NewRuntimeConfig fills in defaults (a non-positive CurveResolution is
// replaced by 1 metre, since the Geometry Engine steps along curves by
// that distance) and returns the resolved configuration.
func NewRuntimeConfig(c Config) *RuntimeConfig {
	rc := &RuntimeConfig{All: c}
	if rc.All.CurveResolution <= 0 {
		rc.All.CurveResolution = 1.0
	}
	return rc
}

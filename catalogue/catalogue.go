// Package catalogue implements the injected type-catalogue collaborator:
// per lane-type defaults for speed, width, width quantisation,
// permissions, and whether the type is discarded from lane-mapping.
package catalogue

import (
	"fmt"
	"os"

	"github.com/fib-lab/opendrive-importer/model"
	"gopkg.in/yaml.v2"
)

// Entry is one lane-type's catalogue row.
type Entry struct {
	DefaultSpeed    float64 `yaml:"default-speed"`
	DefaultWidth    float64 `yaml:"default-width"`
	WidthResolution float64 `yaml:"width-resolution"`
	MaxWidth        float64 `yaml:"max-width"`
	Permissions     uint32  `yaml:"-"`
	PermissionNames []string `yaml:"permissions"`
	Discard         bool    `yaml:"discard"`
}

// Catalogue maps a lane-type string to its Entry.
type Catalogue struct {
	entries map[string]Entry
}

var permByName = map[string]uint32{
	"driving":   model.PermDriving,
	"walking":   model.PermWalking,
	"rail":      model.PermRail,
	"emergency": model.PermEmergency,
	"authority": model.PermAuthority,
}

// New builds a Catalogue from a map of lane-type to Entry, resolving each
// entry's PermissionNames into its Permissions bitmask.
func New(entries map[string]Entry) *Catalogue {
	c := &Catalogue{entries: make(map[string]Entry, len(entries))}
	for typ, e := range entries {
		for _, name := range e.PermissionNames {
			e.Permissions |= permByName[name]
		}
		c.entries[typ] = e
	}
	return c
}

// Load reads a YAML file of the form `{type-name: entry}` via
// gopkg.in/yaml.v2.
func Load(path string) (*Catalogue, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalogue: read %s: %w", path, err)
	}
	var m map[string]Entry
	if err := yaml.UnmarshalStrict(raw, &m); err != nil {
		return nil, fmt.Errorf("catalogue: parse %s: %w", path, err)
	}
	return New(m), nil
}

// Lookup returns the entry for typ and whether typ is in the catalogue.
// For an absent type it returns the zero Entry and false; callers fall
// back to Default themselves.
func (c *Catalogue) Lookup(typ string) (Entry, bool) {
	e, ok := c.entries[typ]
	return e, ok
}

// Default is used for a type absent from the catalogue entirely.
var Default = Entry{
	DefaultSpeed: 13.89, // 50 km/h
	DefaultWidth: 3.5,
	Permissions:  model.PermDriving,
}

// Package modeldef defines the declarative shape of a model: the tree of
// settings, climate drivers, components, and connections a user writes
// down, and the DefinitionProvider interface that loads it from a
// backing store. This mirrors pkg/config's ConfigProvider/ConfigData
// split (YAML and SQLite backends sharing one data shape) adapted from a
// weather-station device fleet to a hydrologic network.
package modeldef

import (
	"fmt"
	"path/filepath"

	"github.com/basinsim/basinsim/internal/simerrors"
)

// Definition is the complete declared model: its identity, simulation
// window, climate drivers, the component graph, and the connections
// wiring outputs to inputs.
type Definition struct {
	Name        string
	Description string
	StartDate   string
	EndDate     string

	Climate     ClimateDefinition
	Components  []ComponentDefinition
	Connections []ConnectionDefinition
}

// ClimateDefinition declares how the three required climate drivers
// (and the optional evaporation driver) are sourced.
type ClimateDefinition struct {
	Precipitation DriverDefinition
	Temperature   DriverDefinition
	ET            DriverDefinition
	Evaporation   *DriverDefinition // nil when the model has no separate evaporation driver
}

// DriverDefinition declares one driver: "timeseries" backed by a CSV
// column, "wgen" backed by the correlated stochastic weather generator,
// or "stochastic" backed by an independent parametric distribution.
type DriverDefinition struct {
	Kind string // "timeseries", "wgen", or "stochastic"

	// timeseries fields
	Path   string
	Column string

	// wgen and stochastic fields
	Seed     uint64
	StartWet bool
	Latitude float64
	Params   map[string]any
}

// ComponentDefinition declares one node of the network: its name, kind
// ("catchment", "reservoir", "demand", "diversion", "junction", "pump",
// "lagged_value"), and its kind-specific parameters.
type ComponentDefinition struct {
	Name   string
	Kind   string
	Params ComponentParams
}

// ComponentParams is a loosely typed parameter bag, read by each
// component's factory function. Keeping this map-shaped instead of one
// struct per kind mirrors the spec's own loose string-to-scalar
// inputs/outputs contract and keeps modeldef decoupled from
// internal/components.
type ComponentParams map[string]any

// Float reads a required float64 parameter.
func (p ComponentParams) Float(key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("missing required parameter %q", key)
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("parameter %q is not numeric: %v", key, v)
	}
	return f, nil
}

// FloatOr reads an optional float64 parameter, returning def if absent.
func (p ComponentParams) FloatOr(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	f, ok := toFloat(v)
	if !ok {
		return def
	}
	return f
}

// String reads a required string parameter.
func (p ComponentParams) String(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", fmt.Errorf("missing required parameter %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q is not a string: %v", key, v)
	}
	return s, nil
}

// StringOr reads an optional string parameter, returning def if absent.
func (p ComponentParams) StringOr(key, def string) string {
	v, ok := p[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// Bool reads an optional bool parameter, returning false if absent.
func (p ComponentParams) Bool(key string) bool {
	v, ok := p[key]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// ValidateRelativePath rejects an absolute file path, the portability
// rule original_source/waterlib/utils/path_validation.py enforces: a
// path recorded in a model definition must keep working when the model
// moves to another machine, so "/home/user/data/rain.csv" is rejected
// in favor of "../data/rain.csv". An empty path (field not set) passes.
func ValidateRelativePath(path, component, field string) error {
	if path == "" {
		return nil
	}
	if filepath.IsAbs(path) {
		return &simerrors.ConfigurationError{
			Component: component, Field: field,
			Reason: fmt.Sprintf("uses absolute path %q; use a relative path for portability", path),
		}
	}
	return nil
}

// FloatRange reads a required float64 parameter and checks it falls
// within [min, max] inclusive.
func (p ComponentParams) FloatRange(key string, min, max float64) (float64, error) {
	v, err := p.Float(key)
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, fmt.Errorf("parameter %q = %v out of range [%v, %v]", key, v, min, max)
	}
	return v, nil
}

// FloatRangeOr reads an optional float64 parameter, returning def if
// absent, and checks it falls within [min, max] inclusive when present.
func (p ComponentParams) FloatRangeOr(key string, def, min, max float64) (float64, error) {
	if _, ok := p[key]; !ok {
		return def, nil
	}
	return p.FloatRange(key, min, max)
}

// FloatMin reads a required float64 parameter and checks it is strictly
// greater than min (the "non-positive capacity" rejection rule).
func (p ComponentParams) FloatMin(key string, min float64) (float64, error) {
	v, err := p.Float(key)
	if err != nil {
		return 0, err
	}
	if v <= min {
		return 0, fmt.Errorf("parameter %q = %v must be greater than %v", key, v, min)
	}
	return v, nil
}

// ConnectionDefinition wires one component's output to another
// component's named input. A connection targeting a "lagged_value"
// component is a feedback edge for graph-ordering purposes.
type ConnectionDefinition struct {
	FromComponent string
	FromOutput    string
	ToComponent   string
	ToInput       string
}

// DefinitionProvider loads a Definition from a backing store. Two
// implementations are provided: YAMLProvider for file-based definitions
// and SQLiteProvider for definitions stored in a database, mirroring
// pkg/config's ConfigProvider split.
type DefinitionProvider interface {
	Load() (*Definition, error)
	Close() error
}

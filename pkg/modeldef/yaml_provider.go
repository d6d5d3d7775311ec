package modeldef

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider loads a Definition from a YAML file, the format this
// module's scenario files use day to day, grounded on pkg/config's
// YAMLProvider (unmarshal into YAML-tagged mirror structs, then convert
// into the package's own types).
type YAMLProvider struct {
	path string
}

// NewYAMLProvider builds a provider reading from path.
func NewYAMLProvider(path string) *YAMLProvider {
	return &YAMLProvider{path: path}
}

type yamlDefinition struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	StartDate   string              `yaml:"start_date"`
	EndDate     string              `yaml:"end_date"`
	Climate     yamlClimate         `yaml:"climate"`
	Components  []yamlComponent     `yaml:"components"`
	Connections []yamlConnection    `yaml:"connections"`
}

type yamlClimate struct {
	Precipitation yamlDriver  `yaml:"precipitation"`
	Temperature   yamlDriver  `yaml:"temperature"`
	ET            yamlDriver  `yaml:"et"`
	Evaporation   *yamlDriver `yaml:"evaporation,omitempty"`
}

type yamlDriver struct {
	Kind     string         `yaml:"kind"`
	Path     string         `yaml:"path,omitempty"`
	Column   string         `yaml:"column,omitempty"`
	Seed     uint64         `yaml:"seed,omitempty"`
	StartWet bool           `yaml:"start_wet,omitempty"`
	Latitude float64        `yaml:"latitude,omitempty"`
	Params   map[string]any `yaml:"params,omitempty"`
}

type yamlComponent struct {
	Name   string         `yaml:"name"`
	Kind   string         `yaml:"kind"`
	Params map[string]any `yaml:"params"`
}

type yamlConnection struct {
	From string `yaml:"from"` // "component.output"
	To   string `yaml:"to"`   // "component.input"
}

// Load reads and parses the YAML file at the provider's path.
func (p *YAMLProvider) Load() (*Definition, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, err
	}

	var doc yamlDefinition
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	def := &Definition{
		Name:        doc.Name,
		Description: doc.Description,
		StartDate:   doc.StartDate,
		EndDate:     doc.EndDate,
		Climate: ClimateDefinition{
			Precipitation: fromYAMLDriver(doc.Climate.Precipitation),
			Temperature:   fromYAMLDriver(doc.Climate.Temperature),
			ET:            fromYAMLDriver(doc.Climate.ET),
		},
	}
	if doc.Climate.Evaporation != nil {
		ev := fromYAMLDriver(*doc.Climate.Evaporation)
		def.Climate.Evaporation = &ev
	}

	for _, c := range doc.Components {
		def.Components = append(def.Components, ComponentDefinition{
			Name:   c.Name,
			Kind:   c.Kind,
			Params: ComponentParams(normalizeYAML(c.Params).(map[string]any)),
		})
	}

	for _, conn := range doc.Connections {
		fromComp, fromOut := splitRef(conn.From)
		toComp, toIn := splitRef(conn.To)
		def.Connections = append(def.Connections, ConnectionDefinition{
			FromComponent: fromComp,
			FromOutput:    fromOut,
			ToComponent:   toComp,
			ToInput:       toIn,
		})
	}

	if err := validatePaths(def); err != nil {
		return nil, err
	}

	return def, nil
}

// validatePaths rejects any absolute file path recorded in def: a
// climate driver's path/column source or a component's eav_table.
func validatePaths(def *Definition) error {
	drivers := []struct {
		label string
		d     DriverDefinition
	}{
		{"climate.precipitation", def.Climate.Precipitation},
		{"climate.temperature", def.Climate.Temperature},
		{"climate.et", def.Climate.ET},
	}
	if def.Climate.Evaporation != nil {
		drivers = append(drivers, struct {
			label string
			d     DriverDefinition
		}{"climate.evaporation", *def.Climate.Evaporation})
	}
	for _, entry := range drivers {
		if err := ValidateRelativePath(entry.d.Path, entry.label, "path"); err != nil {
			return err
		}
	}

	for _, c := range def.Components {
		if eavPath, ok := c.Params["eav_table"].(string); ok {
			if err := ValidateRelativePath(eavPath, c.Name, "eav_table"); err != nil {
				return err
			}
		}
	}

	return nil
}

// Close is a no-op: the file was read fully in Load.
func (p *YAMLProvider) Close() error { return nil }

func fromYAMLDriver(d yamlDriver) DriverDefinition {
	var params map[string]any
	if d.Params != nil {
		params = normalizeYAML(d.Params).(map[string]any)
	}
	return DriverDefinition{
		Kind:     d.Kind,
		Path:     d.Path,
		Column:   d.Column,
		Seed:     d.Seed,
		StartWet: d.StartWet,
		Latitude: d.Latitude,
		Params:   params,
	}
}

// normalizeYAML recursively converts gopkg.in/yaml.v2's untyped decode
// output (map[interface{}]interface{} for any nested mapping) into
// map[string]any, so ComponentParams and DriverDefinition.Params can be
// walked the same way regardless of nesting depth.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]any, len(val))
		for k, vv := range val {
			m[fmt.Sprintf("%v", k)] = normalizeYAML(vv)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]any, len(val))
		for k, vv := range val {
			m[k] = normalizeYAML(vv)
		}
		return m
	case []interface{}:
		s := make([]any, len(val))
		for i, vv := range val {
			s[i] = normalizeYAML(vv)
		}
		return s
	default:
		return v
	}
}

// splitRef splits a "component.field" reference on the last dot, since
// component names themselves never contain one.
func splitRef(ref string) (component, field string) {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == '.' {
			return ref[:i], ref[i+1:]
		}
	}
	return ref, ""
}

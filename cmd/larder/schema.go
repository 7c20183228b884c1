// Schema file loading for the larder CLI. The schema authority is
// external to the engine; the CLI accepts a YAML description so cells
// decode with their declared types.
package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// schemaFile mirrors the YAML schema format.
type schemaFile struct {
	Entities []struct {
		Name       string `yaml:"name"`
		Attributes []struct {
			Name      string `yaml:"name"`
			Type      string `yaml:"type"`
			Transient bool   `yaml:"transient"`
		} `yaml:"attributes"`
		Relationships []struct {
			Name   string `yaml:"name"`
			Target string `yaml:"target"`
			ToMany bool   `yaml:"tomany"`
		} `yaml:"relationships"`
	} `yaml:"entities"`
}

// loadSchemaFile parses a YAML schema description into a Schema.
func loadSchemaFile(path string) (types.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf schemaFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	schema := make(types.Schema, len(sf.Entities))
	for _, se := range sf.Entities {
		if se.Name == "" {
			return nil, fmt.Errorf("%s: entity without a name", path)
		}
		ent := &types.Entity{Name: se.Name}
		for _, sa := range se.Attributes {
			if !types.IsValidValueType(sa.Type) {
				return nil, fmt.Errorf("%s: entity %s attribute %s: %w: %q",
					path, se.Name, sa.Name, types.ErrUnknownValueType, sa.Type)
			}
			ent.Attributes = append(ent.Attributes, types.Attribute{
				Name:      sa.Name,
				Type:      sa.Type,
				Transient: sa.Transient,
			})
		}
		for _, sr := range se.Relationships {
			ent.Relationships = append(ent.Relationships, types.Relationship{
				Name:   sr.Name,
				Target: sr.Target,
				ToMany: sr.ToMany,
			})
		}
		schema[ent.Name] = ent
	}
	return schema, nil
}

package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// JSONSchema returns the JSON Schema of the config file, for editors that
// validate YAML against a schema.
func JSONSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		FieldNameTag:   "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "vitestrap configuration"
	schema.Description = "Configuration schema for ~/.vitestrap/config.yaml."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	return append(data, '\n'), nil
}

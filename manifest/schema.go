package manifest

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for the manifest model. It
// reflects the Config struct; the Extensions field is excluded, and the top
// level stays open so extension blocks like ci validate.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Repo and hook entries are closed so typos in keys are caught.
		AllowAdditionalProperties: false,
		// Expand the root struct instead of hiding it behind a $ref.
		ExpandedStruct: true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "pre-commit configuration"
	schema.Description = "Schema for .pre-commit-config.yaml hook manifests."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	// Extension keys (ci and forward-compatible blocks) live at the top level.
	schema.AdditionalProperties = nil

	return json.MarshalIndent(schema, "", "  ")
}

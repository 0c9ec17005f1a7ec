package stats

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaJSON renders the JSON Schema for the catalog file format so editor
// tooling can validate authored bestiaries without importing this package.
func SchemaJSON() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: false,
	}
	schema := reflector.Reflect(&catalogFile{})
	schema.Title = "Monster stat catalog"
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal catalog schema: %w", err)
	}
	return data, nil
}

package touch

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// InputSchema returns the JSON schema of a single TouchInput record as
// written by recording and replay tools.
func InputSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(&TouchInput{})
	schema.Title = "TouchInput"
	schema.Description = "One raw touch-contact event"
	return schema
}

// InputSchemaJSON returns InputSchema as indented JSON.
func InputSchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(InputSchema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal input schema: %w", err)
	}
	return data, nil
}

// Package flatten converts serializable values into flat string-keyed
// mappings by way of a JSON round trip. This is how structured endpoint
// parameters become query items or body fields.
package flatten

import (
	"encoding/json"
	"fmt"
)

// Flatten serializes value to JSON and reads it back as a string-keyed
// mapping. It fails when value is not serializable or does not serialize to
// an object.
func Flatten(value any) (map[string]any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("flatten: value not serializable: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("flatten: value does not serialize to a mapping: %w", err)
	}
	return out, nil
}

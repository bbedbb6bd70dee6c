package assistant

import (
	"encoding/json"
	"fmt"
)

// DecodeJSON unmarshals a reply that has already been validated against the
// output schema.
func DecodeJSON[T any](raw []byte) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("invalid JSON: %w", err)
	}
	return v, nil
}

package components

import (
	"encoding/json"
)

// JSON marshals an object to a JSON string, returning "{}" on error.
// Used for data-* attributes read by the page scripts.
func JSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

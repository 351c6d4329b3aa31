package data

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Record is the user-supplied data to put into the form: a flat mapping
// from field name to scalar value (string, bool, or number).
type Record map[string]any

// Load reads a JSON object from path and flattens any nested structure
// into dotted keys.
func Load(path string) (Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse data file %s: %w", path, err)
	}
	return Flatten(parsed), nil
}

// Flatten turns nested objects and arrays into a flat record with dotted
// keys, e.g. {"attorney": {"city": "Boston"}} -> {"attorney.city": "Boston"}.
func Flatten(in map[string]any) Record {
	out := make(Record)
	for key, value := range in {
		flattenValue(out, key, value)
	}
	return out
}

func flattenValue(out Record, key string, value any) {
	switch v := value.(type) {
	case map[string]any:
		for k, nested := range v {
			flattenValue(out, key+"."+k, nested)
		}
	case []any:
		for i, item := range v {
			flattenValue(out, key+"."+strconv.Itoa(i), item)
		}
	default:
		out[key] = value
	}
}

// String renders a value the way it should be typed into a form field.
func String(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Truthy reports whether a value means "checked" for checkbox and radio
// inputs. Accepts the spellings the data files actually use.
func Truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch v {
		case "true", "True", "yes", "Yes", "y", "Y", "1":
			return true
		}
		return false
	case float64:
		return v != 0
	default:
		return false
	}
}

// Package payload normalizes the semi-structured JSON returned by the
// telemetry API: extracting record rows from the varying envelope shapes,
// flattening nested records into dotted leaf paths, and coercing leaf
// values into numbers.
package payload

// Record is one unit of data returned by the remote API. There is no fixed
// schema; values may be scalars, nested mappings, or lists.
type Record = map[string]any

// containerKeys are probed in order when the response envelope is an object
// rather than a bare list.
var containerKeys = []string{"result", "data"}

// Rows normalizes a decoded JSON payload into a flat slice of records.
//
// A bare list yields its object elements (anything else is dropped). An
// object envelope is probed for the known container keys: the first one
// present holding a list yields that list's object elements, the first one
// holding an object yields that object as the only record. An envelope with
// neither container key is itself treated as a single record, unless it is
// structurally empty. Any other shape yields no rows, which the paginator
// reads as end-of-data.
func Rows(v any) []Record {
	switch t := v.(type) {
	case []any:
		return objectElements(t)
	case map[string]any:
		for _, key := range containerKeys {
			switch inner := t[key].(type) {
			case []any:
				return objectElements(inner)
			case map[string]any:
				return []Record{inner}
			}
		}
		for _, val := range t {
			if val != nil {
				return []Record{t}
			}
		}
	}
	return nil
}

func objectElements(list []any) []Record {
	rows := make([]Record, 0, len(list))
	for _, el := range list {
		if m, ok := el.(map[string]any); ok {
			rows = append(rows, m)
		}
	}
	return rows
}

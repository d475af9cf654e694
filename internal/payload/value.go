package payload

import (
	"strconv"
	"strings"
)

// ValueAt extracts the leaf at the dotted path from rec and coerces it to a
// float64. The boolean result is false when the record does not contribute a
// value: the path is missing, the leaf is null, or the leaf cannot be parsed
// as a number. Callers treat false as "skip this record", never as an error.
//
// Descent is structural first: the path is split on "." and followed key by
// key through nested mappings. If descent fails at some step, the subtree at
// the failure point is walked and the first leaf whose full dotted path
// matches the original path case-insensitively is used instead. The walk
// order is deterministic, so duplicate paths under a list always resolve to
// the same leaf.
func ValueAt(rec Record, path string) (float64, bool) {
	cur := any(rec)
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if ok {
			if next, present := m[part]; present {
				cur = next
				continue
			}
		}
		leaf, found := leafAt(cur, path)
		if !found {
			return 0, false
		}
		cur = leaf
		break
	}
	return Coerce(cur)
}

// leafAt scans v for a leaf whose dotted path equals path, ignoring case.
func leafAt(v any, path string) (any, bool) {
	for k, leaf := range Walk(v, "") {
		if strings.EqualFold(k, path) {
			return leaf, true
		}
	}
	return nil, false
}

// Coerce converts a leaf value to float64. Numbers pass through; strings are
// trimmed, stripped of thousands-separator commas, and parsed. Null, empty
// strings, and unparsable strings coerce to nothing.
func Coerce(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

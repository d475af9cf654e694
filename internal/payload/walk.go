package payload

import (
	"iter"
	"slices"
)

// Walk yields (dotted path, leaf value) pairs for every leaf under v,
// depth-first. Mapping keys extend the path with a "." separator; lists are
// transparent, so every leaf under a list shares the list's prefix and a
// dotted path is not necessarily unique within one record. Mapping keys are
// visited in sorted order so the sequence is deterministic for equal inputs.
//
// Each call returns a fresh sequence; it may be ranged over more than once.
func Walk(v any, prefix string) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		walk(v, prefix, yield)
	}
}

func walk(v any, prefix string, yield func(string, any) bool) bool {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			next := k
			if prefix != "" {
				next = prefix + "." + k
			}
			if !walk(t[k], next, yield) {
				return false
			}
		}
	case []any:
		for _, el := range t {
			if !walk(el, prefix, yield) {
				return false
			}
		}
	default:
		return yield(prefix, v)
	}
	return true
}

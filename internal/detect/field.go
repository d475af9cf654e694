// Package detect picks the dotted field path that most likely holds the
// fuel quantity in a sample of telemetry records. The remote schema is not
// fixed, so detection is best-effort: a ranked list of known field names is
// tried first, then a fuzzy textual fallback. Detection runs once per fetch
// cycle against the first non-empty page and the chosen path is reused for
// every record in that cycle.
package detect

import (
	"maps"
	"slices"
	"strings"

	"github.com/blue-edge/carbonclock/internal/payload"
)

// PreferredKeys is the ordered preference list of known fuel field names.
// The first entry present in the sample wins, and the entry itself (not the
// discovered key) is returned, since extraction re-walks records with this
// exact string.
var PreferredKeys = []string{
	"total_fuel_consumed",
	"data.total_fuel_consumed",
	"fuel_consumed",
	"total_fuel",
	"fuel_total",
	"fuel",
}

// sampleLimit bounds how many records feed the candidate set.
const sampleLimit = 10

// FuelKey returns the dotted path to aggregate over, or false when neither
// tier matches and the cycle must fail.
func FuelKey(sample []payload.Record) (string, bool) {
	candidates := candidateSet(sample)

	for _, pref := range PreferredKeys {
		if _, ok := candidates[strings.ToLower(pref)]; ok {
			return pref, true
		}
	}

	// Fuzzy fallback. Candidates are scanned in lexicographic order so the
	// result is stable when several keys qualify.
	for _, k := range slices.Sorted(maps.Keys(candidates)) {
		if strings.Contains(k, "fuel") && (strings.Contains(k, "consum") || strings.Contains(k, "total")) {
			return k, true
		}
	}
	return "", false
}

// candidateSet collects the lowercase dotted paths of scalar, non-null
// leaves from at most the first sampleLimit records.
func candidateSet(sample []payload.Record) map[string]struct{} {
	if len(sample) > sampleLimit {
		sample = sample[:sampleLimit]
	}
	set := make(map[string]struct{})
	for _, rec := range sample {
		for k, v := range payload.Walk(rec, "") {
			if k == "" || !scalar(v) {
				continue
			}
			set[strings.ToLower(k)] = struct{}{}
		}
	}
	return set
}

// scalar reports whether v is a candidate leaf value. Booleans are
// deliberately excluded: a true/false leaf can never be a fuel quantity,
// and admitting one would only let a fuzzy-named flag win the scan.
func scalar(v any) bool {
	switch v.(type) {
	case float64, int, int64, string:
		return true
	}
	return false
}

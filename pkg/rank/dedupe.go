// Package rank collapses duplicate hits and orders the survivors.
package rank

import (
	"github.com/osprey-dev/namesift/pkg/hit"
)

// Dedupe returns at most one hit per identity key, preferring higher
// score, then verified over unverified, then first-seen order. Survivors
// keep the relative order of their first occurrence; a better duplicate
// seen later replaces the earlier entry in place. Runs in O(n).
func Dedupe(hits []hit.RawHit) []hit.RawHit {
	seen := make(map[string]int, len(hits))
	out := make([]hit.RawHit, 0, len(hits))

	for _, h := range hits {
		key := h.Key()
		idx, ok := seen[key]
		if !ok {
			seen[key] = len(out)
			out = append(out, h)
			continue
		}
		if supersedes(&h, &out[idx]) {
			out[idx] = h
		}
	}
	return out
}

// supersedes reports whether the candidate should replace the incumbent
// holding the same identity key.
func supersedes(candidate, incumbent *hit.RawHit) bool {
	if candidate.Score != incumbent.Score {
		return candidate.Score > incumbent.Score
	}
	return candidate.Verified && !incumbent.Verified
}

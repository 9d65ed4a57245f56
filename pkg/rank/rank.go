package rank

import (
	"sort"

	"github.com/osprey-dev/namesift/pkg/hit"
)

// categoryPriorities orders result categories for presentation. Higher
// values sort first. Every genuine category, the uncategorized general
// bucket included, outranks the synthesized fallback entries; categories
// absent from the table rank below all of these.
var categoryPriorities = map[hit.Category]int{ //nolint:gochecknoglobals // static policy table
	hit.CategorySocialMedia:  10,
	hit.CategoryProfessional: 9,
	hit.CategoryAcademic:     8,
	hit.CategoryNews:         7,
	hit.CategoryPersonalWeb:  6,
	hit.CategoryForum:        5,
	hit.CategoryImages:       4,
	hit.CategoryLocation:     3,
	hit.CategoryGeneral:      2,
	hit.CategoryFallback:     1,
}

// Sort orders hits by category priority, then score, both descending.
// The sort is stable: hits tied on both keys keep their input order.
func Sort(hits []hit.RawHit) {
	sort.SliceStable(hits, func(i, j int) bool {
		pi, pj := categoryPriorities[hits[i].Category], categoryPriorities[hits[j].Category]
		if pi != pj {
			return pi > pj
		}
		return hits[i].Score > hits[j].Score
	})
}

// Process is the standard post-aggregation pass: dedupe, then order.
func Process(hits []hit.RawHit) []hit.RawHit {
	out := Dedupe(hits)
	Sort(out)
	return out
}

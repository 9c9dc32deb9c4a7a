package manifest

import (
	"sort"

	"github.com/cratekit/manifest-format/ir"
)

// SortTable reorders t's value entries, and any nested tables that
// resisted collapsing, into byte-lexicographic key order.  Entries are
// transplanted whole, so leading comments travel with their key.
// Reordering counts as a single unit of change.
func SortTable(t *ir.Table) int {
	changed := 0
	if !sortedStrings(t.EntryKeys()) {
		sort.SliceStable(t.Entries, func(i, j int) bool {
			return t.Entries[i].Key < t.Entries[j].Key
		})
		changed = 1
	}
	subKeys := make([]string, len(t.Subs))
	for i, s := range t.Subs {
		subKeys[i] = s.Name()
	}
	if !sortedStrings(subKeys) {
		// keep the same set of section slots, re-dealt in sorted order
		slots := make([]int, len(t.Subs))
		for i, s := range t.Subs {
			slots[i] = s.Pos
		}
		sort.Ints(slots)
		sort.SliceStable(t.Subs, func(i, j int) bool {
			return t.Subs[i].Name() < t.Subs[j].Name()
		})
		for i, s := range t.Subs {
			s.Pos = slots[i]
		}
		changed = 1
	}
	return changed
}

func sortedStrings(keys []string) bool {
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			return false
		}
	}
	return true
}

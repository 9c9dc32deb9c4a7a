package manifest

import (
	"slices"

	"github.com/cratekit/manifest-format/ir"
)

// PackageKeyOrder is the canonical ordering of well-known [package]
// keys.  Keys outside this list keep their original relative order
// after the canonical prefix.
var PackageKeyOrder = []string{
	"name",
	"description",
	"version",
	"edition",
	"license-file",
	"authors",
	"rust-version",
	"readme",
}

// OrderPackage reorders the [package] table's entries: canonical keys
// first in canonical order, remaining keys after in original relative
// order.  Returns 1 when any reordering occurred.
func OrderPackage(t *ir.Table, order []string) int {
	if len(order) == 0 {
		order = PackageKeyOrder
	}
	cur := t.EntryKeys()
	expected := expectedOrder(cur, order)
	if slices.Equal(cur, expected) {
		return 0
	}
	byKey := make(map[string]*ir.Entry, len(t.Entries))
	for _, e := range t.Entries {
		byKey[e.Key] = e
	}
	entries := make([]*ir.Entry, 0, len(t.Entries))
	for _, k := range expected {
		entries = append(entries, byKey[k])
	}
	t.Entries = entries
	return 1
}

// expectedOrder filters the canonical sequence to the keys present,
// then appends the remaining keys in their current relative order.
func expectedOrder(cur, canonical []string) []string {
	res := make([]string, 0, len(cur))
	for _, k := range canonical {
		if slices.Contains(cur, k) {
			res = append(res, k)
		}
	}
	for _, k := range cur {
		if !slices.Contains(canonical, k) {
			res = append(res, k)
		}
	}
	return res
}

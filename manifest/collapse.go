package manifest

import (
	"strings"

	"github.com/cratekit/manifest-format/ir"
)

// CollapseTable converts each collapsible nested table of t into an
// equivalent single-line inline entry, preserving pair order.  A nested
// table is collapsible when every immediate child is a plain value;
// a deeper table, an array-of-tables, or a dotted-key binding leaves it
// untouched.  At least one collapse marks t explicit so it serializes
// with its own header.  Returns the number of entries collapsed.
func CollapseTable(t *ir.Table) int {
	collapsed := 0
	subs := append([]*ir.Table(nil), t.Subs...)
	for _, sub := range subs {
		if !collapsible(sub) {
			continue
		}
		t.RemoveSub(sub)
		t.Entries = append(t.Entries, inlineEntry(sub))
		collapsed++
	}
	if collapsed > 0 {
		t.Implicit = false
	}
	return collapsed
}

func collapsible(sub *ir.Table) bool {
	if sub.ArrayElem || len(sub.Subs) > 0 || len(sub.Arrays) > 0 {
		return false
	}
	for _, e := range sub.Entries {
		// dotted keys carry relational meaning an inline pair would lose
		if e.Dotted {
			return false
		}
	}
	return true
}

func inlineEntry(sub *ir.Table) *ir.Entry {
	// comments in and above the collapsed table stay with the entry as
	// lead lines; blank separator lines would strand inside the
	// rebuilt section
	var lead []string
	keep := func(lines ...string) {
		for _, ln := range lines {
			if strings.TrimSpace(ln) != "" {
				lead = append(lead, ln)
			}
		}
	}
	keep(sub.Lead...)
	val := "{}"
	if len(sub.Entries) > 0 {
		pairs := make([]string, len(sub.Entries))
		for i, e := range sub.Entries {
			keep(e.Lead...)
			if e.Trail != "" {
				keep(e.Trail)
			}
			pairs[i] = e.RawKey + " = " + e.RawValue
		}
		val = "{ " + strings.Join(pairs, ", ") + " }"
	}
	return &ir.Entry{
		Key:      sub.Name(),
		Kind:     ir.Inline,
		Lead:     lead,
		RawKey:   sub.RawKey[len(sub.RawKey)-1],
		RawValue: val,
	}
}

package manifest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cratekit/manifest-format/encode"
	"github.com/cratekit/manifest-format/ir"
	"github.com/cratekit/manifest-format/parse"
	"github.com/cratekit/manifest-format/token"
)

// SectionOrder is the canonical ordering of top-level manifest
// sections.  Sections outside this list keep their original relative
// order after the canonical prefix.
var SectionOrder = []string{
	"package",
	"lib",
	"bin",
	"test",
	"bench",
	"example",
	"dependencies",
	"dev-dependencies",
	"build-dependencies",
	"target",
	"features",
}

// ReorderSections rewrites the document so its top-level sections
// follow canonical order.  The reordering is textual: the serialized
// document is split into per-section blocks on header lines, blocks are
// reassembled in expected order, and the result is re-parsed, which
// preserves each section's internal formatting exactly.  Nested headers
// ([target."cfg(unix)".dependencies]) travel with their top-level
// block, as do contiguous array-of-tables entries.  Text before the
// first header is kept verbatim as a leading block and takes no part in
// the ordering.
//
// The returned document replaces the input whenever a reorder occurred.
func ReorderSections(doc *ir.Document, order []string) (*ir.Document, int, error) {
	if len(order) == 0 {
		order = SectionOrder
	}
	cur := doc.Sections()
	expected := expectedOrder(cur, order)
	if slices.Equal(cur, expected) {
		return doc, 0, nil
	}
	text, err := reassemble(encode.String(doc), expected)
	if err != nil {
		return nil, 0, err
	}
	nd, err := parse.Parse([]byte(text))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: re-parse failed: %v", ErrReorder, err)
	}
	return nd, 1, nil
}

func reassemble(text string, expected []string) (string, error) {
	lines := strings.Split(text, "\n")
	if strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}

	blocks := map[string]*strings.Builder{}
	var captured []string
	var preamble strings.Builder
	var cur strings.Builder
	curName := ""

	flush := func() {
		if curName == "" {
			preamble.WriteString(cur.String())
		} else if b, ok := blocks[curName]; ok {
			// a non-contiguous repeat of a key appends to the
			// earlier capture rather than replacing it
			b.WriteString(cur.String())
		} else {
			b := &strings.Builder{}
			b.WriteString(cur.String())
			blocks[curName] = b
			captured = append(captured, curName)
		}
		cur.Reset()
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			path, _, err := token.HeaderPath(line)
			if err != nil {
				return "", fmt.Errorf("%w: %v", ErrReorder, err)
			}
			if name := path[0]; name != curName {
				flush()
				curName = name
			}
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
	flush()

	var out strings.Builder
	out.WriteString(preamble.String())
	emit := func(name string) {
		b, ok := blocks[name]
		if !ok {
			return
		}
		if out.Len() > 0 && !strings.HasSuffix(out.String(), "\n\n") {
			out.WriteByte('\n')
		}
		out.WriteString(b.String())
		delete(blocks, name)
	}
	for _, name := range expected {
		emit(name)
	}
	// anything the expected order did not account for is appended in
	// capture order so no content is ever dropped
	for _, name := range captured {
		emit(name)
	}
	// a moved block drags its separator along; settle on a single
	// final newline
	res := strings.TrimRight(out.String(), "\n")
	if res != "" {
		res += "\n"
	}
	return res, nil
}

// Package encode re-serializes an ir document to Cargo.toml text.
// Preserved raw text is replayed verbatim; only nodes a transform
// rewrote (collapsed inline entries, headers synthesized for tables
// flipped from implicit to explicit) get generated text.
package encode

import (
	"bytes"
	"io"
	"sort"

	"github.com/cratekit/manifest-format/ir"
)

// Encode writes the document to w.  An unmodified document reproduces
// its source bytes exactly.
func Encode(doc *ir.Document, w io.Writer) error {
	_, err := w.Write([]byte(String(doc)))
	return err
}

// String renders the document to a string.
func String(doc *ir.Document) string {
	var buf bytes.Buffer
	for _, e := range doc.Root.Entries {
		writeEntry(&buf, e)
	}
	for _, t := range sections(doc) {
		for _, ln := range t.Lead {
			writeLine(&buf, ln)
		}
		writeLine(&buf, t.HeaderText())
		for _, e := range t.Entries {
			writeEntry(&buf, e)
		}
	}
	for _, ln := range doc.Trailer {
		writeLine(&buf, ln)
	}
	out := buf.String()
	if doc.NoFinalNewline && len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	return out
}

func writeLine(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
	buf.WriteByte('\n')
}

func writeEntry(buf *bytes.Buffer, e *ir.Entry) {
	for _, ln := range e.Lead {
		writeLine(buf, ln)
	}
	if e.Raw != "" {
		writeLine(buf, e.Raw)
		return
	}
	writeLine(buf, e.RawKey+" = "+e.RawValue)
}

// sections collects every table that emits a header, in serialized
// (Pos) order.
func sections(doc *ir.Document) []*ir.Table {
	var res []*ir.Table
	var walk func(t *ir.Table)
	walk = func(t *ir.Table) {
		for _, sub := range t.Subs {
			if !sub.Implicit || len(sub.Entries) > 0 {
				res = append(res, sub)
			}
			walk(sub)
		}
		for _, arr := range t.Arrays {
			for _, inst := range arr.Tables {
				res = append(res, inst)
				walk(inst)
			}
		}
	}
	walk(doc.Root)
	sort.SliceStable(res, func(i, j int) bool { return res[i].Pos < res[j].Pos })
	return res
}

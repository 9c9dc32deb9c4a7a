// Package parse builds the ir document tree from scanned manifest
// source.
package parse

import (
	"fmt"
	"strings"

	"github.com/cratekit/manifest-format/ir"
	"github.com/cratekit/manifest-format/token"
)

// Parse parses one Cargo.toml's source into a document.  The document
// re-serializes byte-identically while unmodified.
func Parse(d []byte) (*ir.Document, error) {
	items, err := token.Scan(d)
	if err != nil {
		return nil, err
	}
	doc := ir.NewDocument()
	cur := doc.Root
	var lead []string
	for idx := range items {
		it := &items[idx]
		switch it.Type {
		case token.Blank, token.Comment:
			lead = append(lead, it.Lines...)
		case token.Header:
			t, err := defineTable(doc, it)
			if err != nil {
				return nil, err
			}
			t.Lead, lead = lead, nil
			t.RawHeader = it.Lines[0]
			cur = t
		case token.ArrayHeader:
			t, err := appendArrayTable(doc, it)
			if err != nil {
				return nil, err
			}
			t.Lead, lead = lead, nil
			t.RawHeader = it.Lines[0]
			cur = t
		case token.KeyValue:
			if cur.Entry(it.Key) != nil {
				return nil, fmt.Errorf("%w: %s: duplicate key %q", ErrParse, it.Pos, it.Key)
			}
			if err := checkEntryConflict(cur, it); err != nil {
				return nil, err
			}
			e := &ir.Entry{
				Key:      it.Key,
				Parts:    it.Parts,
				Dotted:   it.Dotted,
				Kind:     classify(it.RawValue),
				Lead:     lead,
				Raw:      strings.Join(it.Lines, "\n"),
				RawKey:   it.RawKey,
				RawValue: it.RawValue,
				Trail:    it.Trail,
			}
			lead = nil
			cur.Entries = append(cur.Entries, e)
		}
	}
	doc.Trailer = lead
	doc.NoFinalNewline = len(d) > 0 && d[len(d)-1] != '\n'
	return doc, nil
}

func classify(raw string) ir.Kind {
	switch {
	case raw == "":
		return ir.Scalar
	case raw[0] == '{':
		return ir.Inline
	case raw[0] == '[':
		return ir.Array
	}
	return ir.Scalar
}

// checkEntryConflict rejects a binding whose leading key part already
// names a table or array-of-tables group, or clashes with an existing
// binding the other side of the dotted/plain divide (foo = 1 followed
// by foo.bar = 2, or the reverse).
func checkEntryConflict(t *ir.Table, it *token.Item) error {
	first := it.Parts[0]
	if t.Sub(first) != nil || t.Array(first) != nil {
		return fmt.Errorf("%w: %s: key %q conflicts with table [%s]",
			ErrParse, it.Pos, it.Key, first)
	}
	for _, e := range t.Entries {
		if e.FirstPart() == first && e.Dotted != it.Dotted {
			return fmt.Errorf("%w: %s: key %q conflicts with key %q",
				ErrParse, it.Pos, it.Key, e.Key)
		}
	}
	return nil
}

// entryNamed reports whether the table holds a binding whose leading
// key part is name.
func entryNamed(t *ir.Table, name string) bool {
	for _, e := range t.Entries {
		if e.FirstPart() == name {
			return true
		}
	}
	return false
}

// navigate resolves the table holding the final part of a header path,
// creating implicit parents as needed.  A prefix part naming an
// array-of-tables group resolves to its last instance.
func navigate(doc *ir.Document, it *token.Item) (*ir.Table, error) {
	cur := doc.Root
	for i := 0; i < len(it.Path)-1; i++ {
		part := it.Path[i]
		if sub := cur.Sub(part); sub != nil {
			cur = sub
			continue
		}
		if arr := cur.Array(part); arr != nil {
			cur = arr.Tables[len(arr.Tables)-1]
			continue
		}
		if entryNamed(cur, part) {
			return nil, fmt.Errorf("%w: %s: [%s] conflicts with key %q",
				ErrParse, it.Pos, strings.Join(it.Path, "."), part)
		}
		sub := &ir.Table{
			Key:      append(append([]string(nil), cur.Key...), part),
			RawKey:   append(append([]string(nil), cur.RawKey...), it.RawPath[i]),
			Implicit: true,
			Pos:      doc.NextPos(),
		}
		cur.Subs = append(cur.Subs, sub)
		cur = sub
	}
	return cur, nil
}

func defineTable(doc *ir.Document, it *token.Item) (*ir.Table, error) {
	parent, err := navigate(doc, it)
	if err != nil {
		return nil, err
	}
	name := it.Path[len(it.Path)-1]
	if entryNamed(parent, name) {
		return nil, fmt.Errorf("%w: %s: [%s] conflicts with key %q",
			ErrParse, it.Pos, strings.Join(it.Path, "."), name)
	}
	if t := parent.Sub(name); t != nil {
		if !t.Implicit || t.RawHeader != "" {
			return nil, fmt.Errorf("%w: %s: duplicate table [%s]", ErrParse, it.Pos, strings.Join(it.Path, "."))
		}
		// a header for a previously implicit parent: it serializes
		// where this header stands, not where its first child did
		t.Implicit = false
		t.Pos = doc.NextPos()
		return t, nil
	}
	if parent.Array(name) != nil {
		return nil, fmt.Errorf("%w: %s: [%s] conflicts with array of tables", ErrParse, it.Pos, strings.Join(it.Path, "."))
	}
	t := &ir.Table{
		Key:    append([]string(nil), it.Path...),
		RawKey: append([]string(nil), it.RawPath...),
		Pos:    doc.NextPos(),
	}
	parent.Subs = append(parent.Subs, t)
	return t, nil
}

func appendArrayTable(doc *ir.Document, it *token.Item) (*ir.Table, error) {
	parent, err := navigate(doc, it)
	if err != nil {
		return nil, err
	}
	name := it.Path[len(it.Path)-1]
	if parent.Sub(name) != nil {
		return nil, fmt.Errorf("%w: %s: [[%s]] conflicts with table", ErrParse, it.Pos, strings.Join(it.Path, "."))
	}
	if entryNamed(parent, name) {
		return nil, fmt.Errorf("%w: %s: [[%s]] conflicts with key %q",
			ErrParse, it.Pos, strings.Join(it.Path, "."), name)
	}
	arr := parent.Array(name)
	if arr == nil {
		arr = &ir.TableArray{Key: name}
		parent.Arrays = append(parent.Arrays, arr)
	}
	t := &ir.Table{
		Key:       append([]string(nil), it.Path...),
		RawKey:    append([]string(nil), it.RawPath...),
		ArrayElem: true,
		Pos:       doc.NextPos(),
	}
	arr.Tables = append(arr.Tables, t)
	return t, nil
}

package ir

import "strings"

// Kind classifies the value side of an Entry.
type Kind int

const (
	Scalar Kind = iota
	Array
	Inline
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Array:
		return "array"
	case Inline:
		return "inline"
	}
	return "<bad kind>"
}

// Entry is a single key = value binding inside a table.
//
// Raw holds the exact source text of the binding, possibly spanning
// several lines for multi-line strings and arrays, without a trailing
// newline.  Raw is empty for entries synthesized by a transform, in
// which case serialization is derived from RawKey and RawValue.
type Entry struct {
	// Key is the comparison key: the decoded simple key, or the full
	// dotted path as written for dotted keys.
	Key string
	// Parts holds the decoded key path; length one unless Dotted.
	Parts  []string
	Dotted bool
	Kind   Kind

	// Lead holds the verbatim lines (comments and blanks) that
	// preceded the binding in the source.
	Lead []string

	Raw      string
	RawKey   string
	RawValue string
	// Trail is the comment following the value on its final line,
	// including the '#', or empty.
	Trail string
}

// FirstPart returns the leading path element of the entry's key.
func (e *Entry) FirstPart() string {
	if len(e.Parts) > 0 {
		return e.Parts[0]
	}
	return e.Key
}

// Table is an ordered TOML table.  Value entries come first, then
// nested standard tables and array-of-tables groups.  The relative
// order of bracketed sections in the serialized document is governed by
// Pos, not by tree shape.
type Table struct {
	// Key is the full decoded path from the root; nil for the root.
	Key []string
	// RawKey holds the path parts exactly as written (quotes kept),
	// used when a header has to be synthesized.
	RawKey []string

	Lead []string
	// RawHeader is the exact header line, empty when the table never
	// had one (root, or implicitly created parents).
	RawHeader string

	// Implicit marks a table created only as a parent of a deeper
	// header.  Implicit tables emit no header of their own.
	Implicit bool
	// ArrayElem marks a member of an array-of-tables group.
	ArrayElem bool
	// Pos orders bracketed sections during serialization.
	Pos int

	Entries []*Entry
	Subs    []*Table
	Arrays  []*TableArray
}

// TableArray groups the instances of an array-of-tables key, in
// document order.
type TableArray struct {
	Key    string
	Tables []*Table
}

// Document is the parse result for one manifest file.
type Document struct {
	Root *Table
	// Trailer holds comment/blank lines after the last binding.
	Trailer []string
	// NoFinalNewline records a source that did not end with a newline.
	NoFinalNewline bool

	posCount int
}

func NewDocument() *Document {
	return &Document{Root: &Table{Implicit: true}}
}

// NextPos allocates the next section ordinal.
func (d *Document) NextPos() int {
	d.posCount++
	return d.posCount
}

// Name returns the last path element of the table key.
func (t *Table) Name() string {
	if len(t.Key) == 0 {
		return ""
	}
	return t.Key[len(t.Key)-1]
}

// Sub returns the nested standard table with the given final key part,
// or nil.
func (t *Table) Sub(name string) *Table {
	for _, s := range t.Subs {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// Array returns the array-of-tables group with the given key, or nil.
func (t *Table) Array(name string) *TableArray {
	for _, a := range t.Arrays {
		if a.Key == name {
			return a
		}
	}
	return nil
}

// Entry returns the value entry with the given key, or nil.
func (t *Table) Entry(key string) *Entry {
	for _, e := range t.Entries {
		if e.Key == key {
			return e
		}
	}
	return nil
}

// EntryKeys returns the keys of the value entries in order.
func (t *Table) EntryKeys() []string {
	res := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		res[i] = e.Key
	}
	return res
}

// RemoveSub removes the nested table, reporting whether it was present.
func (t *Table) RemoveSub(sub *Table) bool {
	for i, s := range t.Subs {
		if s == sub {
			t.Subs = append(t.Subs[:i], t.Subs[i+1:]...)
			return true
		}
	}
	return false
}

// section is a named top-level block of the document in text order.
type section struct {
	key string
	pos int
}

// Sections returns the document's top-level bracketed section names in
// their serialized order.  Bare root-level bindings are not sections.
func (d *Document) Sections() []string {
	secs := make([]section, 0, len(d.Root.Subs)+len(d.Root.Arrays))
	for _, s := range d.Root.Subs {
		secs = append(secs, section{key: s.Name(), pos: s.Pos})
	}
	for _, a := range d.Root.Arrays {
		if len(a.Tables) == 0 {
			continue
		}
		secs = append(secs, section{key: a.Key, pos: a.Tables[0].Pos})
	}
	for i := 1; i < len(secs); i++ {
		for j := i; j > 0 && secs[j-1].pos > secs[j].pos; j-- {
			secs[j-1], secs[j] = secs[j], secs[j-1]
		}
	}
	res := make([]string, len(secs))
	for i, s := range secs {
		res[i] = s.key
	}
	return res
}

// HeaderText returns the table's header line, synthesizing one from the
// raw key path when the source never carried it.
func (t *Table) HeaderText() string {
	if t.RawHeader != "" {
		return t.RawHeader
	}
	inner := strings.Join(t.RawKey, ".")
	if t.ArrayElem {
		return "[[" + inner + "]]"
	}
	return "[" + inner + "]"
}

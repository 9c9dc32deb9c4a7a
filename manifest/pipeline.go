package manifest

import (
	"fmt"

	"github.com/cratekit/manifest-format/encode"
	"github.com/cratekit/manifest-format/ir"
	"github.com/cratekit/manifest-format/parse"
	"github.com/cratekit/manifest-format/token"
)

// Mode selects what happens with a manifest that needs changes.
type Mode int

const (
	// Apply rewrites changed files in place.
	Apply Mode = iota
	// DryRun reports changes without writing.
	DryRun
	// Check reports changes without writing and signals failure to the
	// caller when any were needed.
	Check
)

func (m Mode) String() string {
	switch m {
	case Apply:
		return "apply"
	case DryRun:
		return "dry-run"
	case Check:
		return "check"
	}
	return "<bad mode>"
}

// Writes reports whether the mode rewrites files.
func (m Mode) Writes() bool { return m == Apply }

// DepSections are the flat dependency sections normalized by default.
var DepSections = []string{"dependencies", "dev-dependencies", "build-dependencies"}

// Options adjust the pipeline; zero values select the defaults.
type Options struct {
	DepSections  []string
	SectionOrder []string
	PackageOrder []string
}

func (o *Options) depSections() []string {
	if o != nil && len(o.DepSections) > 0 {
		return o.DepSections
	}
	return DepSections
}

func (o *Options) sectionOrder() []string {
	if o != nil {
		return o.SectionOrder
	}
	return nil
}

func (o *Options) packageOrder() []string {
	if o != nil {
		return o.PackageOrder
	}
	return nil
}

// Result is the outcome of formatting one manifest in memory.
type Result struct {
	// Changes is the accumulated change count; zero means the input
	// was already canonical.
	Changes int
	// Text is the formatted manifest; equal to the input when Changes
	// is zero.
	Text []byte
	// Notes describe the transformations applied, for reporting.
	Notes []string
}

// Format parses src and runs the full normalization pipeline.
func Format(src []byte, opts *Options) (*Result, error) {
	doc, err := parse.Parse(src)
	if err != nil {
		return nil, err
	}
	return FormatDocument(doc, src, opts)
}

// FormatDocument runs the pipeline over an already-parsed document.
// The fixed sequence is: collapse nested tables, reorder top-level
// sections (textually, with a re-parse), order [package] keys, sort the
// flat dependency sections, then collapse and sort each target-scoped
// dependency table.  Section reordering comes before the in-tree
// reorders because it rebuilds the document from text.
func FormatDocument(doc *ir.Document, src []byte, opts *Options) (*Result, error) {
	res := &Result{}

	if n := collapseAll(doc, opts); n > 0 {
		res.Changes += n
		res.Notes = append(res.Notes, "collapsed nested tables into inline entries")
	}

	doc, n, err := ReorderSections(doc, opts.sectionOrder())
	if err != nil {
		return nil, err
	}
	if n > 0 {
		res.Changes += n
		res.Notes = append(res.Notes, "reordered sections")
	}

	if pkg := doc.Root.Sub("package"); pkg != nil {
		if OrderPackage(pkg, opts.packageOrder()) > 0 {
			res.Changes++
			res.Notes = append(res.Notes, "reordered [package] section")
		}
	}

	for _, name := range opts.depSections() {
		deps := doc.Root.Sub(name)
		if deps == nil {
			continue
		}
		if SortTable(deps) > 0 {
			res.Changes++
			res.Notes = append(res.Notes, fmt.Sprintf("sorted [%s] alphabetically", name))
		}
	}

	if target := doc.Root.Sub("target"); target != nil {
		for _, cfg := range target.Subs {
			deps := cfg.Sub("dependencies")
			if deps == nil {
				continue
			}
			if n := CollapseTable(deps); n > 0 {
				res.Changes += n
			}
			if SortTable(deps) > 0 {
				res.Changes++
				res.Notes = append(res.Notes, fmt.Sprintf("sorted [target.%s.dependencies] alphabetically", cfg.Name()))
			}
		}
	}

	if res.Changes == 0 {
		res.Text = src
		return res, nil
	}
	res.Text = []byte(encode.String(doc))
	return res, nil
}

func collapseAll(doc *ir.Document, opts *Options) int {
	n := 0
	if pkg := doc.Root.Sub("package"); pkg != nil {
		n += CollapseTable(pkg)
	}
	for _, name := range opts.depSections() {
		if deps := doc.Root.Sub(name); deps != nil {
			n += CollapseTable(deps)
		}
	}
	if target := doc.Root.Sub("target"); target != nil {
		for _, cfg := range target.Subs {
			if deps := cfg.Sub("dependencies"); deps != nil {
				n += CollapseTable(deps)
			}
		}
	}
	return n
}

// PackageName extracts the package.name value, or "" when absent.
func PackageName(doc *ir.Document) string {
	pkg := doc.Root.Sub("package")
	if pkg == nil {
		return ""
	}
	e := pkg.Entry("name")
	if e == nil {
		return ""
	}
	return token.DecodeString(e.RawValue)
}

// Package ui renders batch formatting results, either as plain
// per-file lines or as an interactive progress display.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/cratekit/manifest-format/workspace"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Reporter writes per-file result lines.  Colors are applied only when
// the destination is a terminal.
type Reporter struct {
	w     io.Writer
	quiet bool

	clean   *color.Color
	changed *color.Color
	errored *color.Color
	faint   *color.Color
}

func NewReporter(w io.Writer, quiet bool) *Reporter {
	r := &Reporter{
		w:       w,
		quiet:   quiet,
		clean:   color.New(color.FgGreen),
		changed: color.New(color.FgYellow),
		errored: color.New(color.FgRed),
		faint:   color.New(color.Faint),
	}
	if !IsTerminal(w) {
		for _, c := range []*color.Color{r.clean, r.changed, r.errored, r.faint} {
			c.DisableColor()
		}
	}
	return r
}

// File reports one manifest result.  Clean and skipped files are
// silent in quiet mode.
func (r *Reporter) File(fr workspace.FileResult) {
	switch {
	case fr.Err != nil:
		fmt.Fprintf(r.w, "%s %s: %v\n", r.errored.Sprint("error"), fr.Path, fr.Err)
	case fr.Skipped:
		if !r.quiet {
			fmt.Fprintf(r.w, "%s %s\n", r.faint.Sprint("skipped"), fr.Path)
		}
	case fr.Changes > 0:
		fmt.Fprintf(r.w, "%s %s (%d changes)\n", r.changed.Sprint("changed"), fr.Path, fr.Changes)
		for _, note := range fr.Notes {
			fmt.Fprintf(r.w, "  %s\n", r.faint.Sprint(note))
		}
	default:
		if !r.quiet {
			fmt.Fprintf(r.w, "%s %s\n", r.clean.Sprint("clean"), fr.Path)
		}
	}
}

// Diff writes a line diff of the manifest before and after formatting.
func (r *Reporter) Diff(fr workspace.FileResult) {
	if len(fr.Before) == 0 && len(fr.After) == 0 {
		return
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(fr.Before), string(fr.After))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				r.changed.Fprintf(r.w, "+%s\n", line)
			case diffmatchpatch.DiffDelete:
				r.errored.Fprintf(r.w, "-%s\n", line)
			default:
				fmt.Fprintf(r.w, " %s\n", line)
			}
		}
	}
}

// Summary reports batch totals.
func (r *Reporter) Summary(sum *workspace.Summary) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.w, "%d files, %d changed, %d changes", sum.Files, sum.FilesChanged, sum.TotalChanges)
	if sum.Errors > 0 {
		fmt.Fprintf(r.w, ", %s", r.errored.Sprintf("%d errors", sum.Errors))
	}
	fmt.Fprintln(r.w)
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

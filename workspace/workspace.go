// Package workspace discovers and batch-formats the Cargo.toml
// manifests of a multi-crate workspace.  Each manifest is processed
// fully before the next; per-file failures are recorded and the batch
// continues.
package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cratekit/manifest-format/manifest"
	"github.com/cratekit/manifest-format/parse"
)

// Discover returns the manifest paths of the workspace: files named
// Cargo.toml at exactly crates/<crate>/Cargo.toml under root.  A
// missing crates directory yields no manifests.
func Discover(root string) ([]string, error) {
	cratesDir := filepath.Join(root, "crates")
	entries, err := os.ReadDir(cratesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read %q: %w", cratesDir, err)
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p := filepath.Join(cratesDir, e.Name(), "Cargo.toml")
		st, err := os.Stat(p)
		if err != nil || !st.Mode().IsRegular() {
			continue
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// FileResult is the outcome for one manifest.
type FileResult struct {
	Path    string
	Changes int
	Notes   []string
	Skipped bool
	Err     error
	// Before and After hold the manifest text when changes were
	// needed, for diff display.
	Before, After []byte
}

// Summary aggregates one batch run.
type Summary struct {
	Files        int
	FilesChanged int
	TotalChanges int
	Errors       int
	Results      []FileResult
}

// Runner batch-formats one workspace.
type Runner struct {
	Root     string
	Mode     manifest.Mode
	Config   *Config
	Selector *Selector
	// Sink receives progress events; nil discards them.  The sink is
	// exclusively owned by this run.
	Sink ProgressSink
}

func (r *Runner) sink() ProgressSink {
	if r.Sink == nil {
		return NopSink{}
	}
	return r.Sink
}

// Run discovers the workspace manifests and formats them all.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	paths, err := Discover(r.Root)
	if err != nil {
		return nil, err
	}
	return r.RunPaths(ctx, paths)
}

// RunPaths formats the given manifests and reports totals.  Per-file
// errors land in the summary; only context cancellation aborts the
// batch.
func (r *Runner) RunPaths(ctx context.Context, paths []string) (*Summary, error) {
	sink := r.sink()
	for _, p := range paths {
		sink.OnEvent(Event{Path: p, Status: StatusQueued})
	}
	sum := &Summary{Files: len(paths)}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sink.OnEvent(Event{Path: p, Status: StatusFormatting})
		fr := r.formatOne(p)
		sum.Results = append(sum.Results, fr)
		switch {
		case fr.Err != nil:
			sum.Errors++
			sink.OnEvent(Event{Path: p, Status: StatusError, Err: fr.Err})
		case fr.Skipped:
			sink.OnEvent(Event{Path: p, Status: StatusSkipped})
		case fr.Changes > 0:
			sum.FilesChanged++
			sum.TotalChanges += fr.Changes
			sink.OnEvent(Event{Path: p, Status: StatusChanged, Changes: fr.Changes})
		default:
			sink.OnEvent(Event{Path: p, Status: StatusClean})
		}
	}
	return sum, nil
}

func (r *Runner) formatOne(path string) FileResult {
	fr := FileResult{Path: path}
	if rel, err := filepath.Rel(r.Root, path); err == nil && r.Config.Skipped(rel) {
		fr.Skipped = true
		return fr
	}
	src, err := os.ReadFile(path)
	if err != nil {
		fr.Err = fmt.Errorf("could not read %q: %w", path, err)
		return fr
	}
	doc, err := parse.Parse(src)
	if err != nil {
		fr.Err = fmt.Errorf("could not parse %q: %w", path, err)
		return fr
	}
	if r.Selector != nil {
		env := SelectEnv{
			Name: manifest.PackageName(doc),
			Path: path,
			Dir:  filepath.Dir(path),
		}
		ok, err := r.Selector.Match(env)
		if err != nil {
			fr.Err = err
			return fr
		}
		if !ok {
			fr.Skipped = true
			return fr
		}
	}
	res, err := manifest.FormatDocument(doc, src, r.Config.Options())
	if err != nil {
		fr.Err = fmt.Errorf("could not format %q: %w", path, err)
		return fr
	}
	fr.Changes = res.Changes
	fr.Notes = res.Notes
	if res.Changes == 0 {
		return fr
	}
	fr.Before = src
	fr.After = res.Text
	if r.Mode.Writes() {
		if err := writeBack(path, res.Text); err != nil {
			fr.Err = err
			return fr
		}
	}
	return fr
}

// writeBack rewrites the manifest, keeping its permission bits.
func writeBack(path string, out []byte) error {
	perm := fs.FileMode(0644)
	if st, err := os.Stat(path); err == nil {
		perm = st.Mode().Perm()
	}
	if err := os.WriteFile(path, out, perm); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return nil
}

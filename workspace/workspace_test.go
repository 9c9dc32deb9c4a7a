package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cratekit/manifest-format/manifest"
)

const messy = `[dependencies]
serde = "1"
anyhow = "1"

[package]
version = "0.1.0"
name = "demo"
`

const clean = `[package]
name = "tidy"
version = "0.1.0"

[dependencies]
serde = "1"
`

func writeCrate(t *testing.T, root, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, "crates", name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "Cargo.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	a := writeCrate(t, root, "alpha", clean)
	b := writeCrate(t, root, "beta", clean)

	// not a crate: no manifest
	if err := os.MkdirAll(filepath.Join(root, "crates", "empty"), 0755); err != nil {
		t.Fatal(err)
	}
	// not discovered: too deep
	deep := filepath.Join(root, "crates", "alpha", "sub")
	if err := os.MkdirAll(deep, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(deep, "Cargo.toml"), []byte(clean), 0644); err != nil {
		t.Fatal(err)
	}
	// not discovered: plain file under crates
	if err := os.WriteFile(filepath.Join(root, "crates", "README.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := Discover(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 || paths[0] != a || paths[1] != b {
		t.Errorf("paths = %v, want [%s %s]", paths, a, b)
	}
}

func TestDiscoverNoCratesDir(t *testing.T) {
	paths, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 0 {
		t.Errorf("paths = %v", paths)
	}
}

func TestRunApply(t *testing.T) {
	root := t.TempDir()
	messyPath := writeCrate(t, root, "messy", messy)
	cleanPath := writeCrate(t, root, "tidy", clean)

	r := &Runner{Root: root, Mode: manifest.Apply}
	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sum.Files != 2 || sum.FilesChanged != 1 || sum.Errors != 0 {
		t.Errorf("summary: %+v", sum)
	}
	out, err := os.ReadFile(messyPath)
	if err != nil {
		t.Fatal(err)
	}
	want := `[package]
name = "demo"
version = "0.1.0"

[dependencies]
anyhow = "1"
serde = "1"
`
	if string(out) != want {
		t.Errorf("rewritten manifest:\n got  %q\n want %q", out, want)
	}
	if got, _ := os.ReadFile(cleanPath); string(got) != clean {
		t.Errorf("clean manifest rewritten:\n%q", got)
	}
}

func TestRunDryRun(t *testing.T) {
	root := t.TempDir()
	path := writeCrate(t, root, "messy", messy)

	r := &Runner{Root: root, Mode: manifest.DryRun}
	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sum.FilesChanged != 1 {
		t.Errorf("summary: %+v", sum)
	}
	fr := sum.Results[0]
	if fr.Changes == 0 || len(fr.After) == 0 {
		t.Errorf("result: %+v", fr)
	}
	if got, _ := os.ReadFile(path); string(got) != messy {
		t.Error("dry run wrote the file")
	}
}

func TestRunEventsAndErrors(t *testing.T) {
	root := t.TempDir()
	writeCrate(t, root, "bad", "not toml ===\n")
	writeCrate(t, root, "good", messy)

	events := make(chan Event, 16)
	r := &Runner{Root: root, Mode: manifest.DryRun, Sink: ChannelSink{Ch: events}}
	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	close(events)
	if sum.Errors != 1 || sum.FilesChanged != 1 {
		t.Errorf("summary: %+v", sum)
	}
	counts := map[Status]int{}
	for ev := range events {
		counts[ev.Status]++
	}
	if counts[StatusQueued] != 2 || counts[StatusFormatting] != 2 ||
		counts[StatusError] != 1 || counts[StatusChanged] != 1 {
		t.Errorf("event counts: %v", counts)
	}
}

func TestRunSkipsByConfig(t *testing.T) {
	root := t.TempDir()
	writeCrate(t, root, "vendored", messy)
	writeCrate(t, root, "mine", messy)

	cfg := &Config{Skip: []string{"crates/vendored"}}
	r := &Runner{Root: root, Mode: manifest.DryRun, Config: cfg}
	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sum.FilesChanged != 1 {
		t.Errorf("summary: %+v", sum)
	}
	for _, fr := range sum.Results {
		skippedWant := filepath.Base(filepath.Dir(fr.Path)) == "vendored"
		if fr.Skipped != skippedWant {
			t.Errorf("%s: Skipped = %v", fr.Path, fr.Skipped)
		}
	}
}

func TestRunSelector(t *testing.T) {
	root := t.TempDir()
	writeCrate(t, root, "a", messy)
	writeCrate(t, root, "b", clean)

	sel, err := CompileSelector(`name == "demo"`)
	if err != nil {
		t.Fatal(err)
	}
	r := &Runner{Root: root, Mode: manifest.DryRun, Selector: sel}
	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sum.FilesChanged != 1 {
		t.Errorf("summary: %+v", sum)
	}
	if !sum.Results[1].Skipped {
		t.Errorf("non-matching crate not skipped: %+v", sum.Results[1])
	}
}

func TestRunPaths(t *testing.T) {
	root := t.TempDir()
	a := writeCrate(t, root, "a", messy)
	writeCrate(t, root, "b", messy)

	// an explicit path list overrides discovery
	r := &Runner{Root: root, Mode: manifest.DryRun}
	sum, err := r.RunPaths(context.Background(), []string{a})
	if err != nil {
		t.Fatal(err)
	}
	if sum.Files != 1 || len(sum.Results) != 1 || sum.Results[0].Path != a {
		t.Errorf("summary: %+v", sum)
	}
}

func TestRunCancelled(t *testing.T) {
	root := t.TempDir()
	writeCrate(t, root, "a", clean)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{Root: root, Mode: manifest.DryRun}
	if _, err := r.Run(ctx); err == nil {
		t.Error("expected context error")
	}
}

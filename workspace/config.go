package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/cratekit/manifest-format/manifest"
)

// ConfigFile is the optional per-workspace configuration file name.
const ConfigFile = "cargofmt.yaml"

// Config adjusts formatting for one workspace.  The zero value selects
// the built-in defaults.
type Config struct {
	// DepSections replaces the default list of flat dependency
	// sections to collapse and sort.
	DepSections []string `yaml:"depSections"`
	// SectionOrder replaces the canonical top-level section order.
	SectionOrder []string `yaml:"sectionOrder"`
	// PackageOrder replaces the canonical [package] key order.
	PackageOrder []string `yaml:"packageOrder"`
	// Skip lists path patterns (relative to the workspace root,
	// filepath.Match syntax) of manifests to leave alone.
	Skip []string `yaml:"skip"`
}

// LoadConfig reads the workspace config file under root.  A missing
// file yields the zero config.
func LoadConfig(root string) (*Config, error) {
	path := filepath.Join(root, ConfigFile)
	d, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(d, cfg); err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}
	return cfg, nil
}

// Options translates the config into pipeline options.
func (c *Config) Options() *manifest.Options {
	if c == nil {
		return nil
	}
	return &manifest.Options{
		DepSections:  c.DepSections,
		SectionOrder: c.SectionOrder,
		PackageOrder: c.PackageOrder,
	}
}

// Skipped reports whether the manifest at the given workspace-relative
// path is excluded.  Patterns match either the manifest path or its
// crate directory.
func (c *Config) Skipped(rel string) bool {
	if c == nil {
		return false
	}
	dir := filepath.Dir(rel)
	for _, pat := range c.Skip {
		if ok, err := filepath.Match(pat, rel); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pat, dir); err == nil && ok {
			return true
		}
	}
	return false
}

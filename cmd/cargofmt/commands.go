package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "cargofmt").
		WithSynopsis("cargofmt [opts] [workspace-path]").
		WithDescription(description).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runFmt(cfg, cc, args)
		})
}

const description = `cargofmt normalizes the Cargo.toml manifests of a workspace.

It walks crates/*/Cargo.toml under the workspace root and rewrites each
manifest in place:

- nested dependency tables are collapsed to inline tables
- top-level sections are put in canonical order
- [package] keys are put in canonical order
- dependency section keys are sorted

Comments, blank lines and value formatting are preserved.  A manifest
that is already normalized is left byte-identical.

An optional cargofmt.yaml at the workspace root overrides the canonical
orders and excludes manifests by glob pattern.`

package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/cratekit/manifest-format/manifest"
)

type MainConfig struct {
	WorkspacePath string `cli:"name=workspace-path aliases=w desc='path to the workspace root (default .)'"`
	DryRun        bool   `cli:"name=dry-run aliases=n desc='report changes without writing files'"`
	Check         bool   `cli:"name=check desc='like -dry-run, and exit 1 when changes are needed'"`
	Quiet         bool   `cli:"name=quiet aliases=q desc='only report files with changes or errors'"`
	Diff          bool   `cli:"name=diff desc='print a line diff for each changed manifest'"`
	Select        string `cli:"name=select desc='expression selecting manifests, e.g. name startsWith \"core\"'"`
	UI            string `cli:"name=ui desc='progress display: auto, on, off'"`

	Main *cli.Command
}

func (cfg *MainConfig) mode() manifest.Mode {
	switch {
	case cfg.Check:
		return manifest.Check
	case cfg.DryRun:
		return manifest.DryRun
	default:
		return manifest.Apply
	}
}

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func (cfg *MainConfig) uiMode() (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(cfg.UI)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("%w: invalid -ui value %q (expected auto|on|off)", cli.ErrUsage, cfg.UI)
	}
}

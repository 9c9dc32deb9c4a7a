package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/scott-cotton/cli"

	"github.com/cratekit/manifest-format/ui"
	"github.com/cratekit/manifest-format/workspace"
)

func runFmt(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	root := cfg.WorkspacePath
	switch len(args) {
	case 0:
	case 1:
		if root != "" {
			return fmt.Errorf("%w: both -workspace-path and a path argument given", cli.ErrUsage)
		}
		root = args[0]
	default:
		return fmt.Errorf("%w: at most one workspace path, got %v", cli.ErrUsage, args)
	}
	if root == "" {
		root = "."
	}

	uim, err := cfg.uiMode()
	if err != nil {
		return err
	}
	wsCfg, err := workspace.LoadConfig(root)
	if err != nil {
		return err
	}
	var sel *workspace.Selector
	if cfg.Select != "" {
		sel, err = workspace.CompileSelector(cfg.Select)
		if err != nil {
			return fmt.Errorf("%w: %v", cli.ErrUsage, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
	}()

	runner := &workspace.Runner{
		Root:     root,
		Mode:     cfg.mode(),
		Config:   wsCfg,
		Selector: sel,
	}

	var sum *workspace.Summary
	if useTUI(uim, cfg.Quiet) {
		sum, err = runWithUI(ctx, runner)
	} else {
		sum, err = runner.Run(ctx)
	}
	if sum == nil {
		return err
	}

	rep := ui.NewReporter(cc.Out, cfg.Quiet)
	for _, fr := range sum.Results {
		rep.File(fr)
		if cfg.Diff && fr.Changes > 0 && !cfg.mode().Writes() {
			rep.Diff(fr)
		}
	}
	rep.Summary(sum)
	if cfg.DryRun && !cfg.Check && !cfg.Quiet && sum.FilesChanged > 0 {
		fmt.Fprintln(cc.Out, "run again without -dry-run to apply these changes")
	}
	if err != nil {
		return err
	}
	if sum.Errors > 0 {
		return cli.ExitCodeErr(2)
	}
	if cfg.Check && sum.FilesChanged > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func useTUI(mode uiMode, quiet bool) bool {
	if quiet {
		return false
	}
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return ui.IsTerminal(os.Stdout)
	}
}

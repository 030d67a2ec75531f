package main

import (
	"fmt"

	"github.com/signadot/filesave"
	"github.com/signadot/filesave/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 files, got %d", cli.ErrUsage, len(args))
	}
	var syss [2]*filesave.System
	for i, file := range args {
		if syss[i], err = filesave.OpenFile(file, cfg.openOpts()...); err != nil {
			return fmt.Errorf("error opening %s: %w", file, err)
		}
	}
	colored := cfg.colors(cc.Out) != nil
	if cfg.Items {
		changes := libdiff.Diff(syss[0].Store(), syss[1].Store())
		if err := libdiff.WriteChanges(cc.Out, changes, colored); err != nil {
			return err
		}
		if len(changes) != 0 {
			return cli.ExitCodeErr(1)
		}
		return nil
	}
	var lines [2][]string
	for i := range syss {
		if lines[i], err = syss[i].Lines(); err != nil {
			return fmt.Errorf("error formatting %s: %w", args[i], err)
		}
	}
	diffs := libdiff.LineDiff(lines[0], lines[1])
	if !libdiff.Changed(diffs) {
		return nil
	}
	if err := libdiff.Render(cc.Out, diffs, colored); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

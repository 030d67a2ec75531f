package main

import (
	"fmt"
	"os"

	"github.com/signadot/filesave"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires a patch file and a document", cli.ErrUsage)
	}
	p, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	sys, err := filesave.OpenFile(args[1], cfg.openOpts()...)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", args[1], err)
	}
	if err := sys.ApplyJSONPatch(p); err != nil {
		return fmt.Errorf("error patching %s: %w", args[1], err)
	}
	if cfg.DryRun {
		return writeLines(cc.Out, sys)
	}
	return sys.Save()
}

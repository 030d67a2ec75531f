package main

import (
	"fmt"
	"io"

	"github.com/signadot/filesave"
	"github.com/signadot/filesave/doc"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: view requires at least one file", cli.ErrUsage)
	}
	fOpts := []doc.FormatOption{doc.WithSettingsLine(cfg.Settings)}
	if colors := cfg.colors(cc.Out); colors != nil {
		fOpts = append(fOpts, doc.FormatColors(colors))
	}
	for i, file := range args {
		sys, err := filesave.OpenFile(file, cfg.openOpts()...)
		if err != nil {
			return fmt.Errorf("error opening %s: %w", file, err)
		}
		if len(args) > 1 {
			if i > 0 {
				fmt.Fprintln(cc.Out)
			}
			fmt.Fprintf(cc.Out, "==> %s <==\n", file)
		}
		if err := writeLines(cc.Out, sys, fOpts...); err != nil {
			return fmt.Errorf("error formatting %s: %w", file, err)
		}
	}
	return nil
}

func writeLines(w io.Writer, sys *filesave.System, opts ...doc.FormatOption) error {
	lines, err := doc.Format(sys.Document(), opts...)
	if err != nil {
		return err
	}
	for _, ln := range lines {
		if _, err := fmt.Fprintln(w, ln); err != nil {
			return err
		}
	}
	return nil
}

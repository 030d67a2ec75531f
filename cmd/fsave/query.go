package main

import (
	"fmt"

	"github.com/signadot/filesave"
	fquery "github.com/signadot/filesave/query"

	"github.com/scott-cotton/cli"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: query requires an expression and at least one file", cli.ErrUsage)
	}
	q, err := fquery.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	for _, file := range args[1:] {
		sys, err := filesave.OpenFile(file, cfg.openOpts()...)
		if err != nil {
			return fmt.Errorf("error opening %s: %w", file, err)
		}
		ms, err := q.Run(sys.Store())
		if err != nil {
			return fmt.Errorf("error querying %s: %w", file, err)
		}
		for i := range ms {
			if len(args) > 2 {
				fmt.Fprintf(cc.Out, "%s: ", file)
			}
			fmt.Fprintln(cc.Out, ms[i].String())
		}
	}
	return nil
}

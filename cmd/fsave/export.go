package main

import (
	"encoding/json"
	"fmt"

	"github.com/signadot/filesave"
	"github.com/signadot/filesave/encode"

	"github.com/scott-cotton/cli"
)

func export(cfg *ExportConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Export.Parse(cc, args)
	if err != nil {
		cfg.Export.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: export requires one file", cli.ErrUsage)
	}
	sys, err := filesave.OpenFile(args[0], cfg.openOpts()...)
	if err != nil {
		return err
	}
	var d []byte
	if cfg.YAML {
		d, err = encode.StoreYAML(sys.Store())
	} else {
		d, err = json.MarshalIndent(sys.Store(), "", "  ")
		d = append(d, '\n')
	}
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(d)
	return err
}

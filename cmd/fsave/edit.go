package main

import (
	"fmt"

	"github.com/signadot/filesave"
	"github.com/signadot/filesave/encode"
	"github.com/signadot/filesave/parse"
	"github.com/signadot/filesave/store"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a file", cli.ErrUsage)
	}
	p, err := pathArgs(args[1:], cfg.Index)
	if err != nil {
		return err
	}
	sys, err := filesave.OpenFile(args[0], cfg.openOpts()...)
	if err != nil {
		return err
	}
	c, err := sys.Store().Content(p)
	if err != nil {
		return err
	}
	if c.Value != nil {
		var eOpts []encode.EncodeOption
		if colors := cfg.colors(cc.Out); colors != nil {
			eOpts = append(eOpts, encode.EncodeColors(colors))
		}
		lit, err := encode.Literal(c.Value, eOpts...)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cc.Out, lit)
		return err
	}
	for _, n := range c.Names {
		fmt.Fprintln(cc.Out, n)
	}
	return nil
}

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires a file and a group", cli.ErrUsage)
	}
	var value any
	sels := args[1:]
	if len(sels) == 4 {
		v, err := parse.Literal(sels[3])
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		value, sels = v, sels[:3]
	} else if len(sels) == 3 {
		return fmt.Errorf("%w: an item needs a literal value", cli.ErrUsage)
	}
	p, err := pathArgs(sels, cfg.Index)
	if err != nil {
		return err
	}
	return edit(cfg.MainConfig, args[0], func(s *store.Store) error {
		return s.Create(p, value)
	})
}

func rename(cfg *RenameConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Rename.Parse(cc, args)
	if err != nil {
		cfg.Rename.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 3 {
		return fmt.Errorf("%w: rename requires a file, a path and a new name", cli.ErrUsage)
	}
	p, err := pathArgs(args[1:len(args)-1], cfg.Index)
	if err != nil {
		return err
	}
	nn := args[len(args)-1]
	return edit(cfg.MainConfig, args[0], func(s *store.Store) error {
		return s.Rename(p, nn)
	})
}

func rm(cfg *RmConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Rm.Parse(cc, args)
	if err != nil {
		cfg.Rm.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: rm requires a file and a path", cli.ErrUsage)
	}
	p, err := pathArgs(args[1:], cfg.Index)
	if err != nil {
		return err
	}
	return edit(cfg.MainConfig, args[0], func(s *store.Store) error {
		return s.Delete(p)
	})
}

// edit opens file, applies f to its store and saves the result.
func edit(cfg *MainConfig, file string, f func(*store.Store) error) error {
	sys, err := filesave.OpenFile(file, cfg.openOpts()...)
	if err != nil {
		return err
	}
	if err := f(sys.Store()); err != nil {
		return err
	}
	return sys.Save()
}

func fmtFiles(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: fmt requires at least one file", cli.ErrUsage)
	}
	for _, file := range args {
		sys, err := filesave.OpenFile(file, cfg.openOpts()...)
		if err != nil {
			return fmt.Errorf("error opening %s: %w", file, err)
		}
		if cfg.Write {
			if err := sys.Save(); err != nil {
				return fmt.Errorf("error saving %s: %w", file, err)
			}
			continue
		}
		lines, err := sys.Lines()
		if err != nil {
			return err
		}
		for _, ln := range lines {
			fmt.Fprintln(cc.Out, ln)
		}
	}
	return nil
}

package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/signadot/filesave"
	"github.com/signadot/filesave/doc"
	"github.com/signadot/filesave/encode"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color    bool   `cli:"name=color desc='output with color'"`
	Encoded  bool   `cli:"name=encoded desc='documents are base64 encoded (default: detect)'"`
	ReadOnly bool   `cli:"name=ro desc='open documents read-only'"`
	Log      string `cli:"name=log desc='also write JSON logs to this file'"`

	Logger   *slog.Logger
	CloseLog func() error

	Main *cli.Command
}

// isSet reports whether the main option name was given on the command
// line, as opposed to holding its zero value.
func (cfg *MainConfig) isSet(name string) bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

func (cfg *MainConfig) openOpts() []filesave.Option {
	res := []filesave.Option{filesave.WithLogger(cfg.Logger)}
	if cfg.isSet("encoded") {
		res = append(res, filesave.WithEncoded(cfg.Encoded))
	}
	if cfg.ReadOnly {
		res = append(res, filesave.WithSystemType(doc.ReadOnly))
	}
	return res
}

// colors returns the colors to write to w with, or nil for plain output.
func (cfg *MainConfig) colors(w io.Writer) *encode.Colors {
	if cfg.Color {
		return encode.NewColors()
	}
	if cfg.isSet("color") {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return encode.NewColors()
	}
	return nil
}

type ViewConfig struct {
	*MainConfig
	Settings bool `cli:"name=s desc='show the settings line'"`

	View *cli.Command
}

type GetConfig struct {
	*MainConfig
	Index bool `cli:"name=i desc='treat numeric selectors as positions'"`

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig
	Index bool `cli:"name=i desc='treat numeric selectors as positions'"`

	Set *cli.Command
}

type RenameConfig struct {
	*MainConfig
	Index bool `cli:"name=i desc='treat numeric selectors as positions'"`

	Rename *cli.Command
}

type RmConfig struct {
	*MainConfig
	Index bool `cli:"name=i desc='treat numeric selectors as positions'"`

	Rm *cli.Command
}

type FmtConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write the result back to the file'"`

	Fmt *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Items bool `cli:"name=items desc='list changed items instead of lines'"`

	Diff *cli.Command
}

type QueryConfig struct {
	*MainConfig

	Query *cli.Command
}

type PatchConfig struct {
	*MainConfig
	DryRun bool `cli:"name=n desc='print the result instead of saving it'"`

	Patch *cli.Command
}

type ExportConfig struct {
	*MainConfig
	YAML bool `cli:"name=y aliases=yaml desc='export yaml instead of json'"`

	Export *cli.Command
}

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"github.com/scott-cotton/cli"
)

func fsaveMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := cfg.setupLog(); err != nil {
		return err
	}
	defer func() {
		if cfg.CloseLog != nil {
			cfg.CloseLog()
		}
	}()
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		return cli.ExitCodeErr(sub.Exit(cc, err))
	}
	return err
}

// setupLog logs text to stderr and, with -log, JSON to a file as well.
// $DEBUG turns on debug level for both.
func (cfg *MainConfig) setupLog() error {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	if os.Getenv("DEBUG") != "" {
		level.Set(slog.LevelDebug)
	}
	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	}
	if cfg.Log != "" {
		f, err := os.OpenFile(cfg.Log, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("-log: %w", err)
		}
		cfg.CloseLog = f.Close
		logLevel := new(slog.LevelVar)
		logLevel.Set(slog.LevelInfo)
		if os.Getenv("DEBUG") != "" {
			logLevel.Set(slog.LevelDebug)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: logLevel}))
	}
	cfg.Logger = slog.New(slogmulti.Fanout(handlers...))
	slog.SetDefault(cfg.Logger)
	return nil
}

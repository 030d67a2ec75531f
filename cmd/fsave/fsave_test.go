package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/scott-cotton/cli"
)

// nopCloser adapts a bytes.Buffer to the io.ReadCloser/io.WriteCloser
// fields of cli.Context.
type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func TestUsageErrorClosesLog(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	logPath := filepath.Join(t.TempDir(), "fsave.log")
	cfg := &MainConfig{}
	stderr := &bytes.Buffer{}
	cc := &cli.Context{
		Out: nopCloser{&bytes.Buffer{}},
		Err: nopCloser{stderr},
		In:  nopCloser{&bytes.Buffer{}},
		Go:  context.Background(),
	}
	err := mainCommand(cfg).Run(cc, []string{"-log", logPath, "get"})
	var xc cli.ExitCodeErr
	if !errors.As(err, &xc) || xc != 1 {
		t.Fatalf("got %v, want exit code 1", err)
	}
	if cfg.CloseLog == nil {
		t.Fatal("log file not opened")
	}
	if err := cfg.CloseLog(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("log file left open: %v", err)
	}
	if _, err := os.Stat(logPath); err != nil {
		t.Error(err)
	}
}

// Package fsio holds the byte level collaborators of a filesave system:
// where documents are read from and written to, and how their bytes are
// encoded at rest.
package fsio

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/signadot/filesave/debug"
)

// Backend reads and writes a whole document.  Read on a document which does
// not exist yet returns an error matching fs.ErrNotExist.
type Backend interface {
	Read() ([]byte, error)
	Write([]byte) error
}

// File is a Backend over one file on disk.  Every call opens and closes the
// file it needs; nothing is held between calls.
type File struct {
	Path string
	Perm fs.FileMode

	log *slog.Logger
}

func NewFile(path string, log *slog.Logger) *File {
	if log == nil {
		log = slog.Default()
	}
	return &File{Path: path, Perm: 0644, log: log}
}

func (f *File) Read() ([]byte, error) {
	d, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	if debug.IO() {
		debug.Logf("read %d bytes from %s\n", len(d), f.Path)
	}
	return d, nil
}

// Write replaces the file contents with d.  The data is written to a
// temporary file in the same directory which is then renamed over Path, so
// readers see either the old or the new document.
func (f *File) Write(d []byte) error {
	perm := f.Perm
	if perm == 0 {
		perm = 0644
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), "."+filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpFile := tmp.Name()
	if _, err := tmp.Write(d); err != nil {
		tmp.Close()
		os.Remove(tmpFile)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}
	if err := os.Chmod(tmpFile, perm); err != nil {
		os.Remove(tmpFile)
		return err
	}
	if err := os.Rename(tmpFile, f.Path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("replace %s: %w", f.Path, err)
	}
	f.logger().Debug("wrote document", "path", f.Path, "bytes", len(d))
	return nil
}

func (f *File) logger() *slog.Logger {
	if f.log == nil {
		return slog.Default()
	}
	return f.log
}

func (f *File) String() string {
	return f.Path
}

// Memory is a Backend held in memory.  A nil Data reads as a missing
// document.
type Memory struct {
	mu     sync.Mutex
	Data   []byte
	Reads  int
	Writes int
}

func NewMemory(d []byte) *Memory {
	return &Memory{Data: d}
}

func (m *Memory) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	if m.Data == nil {
		return nil, fmt.Errorf("memory: %w", fs.ErrNotExist)
	}
	return slices.Clone(m.Data), nil
}

func (m *Memory) Write(d []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	m.Data = slices.Clone(d)
	if m.Data == nil {
		m.Data = []byte{}
	}
	return nil
}

// Bytes returns a copy of the current contents.
func (m *Memory) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.Data)
}

// IsNotExist reports whether err says a document is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

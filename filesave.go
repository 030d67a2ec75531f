// Package filesave loads, edits and saves filesave documents: line
// oriented text files holding groups of subgroups of typed items.
//
// A System ties a parsed document to the backend it came from:
//
//	sys, err := filesave.OpenFile("prefs.fsave")
//	...
//	err = sys.Store().Create(store.Names("UserPreferences", "Display", "Brightness"), 80)
//	...
//	err = sys.Save()
package filesave

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/signadot/filesave/doc"
	"github.com/signadot/filesave/fsio"
	"github.com/signadot/filesave/store"
)

var ErrReadOnly = errors.New("read-only system")

type openOpts struct {
	systemType   string
	encoded      *bool
	log          *slog.Logger
	settingsLine bool
}

type Option func(*openOpts)

// WithSystemType overrides the system_type setting of the document.
func WithSystemType(t string) Option {
	return func(o *openOpts) { o.systemType = t }
}

// WithEncoded overrides the encoded setting, and with it how the document
// is decoded on open and encoded on save.
func WithEncoded(v bool) Option {
	return func(o *openOpts) { o.encoded = &v }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *openOpts) { o.log = l }
}

// WithSettingsLine controls whether Save writes the settings line.  It
// defaults to true.
func WithSettingsLine(v bool) Option {
	return func(o *openOpts) { o.settingsLine = v }
}

// System is an open document together with its backend.
//
// A System is not safe for concurrent use.
type System struct {
	backend fsio.Backend
	codec   fsio.Codec
	doc     *doc.Document
	opts    *openOpts
}

// Open reads and parses the document held by b.  A document which does not
// exist yet opens as an empty system and is created by the first Save.
//
// Unless WithEncoded is given, the bytes are first parsed as plain text
// and, failing that, as base64.
func Open(b fsio.Backend, opts ...Option) (*System, error) {
	oOpts := &openOpts{settingsLine: true}
	for _, f := range opts {
		f(oOpts)
	}
	if oOpts.log == nil {
		oOpts.log = slog.Default()
	}
	sys := &System{backend: b, opts: oOpts}
	raw, err := b.Read()
	switch {
	case fsio.IsNotExist(err):
		oOpts.log.Debug("opening new document", "backend", fmt.Sprint(b))
		sys.doc = doc.New(store.WithLogger(oOpts.log))
	case err != nil:
		return nil, err
	default:
		if sys.doc, err = sys.decode(raw); err != nil {
			return nil, err
		}
	}
	sys.applyOverrides()
	return sys, nil
}

// OpenFile opens the document at path.
func OpenFile(path string, opts ...Option) (*System, error) {
	oOpts := &openOpts{}
	for _, f := range opts {
		f(oOpts)
	}
	return Open(fsio.NewFile(path, oOpts.log), opts...)
}

func (s *System) decode(raw []byte) (*doc.Document, error) {
	pOpts := []doc.ParseOption{doc.ParseLogger(s.opts.log)}
	if s.opts.encoded != nil {
		s.codec = fsio.CodecFor(*s.opts.encoded)
		text, err := s.codec.Decode(raw)
		if err != nil {
			return nil, err
		}
		return doc.ParseText(string(text), pOpts...)
	}
	d, err := doc.ParseText(string(raw), pOpts...)
	if err == nil {
		s.codec = fsio.CodecFor(d.Settings.Encoded())
		return d, nil
	}
	text, bErr := fsio.Base64.Decode(raw)
	if bErr != nil {
		return nil, err
	}
	d, bErr = doc.ParseText(string(text), pOpts...)
	if bErr != nil {
		return nil, err
	}
	s.opts.log.Debug("document is base64 encoded")
	s.codec = fsio.Base64
	return d, nil
}

func (s *System) applyOverrides() {
	if s.opts.systemType != "" {
		s.doc.Settings.Set(doc.KeySystemType, s.opts.systemType)
	}
	if s.opts.encoded != nil {
		s.doc.Settings.Set(doc.KeyEncoded, strconv.FormatBool(*s.opts.encoded))
		s.codec = fsio.CodecFor(*s.opts.encoded)
	}
	if s.codec == nil {
		s.codec = fsio.CodecFor(s.doc.Settings.Encoded())
	}
}

func (s *System) Store() *store.Store {
	return s.doc.Store
}

func (s *System) Settings() *doc.Settings {
	return s.doc.Settings
}

// Ignored returns the ignore lines of the document.
func (s *System) Ignored() []string {
	return s.doc.Ignored
}

func (s *System) Document() *doc.Document {
	return s.doc
}

func (s *System) ReadOnly() bool {
	return s.doc.Settings.ReadOnly()
}

// Encoded reports whether Save writes base64.
func (s *System) Encoded() bool {
	return s.codec == fsio.Base64
}

// Lines formats the document as Save would write it, before encoding.
func (s *System) Lines(opts ...doc.FormatOption) ([]string, error) {
	fOpts := append([]doc.FormatOption{doc.WithSettingsLine(s.opts.settingsLine)}, opts...)
	return doc.Format(s.doc, fOpts...)
}

// Save writes the document back to its backend.  A read-only system fails
// with ErrReadOnly without touching the backend.
func (s *System) Save() error {
	if s.ReadOnly() {
		return fmt.Errorf("%w: save refused", ErrReadOnly)
	}
	lines, err := s.Lines()
	if err != nil {
		return err
	}
	text := ""
	if len(lines) != 0 {
		text = strings.Join(lines, "\n") + "\n"
	}
	if err := s.backend.Write(s.codec.Encode([]byte(text))); err != nil {
		return err
	}
	s.opts.log.Debug("saved document", "lines", len(lines), "encoded", s.Encoded())
	return nil
}

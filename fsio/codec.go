package fsio

import (
	"bytes"
	"encoding/base64"
	"fmt"
)

// Codec maps document text to the bytes kept at rest and back.
type Codec interface {
	Encode([]byte) []byte
	Decode([]byte) ([]byte, error)
}

type plain struct{}

func (plain) Encode(d []byte) []byte          { return d }
func (plain) Decode(d []byte) ([]byte, error) { return d, nil }

type b64 struct{}

func (b64) Encode(d []byte) []byte {
	res := make([]byte, base64.StdEncoding.EncodedLen(len(d)))
	base64.StdEncoding.Encode(res, d)
	return res
}

// Decode ignores surrounding whitespace such as a trailing newline.
func (b64) Decode(d []byte) ([]byte, error) {
	d = bytes.TrimSpace(d)
	res := make([]byte, base64.StdEncoding.DecodedLen(len(d)))
	n, err := base64.StdEncoding.Decode(res, d)
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}
	return res[:n], nil
}

var (
	Plain  Codec = plain{}
	Base64 Codec = b64{}
)

// CodecFor returns Base64 when encoded is set and Plain otherwise.
func CodecFor(encoded bool) Codec {
	if encoded {
		return Base64
	}
	return Plain
}

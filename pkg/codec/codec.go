// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package codec turns file bytes into text and back without changing the
// file's encoding or byte order mark.
package codec

import (
	"bytes"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// 🔤 Encoding identifies how a file's text is stored
type Encoding int

const (
	UTF8        Encoding = iota // no byte order mark
	UTF8BOM                     // EF BB BF prefix
	UTF16LE                     // FF FE prefix
	UTF16BE                     // FE FF prefix
	Windows1252                 // not valid UTF-8, read as the Windows Latin code page
)

// String returns a string representation of Encoding
func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case UTF8BOM:
		return "utf-8-bom"
	case UTF16LE:
		return "utf-16le"
	case UTF16BE:
		return "utf-16be"
	case Windows1252:
		return "windows-1252"
	default:
		return "unknown"
	}
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect reports the encoding of raw
func Detect(raw []byte) Encoding {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(raw, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(raw, bomUTF16BE):
		return UTF16BE
	case utf8.Valid(raw):
		return UTF8
	default:
		return Windows1252
	}
}

// bom returns the byte order mark written for enc
func (e Encoding) bom() []byte {
	switch e {
	case UTF8BOM:
		return bomUTF8
	case UTF16LE:
		return bomUTF16LE
	case UTF16BE:
		return bomUTF16BE
	default:
		return nil
	}
}

// transcoder returns the x/text encoding for the body after the BOM, or nil
// when the body is already UTF-8
func (e Encoding) transcoder() encoding.Encoding {
	switch e {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case Windows1252:
		return charmap.Windows1252
	default:
		return nil
	}
}

// Decode converts raw file content to a UTF-8 string and reports the
// encoding it was stored in
func Decode(raw []byte) (string, Encoding, error) {
	enc := Detect(raw)
	body := raw[len(enc.bom()):]

	tc := enc.transcoder()
	if tc == nil {
		return string(body), enc, nil
	}
	out, err := tc.NewDecoder().Bytes(body)
	if err != nil {
		return "", enc, errors.Errorf("decoding %s: %w", enc, err)
	}
	return string(out), enc, nil
}

// Encode converts s back to enc, restoring its byte order mark
func Encode(s string, enc Encoding) ([]byte, error) {
	bom := enc.bom()

	tc := enc.transcoder()
	if tc == nil {
		out := make([]byte, 0, len(bom)+len(s))
		out = append(out, bom...)
		return append(out, s...), nil
	}
	body, err := tc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, errors.Errorf("encoding %s: %w", enc, err)
	}
	return append(append([]byte{}, bom...), body...), nil
}

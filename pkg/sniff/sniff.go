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

// Package sniff decides whether a file's content is text that can safely be
// rewritten, or binary data that must be left alone.
package sniff

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// DefaultSampleSize is the number of leading bytes inspected when the
// extension alone does not decide
const DefaultSampleSize = 4096

// 🔍 Detector classifies files as text or binary
type Detector interface {
	// IsText reports whether the file at path should have its content rewritten
	IsText(path string) (bool, error)
}

// DetectorFunc adapts a function to the Detector interface
type DetectorFunc func(path string) (bool, error)

// IsText implements Detector.IsText
func (f DetectorFunc) IsText(path string) (bool, error) {
	return f(path)
}

// 📄 ExtensionDetector trusts known extensions first and falls back to
// sampling the start of the file
type ExtensionDetector struct {
	assumeText   map[string]struct{}
	assumeBinary map[string]struct{}
	sampleSize   int
}

// 🏭 NewExtensionDetector creates a detector. Extensions may be given with or
// without the leading dot and are matched case-insensitively. A sampleSize
// of zero or less uses DefaultSampleSize.
func NewExtensionDetector(assumeText, assumeBinary []string, sampleSize int) *ExtensionDetector {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	return &ExtensionDetector{
		assumeText:   extensionSet(assumeText),
		assumeBinary: extensionSet(assumeBinary),
		sampleSize:   sampleSize,
	}
}

func extensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// IsText implements Detector.IsText
func (d *ExtensionDetector) IsText(path string) (bool, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := d.assumeText[ext]; ok {
		return true, nil
	}
	if _, ok := d.assumeBinary[ext]; ok {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, errors.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, d.sampleSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, errors.Errorf("reading %s: %w", path, err)
	}
	return LooksLikeText(buf[:n], n == d.sampleSize), nil
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// LooksLikeText classifies a sample of file content. A byte order mark means
// text; a NUL byte or invalid UTF-8 means binary. When truncated is set, a
// rune cut off by the end of the sample is not held against it.
func LooksLikeText(sample []byte, truncated bool) bool {
	if bytes.HasPrefix(sample, bomUTF16LE) || bytes.HasPrefix(sample, bomUTF16BE) {
		return true
	}
	sample = bytes.TrimPrefix(sample, bomUTF8)

	if bytes.IndexByte(sample, 0) >= 0 {
		return false
	}
	if truncated {
		sample = trimPartialRune(sample)
	}
	return utf8.Valid(sample)
}

// trimPartialRune drops an incomplete multi-byte sequence at the end of b
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return b[:i]
			}
			break
		}
	}
	return b
}

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

// Package text implements substring replacement that can mirror the casing of
// every occurrence it replaces.
package text

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🎚️ Mode selects how occurrences are matched and rendered
type Mode int

const (
	// ModePreserveCase matches case-insensitively and shapes the replacement
	// after the casing of each occurrence.
	ModePreserveCase Mode = iota
	// ModeSimple matches exact bytes and inserts the replacement verbatim.
	ModeSimple
)

// String returns a string representation of Mode
func (m Mode) String() string {
	switch m {
	case ModePreserveCase:
		return "preserve-case"
	case ModeSimple:
		return "simple"
	default:
		return "unknown"
	}
}

// 🔄 Request defines a single replacement applied to every name and file
type Request struct {
	// Old is the text to find. It must not be empty.
	Old string

	// New is the replacement text. Empty deletes every occurrence.
	New string

	// Mode selects case-preserving or simple replacement
	Mode Mode

	// CollapseSpaces adds a second pass replacing Old without its spaces by
	// New without its spaces, when Old contains a space.
	CollapseSpaces bool
}

// 🏭 NewRequest creates a validated request
func NewRequest(old, new string, mode Mode) (Request, error) {
	req := Request{Old: old, New: new, Mode: mode}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// 🔍 Validate checks that the request can be applied
func (r Request) Validate() error {
	if r.Old == "" {
		return errors.New("old text must not be empty")
	}
	switch r.Mode {
	case ModePreserveCase, ModeSimple:
	default:
		return errors.Errorf("unknown replacement mode %d", r.Mode)
	}
	return nil
}

// collapsed returns the space-free variant of the request, if one applies
func (r Request) collapsed() (Request, bool) {
	if !r.CollapseSpaces || !strings.Contains(r.Old, " ") {
		return Request{}, false
	}
	old := strings.ReplaceAll(r.Old, " ", "")
	if old == "" {
		return Request{}, false
	}
	return Request{Old: old, New: strings.ReplaceAll(r.New, " ", ""), Mode: r.Mode}, true
}

// TextReplacer defines the interface for replacing text in names and file content
type TextReplacer interface {
	// ReplaceString replaces every occurrence in s and reports how many
	// occurrences were replaced. s is returned as-is when nothing matched.
	ReplaceString(s string) (string, int)

	// Request returns the request the replacer applies
	Request() Request
}

// 🏭 New returns the TextReplacer for the request's mode
func New(req Request) (TextReplacer, error) {
	if err := req.Validate(); err != nil {
		return nil, errors.Errorf("validating request: %w", err)
	}
	if req.Mode == ModeSimple {
		return NewSimpleTextReplacer(req), nil
	}
	return NewCaseReplacer(req), nil
}

// Replace returns haystack with every non-overlapping occurrence of old
// replaced by new. With preserveCase, occurrences are matched regardless of
// case and new is rendered in the casing of each occurrence; otherwise only
// exact matches are replaced. An empty old returns haystack unchanged.
func Replace(haystack, old, new string, preserveCase bool) string {
	mode := ModePreserveCase
	if !preserveCase {
		mode = ModeSimple
	}
	r, err := New(Request{Old: old, New: new, Mode: mode})
	if err != nil {
		return haystack
	}
	out, _ := r.ReplaceString(haystack)
	return out
}

// applyPasses runs the request and its collapsed variant through fn
func applyPasses(req Request, s string, fn func(Request, string) (string, int)) (string, int) {
	out, count := fn(req, s)
	if extra, ok := req.collapsed(); ok {
		var n int
		out, n = fn(extra, out)
		count += n
	}
	return out, count
}

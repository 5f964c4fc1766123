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

package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// 🎭 CaseReplacer implements TextReplacer by matching case-insensitively and
// rendering the replacement in the casing of each occurrence
type CaseReplacer struct {
	req Request
}

// 🏭 NewCaseReplacer creates a new CaseReplacer
func NewCaseReplacer(req Request) *CaseReplacer {
	return &CaseReplacer{req: req}
}

// Request implements TextReplacer.Request
func (r *CaseReplacer) Request() Request {
	return r.req
}

// ReplaceString implements TextReplacer.ReplaceString
func (r *CaseReplacer) ReplaceString(s string) (string, int) {
	return applyPasses(r.req, s, replacePreservingCase)
}

// Occurrence is a matched span of haystack, as byte offsets [Start, End)
type Occurrence struct {
	Start int
	End   int
}

// FindAll returns the non-overlapping occurrences of old in haystack, matched
// rune by rune in lower case, scanning left to right.
func FindAll(haystack, old string) []Occurrence {
	if old == "" {
		return nil
	}
	needle := lowerRunes(old)

	var found []Occurrence
	for i := 0; i < len(haystack); {
		if end := matchAt(haystack, i, needle); end >= 0 {
			found = append(found, Occurrence{Start: i, End: end})
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(haystack[i:])
		i += size
	}
	return found
}

func replacePreservingCase(req Request, s string) (string, int) {
	found := FindAll(s, req.Old)
	if len(found) == 0 {
		return s, 0
	}

	var b strings.Builder
	if n := len(s) + len(found)*(len(req.New)-len(req.Old)); n > 0 {
		b.Grow(n)
	}
	last := 0
	for _, occ := range found {
		b.WriteString(s[last:occ.Start])
		b.WriteString(Render(s[occ.Start:occ.End], req.New))
		last = occ.End
	}
	b.WriteString(s[last:])
	return b.String(), len(found)
}

// matchAt returns the end offset of needle matched at s[i:], or -1
func matchAt(s string, i int, needle []rune) int {
	for _, want := range needle {
		if i >= len(s) {
			return -1
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.ToLower(r) != want {
			return -1
		}
		i += size
	}
	return i
}

func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

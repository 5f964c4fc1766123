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
)

// 🔠 Pattern is the casing shape of a matched occurrence
type Pattern int

const (
	PatternLower Pattern = iota // every cased letter is lower case
	PatternUpper                // every cased letter is upper case
	PatternTitle                // first cased letter upper, the rest lower
	PatternMixed                // anything else, transferred position by position
)

// String returns a string representation of Pattern
func (p Pattern) String() string {
	switch p {
	case PatternLower:
		return "lower"
	case PatternUpper:
		return "upper"
	case PatternTitle:
		return "title"
	case PatternMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

func isUpperish(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsTitle(r)
}

// Classify derives the casing pattern of span. Only cased letters take part;
// a span without any cased letter is PatternLower.
func Classify(span string) Pattern {
	var (
		cased     int
		upper     int
		firstUp   bool
		restLower = true
	)
	for _, r := range span {
		if !isCased(r) {
			continue
		}
		up := isUpperish(r)
		if cased == 0 {
			firstUp = up
		} else if up {
			restLower = false
		}
		if up {
			upper++
		}
		cased++
	}

	switch {
	case upper == 0:
		return PatternLower
	case upper == cased:
		return PatternUpper
	case firstUp && restLower:
		return PatternTitle
	default:
		return PatternMixed
	}
}

// Render shapes replacement after the casing of span
func Render(span, replacement string) string {
	if replacement == "" {
		return ""
	}
	switch Classify(span) {
	case PatternUpper:
		return strings.ToUpper(replacement)
	case PatternTitle:
		return titleCase(replacement)
	case PatternMixed:
		return transferCase(span, replacement)
	default:
		return strings.ToLower(replacement)
	}
}

// titleCase upper-cases the first rune of s and lower-cases everything else
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// transferCase copies the case of span onto replacement rune by rune.
// Uncased runes in span keep the current case, and runes past the end of
// span carry the last case forward. The starting case is lower.
func transferCase(span, replacement string) string {
	src := []rune(span)
	upper := false

	var b strings.Builder
	b.Grow(len(replacement))
	i := 0
	for _, r := range replacement {
		if i < len(src) && isCased(src[i]) {
			upper = isUpperish(src[i])
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		i++
	}
	return b.String()
}

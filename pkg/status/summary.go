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

package status

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// 📊 Summary counts the outcomes of a run
type Summary struct {
	Visited       int
	Renamed       int
	Rewritten     int
	BinarySkipped int
	Excluded      int
	Failed        int
	Replacements  int
}

// Changed reports whether anything was renamed or rewritten
func (s Summary) Changed() bool {
	return s.Renamed+s.Rewritten > 0
}

// 🖼️ Render draws the summary as a table
func (s Summary) Render(dryRun bool) (string, error) {
	renamed, rewritten := "renamed", "rewritten"
	if dryRun {
		renamed, rewritten = "would rename", "would rewrite"
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"outcome", "count"},
		{"visited", strconv.Itoa(s.Visited)},
		{renamed, strconv.Itoa(s.Renamed)},
		{rewritten, strconv.Itoa(s.Rewritten)},
		{"replacements", strconv.Itoa(s.Replacements)},
		{"binary skipped", strconv.Itoa(s.BinarySkipped)},
		{"excluded", strconv.Itoa(s.Excluded)},
		{"failed", strconv.Itoa(s.Failed)},
	}).Srender()
	if err != nil {
		return "", errors.Errorf("rendering summary: %w", err)
	}
	return out, nil
}

// 📢 PrintFailures writes one line per failed entry to w
func PrintFailures(w io.Writer, infos []EntryInfo) {
	printer := pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).WithWriter(w)
	for _, info := range infos {
		if info.Status != StatusFailed {
			continue
		}
		msg := info.Path
		if info.Error != nil {
			msg = fmt.Sprintf("%s: %v", info.Path, info.Error)
		}
		printer.Println(msg)
	}
}

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

import "fmt"

// 🎨 EntryFormatter defines how entry outcomes are turned into messages
type EntryFormatter interface {
	// FormatEntry formats an entry outcome
	FormatEntry(info EntryInfo) string
	// FormatProgress formats a progress message
	FormatProgress(current, total int) string
	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultEntryFormatter provides a default implementation of EntryFormatter
type DefaultEntryFormatter struct{}

// NewDefaultEntryFormatter creates a new DefaultEntryFormatter
func NewDefaultEntryFormatter() *DefaultEntryFormatter {
	return &DefaultEntryFormatter{}
}

// FormatEntry formats an entry outcome with emojis
func (f *DefaultEntryFormatter) FormatEntry(info EntryInfo) string {
	switch info.Status {
	case StatusRenamed:
		return fmt.Sprintf("✨ Renamed %s to %s", info.Path, info.NewPath)
	case StatusRewritten:
		return fmt.Sprintf("📝 Rewrote %s (%d replacements)", info.Path, info.Replacements)
	case StatusSkipped:
		if info.Reason != "" {
			return fmt.Sprintf("⏭️  Skipped %s (%s)", info.Path, info.Reason)
		}
		return fmt.Sprintf("⏭️  Skipped %s", info.Path)
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s", info.Path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", info.Path)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultEntryFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultEntryFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}

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
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// 📊 EntryStatus represents what happened to a file or directory
type EntryStatus int

const (
	StatusUnknown   EntryStatus = iota
	StatusUnchanged             // Nothing matched
	StatusRenamed               // Name changed
	StatusRewritten             // Content changed
	StatusSkipped               // Left alone on purpose (binary, excluded)
	StatusFailed                // An error stopped the change
)

// String returns a string representation of EntryStatus
func (s EntryStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusRenamed:
		return "renamed"
	case StatusRewritten:
		return "rewritten"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Skip reasons counted separately in the Summary
const (
	ReasonBinary   = "binary"
	ReasonExcluded = "excluded"
)

// 📄 EntryInfo contains the outcome for one entry
type EntryInfo struct {
	Path         string      // Path of the entry before any rename
	Status       EntryStatus // Outcome
	IsDir        bool        // Whether this is a directory
	NewPath      string      // Path after a rename
	Replacements int         // Occurrences replaced in the name or content
	Encoding     string      // Content encoding of a rewritten file
	Reason       string      // Why the entry was skipped, see ReasonBinary and ReasonExcluded
	Error        error       // Any error associated with this entry
}

// 📈 Reporter tracks entry outcomes and reports progress
type Reporter interface {
	Track(ctx context.Context, info EntryInfo)
	List(ctx context.Context) []EntryInfo

	StartOperation(ctx context.Context, total int)
	UpdateProgress(ctx context.Context, processed int)
	FinishOperation(ctx context.Context)
}

var _ Reporter = (*Tracker)(nil)

// 🔧 Tracker records every entry touched during a run
type Tracker struct {
	logger    *zerolog.Logger
	formatter EntryFormatter

	mu      sync.RWMutex
	entries map[string][]EntryInfo
	order   []string

	total     int
	processed int
}

// 🏭 NewTracker creates a new tracker
func NewTracker(logger *zerolog.Logger) *Tracker {
	return &Tracker{
		logger:    logger,
		formatter: NewDefaultEntryFormatter(),
		entries:   make(map[string][]EntryInfo),
	}
}

// Track records info. An entry may be tracked more than once, for example a
// file whose content was rewritten and whose name was then changed.
func (t *Tracker) Track(ctx context.Context, info EntryInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.entries[info.Path]; !ok {
		t.order = append(t.order, info.Path)
	}
	t.entries[info.Path] = append(t.entries[info.Path], info)

	msg := t.formatter.FormatEntry(info)
	if info.Error != nil {
		msg = t.formatter.FormatError(info.Error)
	}
	t.logger.Debug().Str("path", info.Path).Str("status", info.Status.String()).Msg(msg)
}

// List returns every recorded outcome in the order entries were first seen
func (t *Tracker) List(ctx context.Context) []EntryInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []EntryInfo
	for _, path := range t.order {
		out = append(out, t.entries[path]...)
	}
	return out
}

// 🧮 Summary counts outcomes across every tracked entry
func (t *Tracker) Summary() Summary {
	t.mu.RLock()
	visited := len(t.order)
	t.mu.RUnlock()

	s := Summary{Visited: visited}
	for _, info := range t.List(context.Background()) {
		switch info.Status {
		case StatusRenamed:
			s.Renamed++
		case StatusRewritten:
			s.Rewritten++
		case StatusSkipped:
			switch info.Reason {
			case ReasonBinary:
				s.BinarySkipped++
			case ReasonExcluded:
				s.Excluded++
			}
		case StatusFailed:
			s.Failed++
		}
		s.Replacements += info.Replacements
	}
	return s
}

func (t *Tracker) StartOperation(ctx context.Context, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total = total
	t.processed = 0
	msg := t.formatter.FormatProgress(0, total)
	t.logger.Debug().Int("total", total).Msg(msg)
}

func (t *Tracker) UpdateProgress(ctx context.Context, processed int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processed = processed
	msg := t.formatter.FormatProgress(processed, t.total)
	t.logger.Debug().
		Int("processed", processed).
		Int("total", t.total).
		Msg(msg)
}

func (t *Tracker) FinishOperation(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	msg := t.formatter.FormatProgress(t.total, t.total)
	t.logger.Debug().
		Int("processed", t.total).
		Int("total", t.total).
		Msg(msg)
}

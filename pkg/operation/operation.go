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

package operation

import (
	"context"

	"github.com/walteh/superreplace/pkg/sniff"
	"github.com/walteh/superreplace/pkg/status"
	"github.com/walteh/superreplace/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a unit of work run by an OperationRunner
type Operation interface {
	// Execute runs the operation
	Execute(ctx context.Context) error
}

// ErrPathNotFound is returned when a path argument does not exist
var ErrPathNotFound = errors.Base("path not found")

// 🔧 Options contains everything a replace operation needs
type Options struct {
	// Replacer rewrites names and content
	Replacer text.TextReplacer
	// Names enables renaming entries
	Names bool
	// Content enables rewriting text file content
	Content bool
	// DryRun reports changes without touching the filesystem
	DryRun bool
	// Exclude lists glob patterns for entries to leave alone, with their subtrees
	Exclude []string
	// Detector decides which files are text
	Detector sniff.Detector
	// Renamer moves entries to their new names
	Renamer Renamer
	// Tracker records the outcome for every entry
	Tracker *status.Tracker
}

// 🔍 Validate checks that required options are set
func (o Options) Validate() error {
	if o.Replacer == nil {
		return errors.New("replacer is required")
	}
	if o.Tracker == nil {
		return errors.New("tracker is required")
	}
	if o.Content && o.Detector == nil {
		return errors.New("detector is required when rewriting content")
	}
	if o.Names && o.Renamer == nil {
		return errors.New("renamer is required when renaming")
	}
	if !o.Names && !o.Content {
		return errors.New("nothing to do: both renaming and content rewriting are disabled")
	}
	return nil
}

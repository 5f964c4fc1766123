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
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/superreplace/pkg/codec"
	"github.com/walteh/superreplace/pkg/log"
	"github.com/walteh/superreplace/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔄 NewReplaceOperation creates an operation that replaces text below root.
// Entries are visited depth first and a directory is renamed only after its
// children are done.
func NewReplaceOperation(opts Options, root string) Operation {
	return &replaceOperation{
		Options: opts,
		root:    filepath.Clean(root),
	}
}

// 🔄 replaceOperation implements the replace operation for one path argument
type replaceOperation struct {
	Options
	root string

	// failures holds entry problems that do not stop the walk
	failures []error
}

// 🏃 Execute runs the replace operation
func (op *replaceOperation) Execute(ctx context.Context) error {
	if err := op.Options.Validate(); err != nil {
		return errors.Errorf("validating options: %w", err)
	}

	console := log.FromContext(ctx)
	req := op.Replacer.Request()

	info, err := os.Lstat(op.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Errorf("%w: %s", ErrPathNotFound, op.root)
		}
		return errors.Errorf("reading %s: %w", op.root, err)
	}

	console.StartPath(ctx, log.PathOperation{
		Root:   op.root,
		Old:    req.Old,
		New:    req.New,
		DryRun: op.DryRun,
	})
	defer console.EndPath(ctx)

	op.failures = nil
	if err := op.walk(ctx, op.root, ".", info); err != nil {
		return errors.Errorf("processing %s: %w", op.root, err)
	}
	if len(op.failures) > 0 {
		return errors.Join(op.failures...)
	}
	return nil
}

// 🚶 walk processes path, whose location relative to the root is rel. The
// returned error aborts the whole path argument.
func (op *replaceOperation) walk(ctx context.Context, path, rel string, info fs.FileInfo) error {
	logger := zerolog.Ctx(ctx)

	if rel != "." && op.excluded(ctx, rel) {
		logger.Debug().Str("path", path).Msg("excluded")
		op.Tracker.Track(ctx, status.EntryInfo{
			Path:   path,
			Status: status.StatusSkipped,
			IsDir:  info.IsDir(),
			Reason: status.ReasonExcluded,
		})
		return nil
	}

	touched := false

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return errors.Errorf("reading directory %s: %w", path, err)
		}
		for _, entry := range entries {
			child, err := entry.Info()
			if err != nil {
				return errors.Errorf("reading %s: %w", filepath.Join(path, entry.Name()), err)
			}
			if err := op.walk(ctx, filepath.Join(path, entry.Name()), joinRel(rel, entry.Name()), child); err != nil {
				return err
			}
		}
	}

	if op.Content && info.Mode().IsRegular() {
		changed, err := op.rewriteContent(ctx, path, rel, info)
		if err != nil {
			return err
		}
		touched = touched || changed
	}

	if op.Names {
		changed, err := op.rename(ctx, path, rel, info)
		if err != nil {
			return err
		}
		touched = touched || changed
	}

	if !touched {
		op.Tracker.Track(ctx, status.EntryInfo{Path: path, Status: status.StatusUnchanged, IsDir: info.IsDir()})
	}
	return nil
}

// 📝 rewriteContent replaces text inside a file. It reports whether the
// entry was tracked with an outcome.
func (op *replaceOperation) rewriteContent(ctx context.Context, path, rel string, info fs.FileInfo) (bool, error) {
	console := log.FromContext(ctx)
	display := op.display(rel)

	isText, err := op.Detector.IsText(path)
	if err != nil {
		return false, errors.Errorf("classifying %s: %w", path, err)
	}
	if !isText {
		console.LogEntryOperation(ctx, log.EntryOperation{
			Path:   display,
			Kind:   log.KindSkipped,
			Detail: "binary file",
		})
		op.Tracker.Track(ctx, status.EntryInfo{
			Path:   path,
			Status: status.StatusSkipped,
			Reason: status.ReasonBinary,
		})
		return true, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Errorf("reading %s: %w", path, err)
	}

	before, enc, err := codec.Decode(raw)
	if err != nil {
		return true, op.fail(ctx, path, display, false, errors.Errorf("decoding %s: %w", path, err))
	}

	after, n := op.Replacer.ReplaceString(before)
	if n == 0 {
		return false, nil
	}

	out, err := codec.Encode(after, enc)
	if err != nil {
		return true, op.fail(ctx, path, display, false, errors.Errorf("encoding %s: %w", path, err))
	}

	if op.DryRun {
		console.Diff(display, contentDiff(before, after))
	} else if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return false, errors.Errorf("writing %s: %w", path, err)
	}

	console.LogEntryOperation(ctx, log.EntryOperation{
		Path:         display,
		Kind:         log.KindRewritten,
		Replacements: n,
		DryRun:       op.DryRun,
	})
	op.Tracker.Track(ctx, status.EntryInfo{
		Path:         path,
		Status:       status.StatusRewritten,
		Replacements: n,
		Encoding:     enc.String(),
	})
	return true, nil
}

// ✏️ rename moves an entry whose name contains the old text. It reports
// whether the entry was tracked with an outcome.
func (op *replaceOperation) rename(ctx context.Context, path, rel string, info fs.FileInfo) (bool, error) {
	console := log.FromContext(ctx)
	display := op.display(rel)

	name := filepath.Base(path)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return false, nil
	}

	newName, n := op.Replacer.ReplaceString(name)
	if n == 0 || newName == name {
		return false, nil
	}

	if err := validateName(newName); err != nil {
		return true, op.fail(ctx, path, display, info.IsDir(), errors.Errorf("renaming %s: %w", path, err))
	}

	target := filepath.Join(filepath.Dir(path), newName)
	existing, err := os.Lstat(target)
	switch {
	case err == nil:
		if !os.SameFile(existing, info) {
			return true, op.fail(ctx, path, display, info.IsDir(), errors.Errorf("renaming %s: target %s already exists", path, target))
		}
	case !errors.Is(err, fs.ErrNotExist):
		return false, errors.Errorf("checking %s: %w", target, err)
	}

	if !op.DryRun {
		if err := op.Renamer.Rename(ctx, path, target); err != nil {
			return false, errors.Errorf("renaming %s: %w", path, err)
		}
	}

	console.LogEntryOperation(ctx, log.EntryOperation{
		Path:         display,
		Kind:         log.KindRenamed,
		Detail:       newName,
		Replacements: n,
		DryRun:       op.DryRun,
	})
	op.Tracker.Track(ctx, status.EntryInfo{
		Path:         path,
		Status:       status.StatusRenamed,
		IsDir:        info.IsDir(),
		NewPath:      target,
		Replacements: n,
	})
	return true, nil
}

// ❌ fail records an entry problem that does not stop the walk
func (op *replaceOperation) fail(ctx context.Context, path, display string, isDir bool, err error) error {
	log.FromContext(ctx).LogEntryOperation(ctx, log.EntryOperation{
		Path:   display,
		Kind:   log.KindFailed,
		Detail: err.Error(),
	})
	op.Tracker.Track(ctx, status.EntryInfo{
		Path:   path,
		Status: status.StatusFailed,
		IsDir:  isDir,
		Error:  err,
	})
	op.failures = append(op.failures, err)
	return nil
}

// 🔍 excluded checks rel and its base name against the exclusion globs
func (op *replaceOperation) excluded(ctx context.Context, rel string) bool {
	logger := zerolog.Ctx(ctx)
	base := pathBase(rel)
	for _, pattern := range op.Exclude {
		for _, candidate := range []string{rel, base} {
			matched, err := doublestar.Match(pattern, candidate)
			if err != nil {
				logger.Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
				break
			}
			if matched {
				logger.Debug().Str("path", rel).Str("pattern", pattern).Msg("entry excluded by pattern")
				return true
			}
		}
	}
	return false
}

func (op *replaceOperation) display(rel string) string {
	if rel == "." {
		return filepath.Base(op.root)
	}
	return rel
}

// validateName rejects names a rename cannot produce safely
func validateName(name string) error {
	switch {
	case name == "":
		return errors.New("new name would be empty")
	case name == "." || name == "..":
		return errors.Errorf("new name %q is reserved", name)
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return errors.Errorf("new name %q contains a path separator", name)
	}
	return nil
}

// joinRel builds slash separated paths relative to the root
func joinRel(rel, name string) string {
	if rel == "." {
		return name
	}
	return rel + "/" + name
}

func pathBase(rel string) string {
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		return rel[i+1:]
	}
	return rel
}

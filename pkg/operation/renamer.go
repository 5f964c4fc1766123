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
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🚚 Renamer moves an entry to a new name in the same directory
type Renamer interface {
	Rename(ctx context.Context, oldpath, newpath string) error
}

// OSRenamer renames with os.Rename
type OSRenamer struct{}

// Rename implements Renamer.Rename
func (OSRenamer) Rename(ctx context.Context, oldpath, newpath string) error {
	if err := os.Rename(oldpath, newpath); err != nil {
		return errors.Errorf("moving %s to %s: %w", oldpath, newpath, err)
	}
	return nil
}

// 🌿 GitRenamer renames through git mv so history follows the entry. When
// git refuses, for example because the entry is untracked, it falls back to
// a plain rename.
type GitRenamer struct {
	Fallback Renamer
}

// Rename implements Renamer.Rename
func (g *GitRenamer) Rename(ctx context.Context, oldpath, newpath string) error {
	logger := zerolog.Ctx(ctx)

	cmd := exec.CommandContext(ctx, "git", "mv", "-f", "--", filepath.Base(oldpath), filepath.Base(newpath))
	cmd.Dir = filepath.Dir(oldpath)
	out, err := cmd.CombinedOutput()
	if err == nil {
		logger.Debug().Str("from", oldpath).Str("to", newpath).Msg("renamed with git mv")
		return nil
	}

	logger.Debug().
		Str("from", oldpath).
		Str("output", strings.TrimSpace(string(out))).
		Err(err).
		Msg("git mv failed, falling back")
	return g.Fallback.Rename(ctx, oldpath, newpath)
}

// 🎯 NewRenamer picks the renamer for entries below root. With useGit set
// and root inside a git work tree, renames go through git.
func NewRenamer(ctx context.Context, root string, useGit bool) Renamer {
	if !useGit {
		return OSRenamer{}
	}
	if !insideWorkTree(ctx, root) {
		zerolog.Ctx(ctx).Debug().Str("path", root).Msg("not inside a git work tree, using plain renames")
		return OSRenamer{}
	}
	return &GitRenamer{Fallback: OSRenamer{}}
}

func insideWorkTree(ctx context.Context, root string) bool {
	dir := root
	if info, err := os.Lstat(root); err != nil || !info.IsDir() {
		dir = filepath.Dir(root)
	}
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) == "true"
}

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
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/superreplace/pkg/log"
	"github.com/walteh/superreplace/pkg/sniff"
	"github.com/walteh/superreplace/pkg/status"
	"github.com/walteh/superreplace/pkg/text"
)

// 🔧 testContext returns a context carrying both loggers and the console buffer
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	buf := &bytes.Buffer{}
	zl := zerolog.New(zerolog.NewTestWriter(t))
	ctx := zl.WithContext(context.Background())
	return log.NewContext(ctx, log.New(buf, zl)), buf
}

func testOptions(t *testing.T, old, new string, mode text.Mode) Options {
	t.Helper()
	req, err := text.NewRequest(old, new, mode)
	require.NoError(t, err)
	r, err := text.New(req)
	require.NoError(t, err)
	logger := zerolog.Nop()
	return Options{
		Replacer: r,
		Names:    true,
		Content:  true,
		Exclude:  []string{".git"},
		Detector: sniff.NewExtensionDetector(nil, []string{".png"}, 0),
		Renamer:  OSRenamer{},
		Tracker:  status.NewTracker(&logger),
	}
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// readTree returns every regular file below root keyed by its slash path
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestReplaceOperationScope(t *testing.T) {
	tests := []struct {
		name    string
		names   bool
		content bool
		want    map[string]string
	}{
		{
			name:    "names_and_content",
			names:   true,
			content: true,
			want:    map[string]string{"xyz.txt": "xyz Xyz XYZ"},
		},
		{
			name:  "name_only",
			names: true,
			want:  map[string]string{"xyz.txt": "abc Abc ABC"},
		},
		{
			name:    "content_only",
			content: true,
			want:    map[string]string{"abc.txt": "xyz Xyz XYZ"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := testContext(t)
			root := t.TempDir()
			writeTree(t, root, map[string]string{"abc.txt": "abc Abc ABC"})

			opts := testOptions(t, "abc", "xyz", text.ModePreserveCase)
			opts.Names = tt.names
			opts.Content = tt.content

			require.NoError(t, NewReplaceOperation(opts, root).Execute(ctx))
			assert.Equal(t, tt.want, readTree(t, root))
		})
	}
}

func TestReplaceOperationNested(t *testing.T) {
	ctx, _ := testContext(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"abc/abc.txt":      "abc",
		"abc/sub/ABC.md":   "ABC and Abc",
		"abc/sub/keep.txt": "nothing here",
		"other/aBc":        "aBc",
	})

	opts := testOptions(t, "abc", "xyz", text.ModePreserveCase)
	require.NoError(t, NewReplaceOperation(opts, root).Execute(ctx))

	assert.Equal(t, map[string]string{
		"xyz/xyz.txt":      "xyz",
		"xyz/sub/XYZ.md":   "XYZ and Xyz",
		"xyz/sub/keep.txt": "nothing here",
		"other/xYz":        "xYz",
	}, readTree(t, root))

	summary := opts.Tracker.Summary()
	assert.Equal(t, 4, summary.Renamed, "abc dir, abc.txt, ABC.md and aBc should be renamed")
	assert.Equal(t, 3, summary.Rewritten)
	assert.Zero(t, summary.Failed)
}

func TestReplaceOperationRenamesRoot(t *testing.T) {
	ctx, _ := testContext(t)
	parent := t.TempDir()
	writeTree(t, parent, map[string]string{"abc/readme.md": "abc"})

	opts := testOptions(t, "abc", "xyz", text.ModePreserveCase)
	require.NoError(t, NewReplaceOperation(opts, filepath.Join(parent, "abc")+string(filepath.Separator)).Execute(ctx))

	assert.Equal(t, map[string]string{"xyz/readme.md": "xyz"}, readTree(t, parent))
}

func TestReplaceOperationSimpleMode(t *testing.T) {
	ctx, _ := testContext(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{"ABC.txt": "ABC abc"})

	opts := testOptions(t, "abc", "xyz", text.ModeSimple)
	require.NoError(t, NewReplaceOperation(opts, root).Execute(ctx))

	assert.Equal(t, map[string]string{"ABC.txt": "ABC xyz"}, readTree(t, root))
}

func TestReplaceOperationCaseOnlyRename(t *testing.T) {
	ctx, _ := testContext(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{"abc.txt": "-"})

	opts := testOptions(t, "abc", "ABC", text.ModeSimple)
	require.NoError(t, NewReplaceOperation(opts, root).Execute(ctx))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ABC.txt", entries[0].Name())
}

func TestReplaceOperationSkipsBinary(t *testing.T) {
	ctx, console := testContext(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"abc.bin":  "abc\x00abc",
		"logo.png": "abc",
	})

	opts := testOptions(t, "abc", "xyz", text.ModePreserveCase)
	require.NoError(t, NewReplaceOperation(opts, root).Execute(ctx))

	assert.Equal(t, map[string]string{
		"xyz.bin":  "abc\x00abc",
		"logo.png": "abc",
	}, readTree(t, root))
	assert.Equal(t, 2, opts.Tracker.Summary().BinarySkipped)
	assert.Contains(t, console.String(), "binary file")
}

func TestReplaceOperationExclude(t *testing.T) {
	ctx, _ := testContext(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/abc":       "abc",
		"vendor/abc.txt": "abc",
		"abc.txt":        "abc",
	})

	opts := testOptions(t, "abc", "xyz", text.ModePreserveCase)
	opts.Exclude = append(opts.Exclude, "vendor/**")
	require.NoError(t, NewReplaceOperation(opts, root).Execute(ctx))

	assert.Equal(t, map[string]string{
		".git/abc":       "abc",
		"vendor/abc.txt": "abc",
		"xyz.txt":        "xyz",
	}, readTree(t, root))
	assert.Equal(t, 2, opts.Tracker.Summary().Excluded)
}

func TestReplaceOperationRefusesClobber(t *testing.T) {
	ctx, console := testContext(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"abc.txt": "abc",
		"xyz.txt": "keep",
		"abc.md":  "abc",
	})

	opts := testOptions(t, "abc", "xyz", text.ModePreserveCase)
	err := NewReplaceOperation(opts, root).Execute(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	assert.Equal(t, map[string]string{
		"abc.txt": "xyz",
		"xyz.txt": "keep",
		"xyz.md":  "xyz",
	}, readTree(t, root), "the walk should continue after a refused rename")
	assert.Equal(t, 1, opts.Tracker.Summary().Failed)
	assert.Contains(t, console.String(), "✗")
}

func TestReplaceOperationRefusesEmptyName(t *testing.T) {
	ctx, _ := testContext(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{"abc": "x"})

	opts := testOptions(t, "abc", "", text.ModePreserveCase)
	err := NewReplaceOperation(opts, root).Execute(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "new name would be empty")
	assert.Equal(t, map[string]string{"abc": "x"}, readTree(t, root))
}

func TestReplaceOperationDryRun(t *testing.T) {
	ctx, console := testContext(t)
	root := t.TempDir()
	files := map[string]string{"abc/abc.txt": "abc\nkeep\n"}
	writeTree(t, root, files)

	opts := testOptions(t, "abc", "xyz", text.ModePreserveCase)
	opts.DryRun = true
	require.NoError(t, NewReplaceOperation(opts, root).Execute(ctx))

	assert.Equal(t, files, readTree(t, root), "dry run must not touch the filesystem")
	out := console.String()
	assert.Contains(t, out, "would rename")
	assert.Contains(t, out, "would rewrite")
	assert.Contains(t, out, "-abc")
	assert.Contains(t, out, "+xyz")
	assert.Equal(t, 2, opts.Tracker.Summary().Renamed)
}

func TestReplaceOperationSymlinkNotFollowed(t *testing.T) {
	ctx, _ := testContext(t)
	root := t.TempDir()
	outside := t.TempDir()
	writeTree(t, outside, map[string]string{"target.txt": "abc"})
	require.NoError(t, os.Symlink(filepath.Join(outside, "target.txt"), filepath.Join(root, "abc-link")))

	opts := testOptions(t, "abc", "xyz", text.ModePreserveCase)
	require.NoError(t, NewReplaceOperation(opts, root).Execute(ctx))

	assert.Equal(t, map[string]string{"target.txt": "abc"}, readTree(t, outside), "link target must not be rewritten")
	_, err := os.Lstat(filepath.Join(root, "xyz-link"))
	assert.NoError(t, err, "the link itself should be renamed")
}

func TestReplaceOperationKeepsEncoding(t *testing.T) {
	ctx, _ := testContext(t)
	root := t.TempDir()
	utf16 := []byte{0xFF, 0xFE, 'a', 0, 'b', 0, 'c', 0}
	path := filepath.Join(root, "wide.txt")
	require.NoError(t, os.WriteFile(path, utf16, 0600))

	opts := testOptions(t, "abc", "xyz", text.ModePreserveCase)
	require.NoError(t, NewReplaceOperation(opts, root).Execute(ctx))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFE, 'x', 0, 'y', 0, 'z', 0}, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "permissions should be kept")

	var encodings []string
	for _, entry := range opts.Tracker.List(ctx) {
		if entry.Path == path {
			encodings = append(encodings, entry.Encoding)
		}
	}
	assert.Equal(t, []string{"utf-16le"}, encodings)
}

func TestReplaceOperationMissingPath(t *testing.T) {
	ctx, _ := testContext(t)
	opts := testOptions(t, "abc", "xyz", text.ModePreserveCase)

	err := NewReplaceOperation(opts, filepath.Join(t.TempDir(), "missing")).Execute(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPathNotFound)
	assert.Contains(t, err.Error(), "missing")
}

func TestOptionsValidate(t *testing.T) {
	valid := testOptions(t, "abc", "xyz", text.ModePreserveCase)

	tests := []struct {
		name        string
		mutate      func(o *Options)
		errContains string
	}{
		{name: "valid", mutate: func(o *Options) {}},
		{name: "no_replacer", mutate: func(o *Options) { o.Replacer = nil }, errContains: "replacer is required"},
		{name: "no_tracker", mutate: func(o *Options) { o.Tracker = nil }, errContains: "tracker is required"},
		{name: "no_detector", mutate: func(o *Options) { o.Detector = nil }, errContains: "detector is required"},
		{name: "no_detector_names_only", mutate: func(o *Options) { o.Detector = nil; o.Content = false }},
		{name: "no_renamer", mutate: func(o *Options) { o.Renamer = nil }, errContains: "renamer is required"},
		{name: "nothing_enabled", mutate: func(o *Options) { o.Names = false; o.Content = false }, errContains: "nothing to do"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid
			tt.mutate(&o)
			err := o.Validate()
			if tt.errContains == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

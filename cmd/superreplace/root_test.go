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

package main

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return err
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

// execute runs the command with args and returns stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestRootCmd(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		args        func(root string) []string
		wantErr     bool
		errContains string
		want        map[string]string
		outContains []string
	}{
		{
			name:  "preserve_case_default",
			files: map[string]string{"abc/abc.txt": "abc Abc ABc ABC"},
			args:  func(root string) []string { return []string{"abc", "cde", root} },
			want:  map[string]string{"cde/cde.txt": "cde Cde CDe CDE"},
			outContains: []string{
				"superreplace",
				"visited",
				"replaced 6 occurrence(s)",
			},
		},
		{
			name:  "simple_replace",
			files: map[string]string{"ABC.txt": "ABC abc"},
			args:  func(root string) []string { return []string{"--simple-replace", "abc", "xyz", root} },
			want:  map[string]string{"ABC.txt": "ABC xyz"},
		},
		{
			name:  "name_only",
			files: map[string]string{"abc.txt": "abc"},
			args:  func(root string) []string { return []string{"--replace-in-name-only", "abc", "xyz", root} },
			want:  map[string]string{"xyz.txt": "abc"},
		},
		{
			name:  "file_only",
			files: map[string]string{"abc.txt": "abc"},
			args:  func(root string) []string { return []string{"--replace-in-file-only", "abc", "xyz", root} },
			want:  map[string]string{"abc.txt": "xyz"},
		},
		{
			name:  "both_only_flags",
			files: map[string]string{"abc.txt": "abc"},
			args: func(root string) []string {
				return []string{"--replace-in-name-only", "--replace-in-file-only", "abc", "xyz", root}
			},
			wantErr:     true,
			errContains: "cannot be combined",
			want:        map[string]string{"abc.txt": "abc"},
		},
		{
			name:        "empty_old",
			files:       map[string]string{"abc.txt": "abc"},
			args:        func(root string) []string { return []string{"", "xyz", root} },
			wantErr:     true,
			errContains: "old text must not be empty",
			want:        map[string]string{"abc.txt": "abc"},
		},
		{
			name:        "too_few_args",
			files:       map[string]string{"abc.txt": "abc"},
			args:        func(root string) []string { return []string{"abc", "xyz"} },
			wantErr:     true,
			errContains: "requires at least 3 arg(s)",
			want:        map[string]string{"abc.txt": "abc"},
		},
		{
			name:  "missing_path_does_not_stop_others",
			files: map[string]string{"abc.txt": "abc"},
			args: func(root string) []string {
				return []string{"abc", "xyz", filepath.Join(root, "nope"), root}
			},
			wantErr:     true,
			errContains: "path not found",
			want:        map[string]string{"xyz.txt": "xyz"},
		},
		{
			name:        "dry_run",
			files:       map[string]string{"abc.txt": "abc"},
			args:        func(root string) []string { return []string{"--dry-run", "abc", "xyz", root} },
			want:        map[string]string{"abc.txt": "abc"},
			outContains: []string{"would rename", "would rewrite", "nothing was written"},
		},
		{
			name: "exclude_flag",
			files: map[string]string{
				"build/abc.txt": "abc",
				"abc.txt":       "abc",
			},
			args: func(root string) []string { return []string{"--exclude", "build", "abc", "xyz", root} },
			want: map[string]string{
				"build/abc.txt": "abc",
				"xyz.txt":       "xyz",
			},
		},
		{
			name:        "no_occurrences",
			files:       map[string]string{"a.txt": "nothing"},
			args:        func(root string) []string { return []string{"abc", "xyz", root} },
			want:        map[string]string{"a.txt": "nothing"},
			outContains: []string{"no occurrences"},
		},
		{
			name:  "collapse_spaces",
			files: map[string]string{"notes.md": "foo bar and FooBar"},
			args: func(root string) []string {
				return []string{"--collapse-spaces", "foo bar", "baz qux", root}
			},
			want: map[string]string{"notes.md": "baz qux and BazQux"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, tt.files)

			out, err := execute(t, tt.args(root)...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, readTree(t, root))
			for _, want := range tt.outContains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRootCmdConfigFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"abc.txt":          "abc",
		"generated/abc.go": "abc",
		"abc.tmpl":         "a\x00bc abc",
	})

	cfgPath := filepath.Join(t.TempDir(), "superreplace.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
exclude:
  - generated
assume_text:
  - .tmpl
`), 0644))

	out, err := execute(t, "-c", cfgPath, "abc", "xyz", root)
	require.NoError(t, err)
	assert.Contains(t, out, "using config "+cfgPath)

	assert.Equal(t, map[string]string{
		"xyz.txt":          "xyz",
		"generated/abc.go": "abc",
		"xyz.tmpl":         "a\x00bc xyz",
	}, readTree(t, root))
}

func TestRootCmdBadConfig(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"abc.txt": "abc"})

	cfgPath := filepath.Join(t.TempDir(), "superreplace.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("unknown: true\n"), 0644))

	_, err := execute(t, "--config", cfgPath, "abc", "xyz", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
	assert.Equal(t, map[string]string{"abc.txt": "abc"}, readTree(t, root))
}

func TestRootCmdVersion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "superreplace version info")
}

func TestRootCmdHelp(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "assume_text")
	assert.Contains(t, out, "Windows-1252")
}

func TestRootCmdDebugClassification(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	root := t.TempDir()
	writeTree(t, root, map[string]string{"abc.txt": "abc"})

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs([]string{"--debug", "abc", "xyz", root})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, stderr.String(), "classified file")
	assert.Equal(t, map[string]string{"xyz.txt": "xyz"}, readTree(t, root))
}

func TestRunOptionsFromFlags(t *testing.T) {
	tests := []struct {
		name         string
		opts         rootOpts
		preserveCase bool
		mode         string
	}{
		{name: "defaults_preserve_case", opts: rootOpts{}, preserveCase: true, mode: "preserve-case"},
		{name: "simple_replace", opts: rootOpts{simpleReplace: true}, preserveCase: false, mode: "simple"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.runOptions()
			assert.Equal(t, tt.preserveCase, got.PreserveCase)
			assert.Equal(t, tt.mode, got.Mode().String())
		})
	}
}

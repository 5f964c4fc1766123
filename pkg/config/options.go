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

package config

import (
	"github.com/walteh/superreplace/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ⚙️ RunOptions holds the per-invocation switches given on the command line
type RunOptions struct {
	PreserveCase   bool
	NamesOnly      bool
	ContentOnly    bool
	DryRun         bool
	CollapseSpaces bool
	GitMv          bool
}

// 🏭 DefaultRunOptions returns the options used when no flag is given
func DefaultRunOptions() RunOptions {
	return RunOptions{PreserveCase: true}
}

// 🔍 Validate rejects contradictory switches
func (o RunOptions) Validate() error {
	if o.NamesOnly && o.ContentOnly {
		return errors.New("--replace-in-name-only and --replace-in-file-only cannot be combined")
	}
	return nil
}

// 🎯 Scope reports which kinds of change are enabled
func (o RunOptions) Scope() (names, content bool) {
	return !o.ContentOnly, !o.NamesOnly
}

// Mode returns the replacement mode selected by PreserveCase
func (o RunOptions) Mode() text.Mode {
	if o.PreserveCase {
		return text.ModePreserveCase
	}
	return text.ModeSimple
}

// 🔀 WithConfig enables the flags a config file turns on
func (o RunOptions) WithConfig(cfg *Config) RunOptions {
	if cfg == nil {
		return o
	}
	o.CollapseSpaces = o.CollapseSpaces || cfg.CollapseSpaces
	o.GitMv = o.GitMv || cfg.GitMv
	return o
}

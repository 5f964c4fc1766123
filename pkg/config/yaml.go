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
	"context"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(&YAMLParser{})
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// 📝 Parse parses the config from YAML
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	type yamlConfig struct {
		Exclude        []string `yaml:"exclude,omitempty"`
		AssumeText     []string `yaml:"assume_text,omitempty"`
		AssumeBinary   []string `yaml:"assume_binary,omitempty"`
		SampleSize     int      `yaml:"sample_size,omitempty"`
		CollapseSpaces bool     `yaml:"collapse_spaces,omitempty"`
		GitMv          bool     `yaml:"git_mv,omitempty"`
	}

	var yamlCfg yamlConfig
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&yamlCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &Config{}, nil
		}
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	return &Config{
		Exclude:        yamlCfg.Exclude,
		AssumeText:     yamlCfg.AssumeText,
		AssumeBinary:   yamlCfg.AssumeBinary,
		SampleSize:     yamlCfg.SampleSize,
		CollapseSpaces: yamlCfg.CollapseSpaces,
		GitMv:          yamlCfg.GitMv,
	}, nil
}

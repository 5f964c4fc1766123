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
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/superreplace/pkg/sniff"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// DefaultSampleSize is how many leading bytes are sniffed for binary content
const DefaultSampleSize = sniff.DefaultSampleSize

// 📚 Config holds the settings a config file may provide
type Config struct {
	Exclude        []string // Glob patterns for entries to leave untouched
	AssumeText     []string // Extensions always treated as text
	AssumeBinary   []string // Extensions always treated as binary
	SampleSize     int      // Bytes sniffed when the extension does not decide
	CollapseSpaces bool     // Also replace the space-free variant of old
	GitMv          bool     // Rename through git when inside a work tree
}

// 🏭 Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Exclude: []string{".git", ".hg", ".svn"},
		AssumeText: []string{
			".cfg", ".conf", ".crt", ".cs", ".css", ".html", ".ini", ".j2",
			".js", ".json", ".md", ".pem", ".ps1", ".psm1", ".py", ".rst",
			".sh", ".txt", ".xml", ".xsd", ".yaml", ".yml",
		},
		AssumeBinary: []string{
			".bin", ".eot", ".gz", ".ico", ".iso", ".jpg", ".otf", ".p12",
			".png", ".pyc", ".rpm", ".ttf", ".woff", ".woff2", ".zip",
		},
		SampleSize: DefaultSampleSize,
	}
}

// 🎯 Load reads a config file and merges it over the defaults
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	fileCfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg := Default().Merge(fileCfg)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Str("config", cfg.String()).Msg("configuration loaded")
	return cfg, nil
}

// 🔀 Merge returns a copy of cfg extended by other. Lists are appended,
// a positive sample size replaces the current one, and flags are enabled
// when either side enables them.
func (cfg *Config) Merge(other *Config) *Config {
	out := &Config{
		Exclude:        append([]string{}, cfg.Exclude...),
		AssumeText:     append([]string{}, cfg.AssumeText...),
		AssumeBinary:   append([]string{}, cfg.AssumeBinary...),
		SampleSize:     cfg.SampleSize,
		CollapseSpaces: cfg.CollapseSpaces,
		GitMv:          cfg.GitMv,
	}
	if other == nil {
		return out
	}
	out.Exclude = append(out.Exclude, other.Exclude...)
	out.AssumeText = append(out.AssumeText, other.AssumeText...)
	out.AssumeBinary = append(out.AssumeBinary, other.AssumeBinary...)
	if other.SampleSize > 0 {
		out.SampleSize = other.SampleSize
	}
	out.CollapseSpaces = out.CollapseSpaces || other.CollapseSpaces
	out.GitMv = out.GitMv || other.GitMv
	return out
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.SampleSize < 0 {
		return errors.Errorf("sample_size must not be negative, got %d", cfg.SampleSize)
	}
	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("exclude pattern %q is not a valid glob", pattern)
		}
	}
	for _, ext := range append(append([]string{}, cfg.AssumeText...), cfg.AssumeBinary...) {
		if strings.ContainsAny(ext, `/\`) {
			return errors.Errorf("extension %q must not contain a path separator", ext)
		}
	}
	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("exclude=%v text=%d binary=%d sample=%d collapse_spaces=%t git_mv=%t",
		cfg.Exclude, len(cfg.AssumeText), len(cfg.AssumeBinary), cfg.SampleSize, cfg.CollapseSpaces, cfg.GitMv)
}

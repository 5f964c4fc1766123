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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL. The variable default_sample_size is
// available to expressions in the file.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "superreplace.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default_sample_size": cty.NumberIntVal(DefaultSampleSize),
		},
	}

	type hclConfig struct {
		Exclude        []string `hcl:"exclude,optional"`
		AssumeText     []string `hcl:"assume_text,optional"`
		AssumeBinary   []string `hcl:"assume_binary,optional"`
		SampleSize     int      `hcl:"sample_size,optional"`
		CollapseSpaces bool     `hcl:"collapse_spaces,optional"`
		GitMv          bool     `hcl:"git_mv,optional"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &Config{
		Exclude:        hclCfg.Exclude,
		AssumeText:     hclCfg.AssumeText,
		AssumeBinary:   hclCfg.AssumeBinary,
		SampleSize:     hclCfg.SampleSize,
		CollapseSpaces: hclCfg.CollapseSpaces,
		GitMv:          hclCfg.GitMv,
	}, nil
}

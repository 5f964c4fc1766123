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
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/superreplace/pkg/config"
	"github.com/walteh/superreplace/pkg/log"
	"github.com/walteh/superreplace/pkg/operation"
	"github.com/walteh/superreplace/pkg/sniff"
	"github.com/walteh/superreplace/pkg/status"
	"github.com/walteh/superreplace/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// rootOpts holds the parsed command line flags
type rootOpts struct {
	simpleReplace  bool
	namesOnly      bool
	contentOnly    bool
	dryRun         bool
	collapseSpaces bool
	gitMv          bool
	exclude        []string
	configFile     string
	debug          bool

	stdout io.Writer
	stderr io.Writer
}

// 🌱 newRootCmd creates the superreplace command
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &rootOpts{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "superreplace [flags] old new path [path...]",
		Short: "Replace text in file names and file content, keeping its case",
		Long: `superreplace walks every path, renames files and directories whose names
contain old, and rewrites old inside text files. By default matching ignores
case and each replacement copies the case of the text it replaces:

  abc -> xyz, Abc -> Xyz, ABC -> XYZ, aBc -> xYz

Binary files keep their content but may still be renamed. Files that are not
valid UTF-8 are treated as binary unless their extension is listed under
assume_text in the config file, in which case they are read and written as
Windows-1252.`,
		Args:          validateArgs,
		Version:       GetVersionInfo().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(FormatVersion())

	addRootFlags(cmd, o)
	return cmd
}

// addRootFlags adds the flags to the root command
func addRootFlags(cmd *cobra.Command, o *rootOpts) {
	f := cmd.Flags()
	f.BoolVar(&o.simpleReplace, "simple-replace", false, "match old exactly instead of ignoring and preserving case")
	f.BoolVar(&o.namesOnly, "replace-in-name-only", false, "only rename files and directories")
	f.BoolVar(&o.contentOnly, "replace-in-file-only", false, "only rewrite file content")
	f.BoolVarP(&o.dryRun, "dry-run", "n", false, "report changes without writing anything")
	f.BoolVar(&o.collapseSpaces, "collapse-spaces", false, "also replace old with its spaces removed")
	f.BoolVar(&o.gitMv, "git-mv", false, "rename with git mv inside a git work tree")
	f.StringArrayVar(&o.exclude, "exclude", nil, "glob of entries to skip with their subtrees (repeatable)")
	f.StringVarP(&o.configFile, "config", "c", "", "config file path (.yaml, .yml or .hcl)")
	f.BoolVarP(&o.debug, "debug", "d", false, "enable debug logging")
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MinimumNArgs(3)(cmd, args); err != nil {
		return err
	}
	if args[0] == "" {
		return errors.New("old text must not be empty")
	}
	return nil
}

// setupLogging creates the structured logger written to stderr
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}

// runOptions turns the flags into the switches for this run
func (o *rootOpts) runOptions() config.RunOptions {
	opts := config.DefaultRunOptions()
	if o.simpleReplace {
		opts.PreserveCase = false
	}
	opts.NamesOnly = o.namesOnly
	opts.ContentOnly = o.contentOnly
	opts.DryRun = o.dryRun
	opts.CollapseSpaces = o.collapseSpaces
	opts.GitMv = o.gitMv
	return opts
}

// loadConfig returns the defaults, merged with the config file and the
// --exclude flags
func (o *rootOpts) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configFile != "" {
		loaded, err := config.Load(cmd.Context(), o.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	cfg = cfg.Merge(&config.Config{Exclude: o.exclude})
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// classifyLogger wraps d so every text or binary decision is logged at debug level
func classifyLogger(logger *zerolog.Logger, d sniff.Detector) sniff.Detector {
	return sniff.DetectorFunc(func(path string) (bool, error) {
		isText, err := d.IsText(path)
		if err != nil {
			return false, err
		}
		logger.Debug().Str("path", path).Bool("text", isText).Msg("classified file")
		return isText, nil
	})
}

func (o *rootOpts) run(cmd *cobra.Command, args []string) error {
	oldText, newText, paths := args[0], args[1], args[2:]

	runOpts := o.runOptions()
	if err := runOpts.Validate(); err != nil {
		return errors.Errorf("validating flags: %w", err)
	}

	zlog := setupLogging(o.stderr, o.debug)
	ctx := zlog.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}
	runOpts = runOpts.WithConfig(cfg)

	req, err := text.NewRequest(oldText, newText, runOpts.Mode())
	if err != nil {
		return errors.Errorf("validating replacement: %w", err)
	}
	req.CollapseSpaces = runOpts.CollapseSpaces
	replacer, err := text.New(req)
	if err != nil {
		return errors.Errorf("creating replacer: %w", err)
	}

	console := log.New(o.stdout, zlog)
	ctx = log.NewContext(ctx, console)
	console.Header(fmt.Sprintf("replacing %q with %q (%s)", oldText, newText, req.Mode))
	if o.configFile != "" {
		console.Infof("using config %s", o.configFile)
	}

	tracker := status.NewTracker(&zlog)
	names, content := runOpts.Scope()
	detector := classifyLogger(&zlog, sniff.NewExtensionDetector(cfg.AssumeText, cfg.AssumeBinary, cfg.SampleSize))

	ops := make([]operation.Operation, 0, len(paths))
	for _, path := range paths {
		ops = append(ops, operation.NewReplaceOperation(operation.Options{
			Replacer: replacer,
			Names:    names,
			Content:  content,
			DryRun:   runOpts.DryRun,
			Exclude:  cfg.Exclude,
			Detector: detector,
			Renamer:  operation.NewRenamer(ctx, path, runOpts.GitMv),
			Tracker:  tracker,
		}, path))
	}

	runErr := operation.NewRunner(&zlog, tracker).RunAll(ctx, ops)

	console.LogNewline()
	summary := tracker.Summary()
	table, err := summary.Render(runOpts.DryRun)
	if err != nil {
		return err
	}
	fmt.Fprintln(o.stdout, table)
	status.PrintFailures(o.stdout, tracker.List(ctx))

	if runErr != nil {
		return errors.Errorf("replacing %q: %w", oldText, runErr)
	}

	switch {
	case !summary.Changed():
		console.Warningf("no occurrences of %q found", oldText)
	case runOpts.DryRun:
		console.Success("dry run complete, nothing was written")
	default:
		console.Successf("replaced %d occurrence(s)", summary.Replacements)
	}
	return nil
}

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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	entryIndent = 4  // spaces to indent entry lines
	nameWidth   = 35 // Base width for the entry path
	kindWidth   = 15 // Width for the kind column
)

// 🏷️ EntryKind names what happened to a file or directory
type EntryKind string

const (
	KindRenamed   EntryKind = "renamed"
	KindRewritten EntryKind = "rewritten"
	KindSkipped   EntryKind = "skipped"
	KindFailed    EntryKind = "failed"
)

// 🎯 EntryOperation represents a change to one entry for logging
type EntryOperation struct {
	Path         string    // Path relative to the argument it was found under
	Kind         EntryKind // What happened
	Detail       string    // New name, skip reason or error text
	Replacements int       // Number of replacements made
	DryRun       bool      // Whether the change was only previewed
}

// 📂 PathOperation represents one path argument being processed
type PathOperation struct {
	Root   string // Path as given on the command line
	Old    string // Text being replaced
	New    string // Replacement text
	DryRun bool   // Whether nothing is written
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *PathOperation
	entries   []EntryOperation
}

// 🏭 New creates a new logger writing human output to console and
// structured records to zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatEntryOperation formats an entry operation for display
func (l *Logger) formatEntryOperation(op EntryOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Kind {
	case KindRenamed:
		symbol = '✓'
		symbolColor = color.FgGreen
	case KindRewritten:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case KindFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	kind := string(op.Kind)
	if op.DryRun {
		switch op.Kind {
		case KindRenamed:
			kind = "would rename"
		case KindRewritten:
			kind = "would rewrite"
		}
	}

	detail := op.Detail
	switch op.Kind {
	case KindRenamed:
		detail = "→ " + op.Detail
	case KindRewritten:
		detail = fmt.Sprintf("%d replacement(s)", op.Replacements)
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", entryIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", kindWidth, kind)),
		detail)
}

// 📝 LogEntryOperation logs an entry operation
func (l *Logger) LogEntryOperation(ctx context.Context, op EntryOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, op)

	fmt.Fprintln(l.console, l.formatEntryOperation(op))

	l.zlog.Debug().
		Str("path", op.Path).
		Str("kind", string(op.Kind)).
		Str("detail", op.Detail).
		Int("replacements", op.Replacements).
		Bool("dry_run", op.DryRun).
		Msg("entry operation")
}

// 📝 StartPath starts processing a path argument
func (l *Logger) StartPath(ctx context.Context, op PathOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.entries = nil

	fmt.Fprintf(l.console, "[replacing in %s]\n",
		color.New(color.FgCyan).Sprint(op.Root))

	line := fmt.Sprintf("%s %s %s %s",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Old),
		color.New(color.Faint).Sprint("→"),
		color.New(color.FgYellow).Sprint(op.New))
	if op.DryRun {
		line += " " + color.New(color.Faint).Sprint("• dry run")
	}
	fmt.Fprintln(l.console, line)

	l.zlog.Info().
		Str("root", op.Root).
		Str("old", op.Old).
		Str("new", op.New).
		Bool("dry_run", op.DryRun).
		Msg("starting path")
}

// 📝 EndPath ends the current path argument
func (l *Logger) EndPath(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	l.zlog.Info().
		Str("root", l.currentOp.Root).
		Int("entries", len(l.entries)).
		Msg("path complete")

	l.currentOp = nil
	l.entries = nil
}

// 📝 Diff prints a content preview for path
func (l *Logger) Diff(path, diff string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s%s\n", fmt.Sprintf("%*s", entryIndent*2, ""), color.New(color.Faint).Sprint("--- "+path))
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		fmt.Fprintf(l.console, "%s%s\n", fmt.Sprintf("%*s", entryIndent*2, ""), line)
	}
	l.zlog.Debug().Str("path", path).Msg("content preview")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nameText := color.New(color.Bold, color.FgCyan).Sprint("superreplace")
	fmt.Fprintf(l.console, "\n%s %s\n\n", nameText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

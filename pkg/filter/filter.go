// Package filter decides which filesystem entries of a repository are
// eligible for export.
package filter

import (
	"path/filepath"

	"repodoc/pkg/ignore"

	"go.uber.org/zap"
)

// Kind distinguishes files from directories.
type Kind int

const (
	File Kind = iota
	Directory
)

// String returns "file" or "dir".
func (k Kind) String() string {
	if k == Directory {
		return "dir"
	}
	return "file"
}

// Entry is a filesystem entry discovered during traversal.
type Entry struct {
	AbsolutePath string
	RelativePath string // Slash-separated, relative to the scanned root.
	RecordPath   string // Path in the exported document; RelativePath when empty.
	Kind         Kind
	Size         int64
}

// ExportPath returns the path the entry has in the exported document. It
// differs from RelativePath when several roots are exported together.
func (e Entry) ExportPath() string {
	if e.RecordPath != "" {
		return e.RecordPath
	}
	return e.RelativePath
}

// Name returns the last element of the entry's path.
func (e Entry) Name() string {
	if e.RelativePath != "" && e.RelativePath != "." {
		return filepath.Base(filepath.FromSlash(e.RelativePath))
	}
	return filepath.Base(e.AbsolutePath)
}

// Exclusion reasons reported by Decide and by the traversal.
const (
	ReasonBuiltinDir      = "builtin-dir"
	ReasonBinaryExt       = "binary-ext"
	ReasonTooLarge        = "too-large"
	ReasonUserPattern     = "user-pattern"
	ReasonGitIgnore       = "gitignore"
	ReasonUnrecognizedExt = "unrecognized-ext"
	ReasonSymlinkCycle    = "symlink-cycle"
	ReasonUnreadable      = "unreadable"
	ReasonBinaryContent   = "binary-content"
	ReasonDuplicatePath   = "duplicate-path"
)

// Decision is the outcome of evaluating one entry.
type Decision struct {
	Include bool
	Reason  string // Empty when included.
}

// Include is the decision for an eligible entry.
var Include = Decision{Include: true}

// Exclude returns an exclusion decision with the given reason.
func Exclude(reason string) Decision {
	return Decision{Reason: reason}
}

// Options configures a Filter. The value is copied at construction and never
// mutated afterwards.
type Options struct {
	Rules       ignore.RuleSet // Config and command-line patterns.
	MaxFileSize int64          // Files strictly larger than this are skipped; <= 0 uses DefaultMaxFileSize.
	Debug       bool           // Report every decision.
}

// Filter evaluates entries against layered rules.
type Filter struct {
	opts      Options
	gitignore *ignore.GitIgnore
	logger    *zap.Logger
}

// New creates a Filter.
func New(opts Options, logger *zap.Logger) *Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	return &Filter{opts: opts, logger: logger}
}

// WithGitIgnore returns a copy of f that additionally honours gi.
func (f *Filter) WithGitIgnore(gi *ignore.GitIgnore) *Filter {
	clone := *f
	clone.gitignore = gi
	return &clone
}

// MaxFileSize returns the effective size cap.
func (f *Filter) MaxFileSize() int64 { return f.opts.MaxFileSize }

// Decide evaluates entry; the first matching rule wins. Directories are only
// subject to folder, user-pattern and gitignore rules.
func (f *Filter) Decide(entry Entry) Decision {
	d := f.decide(entry)
	f.Report(entry, d)
	return d
}

func (f *Filter) decide(entry Entry) Decision {
	isDir := entry.Kind == Directory

	if isDir && isSkippedFolder(entry.Name()) {
		return Exclude(ReasonBuiltinDir)
	}
	if !isDir && isCommonBinaryExtension(entry.Name()) {
		return Exclude(ReasonBinaryExt)
	}
	if !isDir && entry.Size > f.opts.MaxFileSize {
		return Exclude(ReasonTooLarge)
	}
	if _, ok := f.opts.Rules.MatchUser(entry.ExportPath()); ok {
		return Exclude(ReasonUserPattern)
	}
	if f.gitignore.MatchesPath(entry.RelativePath, isDir) {
		return Exclude(ReasonGitIgnore)
	}
	if isDir {
		return Include
	}
	if _, ok := LanguageFor(entry.Name()); ok {
		return Include
	}
	return Exclude(ReasonUnrecognizedExt)
}

// Report logs a decision when debug mode is active. The traversal uses it
// for exclusions that are only discovered after Decide, such as unreadable
// files.
func (f *Filter) Report(entry Entry, d Decision) {
	if !f.opts.Debug {
		return
	}
	decision := "include"
	if !d.Include {
		decision = "exclude"
	}
	f.logger.Info("path decision",
		zap.String("path", entry.ExportPath()),
		zap.String("kind", entry.Kind.String()),
		zap.String("decision", decision),
		zap.String("reason", d.Reason))
}

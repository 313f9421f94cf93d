package ignore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// GitIgnoreFile is the per-root ignore file honoured during traversal.
const GitIgnoreFile = ".gitignore"

// IgnorePattern encapsulates a compiled regular expression pattern,
// a negation flag, and metadata about the pattern's origin.
type IgnorePattern struct {
	Pattern *regexp.Regexp // Compiled regular expression for the pattern.
	Negate  bool           // Indicates if the pattern is a negation (starts with '!').
	DirOnly bool           // Pattern ended with '/' and only matches directories.
	Line    string         // Original pattern line.
	LineNo  int            // Line number in the source (1-based).
}

// GitIgnore represents a collection of gitignore-style patterns.
type GitIgnore struct {
	patterns []*IgnorePattern
	logger   *zap.Logger
}

// NewGitIgnore initializes an empty GitIgnore with an optional logger.
func NewGitIgnore(logger *zap.Logger) *GitIgnore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitIgnore{logger: logger}
}

// LoadGitIgnore compiles root/.gitignore. A missing file yields an empty
// matcher; any other read error is returned.
func LoadGitIgnore(root string, logger *zap.Logger) (*GitIgnore, error) {
	gi := NewGitIgnore(logger)
	if err := gi.CompileIgnoreFile(filepath.Join(root, GitIgnoreFile)); err != nil {
		return nil, err
	}
	return gi, nil
}

// CompileIgnoreLines compiles a set of ignore pattern lines into the GitIgnore instance.
func (gi *GitIgnore) CompileIgnoreLines(lines ...string) {
	for i, line := range lines {
		ip := parsePatternLine(line, i+1, gi.logger)
		if ip == nil {
			continue
		}
		gi.patterns = append(gi.patterns, ip)
		gi.logger.Debug("Compiled ignore pattern",
			zap.Int("lineNo", ip.LineNo),
			zap.String("pattern", ip.Line),
			zap.Bool("negate", ip.Negate))
	}
}

// CompileIgnoreFile reads an ignore file and compiles its lines. A missing
// file is not an error.
func (gi *GitIgnore) CompileIgnoreFile(filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			gi.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", filePath))
			return nil
		}
		gi.logger.Error("Failed to read ignore file", zap.String("filePath", filePath), zap.Error(err))
		return err
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	gi.CompileIgnoreLines(lines...)
	gi.logger.Debug("Compiled ignore patterns from file",
		zap.String("filePath", filePath),
		zap.Int("patternCount", len(gi.patterns)))
	return nil
}

// Len reports the number of compiled patterns.
func (gi *GitIgnore) Len() int {
	if gi == nil {
		return 0
	}
	return len(gi.patterns)
}

// MatchesPath checks if a relative path matches the ignore patterns.
func (gi *GitIgnore) MatchesPath(path string, isDir bool) bool {
	matches, _ := gi.MatchesPathWithPattern(path, isDir)
	return matches
}

// MatchesPathWithPattern checks if the given path matches any ignore pattern.
// The last matching pattern decides, so a later negation re-includes a path.
func (gi *GitIgnore) MatchesPathWithPattern(path string, isDir bool) (bool, *IgnorePattern) {
	if gi == nil || len(gi.patterns) == 0 {
		return false, nil
	}
	normalizedPath := normalizePath(path)

	matched := false
	var matchedPattern *IgnorePattern
	for _, pattern := range gi.patterns {
		candidate := normalizedPath
		if pattern.DirOnly && !isDir {
			// a directory-only pattern reaches files through their parent
			candidate = normalizePath(filepath.Dir(normalizedPath))
			if candidate == "." {
				continue
			}
		}
		if pattern.Pattern.MatchString(candidate) {
			matched = !pattern.Negate
			matchedPattern = pattern
		}
	}
	return matched, matchedPattern
}

// parsePatternLine processes a single line from an ignore file.
// Returns nil if the line is a comment, empty, or does not compile.
func parsePatternLine(line string, lineNo int, logger *zap.Logger) *IgnorePattern {
	trimmedLine := strings.TrimSpace(line)

	// Ignore empty lines and comments.
	if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
		return nil
	}

	negate := false
	if strings.HasPrefix(trimmedLine, "!") {
		negate = true
		trimmedLine = strings.TrimPrefix(trimmedLine, "!")
	}

	// Handle escaped characters for `#` and `!`.
	if strings.HasPrefix(trimmedLine, `\#`) || strings.HasPrefix(trimmedLine, `\!`) {
		trimmedLine = trimmedLine[1:]
	}

	dirOnly := strings.HasSuffix(trimmedLine, "/")
	body := strings.TrimSuffix(trimmedLine, "/")
	anchored := strings.HasPrefix(body, "/")
	body = strings.TrimPrefix(body, "/")
	if body == "" {
		return nil
	}

	compiledRegex, err := regexp.Compile(anchorPattern(globToRegex(body), anchored))
	if err != nil {
		logger.Error("Invalid ignore pattern",
			zap.String("pattern", trimmedLine),
			zap.Int("lineNo", lineNo),
			zap.Error(err))
		return nil
	}

	return &IgnorePattern{
		Pattern: compiledRegex,
		Negate:  negate,
		DirOnly: dirOnly,
		Line:    line,
		LineNo:  lineNo,
	}
}

// normalizePath converts OS-specific path separators to forward slashes.
func normalizePath(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}

// File: pkg/combine/traversal.go
package combine

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"repodoc/pkg/filter"
	"repodoc/pkg/ignore"

	"go.uber.org/zap"
)

// dirJob is a directory waiting on the traversal stack.
type dirJob struct {
	abs string
	rel string // Slash-separated, empty for the root.
}

// CollectFiles traverses the provided roots and returns every file that
// passes the filter. With more than one root, record paths are prefixed
// with the root's base name. A root that cannot be accessed is an error;
// anything below a root that cannot be accessed is skipped.
func CollectFiles(roots []string, base *filter.Filter, logger *zap.Logger) (CollectedFiles, error) {
	var collected CollectedFiles
	logger.Debug("Starting file collection", zap.Int("rootCount", len(roots)))

	for _, root := range roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return collected, fmt.Errorf("failed to resolve root %s: %w", root, err)
		}
		info, err := os.Stat(absRoot)
		if err != nil {
			return collected, fmt.Errorf("failed to access root %s: %w", root, err)
		}

		if !info.IsDir() {
			entry := filter.Entry{
				AbsolutePath: absRoot,
				RelativePath: filepath.Base(absRoot),
				Kind:         filter.File,
				Size:         info.Size(),
			}
			if c, ok := candidateFor(base, entry); ok {
				collected.Candidates = append(collected.Candidates, c)
			} else {
				collected.Skipped++
			}
			continue
		}

		var prefix string
		if len(roots) > 1 {
			prefix = filepath.Base(absRoot)
		}
		c := TraverseAndCollectFiles(absRoot, info, prefix, base, logger)
		collected.Candidates = append(collected.Candidates, c.Candidates...)
		collected.Skipped += c.Skipped
	}

	collected = dropDuplicates(collected, base)
	logger.Debug("Completed file collection",
		zap.Int("candidates", len(collected.Candidates)),
		zap.Int("skipped", collected.Skipped))
	return collected, nil
}

// TraverseAndCollectFiles walks one root depth first with an explicit
// stack. Excluded directories are never opened. Symlinked directories are
// followed once; a directory reached again is skipped as a cycle.
func TraverseAndCollectFiles(root string, rootInfo os.FileInfo, prefix string, base *filter.Filter, logger *zap.Logger) CollectedFiles {
	var collected CollectedFiles
	logger.Debug("Starting directory traversal", zap.String("root", root))

	gi, err := ignore.LoadGitIgnore(root, logger)
	if err != nil {
		logger.Warn("Failed to load .gitignore, continuing without it", zap.String("root", root), zap.Error(err))
	}
	f := base.WithGitIgnore(gi)

	visited := make(map[fileIdentity]struct{})
	if id, ok := identityOf(root, rootInfo); ok {
		visited[id] = struct{}{}
	}

	stack := []dirJob{{abs: root}}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir.abs)
		if err != nil {
			logger.Debug("Failed to read directory", zap.String("dir", dir.abs), zap.Error(err))
			f.Report(filter.Entry{AbsolutePath: dir.abs, RelativePath: dir.rel, RecordPath: path.Join(prefix, dir.rel), Kind: filter.Directory}, filter.Exclude(filter.ReasonUnreadable))
			collected.Skipped++
			continue
		}

		var subdirs []dirJob
		for _, de := range entries {
			abs := filepath.Join(dir.abs, de.Name())
			rel := path.Join(dir.rel, de.Name())
			recordPath := path.Join(prefix, rel)

			// Stat rather than Lstat so symlinks are followed.
			info, err := os.Stat(abs)
			if err != nil {
				f.Report(filter.Entry{AbsolutePath: abs, RelativePath: rel, RecordPath: recordPath, Kind: kindOf(de)}, filter.Exclude(filter.ReasonUnreadable))
				collected.Skipped++
				continue
			}

			if info.IsDir() {
				entry := filter.Entry{AbsolutePath: abs, RelativePath: rel, RecordPath: recordPath, Kind: filter.Directory}
				id, hasID := identityOf(abs, info)
				if hasID {
					if _, seen := visited[id]; seen {
						f.Report(entry, filter.Exclude(filter.ReasonSymlinkCycle))
						collected.Skipped++
						continue
					}
				}
				if d := f.Decide(entry); !d.Include {
					collected.Skipped++
					continue
				}
				if hasID {
					visited[id] = struct{}{}
				}
				subdirs = append(subdirs, dirJob{abs: abs, rel: rel})
				continue
			}

			entry := filter.Entry{AbsolutePath: abs, RelativePath: rel, RecordPath: recordPath, Kind: filter.File, Size: info.Size()}
			if !info.Mode().IsRegular() {
				f.Report(entry, filter.Exclude(filter.ReasonUnreadable))
				collected.Skipped++
				continue
			}
			if c, ok := candidateFor(f, entry); ok {
				collected.Candidates = append(collected.Candidates, c)
			} else {
				collected.Skipped++
			}
		}

		// Push in reverse so directories are popped in name order.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	logger.Debug("Completed directory traversal",
		zap.String("root", root),
		zap.Int("candidates", len(collected.Candidates)),
		zap.Int("skipped", collected.Skipped))
	return collected
}

// candidateFor decides entry. User patterns see its export path, while the
// root's .gitignore sees the path relative to that root.
func candidateFor(f *filter.Filter, entry filter.Entry) (Candidate, bool) {
	if d := f.Decide(entry); !d.Include {
		return Candidate{}, false
	}
	lang, _ := filter.LanguageFor(entry.Name())
	return Candidate{Entry: entry, RecordPath: entry.ExportPath(), Language: lang.Tag}, true
}

// dropDuplicates keeps the first candidate for each record path. Duplicates
// arise when a file is given twice or two roots share a base name.
func dropDuplicates(collected CollectedFiles, f *filter.Filter) CollectedFiles {
	seen := make(map[string]struct{}, len(collected.Candidates))
	kept := collected.Candidates[:0]
	for _, c := range collected.Candidates {
		if _, dup := seen[c.RecordPath]; dup {
			f.Report(c.Entry, filter.Exclude(filter.ReasonDuplicatePath))
			collected.Skipped++
			continue
		}
		seen[c.RecordPath] = struct{}{}
		kept = append(kept, c)
	}
	collected.Candidates = kept
	return collected
}

func kindOf(de fs.DirEntry) filter.Kind {
	if de.IsDir() {
		return filter.Directory
	}
	return filter.File
}

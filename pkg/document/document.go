// Package document assembles extracted files into the single, ordered
// document model that every output format renders.
package document

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"repodoc/pkg/extract"
	"repodoc/pkg/filter"
)

// ErrDuplicatePath is returned when two records share a relative path.
var ErrDuplicatePath = errors.New("duplicate relative path")

// FileRecord is one exported file and its segments.
type FileRecord struct {
	RelativePath string // Slash-separated, unique within a document.
	Language     string
	Segments     []extract.Segment
}

// Content reconstructs the file from its segments.
func (f FileRecord) Content() []byte {
	return extract.Join(f.Segments)
}

// Hint returns the code fence hint for the file's language.
func (f FileRecord) Hint() string {
	return filter.HintFor(f.Language)
}

// Document is the assembled export: a rendering of the directory tree and
// the files in tree order. It is not modified after Assemble returns.
type Document struct {
	Tree  string
	Files []FileRecord
}

// Assemble orders files depth first (directories before files, both sorted
// byte-wise) and renders the tree. The result depends only on the set of
// records, never on their input order.
func Assemble(files []FileRecord) (Document, error) {
	root := newDirNode(".")
	byPath := make(map[string]FileRecord, len(files))
	for _, f := range files {
		p := cleanPath(f.RelativePath)
		if p == "" {
			return Document{}, fmt.Errorf("empty relative path for %q", f.RelativePath)
		}
		if _, dup := byPath[p]; dup {
			return Document{}, fmt.Errorf("%w: %s", ErrDuplicatePath, p)
		}
		f.RelativePath = p
		byPath[p] = f
		root.insert(strings.Split(p, "/"), p)
	}

	var tree strings.Builder
	tree.WriteString("./\n")
	ordered := make([]FileRecord, 0, len(files))
	root.render(&tree, "", func(p string) {
		ordered = append(ordered, byPath[p])
	})

	return Document{Tree: tree.String(), Files: ordered}, nil
}

// cleanPath normalizes a relative path to slash form without leading "./".
func cleanPath(p string) string {
	p = path.Clean(strings.ReplaceAll(p, `\`, "/"))
	p = strings.TrimPrefix(p, "/")
	if p == "." {
		return ""
	}
	return p
}

// File: pkg/document/tree.go
package document

import (
	"sort"
	"strings"
)

// dirNode is a directory in the path trie built from file paths.
type dirNode struct {
	name  string
	dirs  map[string]*dirNode
	files map[string]string // name -> full relative path
}

func newDirNode(name string) *dirNode {
	return &dirNode{name: name, dirs: map[string]*dirNode{}, files: map[string]string{}}
}

// insert adds the file at parts (split relative path) below n.
func (n *dirNode) insert(parts []string, full string) {
	if len(parts) == 1 {
		n.files[parts[0]] = full
		return
	}
	child, ok := n.dirs[parts[0]]
	if !ok {
		child = newDirNode(parts[0])
		n.dirs[parts[0]] = child
	}
	child.insert(parts[1:], full)
}

// render writes the subtree below n with box-drawing connectors. Directories
// come before files at every level, both sorted lexicographically; visit is
// called for each file in the same order.
func (n *dirNode) render(b *strings.Builder, prefix string, visit func(path string)) {
	dirNames := sortedKeys(n.dirs)
	fileNames := sortedKeys(n.files)
	total := len(dirNames) + len(fileNames)

	for i, name := range dirNames {
		connector, extension := connectors(i == total-1)
		b.WriteString(prefix + connector + name + "/\n")
		n.dirs[name].render(b, prefix+extension, visit)
	}
	for i, name := range fileNames {
		connector, _ := connectors(len(dirNames)+i == total-1)
		b.WriteString(prefix + connector + name + "\n")
		visit(n.files[name])
	}
}

func connectors(last bool) (string, string) {
	if last {
		return "└── ", "    "
	}
	return "├── ", "│   "
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

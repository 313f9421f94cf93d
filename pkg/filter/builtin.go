// File: pkg/filter/builtin.go
package filter

import "strings"

// DefaultMaxFileSize is the size cap above which files are skipped (5 MiB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// SkipFolders are dependency, build-output and tooling directories that are
// pruned together with their whole subtree. Any directory whose name starts
// with a dot is pruned as well.
var SkipFolders = map[string]bool{
	".git":         true,
	".svn":         true,
	".hg":          true,
	".idea":        true,
	".vscode":      true,
	"node_modules": true,
	"target":       true,
	".fingerprint": true,
	"build":        true,
	"dist":         true,
	"venv":         true,
	".venv":        true,
	"__pycache__":  true,
	"bin":          true,
	"obj":          true,
	"out":          true,
	"vendor":       true,
}

// BinaryExtensions are binary, media and archive extensions that are never
// read.
var BinaryExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "exe": true,
	"dll": true, "so": true, "dylib": true, "pdf": true, "mp4": true,
	"mov": true, "zip": true, "tar": true, "gz": true, "bz2": true,
	"7z": true, "class": true, "jar": true, "psd": true, "obj": true,
	"lib": true, "a": true, "iso": true, "ico": true, "ttf": true,
	"woff": true, "woff2": true, "doc": true, "docx": true, "xls": true,
	"xlsx": true, "ppt": true, "pptx": true, "apk": true, "msi": true,
	"o": true, "out": true, "bin": true, "map": true, "lock": true,
	"pkl": true, "npy": true, "rdata": true,
}

// isSkippedFolder reports whether a directory name is hidden or a known
// dependency folder.
func isSkippedFolder(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}
	return SkipFolders[name]
}

// isCommonBinaryExtension checks if the file has a known binary extension.
func isCommonBinaryExtension(path string) bool {
	return BinaryExtensions[extension(path)]
}

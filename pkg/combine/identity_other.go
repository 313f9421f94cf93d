//go:build !unix

package combine

import (
	"os"
	"path/filepath"
)

type fileIdentity struct {
	path string
}

func identityOf(path string, _ os.FileInfo) (fileIdentity, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fileIdentity{}, false
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return fileIdentity{}, false
	}
	return fileIdentity{path: abs}, true
}

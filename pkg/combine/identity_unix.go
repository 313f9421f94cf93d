//go:build unix

package combine

import (
	"os"
	"syscall"
)

// fileIdentity identifies a directory independently of the path it was
// reached through.
type fileIdentity struct {
	dev uint64
	ino uint64
}

func identityOf(_ string, info os.FileInfo) (fileIdentity, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileIdentity{}, false
	}
	return fileIdentity{dev: uint64(st.Dev), ino: uint64(st.Ino)}, true
}

package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestString(t *testing.T) {
	info := Info{
		Version:   "1.2.3",
		GitCommit: "abcdefg",
		BuildTime: "2024-04-27T15:04:05Z",
		GoVersion: "go1.24.4",
		Platform:  "linux/amd64",
	}
	assert.Equal(t,
		"repodoc version 1.2.3 (commit: abcdefg) built at 2024-04-27T15:04:05Z with go1.24.4 on linux/amd64",
		info.String())
}

func TestFillFromBuildInfo(t *testing.T) {
	info := Info{Version: "dev", GitCommit: "none", BuildTime: "unknown"}
	fillFromBuildInfo(&info, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123abc"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})
	assert.Equal(t, Info{Version: "v0.3.0", GitCommit: "0123abc", BuildTime: "2026-01-02T03:04:05Z"}, info)

	pinned := Info{Version: "1.0.0", GitCommit: "fixed", BuildTime: "then"}
	fillFromBuildInfo(&pinned, &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "other"}},
	})
	assert.Equal(t, Info{Version: "1.0.0", GitCommit: "fixed", BuildTime: "then"}, pinned)
}

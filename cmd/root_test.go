package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"repodoc/pkg/version"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugRequested(t *testing.T) {
	assert.True(t, DebugRequested([]string{"src", "--debug"}))
	assert.True(t, DebugRequested([]string{"--debug=true"}))
	assert.False(t, DebugRequested([]string{"src", "-o", "out.md"}))
	assert.False(t, DebugRequested([]string{"--", "--debug"}))
}

func TestVersionShort(t *testing.T) {
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs([]string{"version", "--short"})
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetArgs(nil)
		require.NoError(t, versionCmd.Flags().Set("short", "false"))
	})

	require.NoError(t, RootCmd.Execute())
	assert.Equal(t, version.Get().Version+"\n", out.String())
}

func TestVersionFull(t *testing.T) {
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetArgs(nil)
	})

	require.NoError(t, RootCmd.Execute())
	assert.Equal(t, version.Get().String()+"\n", out.String())
	assert.True(t, strings.HasPrefix(out.String(), "repodoc version "))
}

// runRoot executes the root command with args and resets the flags it
// accumulates.
func runRoot(t *testing.T, args ...string) {
	t.Helper()
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetArgs(nil)
		flags.Exclude = nil
	})
	require.NoError(t, RootCmd.Execute())
}

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRootExport(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644))
	out := filepath.Join(t.TempDir(), "export.md")

	runRoot(t, root, "-o", out, "-w", "2", "-e", "ignored")

	md, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(md), "### `main.go`")
	assert.Contains(t, string(md), "<!-- function main -->")
}

func TestRootExport_SeveralPaths(t *testing.T) {
	parent := t.TempDir()
	writeSource(t, filepath.Join(parent, "api"), "server.go", "package api\n")
	writeSource(t, filepath.Join(parent, "web"), "app.js", "function app() {}\n")
	out := filepath.Join(t.TempDir(), "export.md")

	runRoot(t, filepath.Join(parent, "api"), filepath.Join(parent, "web"), "-o", out)

	md, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(md), "### `api/server.go`")
	assert.Contains(t, string(md), "### `web/app.js`")
}

func TestRootExport_ExcludeIsVerbatim(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "ab.go", "package ab\n")
	writeSource(t, root, "a,b.go", "package ab\n")
	out := filepath.Join(t.TempDir(), "export.md")

	runRoot(t, root, "-o", out, "-e", "a,b")
	assert.Equal(t, []string{"a,b"}, flags.Exclude)

	md, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(md), "### `ab.go`")
	assert.NotContains(t, string(md), "### `a,b.go`")
}

// File: pkg/combine/config.go
package combine

import (
	"io"

	"repodoc/pkg/ignore"
)

// DefaultOutput is the markdown file written when no output path is given.
const DefaultOutput = "repodoc_output.md"

// Arguments holds the command-line options for one export.
type Arguments struct {
	Paths          []string  // Roots to scan; the working directory when empty.
	Output         string    // Destination of the markdown document.
	ConfigFile     string    // Explicit config file; repodoc.yml/.yaml in the working directory otherwise.
	IgnorePatterns []string  // Command-line exclusion patterns.
	PDF            bool      // Also write a PDF next to the markdown output.
	Training       string    // Destination of the training samples; disabled when empty.
	MaxWorkers     int       // Extraction workers; runtime.NumCPU() when <= 0.
	Debug          bool      // Report every path decision.
	Stream         bool      // Write markdown to Stdout instead of Output.
	Stdout         io.Writer // Stream target.
}

// Options is the immutable configuration shared by traversal and workers.
type Options struct {
	Rules       ignore.RuleSet
	MaxFileSize int64 // <= 0 uses filter.DefaultMaxFileSize.
	MaxWorkers  int
	Debug       bool
}

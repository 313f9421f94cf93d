// Package output renders an assembled document into its on-disk formats.
package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"repodoc/pkg/document"
)

// Title is the top-level heading of the markdown export.
const Title = "Repository Export"

// RenderMarkdown renders doc into markdown: a heading, the directory tree,
// then one subsection per file with every segment in its own code fence.
func RenderMarkdown(doc document.Document) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# %s\n\n", Title)
	b.WriteString("## Directory Structure\n\n")
	writeFence(&b, "", []byte(doc.Tree))
	b.WriteString("\n## Code\n\n")

	for _, f := range doc.Files {
		fmt.Fprintf(&b, "### `%s`\n\n", f.RelativePath)
		hint := f.Hint()
		for _, seg := range f.Segments {
			if seg.Label != "" {
				fmt.Fprintf(&b, "<!-- %s -->\n", strings.ReplaceAll(seg.Label, "--", "- -"))
			}
			writeFence(&b, hint, seg.Content)
			b.WriteString("\n")
		}
	}
	return b.Bytes()
}

// Markdown writes the markdown rendering of doc to w in a single write.
func Markdown(w io.Writer, doc document.Document) error {
	if _, err := w.Write(RenderMarkdown(doc)); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

// WriteFile renders doc into memory and writes it to path once.
func WriteFile(path string, doc document.Document) error {
	if err := os.WriteFile(path, RenderMarkdown(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

// writeFence writes content inside a code fence long enough that no
// backtick run in content can close it.
func writeFence(b *bytes.Buffer, info string, content []byte) {
	fence := strings.Repeat("`", fenceLength(content))
	b.WriteString(fence + info + "\n")
	b.Write(content)
	if len(content) > 0 && content[len(content)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString(fence + "\n")
}

func fenceLength(content []byte) int {
	longest, run := 0, 0
	for _, c := range content {
		if c == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	if longest >= 3 {
		return longest + 1
	}
	return 3
}

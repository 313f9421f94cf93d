package output

import (
	"fmt"
	"io"
	"strings"

	"repodoc/pkg/document"

	"github.com/go-pdf/fpdf"
)

const (
	pdfLineHeight = 4.0
	pdfMargin     = 10.0
)

// asciiTree replaces box-drawing connectors, which the core PDF fonts
// cannot encode.
var asciiTree = strings.NewReplacer("├── ", "|-- ", "└── ", "`-- ", "│   ", "|   ")

// PDF writes a paginated A4 rendering of doc: the directory tree followed by
// every file's content in a monospace font.
func PDF(w io.Writer, doc document.Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	heading := func(text string, size float64) {
		pdf.SetFont("Courier", "B", size)
		pdf.MultiCell(0, size/2, tr(text), "", "L", false)
		pdf.Ln(1)
	}
	body := func(text string) {
		pdf.SetFont("Courier", "", 8)
		for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
			line = strings.ReplaceAll(line, "\t", "    ")
			pdf.MultiCell(0, pdfLineHeight, tr(line), "", "L", false)
		}
		pdf.Ln(pdfLineHeight)
	}

	pdf.AddPage()
	heading(Title, 14)
	heading("Directory Structure", 12)
	body(asciiTree.Replace(doc.Tree))

	for _, f := range doc.Files {
		heading("File: "+f.RelativePath, 10)
		body(string(f.Content()))
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"repodoc/pkg/document"
	"repodoc/pkg/extract"
	"repodoc/pkg/training"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument(t *testing.T) document.Document {
	t.Helper()
	py := []byte("import os\n\ndef run():\n    pass\n")
	doc, err := document.Assemble([]document.FileRecord{
		{
			RelativePath: "app/main.py",
			Language:     "python",
			Segments: []extract.Segment{
				{Language: "python", Start: 0, End: 11, Content: py[:11]},
				{Label: "function run", Language: "python", Start: 11, End: len(py), Content: py[11:]},
			},
		},
		{
			RelativePath: "README.fs",
			Language:     "fsharp",
			Segments: extract.WholeFile(extract.Source{
				Name: "README.fs", Language: "fsharp", Content: []byte("// ```nested```\nprintfn \"hi\""),
			}),
		},
	})
	require.NoError(t, err)
	return doc
}

func TestRenderMarkdown(t *testing.T) {
	got := string(RenderMarkdown(testDocument(t)))

	want := "# Repository Export\n\n" +
		"## Directory Structure\n\n" +
		"```\n" +
		"./\n" +
		"├── app/\n" +
		"│   └── main.py\n" +
		"└── README.fs\n" +
		"```\n\n" +
		"## Code\n\n" +
		"### `app/main.py`\n\n" +
		"```python\n" +
		"import os\n\n" +
		"```\n\n" +
		"<!-- function run -->\n" +
		"```python\n" +
		"def run():\n    pass\n" +
		"```\n\n" +
		"### `README.fs`\n\n" +
		"<!-- README.fs -->\n" +
		"````fsharp\n" +
		"// ```nested```\nprintfn \"hi\"\n" +
		"````\n\n"
	assert.Equal(t, want, got)
}

func TestRenderMarkdown_Deterministic(t *testing.T) {
	assert.Equal(t, RenderMarkdown(testDocument(t)), RenderMarkdown(testDocument(t)))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestMarkdown_WriteFailure(t *testing.T) {
	err := Markdown(failingWriter{}, testDocument(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestWriteFile(t *testing.T) {
	doc := testDocument(t)
	p := filepath.Join(t.TempDir(), "export.md")
	require.NoError(t, WriteFile(p, doc))

	got, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, RenderMarkdown(doc), got)

	require.Error(t, WriteFile(filepath.Join(t.TempDir(), "missing", "export.md"), doc))
}

func TestFenceLength(t *testing.T) {
	assert.Equal(t, 3, fenceLength([]byte("no ticks")))
	assert.Equal(t, 3, fenceLength([]byte("``two``")))
	assert.Equal(t, 4, fenceLength([]byte("```")))
	assert.Equal(t, 6, fenceLength([]byte("a `````b")))
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, testDocument(t)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}

func TestTrainingJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TrainingJSON(&buf, []training.Record{{
		Prompt:           "fn a() -> Vec<u8> ",
		Completion:       "{}",
		PromptTokens:     8,
		CompletionTokens: 2,
		Tokenizer:        "cl100k_base",
		TokenizerVersion: "v1",
	}}))

	out := buf.String()
	assert.Contains(t, out, `"prompt": "fn a() -> Vec<u8> "`)
	assert.Contains(t, out, `"prompt_tokens": 8`)
	assert.Contains(t, out, `"completion_tokens": 2`)
	assert.Contains(t, out, `"tokenizer": "cl100k_base"`)
	assert.Contains(t, out, `"tokenizer_version": "v1"`)
	assert.True(t, strings.HasPrefix(out, "[\n"))
}

func TestTrainingJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TrainingJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

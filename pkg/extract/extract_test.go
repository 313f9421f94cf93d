package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func labels(segments []Segment) []string {
	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = s.Label
	}
	return out
}

func requireRoundTrip(t *testing.T, src Source, segments []Segment) {
	t.Helper()
	require.NoError(t, Verify(src.Content, segments))
	require.Equal(t, string(src.Content), string(Join(segments)))
	for _, s := range segments {
		assert.Equal(t, src.Language, s.Language)
	}
}

func TestRegistry_Python(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))

	t.Run("two functions", func(t *testing.T) {
		src := Source{Name: "a.py", Language: "python", Content: []byte(
			"def first():\n    return 1\n\n\ndef second():\n    return 2\n")}

		segments := r.Extract(src)
		requireRoundTrip(t, src, segments)
		assert.Equal(t, []string{"function first", "function second"}, labels(segments))
		assert.Equal(t, 0, segments[0].Start)
	})

	t.Run("imports preamble", func(t *testing.T) {
		src := Source{Name: "m.py", Language: "python", Content: []byte(
			"import os\nfrom sys import path\n\nclass Foo:\n    pass\n\ndef bar():\n    pass\n")}

		segments := r.Extract(src)
		requireRoundTrip(t, src, segments)
		assert.Equal(t, []string{"", "class Foo", "function bar"}, labels(segments))
		assert.Equal(t, "import os\nfrom sys import path\n\n", string(segments[0].Content))
	})

	t.Run("interstitial statement", func(t *testing.T) {
		src := Source{Name: "m.py", Language: "python", Content: []byte(
			"def a():\n    pass\n\nX = 1\n\ndef b():\n    pass\n")}

		segments := r.Extract(src)
		requireRoundTrip(t, src, segments)
		assert.Equal(t, []string{"function a", "", "function b"}, labels(segments))
	})

	t.Run("decorated", func(t *testing.T) {
		src := Source{Name: "app.py", Language: "python", Content: []byte(
			"@app.route('/')\ndef handler():\n    return 'ok'\n")}

		segments := r.Extract(src)
		requireRoundTrip(t, src, segments)
		assert.Equal(t, []string{"function handler"}, labels(segments))
	})

	t.Run("syntax error falls back", func(t *testing.T) {
		src := Source{Name: "pkg/broken.py", Language: "python", Content: []byte(
			"def broken(:\n    pass\n")}

		segments := r.Extract(src)
		requireRoundTrip(t, src, segments)
		assert.Equal(t, []string{"broken.py"}, labels(segments))
	})

	t.Run("no declarations falls back", func(t *testing.T) {
		src := Source{Name: "script.py", Language: "python", Content: []byte("print('hi')\n")}

		segments := r.Extract(src)
		requireRoundTrip(t, src, segments)
		assert.Equal(t, []string{"script.py"}, labels(segments))
	})
}

func TestRegistry_Rust(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))
	src := Source{Name: "src/lib.rs", Language: "rust", Content: []byte(`use std::fmt;

struct Point {
    x: i32,
}

impl fmt::Display for Point {
    fn fmt(&self, f: &mut fmt::Formatter) -> fmt::Result {
        Ok(())
    }
}

trait Shape {
    fn area(&self) -> f64;
}

fn main() {}
`)}

	segments := r.Extract(src)
	requireRoundTrip(t, src, segments)
	assert.Equal(t, []string{
		"",
		"struct Point",
		"impl fmt::Display for Point",
		"trait Shape",
		"function main",
	}, labels(segments))
	assert.Equal(t, "use std::fmt;\n\n", string(segments[0].Content))
}

func TestRegistry_Go(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))
	src := Source{Name: "main.go", Language: "go", Content: []byte(`package main

import "fmt"

type T struct{}

func (t T) M() {}

func main() {
	fmt.Println("hi")
}
`)}

	segments := r.Extract(src)
	requireRoundTrip(t, src, segments)
	assert.Equal(t, []string{"", "type T", "method M", "function main"}, labels(segments))
}

func TestRegistry_JavaScript(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))
	src := Source{Name: "index.js", Language: "javascript", Content: []byte(
		"export function a() {}\nclass B {}\n")}

	segments := r.Extract(src)
	requireRoundTrip(t, src, segments)
	assert.Equal(t, []string{"function a", "class B"}, labels(segments))
}

func TestRegistry_Grammars(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))

	tests := []struct {
		name     string
		file     string
		language string
		content  string
		want     []string
	}{
		{
			name:     "typescript exports",
			file:     "shapes.ts",
			language: "typescript",
			content: "import { x } from \"./x\";\n\n" +
				"export interface Shape {\n  area(): number;\n}\n\n" +
				"export enum Color {\n  Red,\n}\n\n" +
				"export default class Circle {}\n\n" +
				"function helper(): void {}\n\n" +
				"type Id = string;\n",
			want: []string{"", "interface Shape", "enum Color", "class Circle", "function helper", "type Id"},
		},
		{
			name:     "java types",
			file:     "A.java",
			language: "java",
			content: "package p;\n\nimport java.util.List;\n\n" +
				"public class A {\n  void m() {}\n}\n\n" +
				"interface B {}\n\n" +
				"enum C { X }\n",
			want: []string{"", "class A", "interface B", "enum C"},
		},
		{
			name:     "c declarators",
			file:     "a.c",
			language: "c",
			content: "#include <stdio.h>\n\n" +
				"struct P { int x; };\n\n" +
				"enum Color { RED };\n\n" +
				"typedef unsigned int uint;\n\n" +
				"static char *name(void) { return 0; }\n\n" +
				"int main(void) { return 0; }\n",
			want: []string{"", "struct P", "enum Color", "typedef uint", "function name", "function main"},
		},
		{
			name:     "cpp scopes",
			file:     "a.cpp",
			language: "cpp",
			content: "namespace ns {\nint f() { return 1; }\n}\n\n" +
				"class A {\n  void m();\n};\n\n" +
				"void A::m() {}\n",
			want: []string{"namespace ns", "class A", "function A::m"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := Source{Name: tt.file, Language: tt.language, Content: []byte(tt.content)}

			segments := r.Extract(src)
			requireRoundTrip(t, src, segments)
			assert.Equal(t, tt.want, labels(segments))
		})
	}
}

func TestRegistry_TrailingSemicolon(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))
	src := Source{Name: "a.c", Language: "c", Content: []byte("struct P { int x; };\n\nunion U { int i; };\n")}

	segments := r.Extract(src)
	requireRoundTrip(t, src, segments)
	require.Len(t, segments, 2)
	assert.Equal(t, "struct P { int x; };\n\n", string(segments[0].Content))
	assert.Equal(t, "union U { int i; };\n", string(segments[1].Content))
}

func TestRegistry_Heuristic(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))

	t.Run("ruby", func(t *testing.T) {
		src := Source{Name: "foo.rb", Language: "ruby", Content: []byte(
			"require 'x'\n\nclass Foo < Base\n  def bar\n  end\nend")}

		segments := r.Extract(src)
		requireRoundTrip(t, src, segments)
		assert.Equal(t, []string{"", "class Foo", "def bar"}, labels(segments))
		assert.Equal(t, "class Foo < Base\n", string(segments[1].Content))
		assert.Equal(t, "  def bar\n  end\nend", string(segments[2].Content))
	})

	t.Run("modifiers", func(t *testing.T) {
		src := Source{Name: "Svc.cs", Language: "csharp", Content: []byte(
			"using System;\npublic static class Svc {\n}\ninternal sealed class Impl : Svc {\n}\n")}

		segments := r.Extract(src)
		requireRoundTrip(t, src, segments)
		assert.Equal(t, []string{"", "class Svc", "class Impl"}, labels(segments))
	})

	t.Run("keyword glued to punctuation", func(t *testing.T) {
		src := Source{Name: "a.kt", Language: "kotlin", Content: []byte("val class: String = \"x\"\nfun main() {}\n")}

		segments := r.Extract(src)
		requireRoundTrip(t, src, segments)
		assert.Equal(t, []string{"", "fun main"}, labels(segments))
	})

	t.Run("no boundary falls back", func(t *testing.T) {
		src := Source{Name: "scripts/run.sh", Language: "shell", Content: []byte("echo hi\n")}

		segments := r.Extract(src)
		requireRoundTrip(t, src, segments)
		assert.Equal(t, []string{"run.sh"}, labels(segments))
	})

	t.Run("batch labels", func(t *testing.T) {
		src := Source{Name: "build.bat", Language: "batch", Content: []byte(
			"@echo off\n:start\necho a\n:: note\n  :clean-up\ngoto :eof\n")}

		segments := r.Extract(src)
		requireRoundTrip(t, src, segments)
		assert.Equal(t, []string{"", "label start", "label clean-up"}, labels(segments))
		assert.Equal(t, ":start\necho a\n:: note\n", string(segments[1].Content))
	})

	t.Run("batch without labels falls back", func(t *testing.T) {
		src := Source{Name: "build.bat", Language: "batch", Content: []byte("@echo off\n:: only a comment\necho hi\n")}

		segments := r.Extract(src)
		requireRoundTrip(t, src, segments)
		assert.Equal(t, []string{"build.bat"}, labels(segments))
	})
}

func TestRegistry_EdgeCases(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))

	t.Run("empty file", func(t *testing.T) {
		src := Source{Name: "empty.rs", Language: "rust", Content: []byte{}}
		segments := r.Extract(src)
		require.Len(t, segments, 1)
		requireRoundTrip(t, src, segments)
		assert.Equal(t, "empty.rs", segments[0].Label)
	})

	t.Run("unknown language", func(t *testing.T) {
		src := Source{Name: "x.cobol", Language: "cobol", Content: []byte("IDENTIFICATION DIVISION.\n")}
		segments := r.Extract(src)
		requireRoundTrip(t, src, segments)
		assert.Equal(t, []string{"x.cobol"}, labels(segments))
	})
}

type stubExtractor struct {
	segments []Segment
	err      error
	panics   bool
}

func (s stubExtractor) Extract(Source) ([]Segment, error) {
	if s.panics {
		panic("boom")
	}
	return s.segments, s.err
}

func TestRegistry_DegradesToWholeFile(t *testing.T) {
	src := Source{Name: "a.go", Language: "stub", Content: []byte("package a\n")}

	tests := []struct {
		name string
		e    stubExtractor
	}{
		{"error", stubExtractor{err: errors.New("parser unavailable")}},
		{"panic", stubExtractor{panics: true}},
		{"gap", stubExtractor{segments: []Segment{{Start: 0, End: 3, Content: src.Content[:3]}}}},
		{"overlap", stubExtractor{segments: []Segment{
			{Start: 0, End: 5, Content: src.Content[:5]},
			{Start: 3, End: 10, Content: src.Content[3:]},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(zaptest.NewLogger(t))
			r.Register("stub", tt.e)

			segments := r.Extract(src)
			requireRoundTrip(t, Source{Language: "stub", Content: src.Content}, segments)
			assert.Equal(t, []string{"a.go"}, labels(segments))
		})
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry(nil)

	e, ok := r.Lookup("python")
	require.True(t, ok)
	assert.IsType(t, &StructuralExtractor{}, e)

	e, ok = r.Lookup("ruby")
	require.True(t, ok)
	assert.IsType(t, &HeuristicExtractor{}, e)

	_, ok = r.Lookup("cobol")
	assert.False(t, ok)
}

func TestStitch(t *testing.T) {
	src := Source{Language: "x", Content: []byte("  A  B\n#C")}
	segments := stitch(src, []span{
		{start: 2, end: 3, label: "a"},
		{start: 5, end: 6, label: "b"},
	})

	requireRoundTrip(t, src, segments)
	// leading blank bytes stay a preamble, the blank gap is absorbed, the
	// trailing comment is interstitial
	assert.Equal(t, []string{"", "a", "b", ""}, labels(segments))
	assert.Equal(t, "A  ", string(segments[1].Content))
	assert.Equal(t, "B", string(segments[2].Content))
	assert.Equal(t, "\n#C", string(segments[3].Content))
}

func TestIdentifierAfter(t *testing.T) {
	assert.Equal(t, "Name", identifierAfter([]byte(" (r *T) Name() {")))
	assert.Equal(t, "self.bar", identifierAfter([]byte(" self.bar")))
	assert.Equal(t, "Foo", identifierAfter([]byte(" Foo:")))
	assert.Equal(t, "", identifierAfter([]byte(" (unclosed")))
}

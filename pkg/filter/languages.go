// File: pkg/filter/languages.go
package filter

import (
	"path/filepath"
	"strings"
)

// Language describes a recognized source language.
type Language struct {
	Tag  string // Stable language tag used for extractor dispatch.
	Hint string // Fence info string used when rendering code blocks.
}

// GenericHint is the fence hint used when no language applies.
const GenericHint = "plaintext"

// recognizedExtensions maps lowercase file extensions (without the dot) to
// their language.
var recognizedExtensions = map[string]Language{
	"rs":    {Tag: "rust", Hint: "rust"},
	"py":    {Tag: "python", Hint: "python"},
	"js":    {Tag: "javascript", Hint: "javascript"},
	"ts":    {Tag: "typescript", Hint: "typescript"},
	"c":     {Tag: "c", Hint: "c"},
	"h":     {Tag: "c", Hint: "c"},
	"cpp":   {Tag: "cpp", Hint: "cpp"},
	"hpp":   {Tag: "cpp", Hint: "cpp"},
	"cc":    {Tag: "cpp", Hint: "cpp"},
	"cxx":   {Tag: "cpp", Hint: "cpp"},
	"hh":    {Tag: "cpp", Hint: "cpp"},
	"java":  {Tag: "java", Hint: "java"},
	"cs":    {Tag: "csharp", Hint: "csharp"},
	"go":    {Tag: "go", Hint: "go"},
	"rb":    {Tag: "ruby", Hint: "ruby"},
	"php":   {Tag: "php", Hint: "php"},
	"swift": {Tag: "swift", Hint: "swift"},
	"kt":    {Tag: "kotlin", Hint: "kotlin"},
	"kts":   {Tag: "kotlin", Hint: "kotlin"},
	"m":     {Tag: "objective-c", Hint: "objectivec"},
	"mm":    {Tag: "objective-cpp", Hint: "objectivec"},
	"sh":    {Tag: "shell", Hint: "bash"},
	"bat":   {Tag: "batch", Hint: "batch"},
	"fs":    {Tag: "fsharp", Hint: "fsharp"},
	"vb":    {Tag: "vbnet", Hint: "vbnet"},
	"scala": {Tag: "scala", Hint: "scala"},
}

// hintsByTag is derived from recognizedExtensions.
var hintsByTag = func() map[string]string {
	m := make(map[string]string, len(recognizedExtensions))
	for _, lang := range recognizedExtensions {
		m[lang.Tag] = lang.Hint
	}
	return m
}()

// extension returns the lowercase extension of path without the leading dot.
func extension(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// LanguageFor returns the language of path based on its extension.
func LanguageFor(path string) (Language, bool) {
	lang, ok := recognizedExtensions[extension(path)]
	return lang, ok
}

// HintFor returns the fence rendering hint for a language tag, or
// GenericHint when the tag is unknown.
func HintFor(tag string) string {
	if hint, ok := hintsByTag[tag]; ok {
		return hint
	}
	return GenericHint
}

package extract

import (
	"bytes"
)

// Keywords is the boundary vocabulary of one language family. A line is a
// boundary when, after leading whitespace and any Modifiers, its first word
// is one of Keywords. With Labels set, a line of the form ":name" is also a
// boundary, labelled "label name"; "::" comment lines are not.
type Keywords struct {
	Keywords  []string
	Modifiers []string
	Labels    bool
}

// keywordFamilies covers the recognized languages without a grammar.
var keywordFamilies = map[string]Keywords{
	"csharp": {
		Keywords:  []string{"class", "interface", "struct", "enum", "record", "namespace"},
		Modifiers: []string{"public", "private", "protected", "internal", "static", "abstract", "sealed", "partial", "readonly", "unsafe"},
	},
	"ruby": {
		Keywords: []string{"def", "class", "module"},
	},
	"php": {
		Keywords:  []string{"function", "class", "interface", "trait", "enum"},
		Modifiers: []string{"abstract", "final", "public", "private", "protected", "static", "readonly"},
	},
	"swift": {
		Keywords:  []string{"func", "class", "struct", "enum", "protocol", "extension", "actor"},
		Modifiers: []string{"public", "private", "fileprivate", "internal", "open", "final", "static", "override", "mutating"},
	},
	"kotlin": {
		Keywords:  []string{"fun", "class", "interface", "object"},
		Modifiers: []string{"public", "private", "protected", "internal", "open", "abstract", "data", "sealed", "enum", "inline", "override", "suspend", "companion"},
	},
	"scala": {
		Keywords:  []string{"def", "class", "object", "trait"},
		Modifiers: []string{"case", "abstract", "sealed", "final", "private", "protected", "implicit", "override"},
	},
	"objective-c": {
		Keywords: []string{"@interface", "@implementation", "@protocol", "struct", "enum", "typedef"},
	},
	"objective-cpp": {
		Keywords: []string{"@interface", "@implementation", "@protocol", "class", "struct", "enum", "namespace", "typedef"},
	},
	"shell": {
		Keywords: []string{"function"},
	},
	"fsharp": {
		Keywords:  []string{"let", "type", "module"},
		Modifiers: []string{"private", "internal", "public", "inline"},
	},
	"vbnet": {
		Keywords:  []string{"Function", "Sub", "Class", "Module", "Structure", "Interface", "Enum"},
		Modifiers: []string{"Public", "Private", "Protected", "Friend", "Shared", "Overrides", "Overridable", "MustOverride", "NotInheritable", "Partial"},
	},
	"batch": {Labels: true},
}

// HeuristicExtractor splits content at lines that start with a declaration
// keyword.
type HeuristicExtractor struct {
	keywords  map[string]bool
	modifiers map[string]bool
	labels    bool
}

// NewHeuristicExtractor creates an extractor for one keyword family.
func NewHeuristicExtractor(k Keywords) *HeuristicExtractor {
	h := &HeuristicExtractor{
		keywords:  make(map[string]bool, len(k.Keywords)),
		modifiers: make(map[string]bool, len(k.Modifiers)),
		labels:    k.Labels,
	}
	for _, kw := range k.Keywords {
		h.keywords[kw] = true
	}
	for _, m := range k.Modifiers {
		h.modifiers[m] = true
	}
	return h
}

// Extract emits one segment per boundary line, running to the line before
// the next boundary. Content before the first boundary is an unlabelled
// preamble. Returns nil when no line is a boundary.
func (h *HeuristicExtractor) Extract(src Source) ([]Segment, error) {
	if len(h.keywords) == 0 && !h.labels {
		return nil, nil
	}

	var spans []span
	content := src.Content
	for lineStart := 0; lineStart < len(content); {
		lineEnd := len(content)
		if i := bytes.IndexByte(content[lineStart:], '\n'); i >= 0 {
			lineEnd = lineStart + i + 1
		}
		if label, ok := h.boundary(content[lineStart:lineEnd]); ok {
			if n := len(spans); n > 0 {
				spans[n-1].end = lineStart
			}
			spans = append(spans, span{start: lineStart, end: len(content), label: label})
		}
		lineStart = lineEnd
	}
	if len(spans) == 0 {
		return nil, nil
	}

	segments := make([]Segment, 0, len(spans)+1)
	if first := spans[0].start; first > 0 {
		segments = append(segments, Segment{
			Language: src.Language,
			Start:    0,
			End:      first,
			Content:  content[:first],
		})
	}
	for _, s := range spans {
		segments = append(segments, Segment{
			Label:    s.label,
			Language: src.Language,
			Start:    s.start,
			End:      s.end,
			Content:  content[s.start:s.end],
		})
	}
	return segments, nil
}

// boundary reports whether line opens a declaration and returns its label,
// "<keyword> <identifier>" when an identifier follows the keyword.
func (h *HeuristicExtractor) boundary(line []byte) (string, bool) {
	rest := bytes.TrimLeft(line, " \t")
	if h.labels && len(rest) > 1 && rest[0] == ':' {
		return jumpLabel(rest[1:])
	}
	for {
		word, after := nextWord(rest)
		if word == "" {
			return "", false
		}
		if h.modifiers[word] {
			rest = after
			continue
		}
		if !h.keywords[word] {
			return "", false
		}
		if ident := identifierAfter(after); ident != "" {
			return word + " " + ident, true
		}
		return word, true
	}
}

// jumpLabel reads the name of a batch label line, after its leading ':'.
func jumpLabel(b []byte) (string, bool) {
	i := 0
	for i < len(b) && (isIdentByte(b[i]) || b[i] == '-') {
		i++
	}
	if i == 0 {
		return "", false
	}
	return "label " + string(b[:i]), true
}

// nextWord splits off the leading word of b (after spaces). Words may start
// with '@' so Objective-C directives are single words.
func nextWord(b []byte) (string, []byte) {
	b = bytes.TrimLeft(b, " \t")
	i := 0
	if i < len(b) && b[i] == '@' {
		i++
	}
	for i < len(b) && isIdentByte(b[i]) {
		i++
	}
	if i == 0 || (i == 1 && b[0] == '@') {
		return "", b
	}
	// keywords must be followed by a separator, not glued to punctuation
	// like "class:" or "def="
	if i < len(b) && !isSeparator(b[i]) {
		return "", b
	}
	return string(b[:i]), b[i:]
}

// identifierAfter returns the declared name following a keyword, skipping a
// parenthesised receiver such as Go's "func (r *T) Name".
func identifierAfter(b []byte) string {
	b = bytes.TrimLeft(b, " \t")
	if len(b) > 0 && b[0] == '(' {
		depth := 0
		for i, c := range b {
			if c == '(' {
				depth++
			} else if c == ')' {
				depth--
				if depth == 0 {
					b = bytes.TrimLeft(b[i+1:], " \t")
					break
				}
			}
		}
		if depth != 0 {
			return ""
		}
	}
	i := 0
	for i < len(b) && (isIdentByte(b[i]) || b[i] == '.' || b[i] == ':') {
		i++
	}
	return string(bytes.TrimRight(b[:i], ".:"))
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func isSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '(', '{', '<', '[':
		return true
	}
	return false
}

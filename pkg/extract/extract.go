// Package extract decomposes a source file into ordered, gap-free labelled
// segments. Languages with a tree-sitter grammar are split along their
// top-level declarations; every other language is split by scanning lines
// for declaration keywords. Whatever the strategy, concatenating the
// returned segments reproduces the input exactly.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// Segment is a contiguous, labelled slice of one file's content.
type Segment struct {
	Label    string // "<kind> <name>", the file name for whole-file segments, or empty for preamble/interstitial bytes.
	Language string
	Start    int // Byte offset of the first byte, inclusive.
	End      int // Byte offset past the last byte.
	Content  []byte
}

// Source is the input to an extractor.
type Source struct {
	Name     string // File path; its base name labels whole-file segments.
	Language string // Language tag from the filter's language table.
	Content  []byte
}

// Extractor is one extraction strategy. A nil slice with a nil error means
// the strategy found nothing to split on.
type Extractor interface {
	Extract(src Source) ([]Segment, error)
}

// ErrSyntax is returned by structural extractors when the parse tree
// contains errors.
var ErrSyntax = errors.New("syntax error in source")

// Registry maps language tags to extraction strategies. It is populated
// before extraction starts and only read afterwards.
type Registry struct {
	byTag  map[string]Extractor
	logger *zap.Logger
}

// NewRegistry returns a registry holding the structural extractors for
// every bundled grammar and heuristic extractors for the other recognized
// languages.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{byTag: make(map[string]Extractor), logger: logger}
	for tag, keywords := range keywordFamilies {
		r.Register(tag, NewHeuristicExtractor(keywords))
	}
	for tag, g := range grammars {
		r.Register(tag, NewStructuralExtractor(g))
	}
	return r
}

// Register binds tag to e, replacing any previous binding.
func (r *Registry) Register(tag string, e Extractor) {
	r.byTag[tag] = e
}

// Lookup returns the extractor bound to tag.
func (r *Registry) Lookup(tag string) (Extractor, bool) {
	e, ok := r.byTag[tag]
	return e, ok
}

// Extract splits src with the strategy registered for its language. It never
// fails: errors, panics, empty results and results that do not cover the
// input exactly all degrade to a single whole-file segment.
func (r *Registry) Extract(src Source) (segments []Segment) {
	e, ok := r.byTag[src.Language]
	if !ok {
		return WholeFile(src)
	}

	defer func() {
		if p := recover(); p != nil {
			r.logger.Warn("Extractor panicked, using whole file",
				zap.String("file", src.Name),
				zap.String("language", src.Language),
				zap.Any("panic", p))
			segments = WholeFile(src)
		}
	}()

	segments, err := e.Extract(src)
	if err != nil {
		r.logger.Debug("Extraction failed, using whole file",
			zap.String("file", src.Name),
			zap.String("language", src.Language),
			zap.Error(err))
		return WholeFile(src)
	}
	if len(segments) == 0 {
		return WholeFile(src)
	}
	if err := Verify(src.Content, segments); err != nil {
		r.logger.Warn("Extractor produced inconsistent segments, using whole file",
			zap.String("file", src.Name),
			zap.Error(err))
		return WholeFile(src)
	}
	return segments
}

// WholeFile returns the entire content as one segment labelled with the
// file's base name.
func WholeFile(src Source) []Segment {
	return []Segment{{
		Label:    filepath.Base(src.Name),
		Language: src.Language,
		Start:    0,
		End:      len(src.Content),
		Content:  src.Content,
	}}
}

// Verify checks that segments are ordered, non-overlapping and cover content
// without gaps.
func Verify(content []byte, segments []Segment) error {
	pos := 0
	for i, seg := range segments {
		if seg.Start != pos {
			return fmt.Errorf("segment %d starts at %d, want %d", i, seg.Start, pos)
		}
		if seg.End < seg.Start || seg.End > len(content) {
			return fmt.Errorf("segment %d has invalid range [%d,%d)", i, seg.Start, seg.End)
		}
		if len(seg.Content) != seg.End-seg.Start {
			return fmt.Errorf("segment %d content length %d does not match range", i, len(seg.Content))
		}
		pos = seg.End
	}
	if pos != len(content) {
		return fmt.Errorf("segments end at %d, content is %d bytes", pos, len(content))
	}
	return nil
}

// Join concatenates segment contents in order.
func Join(segments []Segment) []byte {
	n := 0
	for _, s := range segments {
		n += len(s.Content)
	}
	out := make([]byte, 0, n)
	for _, s := range segments {
		out = append(out, s.Content...)
	}
	return out
}

// span is a labelled byte range found by a strategy.
type span struct {
	start, end int
	label      string
}

// stitch turns declaration spans into a gap-free segment list. Leading bytes
// become a preamble, whitespace-only gaps are absorbed by the preceding
// segment, any other gap becomes an unlabelled interstitial segment.
func stitch(src Source, spans []span) []Segment {
	content := src.Content
	segments := make([]Segment, 0, 2*len(spans)+1)
	emit := func(start, end int, label string) {
		segments = append(segments, Segment{
			Label:    label,
			Language: src.Language,
			Start:    start,
			End:      end,
			Content:  content[start:end],
		})
	}
	extendLast := func(end int) {
		last := &segments[len(segments)-1]
		last.End = end
		last.Content = content[last.Start:end]
	}
	fill := func(from, to int) {
		if to <= from {
			return
		}
		if len(segments) > 0 && isBlank(content[from:to]) {
			extendLast(to)
			return
		}
		emit(from, to, "")
	}

	pos := 0
	for _, s := range spans {
		if s.end <= pos {
			continue
		}
		start := s.start
		if start < pos {
			start = pos
		}
		fill(pos, start)
		emit(start, s.end, s.label)
		pos = s.end
	}
	fill(pos, len(content))
	return segments
}

func isBlank(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r', '\f', '\v':
		default:
			return false
		}
	}
	return true
}

package extract

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// grammar describes how to find interesting top-level declarations in one
// tree-sitter language.
type grammar struct {
	language func() *sitter.Language
	// kinds maps node types to the kind word used in segment labels.
	kinds map[string]string
	// wrappers maps node types that wrap a declaration (decorators, export
	// statements) to the fields that may hold the wrapped declaration, in
	// order of preference.
	wrappers map[string][]string
	// name overrides how a declaration's name is found.
	name func(n *sitter.Node, src []byte) string
}

// StructuralExtractor splits a file along its top-level declarations using a
// tree-sitter syntax tree.
type StructuralExtractor struct {
	g grammar
}

// NewStructuralExtractor returns an extractor for the given grammar.
func NewStructuralExtractor(g grammar) *StructuralExtractor {
	return &StructuralExtractor{g: g}
}

// Extract parses src and emits one segment per interesting top-level
// declaration. A tree containing syntax errors yields ErrSyntax.
func (s *StructuralExtractor) Extract(src Source) ([]Segment, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(s.g.language())

	tree, err := parser.ParseCtx(context.Background(), nil, src.Content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.Name, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("parse %s: no tree", src.Name)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, ErrSyntax
	}

	var spans []span
	count := int(root.ChildCount())
	for i := 0; i < count; i++ {
		child := root.Child(i)
		if !child.IsNamed() {
			continue
		}
		label, ok := s.label(child, src.Content)
		if !ok {
			continue
		}
		end := int(child.EndByte())
		// C-family type specifiers leave their terminating ';' as a sibling.
		if i+1 < count {
			if next := root.Child(i + 1); !next.IsNamed() && next.Type() == ";" {
				end = int(next.EndByte())
				i++
			}
		}
		spans = append(spans, span{
			start: int(child.StartByte()),
			end:   end,
			label: label,
		})
	}
	if len(spans) == 0 {
		return nil, nil
	}
	return stitch(src, spans), nil
}

// label classifies a top-level node, looking through wrapper nodes.
func (s *StructuralExtractor) label(n *sitter.Node, src []byte) (string, bool) {
	decl := n
	if fields, ok := s.g.wrappers[n.Type()]; ok {
		decl = nil
		for _, field := range fields {
			if decl = n.ChildByFieldName(field); decl != nil {
				break
			}
		}
		if decl == nil {
			return "", false
		}
	}
	kind, ok := s.g.kinds[decl.Type()]
	if !ok {
		return "", false
	}

	nameOf := s.g.name
	if nameOf == nil {
		nameOf = fieldName
	}
	if name := nameOf(decl, src); name != "" {
		return kind + " " + name, true
	}
	return kind, true
}

// fieldName returns the content of the node's "name" field, falling back to
// the innermost "declarator" for C-family definitions.
func fieldName(n *sitter.Node, src []byte) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return name.Content(src)
	}
	return declaratorName(n, src)
}

// declaratorName follows nested "declarator" fields down to the identifier.
func declaratorName(n *sitter.Node, src []byte) string {
	d := n.ChildByFieldName("declarator")
	if d == nil {
		return ""
	}
	for {
		next := d.ChildByFieldName("declarator")
		if next == nil {
			return d.Content(src)
		}
		d = next
	}
}

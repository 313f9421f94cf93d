// File: pkg/extract/grammars.go
package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// exportWrappers looks through `export` and `export default` statements.
var exportWrappers = map[string][]string{"export_statement": {"declaration", "value"}}

// grammars holds the languages with structural extraction, keyed by tag.
var grammars = map[string]grammar{
	"python": {
		language: python.GetLanguage,
		kinds: map[string]string{
			"function_definition": "function",
			"class_definition":    "class",
		},
		wrappers: map[string][]string{"decorated_definition": {"definition"}},
	},
	"rust": {
		language: rust.GetLanguage,
		kinds: map[string]string{
			"function_item": "function",
			"struct_item":   "struct",
			"enum_item":     "enum",
			"union_item":    "union",
			"trait_item":    "trait",
			"impl_item":     "impl",
			"mod_item":      "mod",
		},
		name: rustName,
	},
	"go": {
		language: golang.GetLanguage,
		kinds: map[string]string{
			"function_declaration": "function",
			"method_declaration":   "method",
			"type_declaration":     "type",
		},
		name: goName,
	},
	"javascript": {
		language: javascript.GetLanguage,
		kinds: map[string]string{
			"function_declaration":           "function",
			"generator_function_declaration": "function",
			"class_declaration":              "class",
			"class":                          "class",
			"function":                       "function",
			"function_expression":            "function",
		},
		wrappers: exportWrappers,
	},
	"typescript": {
		language: typescript.GetLanguage,
		kinds: map[string]string{
			"function_declaration":           "function",
			"generator_function_declaration": "function",
			"class_declaration":              "class",
			"class":                          "class",
			"function":                       "function",
			"function_expression":            "function",
			"abstract_class_declaration":     "class",
			"interface_declaration":          "interface",
			"enum_declaration":               "enum",
			"type_alias_declaration":         "type",
		},
		wrappers: exportWrappers,
	},
	"java": {
		language: java.GetLanguage,
		kinds: map[string]string{
			"class_declaration":           "class",
			"interface_declaration":       "interface",
			"enum_declaration":            "enum",
			"record_declaration":          "record",
			"annotation_type_declaration": "interface",
		},
	},
	"c": {
		language: c.GetLanguage,
		kinds: map[string]string{
			"function_definition": "function",
			"struct_specifier":    "struct",
			"enum_specifier":      "enum",
			"union_specifier":     "union",
			"type_definition":     "typedef",
		},
	},
	"cpp": {
		language: cpp.GetLanguage,
		kinds: map[string]string{
			"function_definition":  "function",
			"class_specifier":      "class",
			"struct_specifier":     "struct",
			"enum_specifier":       "enum",
			"union_specifier":      "union",
			"namespace_definition": "namespace",
		},
	},
}

// rustName labels impl blocks by their trait and type.
func rustName(n *sitter.Node, src []byte) string {
	if n.Type() != "impl_item" {
		return fieldName(n, src)
	}
	typ := n.ChildByFieldName("type")
	if typ == nil {
		return ""
	}
	if trait := n.ChildByFieldName("trait"); trait != nil {
		return trait.Content(src) + " for " + typ.Content(src)
	}
	return typ.Content(src)
}

// goName reads the first type_spec of a type declaration.
func goName(n *sitter.Node, src []byte) string {
	if n.Type() != "type_declaration" {
		return fieldName(n, src)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		spec := n.NamedChild(i)
		if name := spec.ChildByFieldName("name"); name != nil {
			return name.Content(src)
		}
	}
	return ""
}

// File: pkg/ignore/patterns.go
package ignore

import (
	"regexp"
	"strings"
)

// globToRegex converts a gitignore glob body into a regular expression
// fragment. '**' segments cross directory boundaries, '*' and '?' do not.
func globToRegex(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		rest := pattern[i:]
		switch {
		case strings.HasPrefix(rest, "**/"):
			b.WriteString(`(.*/)?`)
			i += 3
		case rest == "/**":
			b.WriteString(`(/.*)?`)
			i += 3
		case strings.HasPrefix(rest, "**"):
			b.WriteString(`.*`)
			i += 2
		case rest[0] == '*':
			b.WriteString(`[^/]*`)
			i++
		case rest[0] == '?':
			b.WriteString(`[^/]`)
			i++
		default:
			b.WriteString(regexp.QuoteMeta(rest[:1]))
			i++
		}
	}
	return b.String()
}

// anchorPattern anchors the regex to the full path. Unanchored patterns may
// match at any directory depth; every pattern also matches everything below
// a matching directory.
func anchorPattern(pattern string, anchored bool) string {
	pattern += `(/.*)?$`
	if anchored {
		return "^" + pattern
	}
	return `^(|.*/)` + pattern
}

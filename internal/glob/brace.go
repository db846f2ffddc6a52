// Package glob compiles gitignore-style glob patterns into matchers. It
// implements brace expansion, the gitignore double-star dialect, and
// character classes, pre-compiling each pattern once so repeated matching
// against many candidate paths is cheap.
package glob

import "strings"

// ExpandBraces expands one pattern containing `{a,b,c}` groups into the
// cross product of alternatives, in a single pass that respects nesting
// depth and `\{`/`\}`/`\,` escapes. A pattern with no unescaped brace group
// expands to itself. Expansion order matches the left-to-right order the
// groups appear in the source pattern.
func ExpandBraces(pattern string) []string {
	start, end, ok := findBraceGroup(pattern)
	if !ok {
		return []string{pattern}
	}

	prefix := pattern[:start]
	body := pattern[start+1 : end]
	suffix := pattern[end+1:]

	alternatives := splitTopLevel(body)
	if len(alternatives) <= 1 {
		// Not a real alternation (no top-level comma); treat braces literally.
		return []string{pattern}
	}

	var out []string
	for _, alt := range alternatives {
		for _, expandedSuffix := range ExpandBraces(suffix) {
			combined := prefix + alt + expandedSuffix
			out = append(out, ExpandBraces(combined)...)
		}
	}
	return out
}

// findBraceGroup locates the first unescaped `{` and its matching unescaped
// `}`, respecting nested braces. Returns ok=false when no unescaped brace
// group exists.
func findBraceGroup(pattern string) (start, end int, ok bool) {
	start = -1
	depth := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '\\' && i+1 < len(pattern) {
			i++
			continue
		}
		switch c {
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if start != -1 {
				depth--
				if depth == 0 {
					return start, i, true
				}
			}
		}
	}
	return 0, 0, false
}

// splitTopLevel splits body on unescaped top-level commas, leaving nested
// `{...}` groups intact.
func splitTopLevel(body string) []string {
	var parts []string
	var cur strings.Builder
	depth := 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			cur.WriteByte(c)
			cur.WriteByte(body[i+1])
			i++
			continue
		}
		switch c {
		case '{':
			depth++
			cur.WriteByte(c)
		case '}':
			depth--
			cur.WriteByte(c)
		case ',':
			if depth == 0 {
				parts = append(parts, cur.String())
				cur.Reset()
				continue
			}
			cur.WriteByte(c)
		default:
			cur.WriteByte(c)
		}
	}
	parts = append(parts, cur.String())
	return parts
}

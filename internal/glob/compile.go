package glob

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternError is returned when a glob pattern cannot be compiled, for
// example an unbalanced character class. Per spec.md §4.A this is rare:
// malformed patterns are treated as literal strings rather than rejected,
// so PatternError is informational and never blocks ignore-file loading.
type PatternError struct {
	Pattern string
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("glob: invalid pattern %q: %s", e.Pattern, e.Reason)
}

// Matcher tests a compiled glob pattern against candidate subjects.
type Matcher struct {
	source string
	re     *regexp.Regexp
	// literal holds the unescaped literal string when the pattern contains no
	// wildcard metacharacters, allowing exact comparison without regexp
	// overhead. Case-insensitive literal comparisons use strings.EqualFold.
	literal      string
	isLiteral    bool
	caseInsens   bool
	malformedLit bool // true if compilation fell back to literal matching
}

// Source returns the original (pre-compile) pattern text.
func (m *Matcher) Source() string { return m.source }

// Malformed reports whether this matcher is a literal fallback due to a
// PatternError encountered during compilation.
func (m *Matcher) Malformed() bool { return m.malformedLit }

// Match reports whether subject matches the compiled pattern.
func (m *Matcher) Match(subject string) bool {
	if m.isLiteral {
		if m.caseInsens {
			return strings.EqualFold(m.literal, subject)
		}
		return m.literal == subject
	}
	return m.re.MatchString(subject)
}

// Compile compiles a single (already brace-expanded) glob pattern, per the
// rules in spec.md §4.A. caseInsensitive enables ASCII casefolded matching.
//
// On a malformed pattern (unbalanced character class), Compile does not
// fail: it returns a matcher that treats the pattern as a literal string,
// and the returned error is a *PatternError describing what was wrong, so
// callers can log a warning while still ingesting the rule (spec.md §4.A:
// "treats malformed patterns as literal to preserve ingest").
func Compile(pattern string, caseInsensitive bool) (*Matcher, error) {
	reSrc, literal, isLiteral, err := translate(pattern, caseInsensitive)
	if err != nil {
		// Fall back to literal matching of the raw pattern text.
		m := &Matcher{
			source:       pattern,
			literal:      pattern,
			isLiteral:    true,
			caseInsens:   caseInsensitive,
			malformedLit: true,
		}
		return m, err
	}

	if isLiteral {
		return &Matcher{source: pattern, literal: literal, isLiteral: true, caseInsens: caseInsensitive}, nil
	}

	flags := ""
	if caseInsensitive {
		flags = "(?i)"
	}
	re, compErr := regexp.Compile(flags + "^" + reSrc + "$")
	if compErr != nil {
		return &Matcher{source: pattern, literal: pattern, isLiteral: true, caseInsens: caseInsensitive, malformedLit: true},
			&PatternError{Pattern: pattern, Reason: compErr.Error()}
	}
	return &Matcher{source: pattern, re: re}, nil
}

// translate converts one glob pattern into a regular expression fragment
// (without anchors). It returns isLiteral=true with the unescaped literal
// string when the pattern contains no wildcard metacharacters, so callers
// can skip regexp entirely for the common case of a plain filename rule.
func translate(pattern string, _ bool) (reSrc string, literal string, isLiteral bool, err error) {
	var lit strings.Builder
	var re strings.Builder
	hasMeta := false

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		switch c {
		case '\\':
			if i+1 < len(runes) {
				next := runes[i+1]
				switch next {
				case '*', '?', '{', '}', '[', ']', ' ', '\\':
					lit.WriteRune(next)
					re.WriteString(regexp.QuoteMeta(string(next)))
					i++
					continue
				}
			}
			lit.WriteRune(c)
			re.WriteString(regexp.QuoteMeta(string(c)))

		case '*':
			hasMeta = true
			if i+1 < len(runes) && runes[i+1] == '*' {
				// Double star: consume all consecutive '*' as one node.
				j := i + 1
				for j < len(runes) && runes[j] == '*' {
					j++
				}
				leadingSlash := i == 0 || runes[i-1] == '/'
				trailingSlash := j < len(runes) && runes[j] == '/'
				atEnd := j >= len(runes)

				switch {
				case leadingSlash && trailingSlash:
					// "/**/" -> zero or more path segments including slash.
					re.WriteString("(?:.*/)?")
					i = j // skip the slash too (handled), loop will ++ past it
				case leadingSlash && atEnd:
					// "/**" at end, or "**" as whole pattern -> match anything.
					re.WriteString(".*")
					i = j - 1
				case trailingSlash:
					// "**/" at start of a segment not at pattern start.
					re.WriteString("(?:.*/)?")
					i = j
				default:
					re.WriteString(".*")
					i = j - 1
				}
				continue
			}
			re.WriteString("[^/]*")

		case '?':
			hasMeta = true
			re.WriteString("[^/]")

		case '[':
			hasMeta = true
			class, consumed, classErr := translateClass(runes[i:])
			if classErr != nil {
				return "", "", false, classErr
			}
			re.WriteString(class)
			i += consumed - 1

		case '{', '}':
			// Unexpanded brace reaching here means it was not part of a
			// valid alternation (e.g. a lone "}"); treat literally.
			lit.WriteRune(c)
			re.WriteString(regexp.QuoteMeta(string(c)))

		default:
			lit.WriteRune(c)
			re.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	if !hasMeta {
		return "", lit.String(), true, nil
	}
	return re.String(), "", false, nil
}

// translateClass converts a `[...]` character class starting at runes[0]
// ('[') into a regex-safe equivalent, returning the number of runes
// consumed. Supports a leading `!` or `^` negation and a trailing `]`.
func translateClass(runes []rune) (string, int, error) {
	if len(runes) < 2 {
		return "", 0, &PatternError{Reason: "unterminated character class"}
	}
	i := 1
	var body strings.Builder
	negate := false
	if i < len(runes) && (runes[i] == '!' || runes[i] == '^') {
		negate = true
		i++
	}
	start := i
	for i < len(runes) && runes[i] != ']' {
		c := runes[i]
		switch c {
		case '\\':
			body.WriteRune(c)
			if i+1 < len(runes) {
				body.WriteRune(runes[i+1])
				i++
			}
		case '^':
			body.WriteString(`\^`)
		default:
			body.WriteRune(c)
		}
		i++
	}
	if i >= len(runes) {
		return "", 0, &PatternError{Reason: "unbalanced character class"}
	}
	if i == start {
		return "", 0, &PatternError{Reason: "empty character class"}
	}
	i++ // consume ']'

	var out strings.Builder
	out.WriteByte('[')
	if negate {
		out.WriteByte('^')
	}
	out.WriteString(body.String())
	out.WriteByte(']')
	return out.String(), i, nil
}

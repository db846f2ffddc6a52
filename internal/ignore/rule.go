// Package ignore parses gitignore-semantics ignore files (.gitignore,
// .copytreeignore, and the legacy alias .ctreeignore) and applies the
// layered accept/reject decision described in spec.md §4.B: rule sets are
// evaluated shallowest-first, Git-compatible before project-specific, and a
// negation rule can never resurrect a path whose ancestor directory was
// excluded by a directory-only rule.
package ignore

import (
	"strings"

	"copytree/internal/glob"
)

// Rule is the parsed and pre-compiled form of one ignore-file line, per
// spec.md §3 "Pattern rule". A Rule is never empty after stripping.
type Rule struct {
	// Pattern is the canonicalised glob source text (forward slashes).
	Pattern string
	// Negation marks a "!"-prefixed re-include rule.
	Negation bool
	// DirectoryOnly marks a trailing-"/" rule: it only matches directories.
	DirectoryOnly bool
	// LeadingSlash marks a rule anchored to the ignore file's own directory.
	LeadingSlash bool
	// ContainsSlash is true when the pattern (after stripping leading/
	// trailing slash markers) still contains an interior "/", which
	// determines whether matching is against the full relative path or
	// just the basename.
	ContainsSlash bool

	matcher *glob.Matcher
}

// compileRule builds a Rule from one already-unescaped, already-trimmed
// ignore-file line (with brace expansion already applied by the caller, so
// text contains no unescaped `{`/`}`). caseSensitive controls matcher
// casefolding.
func compileRule(text string, caseSensitive bool) *Rule {
	r := &Rule{Pattern: text}

	if strings.HasPrefix(text, "!") {
		r.Negation = true
		text = text[1:]
	}

	if strings.HasSuffix(text, "/") && !strings.HasSuffix(text, `\/`) {
		r.DirectoryOnly = true
		text = strings.TrimSuffix(text, "/")
	}

	if strings.HasPrefix(text, "/") {
		r.LeadingSlash = true
		text = strings.TrimPrefix(text, "/")
	}

	// contains_slash is computed on the remaining body: a pattern like
	// "foo/bar" matches the relative path, while "*.log" (no interior
	// slash) matches just the basename, per spec.md §4.A.
	r.ContainsSlash = strings.Contains(text, "/")
	r.Pattern = text

	m, _ := glob.Compile(text, !caseSensitive)
	r.matcher = m

	return r
}

// matchSubject returns the subject string this rule should be tested
// against, given the candidate's path relative to the rule set's base
// directory and its basename.
func (r *Rule) matchSubject(relativeToBase, basename string) string {
	if r.LeadingSlash || r.ContainsSlash {
		return relativeToBase
	}
	return basename
}

// Matches reports whether the rule's pattern matches the given candidate.
// relativeToBase is the path relative to the owning rule set's base
// directory (always rooted, no leading slash); basename is its final path
// segment.
func (r *Rule) Matches(relativeToBase, basename string) bool {
	subject := r.matchSubject(relativeToBase, basename)
	return r.matcher.Match(subject)
}

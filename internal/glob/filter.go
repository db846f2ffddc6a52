package glob

import "github.com/bmatcuk/doublestar/v4"

// MatchDoublestar tests subject against pattern using the doublestar glob
// dialect (component C's profile include/exclude patterns, which the
// walker matches). Unlike the gitignore dialect implemented in compile.go,
// doublestar patterns have no negation or directory-pruning semantics of
// their own — composing those semantics is the caller's job (see
// internal/walker).
//
// Invalid patterns match nothing rather than erroring, mirroring the
// teacher's ClassifyFiles/TierMatcher behaviour of silently discarding
// syntactically invalid patterns at construction time.
func MatchDoublestar(pattern, subject string) bool {
	if !doublestar.ValidatePattern(pattern) {
		return false
	}
	matched, err := doublestar.Match(pattern, subject)
	if err != nil {
		return false
	}
	return matched
}

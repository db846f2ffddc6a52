package ignore

import (
	"path"
	"sort"
	"strings"
)

// Engine evaluates the full layered ignore-rule decision for a project: all
// discovered .gitignore / .copytreeignore / .ctreeignore files, sorted per
// spec.md §4.B, plus any additional rule sets supplied by the caller (e.g.
// CLI --exclude patterns layered in by internal/profile).
type Engine struct {
	sets []*RuleSet
}

// NewEngine builds an Engine from the given rule sets, sorting them by
// (depth(base_dir), kind_order) so that shallower rule sets are evaluated
// before deeper ones, and — at equal depth — .gitignore before
// .copytreeignore/.ctreeignore, per spec.md §4.B.
func NewEngine(sets []*RuleSet) *Engine {
	sorted := make([]*RuleSet, len(sets))
	copy(sorted, sets)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i].Depth(), sorted[j].Depth()
		if di != dj {
			return di < dj
		}
		return sorted[i].Kind < sorted[j].Kind
	})
	return &Engine{sets: sorted}
}

// IsIgnored implements the decision algorithm of spec.md §4.B for a single
// candidate. relativePath is POSIX-normalized and relative to the project
// root; isDir indicates whether the candidate is a directory.
//
// ancestorIgnored lets a caller that walks top-down report that an ancestor
// directory is already ignored by a directory-only non-negation rule, so the
// candidate is ignored without re-scanning every ancestor; a standalone
// caller passes false and relies solely on the rules evaluated here (see
// IsPathIgnored for a version that checks the ancestors itself).
func (e *Engine) IsIgnored(relativePath string, isDir bool, ancestorIgnored bool) bool {
	if ancestorIgnored {
		// spec.md §4.B: "if any ancestor directory ... is ignored by a
		// directory-only non-negation rule, return ignored=true" — and a
		// file-level negation cannot undo that (Git semantics, §9 Open
		// Questions).
		return true
	}

	ignored := false
	for _, rs := range e.sets {
		if rs.BaseDir != "" && !pathUnderBase(relativePath, rs.BaseDir) {
			continue
		}
		local := stripBase(relativePath, rs.BaseDir)
		basename := path.Base(local)

		for _, rule := range rs.Rules {
			if rule.DirectoryOnly && !isDir {
				continue
			}
			if rule.Matches(local, basename) {
				ignored = !rule.Negation
				if ignored && rule.DirectoryOnly {
					break
				}
			}
		}
	}
	return ignored
}

// IsDirIgnoredByRule reports whether relativePath (a directory) is ignored
// by a non-negated, directory-only-capable rule match — i.e. whether
// descendants of this directory should be treated as having an "ignored
// ancestor" per spec.md §4.B. This only considers the rule sets that apply
// to relativePath itself (not its descendants).
func (e *Engine) IsDirIgnoredByRule(relativePath string) bool {
	return e.IsIgnored(relativePath, true, false)
}

// IsPathIgnored evaluates the full decision for relativePath, including the
// ancestor-directory check, by walking every ancestor directory from the
// project root down to (but not including) relativePath itself and testing
// whether any of them is ignored by a directory-only, non-negated rule.
//
// This is the convenience entry point for callers that test paths without
// performing an actual top-down directory walk (e.g. unit tests);
// internal/walker instead prunes whole ignored
// subtrees during traversal, which yields the same result more cheaply.
func (e *Engine) IsPathIgnored(relativePath string, isDir bool) bool {
	relativePath = strings.TrimPrefix(path.Clean(relativePath), "./")
	if relativePath == "." || relativePath == "" {
		return false
	}

	segments := strings.Split(relativePath, "/")
	for i := 1; i < len(segments); i++ {
		ancestor := strings.Join(segments[:i], "/")
		if e.IsDirIgnoredByRule(ancestor) {
			return true
		}
	}

	return e.IsIgnored(relativePath, isDir, false)
}

func pathUnderBase(relativePath, baseDir string) bool {
	return relativePath == baseDir || strings.HasPrefix(relativePath, baseDir+"/")
}

func stripBase(relativePath, baseDir string) string {
	if baseDir == "" {
		return relativePath
	}
	if relativePath == baseDir {
		return ""
	}
	return strings.TrimPrefix(relativePath, baseDir+"/")
}

package ignore

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// fileNames maps the on-disk ignore file name to the Kind it parses as.
// ".ctreeignore" is the legacy alias of ".copytreeignore" (spec.md §9 Open
// Questions): identical semantics, just an older name some projects still
// carry.
var fileNames = map[string]Kind{
	".gitignore":      KindGitignore,
	".copytreeignore": KindCopytreeignore,
	".ctreeignore":    KindCopytreeignore,
}

// DiscoverRuleSets walks root looking for .gitignore, .copytreeignore, and
// .ctreeignore files at every directory level and parses each one into a
// RuleSet. It does not itself apply any ignore decisions while walking —
// doing so would require the very rule sets being discovered — so the walk
// only prunes the VCS metadata directory ".git".
func DiscoverRuleSets(root string, caseSensitive bool) ([]*RuleSet, error) {
	logger := slog.Default().With("component", "ignore-discover")

	var sets []*RuleSet
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.Debug("skipping unreadable path", "path", p, "error", walkErr)
			return filepath.SkipDir
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		if d.IsDir() {
			return nil
		}

		kind, known := fileNames[d.Name()]
		if !known {
			return nil
		}

		relDir, err := filepath.Rel(root, filepath.Dir(p))
		if err != nil {
			logger.Debug("skipping ignore file, cannot compute relative dir", "path", p, "error", err)
			return nil
		}
		relDir = filepath.ToSlash(relDir)

		f, err := os.Open(p)
		if err != nil {
			logger.Debug("skipping unreadable ignore file", "path", p, "error", err)
			return nil
		}
		defer f.Close()

		rs, err := ParseFile(f, relDir, kind, caseSensitive)
		if err != nil {
			logger.Debug("skipping malformed ignore file", "path", p, "error", err)
			return nil
		}
		sets = append(sets, rs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sets, nil
}

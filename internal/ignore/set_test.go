package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegationInsideIgnoredDirectoryDoesNotResurrect(t *testing.T) {
	t.Parallel()

	rs := ParseLines([]string{"build/", "!build/important.log"}, "", KindGitignore, true)
	e := NewEngine([]*RuleSet{rs})

	assert.True(t, e.IsPathIgnored("build", true))
	assert.True(t, e.IsPathIgnored("build/important.log", false),
		"a file negation cannot re-include a child of an ignored directory")
}

func TestDoubleStarMiddleSegment(t *testing.T) {
	t.Parallel()

	rs := ParseLines([]string{"src/**/temp.txt"}, "", KindGitignore, true)
	e := NewEngine([]*RuleSet{rs})

	assert.True(t, e.IsPathIgnored("src/a/b/temp.txt", false))
	assert.True(t, e.IsPathIgnored("src/temp.txt", false))
	assert.False(t, e.IsPathIgnored("src/a/keep.txt", false))
}

func TestBraceExpansionAcrossTwoGroups(t *testing.T) {
	t.Parallel()

	rs := ParseLines([]string{"src/{foo,bar}/**/*.{js,jsx}"}, "", KindGitignore, true)
	e := NewEngine([]*RuleSet{rs})

	assert.True(t, e.IsPathIgnored("src/foo/x/app.js", false))
	assert.True(t, e.IsPathIgnored("src/bar/x/app.jsx", false))
	assert.False(t, e.IsPathIgnored("src/baz/x/app.js", false))
}

func TestNestedIgnoreLayers(t *testing.T) {
	t.Parallel()

	root := ParseLines([]string{"*.log"}, "", KindGitignore, true)
	logs := ParseLines([]string{"!important.log"}, "logs", KindGitignore, true)
	deep := ParseLines([]string{"specific.log"}, "logs/deep", KindGitignore, true)
	e := NewEngine([]*RuleSet{deep, root, logs})

	cases := map[string]bool{
		"error.log":               true,
		"logs/important.log":      false,
		"logs/debug.log":          true,
		"logs/deep/important.log": false,
		"logs/deep/specific.log":  true,
	}
	for p, wantIgnored := range cases {
		got := e.IsPathIgnored(p, false)
		assert.Equal(t, wantIgnored, got, "path %s", p)
	}
}

func TestRuleSetOrderingDepthThenKind(t *testing.T) {
	t.Parallel()

	a := &RuleSet{BaseDir: "a/b", Kind: KindGitignore}
	b := &RuleSet{BaseDir: "", Kind: KindCopytreeignore}
	c := &RuleSet{BaseDir: "", Kind: KindGitignore}
	d := &RuleSet{BaseDir: "a", Kind: KindGitignore}

	e := NewEngine([]*RuleSet{a, b, c, d})
	require.Len(t, e.sets, 4)
	assert.Equal(t, c, e.sets[0])
	assert.Equal(t, b, e.sets[1])
	assert.Equal(t, d, e.sets[2])
	assert.Equal(t, a, e.sets[3])
}

func TestCaseInsensitiveMatching(t *testing.T) {
	t.Parallel()

	rs := ParseLines([]string{"*.LOG"}, "", KindGitignore, false)
	e := NewEngine([]*RuleSet{rs})
	assert.True(t, e.IsPathIgnored("debug.log", false))
}

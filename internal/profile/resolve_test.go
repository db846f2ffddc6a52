package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDiscoverPrefersYMLOverYAMLOverJSONOverINI(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	writeFile(t, dir, ".copytree.yaml", "include: [\"from-yaml\"]\n")
	writeFile(t, dir, ".copytree.json", `{"include": ["from-json"]}`)
	writeFile(t, dir, ".copytree", "[include]\nfrom-ini\n")

	p, err := Discover(dir, "")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []string{"from-yaml"}, p.Include)

	writeFile(t, dir, ".copytree.yml", "include: [\"from-yml\"]\n")
	p, err = Discover(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"from-yml"}, p.Include)
}

func TestDiscoverNamedProfileNotFound(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, err := Discover(dir, "backend")
	require.Error(t, err)
	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrProfileNotFound, pe.Code)
}

func TestDiscoverUnnamedMissingReturnsNilNoError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	p, err := Discover(dir, "")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestParseINISections(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, ".copytree", "[profile]\nname = backend\n\n[include]\nsrc/**\ncmd/**\n\n[exclude]\n**/*_test.go\n")

	p, err := Discover(dir, "")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "backend", p.Name)
	assert.Equal(t, []string{"src/**", "cmd/**"}, p.Include)
	assert.Equal(t, []string{"**/*_test.go"}, p.Exclude)
}

func TestResolveCLIFilterReplacesInclude(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, ".copytree.yml", "include: [\"src/**\"]\nexclude: [\"**/*.log\"]\n")

	resolved, err := Resolve(ResolveOptions{
		Dir:        dir,
		CLIFilter:  []string{"go", "ts"},
		CLIExclude: []string{"testdata/**"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "ts"}, resolved.Include)
	assert.Equal(t, []string{"testdata/**", "**/*.log"}, resolved.Exclude)
	assert.Contains(t, resolved.GlobalExcludes, "node_modules/**")
}

func TestResolveWithNoProfileUsesBuiltInDefault(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	resolved, err := Resolve(ResolveOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"**/*"}, resolved.Include)
	assert.Empty(t, resolved.Exclude)
}

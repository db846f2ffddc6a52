package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copytree/internal/ignore"
)

func createTestTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	dirs := []string{"src", "docs", "build", ".git/objects"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}

	files := map[string]string{
		"main.go":       "package main\n",
		"README.md":     "# Test\n",
		"src/app.go":    "package src\n",
		"docs/guide.md": "# Guide\n",
		"build/out.bin": "binary\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}
	return root
}

func collect(ctx context.Context, t *testing.T, cfg Config) ([]string, error) {
	t.Helper()
	out, wait, err := Walk(ctx, cfg)
	require.NoError(t, err)

	var paths []string
	for rec := range out {
		paths = append(paths, rec.Path)
	}
	return paths, wait()
}

func TestWalkSkipsGitDirAndHonorsIgnoreEngine(t *testing.T) {
	t.Parallel()
	root := createTestTree(t)

	rs := ignore.ParseLines([]string{"build/"}, "", ignore.KindGitignore, true)
	engine := ignore.NewEngine([]*ignore.RuleSet{rs})

	paths, err := collect(context.Background(), t, Config{Root: root, Ignore: engine})
	require.NoError(t, err)

	assert.Contains(t, paths, "main.go")
	assert.Contains(t, paths, "src/app.go")
	assert.NotContains(t, paths, "build/out.bin")
	for _, p := range paths {
		assert.NotContains(t, p, ".git/")
	}
}

func TestWalkMaxFileCount(t *testing.T) {
	t.Parallel()
	root := createTestTree(t)

	paths, err := collect(context.Background(), t, Config{
		Root:   root,
		Sort:   SortPath,
		Limits: Limits{MaxFileCount: 2},
	})
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestWalkSortPathIsDeterministic(t *testing.T) {
	t.Parallel()
	root := createTestTree(t)

	paths, err := collect(context.Background(), t, Config{Root: root, Sort: SortPath})
	require.NoError(t, err)

	sorted := append([]string{}, paths...)
	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(t, sorted[i-1], sorted[i])
	}
}

func TestWalkExcludePrunesDirectory(t *testing.T) {
	t.Parallel()
	root := createTestTree(t)

	paths, err := collect(context.Background(), t, Config{
		Root:    root,
		Exclude: []string{"docs/**"},
	})
	require.NoError(t, err)
	assert.NotContains(t, paths, "docs/guide.md")
}

// TestWalkDeepChainDoesNotDeadlock builds a directory chain several levels
// deeper than Concurrency and confirms the walk still completes: a
// recursive errgroup.Go fan-out would stall here once Concurrency
// directories are each blocked trying to schedule their child.
func TestWalkDeepChainDoesNotDeadlock(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	dir := root
	const depth = 8
	for i := 0; i < depth; i++ {
		dir = filepath.Join(dir, "nested")
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leaf.txt"), []byte("x"), 0o644))

	done := make(chan struct{})
	var paths []string
	var err error
	go func() {
		paths, err = collect(context.Background(), t, Config{Root: root, Concurrency: 2})
		close(done)
	}()

	var wantLeaf string
	for i := 0; i < depth; i++ {
		wantLeaf = filepath.Join(wantLeaf, "nested")
	}
	wantLeaf = filepath.Join(wantLeaf, "leaf.txt")

	select {
	case <-done:
		require.NoError(t, err)
		assert.Contains(t, paths, wantLeaf)
	case <-time.After(5 * time.Second):
		t.Fatal("walk did not complete: likely deadlocked")
	}
}

func TestWalkCancellationReportsScanAborted(t *testing.T) {
	t.Parallel()
	root := createTestTree(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := collect(ctx, t, Config{Root: root})
	require.Error(t, err)
	assert.True(t, IsScanAborted(err))
}

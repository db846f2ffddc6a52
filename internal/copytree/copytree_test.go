package copytree

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "b.txt"), []byte("B"), 0o644))
	return dir
}

func testOptions(t *testing.T, dir string) Options {
	t.Helper()
	return Options{
		Root:     dir,
		CacheDir: filepath.Join(dir, ".cache"),
		Format:   "json",
	}
}

func TestScanYieldsAllFiles(t *testing.T) {
	t.Parallel()

	dir := writeTree(t)
	out, wait, err := Scan(context.Background(), dir, testOptions(t, dir))
	require.NoError(t, err)

	var paths []string
	for rec := range out {
		paths = append(paths, rec.Path)
	}
	require.NoError(t, wait())

	assert.ElementsMatch(t, []string{"main.go", "src/b.txt"}, paths)
}

func TestCopyProducesManifestAndOutput(t *testing.T) {
	t.Parallel()

	dir := writeTree(t)
	result, err := Copy(context.Background(), dir, testOptions(t, dir))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.TotalFiles)
	assert.Len(t, result.Manifest, 2)
	assert.NotEmpty(t, result.Output)
	assert.Greater(t, result.Stats.OutputSize, 0)
	assert.Empty(t, result.Stats.ScanErrors)
	assert.Zero(t, result.Stats.RetrySummary.GivenUp)
	assert.Zero(t, result.Stats.RetrySummary.Permanent)
}

func TestCopyDryRunLeavesOutputEmpty(t *testing.T) {
	t.Parallel()

	dir := writeTree(t)
	opts := testOptions(t, dir)
	opts.DryRun = true

	result, err := Copy(context.Background(), dir, opts)
	require.NoError(t, err)

	assert.Empty(t, result.Output)
	assert.True(t, result.Stats.DryRun)
	assert.Len(t, result.Manifest, 2)
}

func TestCopyWritesOutputFile(t *testing.T) {
	t.Parallel()

	dir := writeTree(t)
	opts := testOptions(t, dir)
	opts.OutputPath = filepath.Join(dir, "out.json")

	result, err := Copy(context.Background(), dir, opts)
	require.NoError(t, err)
	require.Equal(t, opts.OutputPath, result.OutputPath)

	data, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, result.Output, string(data))
}

type fakeClipboard struct{ written string }

func (f *fakeClipboard) WriteAll(text string) error {
	f.written = text
	return nil
}

func TestCopyWritesToClipboardSink(t *testing.T) {
	t.Parallel()

	dir := writeTree(t)
	clip := &fakeClipboard{}
	opts := testOptions(t, dir)
	opts.ToClipboard = true
	opts.Clipboard = clip

	result, err := Copy(context.Background(), dir, opts)
	require.NoError(t, err)
	assert.Equal(t, result.Output, clip.written)
	assert.Empty(t, result.Stats.ClipboardError)
}

func TestCopyStreamYieldsChunks(t *testing.T) {
	t.Parallel()

	dir := writeTree(t)
	opts := testOptions(t, dir)
	opts.Format = "ndjson"

	ch, err := CopyStream(context.Background(), dir, opts)
	require.NoError(t, err)

	var lines []string
	for line := range ch {
		lines = append(lines, line)
	}
	assert.Len(t, lines, 4) // metadata + 2 files + summary
}

func TestFormatRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := Format(nil, Options{Format: "yaml"})
	require.Error(t, err)
	var ctErr *Error
	require.ErrorAs(t, err, &ctErr)
	assert.Equal(t, KindOutput, ctErr.Kind)
}

func TestScanRejectsEmptyBasePath(t *testing.T) {
	t.Parallel()

	_, _, err := Scan(context.Background(), "", Options{})
	require.Error(t, err)
	var ctErr *Error
	require.ErrorAs(t, err, &ctErr)
	assert.Equal(t, KindValidation, ctErr.Kind)
}

func TestScanRejectsMissingNamedProfile(t *testing.T) {
	t.Parallel()

	dir := writeTree(t)
	opts := testOptions(t, dir)
	opts.ProfileName = "does-not-exist"

	_, _, err := Scan(context.Background(), dir, opts)
	require.Error(t, err)
	var ctErr *Error
	require.ErrorAs(t, err, &ctErr)
	assert.Equal(t, KindProfileNotFound, ctErr.Kind)
}

// TestScanHandlesNestedModuleTree exercises Scan against a small fixture
// repo (testdata/oss-monorepo) with a go.mod several directories below the
// scan root, confirming the walker descends through intermediate
// directories that are themselves not part of any module.
func TestScanHandlesNestedModuleTree(t *testing.T) {
	t.Parallel()

	root, err := filepath.Abs(filepath.Join("..", "..", "testdata", "oss-monorepo"))
	require.NoError(t, err)

	out, wait, err := Scan(context.Background(), root, testOptions(t, root))
	require.NoError(t, err)

	var paths []string
	for rec := range out {
		paths = append(paths, rec.Path)
	}
	require.NoError(t, wait())

	assert.Contains(t, paths, filepath.Join("services", "worker", "go.mod"))
}

// TestFormatRendersSingleModuleFixture confirms Format produces non-empty
// XML output for a minimal single-file module fixture
// (testdata/golden-fixtures), separate from the synthetic in-memory trees
// writeTree builds.
func TestFormatRendersSingleModuleFixture(t *testing.T) {
	t.Parallel()

	root, err := filepath.Abs(filepath.Join("..", "..", "testdata", "golden-fixtures"))
	require.NoError(t, err)

	opts := testOptions(t, root)
	opts.Format = "xml"

	result, err := Copy(context.Background(), root, opts)
	require.NoError(t, err)
	assert.Contains(t, result.Output, "go.mod")
}

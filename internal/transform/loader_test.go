package transform

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copytree/internal/record"
	"copytree/internal/retry"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoaderLoadsTextContent(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "main.go", []byte("package main\n"))
	l := NewLoader(0, nil)

	rec := record.FileRecord{Path: "main.go", AbsolutePath: path}
	out, err := l.Apply(context.Background(), rec, nil)
	require.NoError(t, err)

	assert.False(t, out.IsBinary)
	assert.Equal(t, record.ContentText, out.Content.Kind)
	assert.Equal(t, "package main\n", out.Content.Text)
	assert.NotZero(t, out.ContentHash)
	assert.Contains(t, out.Trail, "loader")
}

func TestLoaderDetectsNullByteAsBinary(t *testing.T) {
	t.Parallel()

	data := append([]byte("abc"), 0x00, 'd', 'e', 'f')
	path := writeTempFile(t, "blob.dat", data)
	l := NewLoader(0, nil)

	rec := record.FileRecord{Path: "blob.dat", AbsolutePath: path}
	out, err := l.Apply(context.Background(), rec, nil)
	require.NoError(t, err)
	assert.True(t, out.IsBinary)
}

func TestLoaderCertCategorySkipped(t *testing.T) {
	t.Parallel()

	data := append([]byte{0x00, 0x01, 0x02}, make([]byte, 100)...)
	path := writeTempFile(t, "server.pem", data)
	l := NewLoader(0, nil)

	rec := record.FileRecord{Path: "server.pem", AbsolutePath: path}
	out, err := l.Apply(context.Background(), rec, nil)
	require.NoError(t, err)

	assert.True(t, out.IsBinary)
	assert.Equal(t, record.ContentPlaceholder, out.Content.Kind)
	assert.Equal(t, record.EncodingBinary, out.Encoding)
}

func TestLoaderImageCategoryGetsCommentPlaceholder(t *testing.T) {
	t.Parallel()

	data := append([]byte{0x89, 'P', 'N', 'G', 0x00}, make([]byte, 50)...)
	path := writeTempFile(t, "logo.png", data)
	l := NewLoader(0, nil)

	rec := record.FileRecord{Path: "logo.png", AbsolutePath: path}
	out, err := l.Apply(context.Background(), rec, nil)
	require.NoError(t, err)

	assert.True(t, out.IsBinary)
	assert.Equal(t, record.ContentPlaceholder, out.Content.Kind)
	assert.Contains(t, out.Content.Placeholder, "image")
}

func TestLoaderRecordsPermanentErrorOnMissingFile(t *testing.T) {
	t.Parallel()

	reporter := retry.NewReporter()
	l := NewLoader(0, nil)
	l.Reporter = reporter

	rec := record.FileRecord{Path: "gone.go", AbsolutePath: filepath.Join(t.TempDir(), "gone.go")}
	out, err := l.Apply(context.Background(), rec, nil)
	require.NoError(t, err)
	require.Error(t, out.Error)

	assert.Equal(t, 1, reporter.Snapshot().Permanent)
}

func TestLoaderSkipsAlreadyLoadedContent(t *testing.T) {
	t.Parallel()

	l := NewLoader(0, nil)
	rec := record.FileRecord{Path: "x.go", Content: record.TextContent("already here")}

	out, err := l.Apply(context.Background(), rec, nil)
	require.NoError(t, err)
	assert.Equal(t, "already here", out.Content.Text)
}

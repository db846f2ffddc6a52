package transform

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copytree/internal/record"
)

type stubSummarizer struct{ calls int }

func (s *stubSummarizer) Summarize(_ context.Context, path, content string) (string, error) {
	s.calls++
	return fmt.Sprintf("summary of %s (%d chars)", path, len(content)), nil
}

func TestAISummarizeCachesResult(t *testing.T) {
	t.Parallel()

	cache, err := NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)

	summarizer := &stubSummarizer{}
	a := NewAISummarize(summarizer, cache)

	rec := record.FileRecord{Path: "notes.txt", Content: record.TextContent("hello world")}

	out1, err := a.Apply(context.Background(), rec, nil)
	require.NoError(t, err)
	require.NoError(t, out1.TransformError)

	out2, err := a.Apply(context.Background(), rec, nil)
	require.NoError(t, err)
	require.NoError(t, out2.TransformError)

	assert.Equal(t, 1, summarizer.calls)
	assert.Equal(t, out1.Metadata["ai_summary"], out2.Metadata["ai_summary"])
}

func TestAISummarizeMissingSummarizerFailsDependencyCheck(t *testing.T) {
	t.Parallel()

	a := NewAISummarize(nil, nil)
	assert.Error(t, a.CheckDependencies())
}

type stubConverter struct{ err error }

func (c stubConverter) Convert(_ context.Context, path string, data []byte) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return fmt.Sprintf("converted:%s:%d bytes", path, len(data)), nil
}

func TestDocumentConvertSetsTextContentOnSuccess(t *testing.T) {
	t.Parallel()

	d := NewDocumentConvert(stubConverter{}, nil)
	rec := record.FileRecord{
		Path:     "report.pdf",
		IsBinary: true,
		Content:  record.BytesContent([]byte("%PDF-1.4")),
	}

	out, err := d.Apply(context.Background(), rec, nil)
	require.NoError(t, err)
	assert.Equal(t, record.ContentText, out.Content.Kind)
	assert.Contains(t, out.Content.Text, "converted:report.pdf")
}

func TestDocumentConvertFallsBackToPlaceholderOnError(t *testing.T) {
	t.Parallel()

	d := NewDocumentConvert(stubConverter{err: assertUnavailable{}}, nil)
	rec := record.FileRecord{
		Path:     "broken.pdf",
		IsBinary: true,
		Content:  record.BytesContent([]byte("junk")),
	}

	out, err := d.Apply(context.Background(), rec, nil)
	require.NoError(t, err)
	assert.Equal(t, record.ContentPlaceholder, out.Content.Kind)
	assert.Error(t, out.TransformError)
}

package transform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copytree/internal/record"
)

func TestStripHTMLRemovesTags(t *testing.T) {
	t.Parallel()

	rec := record.FileRecord{
		Path:    "index.html",
		Content: record.TextContent("<h1>Title</h1>\n<p>Hello <b>world</b></p>"),
	}

	out, err := StripHTML{}.Apply(context.Background(), rec, nil)
	require.NoError(t, err)
	assert.Equal(t, "Title Hello world", out.Content.Text)
}

func TestStripHTMLCanTransformGatesOnExtension(t *testing.T) {
	t.Parallel()

	html := record.FileRecord{Path: "a.html", Content: record.TextContent("<p>x</p>")}
	other := record.FileRecord{Path: "a.txt", Content: record.TextContent("<p>x</p>")}

	assert.True(t, StripHTML{}.CanTransform(html))
	assert.False(t, StripHTML{}.CanTransform(other))
}

func TestStripMarkdownLinksKeepsLinkText(t *testing.T) {
	t.Parallel()

	rec := record.FileRecord{
		Path:    "README.md",
		Content: record.TextContent("See [the docs](https://example.com/docs) for more."),
	}

	out, err := StripMarkdownLinks{}.Apply(context.Background(), rec, nil)
	require.NoError(t, err)
	assert.Contains(t, out.Content.Text, "the docs")
	assert.NotContains(t, out.Content.Text, "https://example.com")
}

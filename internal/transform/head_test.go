package transform

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copytree/internal/record"
)

func TestHeadLinesTruncatesToDefault(t *testing.T) {
	t.Parallel()

	lines := make([]string, 0, 60)
	for i := 0; i < 60; i++ {
		lines = append(lines, "line")
	}
	rec := record.FileRecord{Content: record.TextContent(strings.Join(lines, "\n"))}

	out, err := NewHeadLines().Apply(context.Background(), rec, nil)
	require.NoError(t, err)
	assert.Equal(t, 50, strings.Count(out.Content.Text, "\n")+1)
}

func TestHeadLinesHonorsOptionOverride(t *testing.T) {
	t.Parallel()

	rec := record.FileRecord{Content: record.TextContent("a\nb\nc\nd\ne")}
	out, err := NewHeadLines().Apply(context.Background(), rec, map[string]any{"lines": 2})
	require.NoError(t, err)
	assert.Equal(t, "a\nb", out.Content.Text)
}

func TestHeadCSVAppendsTruncationMarker(t *testing.T) {
	t.Parallel()

	rows := []string{"id,name"}
	for i := 0; i < 30; i++ {
		rows = append(rows, "1,row")
	}
	rec := record.FileRecord{Path: "data.csv", Content: record.TextContent(strings.Join(rows, "\n"))}

	out, err := NewHeadCSV().Apply(context.Background(), rec, nil)
	require.NoError(t, err)
	assert.Contains(t, out.Content.Text, "truncated to 20 rows")
}

func TestHeadCSVNoMarkerWhenUnderLimit(t *testing.T) {
	t.Parallel()

	rec := record.FileRecord{Path: "small.csv", Content: record.TextContent("id,name\n1,a\n2,b")}
	out, err := NewHeadCSV().Apply(context.Background(), rec, nil)
	require.NoError(t, err)
	assert.NotContains(t, out.Content.Text, "truncated")
}

func TestHeadCSVCanTransformGatesOnExtension(t *testing.T) {
	t.Parallel()

	csv := record.FileRecord{Path: "a.csv", Content: record.TextContent("id\n1")}
	txt := record.FileRecord{Path: "a.txt", Content: record.TextContent("id\n1")}

	assert.True(t, NewHeadCSV().CanTransform(csv))
	assert.False(t, NewHeadCSV().CanTransform(txt))
}

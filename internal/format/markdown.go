package format

import (
	"fmt"
	"strings"

	"copytree/internal/record"
)

// MarkdownFormatter renders a YAML front-matter header, a fenced tree
// block, and one HTML-comment-bracketed section per file (spec.md §4.H).
type MarkdownFormatter struct{}

func (MarkdownFormatter) Name() string { return "markdown" }

func (MarkdownFormatter) Format(meta Metadata, recs []record.FileRecord, opts Options) (string, error) {
	var b strings.Builder

	b.WriteString("---\n")
	b.WriteString("format: copytree-md@1\n")
	fmt.Fprintf(&b, "generated_at: %s\n", meta.GeneratedAt.Format(timeLayout))
	fmt.Fprintf(&b, "file_count: %d\n", meta.FileCount)
	fmt.Fprintf(&b, "total_size: %d\n", meta.TotalSize)
	fmt.Fprintf(&b, "base_path: %q\n", meta.BasePath)
	if meta.Instructions != "" {
		fmt.Fprintf(&b, "instructions: %q\n", meta.Instructions)
	}
	b.WriteString("---\n\n")

	b.WriteString("```\n")
	b.WriteString(meta.DirectoryStructure)
	b.WriteString("\n```\n")

	if opts.OnlyTree {
		return b.String(), nil
	}

	for _, rec := range recs {
		fmt.Fprintf(&b, "\n<!-- copytree:file path=%q -->\n", rec.Path)
		fmt.Fprintf(&b, "### %s\n\n", rec.Path)

		body := contentString(rec)
		if opts.WithLineNumbers && rec.Content.Kind == record.ContentText {
			body = withLineNumbers(body)
		}

		lang := languageHint(rec.Path)
		fmt.Fprintf(&b, "```%s\n", lang)
		b.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			b.WriteByte('\n')
		}
		b.WriteString("```\n")
		fmt.Fprintf(&b, "<!-- /copytree:file path=%q -->\n", rec.Path)
	}

	return b.String(), nil
}

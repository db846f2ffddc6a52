package transform

import (
	"context"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"copytree/internal/record"
)

// StripMarkdownLinks removes link and image nodes from Markdown content,
// keeping the link/image's own text. It walks the goldmark AST rather than
// regexing Markdown syntax, so nested and reference-style links are
// handled correctly.
type StripMarkdownLinks struct{}

func (StripMarkdownLinks) Name() string           { return "strip-markdown-links" }
func (StripMarkdownLinks) InputTypes() []IOType   { return []IOType{IOMarkdown} }
func (StripMarkdownLinks) OutputTypes() []IOType  { return []IOType{IOText} }
func (StripMarkdownLinks) Idempotent() bool       { return true }
func (StripMarkdownLinks) Heavy() bool            { return false }
func (StripMarkdownLinks) Dependencies() []string { return nil }
func (StripMarkdownLinks) Bucket() Bucket         { return BucketFilter }

func (StripMarkdownLinks) CanTransform(rec record.FileRecord) bool {
	return rec.Content.Kind == record.ContentText && strings.HasSuffix(strings.ToLower(rec.Path), ".md")
}

func (StripMarkdownLinks) Apply(_ context.Context, rec record.FileRecord, _ map[string]any) (record.FileRecord, error) {
	src := []byte(rec.Content.Text)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var out strings.Builder
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Link, *ast.Image:
			// Emit the link/image's text content, then skip its children
			// (the href/src never appears in plain output).
			out.Write(n.Text(src))
			return ast.WalkSkipChildren, nil
		}
		if n.Type() == ast.TypeInline {
			if leaf, ok := n.(interface{ Value([]byte) []byte }); ok {
				out.Write(leaf.Value(src))
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return rec, err
	}

	rec.Content = record.TextContent(out.String())
	return rec.WithTrail("strip-markdown-links"), nil
}

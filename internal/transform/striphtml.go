package transform

import (
	"context"
	"regexp"
	"strings"

	"copytree/internal/record"
)

var htmlTagPattern = regexp.MustCompile(`(?s)<[^>]*>`)

// StripHTML removes HTML tags from text content, collapsing runs of
// whitespace left behind. No suitable ecosystem HTML-to-text library
// surfaced in the retrieved corpus, so this stays on stdlib regexp/strings
// (see DESIGN.md).
type StripHTML struct{}

func (StripHTML) Name() string           { return "strip-html" }
func (StripHTML) InputTypes() []IOType   { return []IOType{IOHTML, IOText} }
func (StripHTML) OutputTypes() []IOType  { return []IOType{IOText} }
func (StripHTML) Idempotent() bool       { return true }
func (StripHTML) Heavy() bool            { return false }
func (StripHTML) Dependencies() []string { return nil }
func (StripHTML) Bucket() Bucket         { return BucketFilter }

func (StripHTML) CanTransform(rec record.FileRecord) bool {
	return rec.Content.Kind == record.ContentText && strings.HasSuffix(strings.ToLower(rec.Path), ".html")
}

func (StripHTML) Apply(_ context.Context, rec record.FileRecord, _ map[string]any) (record.FileRecord, error) {
	stripped := htmlTagPattern.ReplaceAllString(rec.Content.Text, " ")
	stripped = strings.Join(strings.Fields(stripped), " ")
	rec.Content = record.TextContent(stripped)
	return rec.WithTrail("strip-html"), nil
}

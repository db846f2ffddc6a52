package transform

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"copytree/internal/record"
)

// HeadLines truncates text content to its first N lines (options key
// "lines", default 50). Applies to any text record.
type HeadLines struct{ DefaultLines int }

func NewHeadLines() *HeadLines { return &HeadLines{DefaultLines: 50} }

func (h *HeadLines) Name() string           { return "head-lines" }
func (h *HeadLines) InputTypes() []IOType   { return []IOType{IOText} }
func (h *HeadLines) OutputTypes() []IOType  { return []IOType{IOText} }
func (h *HeadLines) Idempotent() bool       { return true }
func (h *HeadLines) Heavy() bool            { return false }
func (h *HeadLines) Dependencies() []string { return nil }
func (h *HeadLines) Bucket() Bucket         { return BucketFilter }

func (h *HeadLines) CanTransform(rec record.FileRecord) bool {
	return rec.Content.Kind == record.ContentText
}

func (h *HeadLines) Apply(_ context.Context, rec record.FileRecord, opts map[string]any) (record.FileRecord, error) {
	n := h.DefaultLines
	if v, ok := opts["lines"].(int); ok && v > 0 {
		n = v
	}

	scanner := bufio.NewScanner(strings.NewReader(rec.Content.Text))
	var lines []string
	for i := 0; i < n && scanner.Scan(); i++ {
		lines = append(lines, scanner.Text())
	}

	rec.Content = record.TextContent(strings.Join(lines, "\n"))
	return rec.WithTrail(h.Name()), nil
}

// HeadCSV truncates a CSV file's rows to the header plus the first N data
// rows (options key "rows", default 20). Lines are not re-parsed as CSV
// fields; the cut is row-oriented.
type HeadCSV struct{ DefaultRows int }

func NewHeadCSV() *HeadCSV { return &HeadCSV{DefaultRows: 20} }

func (h *HeadCSV) Name() string           { return "head-csv" }
func (h *HeadCSV) InputTypes() []IOType   { return []IOType{IOStructured, IOText} }
func (h *HeadCSV) OutputTypes() []IOType  { return []IOType{IOText} }
func (h *HeadCSV) Idempotent() bool       { return true }
func (h *HeadCSV) Heavy() bool            { return false }
func (h *HeadCSV) Dependencies() []string { return nil }
func (h *HeadCSV) Bucket() Bucket         { return BucketFilter }

func (h *HeadCSV) CanTransform(rec record.FileRecord) bool {
	return rec.Content.Kind == record.ContentText && strings.HasSuffix(strings.ToLower(rec.Path), ".csv")
}

func (h *HeadCSV) Apply(_ context.Context, rec record.FileRecord, opts map[string]any) (record.FileRecord, error) {
	n := h.DefaultRows
	if v, ok := opts["rows"].(int); ok && v > 0 {
		n = v
	}

	scanner := bufio.NewScanner(strings.NewReader(rec.Content.Text))
	var lines []string
	for i := 0; i <= n && scanner.Scan(); i++ { // +1 for the header row
		lines = append(lines, scanner.Text())
	}
	truncated := scanner.Scan() // one more line exists beyond the cut

	out := strings.Join(lines, "\n")
	if truncated {
		out += fmt.Sprintf("\n... (truncated to %d rows)", n)
	}
	rec.Content = record.TextContent(out)
	return rec.WithTrail(h.Name()), nil
}

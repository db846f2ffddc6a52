package transform

import (
	"context"
	"crypto/sha256"
	"fmt"

	"copytree/internal/record"
)

// Summarizer is the abstract external collaborator behind the ai-summarize
// transformer (spec.md §4.G, §3 "heavy: resource-intensive (network, OCR,
// LLM)"). No concrete network-calling implementation ships in this
// repository, per spec.md §1's Non-goals ("AI-provider network clients...
// remain abstract interfaces").
type Summarizer interface {
	Summarize(ctx context.Context, path string, content string) (summary string, err error)
}

// AISummarize is the heavy, cacheable transformer wrapping a Summarizer.
type AISummarize struct {
	Summarizer Summarizer
	Cache      *Cache
	Version    string
}

func NewAISummarize(s Summarizer, cache *Cache) *AISummarize {
	return &AISummarize{Summarizer: s, Cache: cache, Version: "v1"}
}

func (a *AISummarize) Name() string           { return "ai-summarize" }
func (a *AISummarize) InputTypes() []IOType   { return []IOType{IOText} }
func (a *AISummarize) OutputTypes() []IOType  { return []IOType{IOText} }
func (a *AISummarize) Idempotent() bool       { return false }
func (a *AISummarize) Heavy() bool            { return true }
func (a *AISummarize) Dependencies() []string { return []string{"ai-summarize"} }
func (a *AISummarize) Bucket() Bucket         { return BucketHeavy }

func (a *AISummarize) CheckDependencies() error {
	if a.Summarizer == nil {
		return fmt.Errorf("no summarizer configured")
	}
	return nil
}

func (a *AISummarize) CanTransform(rec record.FileRecord) bool {
	return rec.Content.Kind == record.ContentText
}

func (a *AISummarize) Apply(ctx context.Context, rec record.FileRecord, opts map[string]any) (record.FileRecord, error) {
	run := func() ([]byte, error) {
		summary, err := a.Summarizer.Summarize(ctx, rec.Path, rec.Content.Text)
		if err != nil {
			return nil, err
		}
		return []byte(summary), nil
	}

	var summaryBytes []byte
	var err error
	if a.Cache != nil {
		fileSum := sha256.Sum256([]byte(rec.Content.Text))
		key, keyErr := Key(a.Name(), a.Version, fileSum, opts)
		if keyErr != nil {
			return rec, keyErr
		}
		summaryBytes, err = a.Cache.Compute(key, run)
	} else {
		summaryBytes, err = run()
	}
	if err != nil {
		rec.TransformError = fmt.Errorf("ai-summarize: %w", err)
		return rec, nil
	}

	rec = rec.SetMetadata("ai_summary", string(summaryBytes))
	return rec.WithTrail(a.Name()), nil
}

// DocumentConvert is the heavy, cacheable transformer wrapping a Converter
// (the same abstract collaborator used by the loader's `convert`
// binary_policy action). Wired here too so a profile can request document
// conversion explicitly as an opt-in transformer rather than only via the
// loader's binary dispatch.
type DocumentConvert struct {
	Converter Converter
	Cache     *Cache
	Version   string
}

func NewDocumentConvert(c Converter, cache *Cache) *DocumentConvert {
	return &DocumentConvert{Converter: c, Cache: cache, Version: "v1"}
}

func (d *DocumentConvert) Name() string           { return "document-convert" }
func (d *DocumentConvert) InputTypes() []IOType   { return []IOType{IOBinary} }
func (d *DocumentConvert) OutputTypes() []IOType  { return []IOType{IOText} }
func (d *DocumentConvert) Idempotent() bool       { return false }
func (d *DocumentConvert) Heavy() bool            { return true }
func (d *DocumentConvert) Dependencies() []string { return []string{"document-convert"} }
func (d *DocumentConvert) Bucket() Bucket         { return BucketHeavy }

func (d *DocumentConvert) CheckDependencies() error {
	if d.Converter == nil {
		return fmt.Errorf("no converter configured")
	}
	return nil
}

func (d *DocumentConvert) CanTransform(rec record.FileRecord) bool {
	return rec.IsBinary
}

func (d *DocumentConvert) Apply(ctx context.Context, rec record.FileRecord, opts map[string]any) (record.FileRecord, error) {
	var data []byte
	if rec.Content.Kind == record.ContentBytes {
		data = rec.Content.Bytes
	}

	run := func() ([]byte, error) {
		text, err := d.Converter.Convert(ctx, rec.Path, data)
		if err != nil {
			return nil, err
		}
		return []byte(text), nil
	}

	var out []byte
	var err error
	if d.Cache != nil {
		fileSum := sha256.Sum256(data)
		key, keyErr := Key(d.Name(), d.Version, fileSum, opts)
		if keyErr != nil {
			return rec, keyErr
		}
		out, err = d.Cache.Compute(key, run)
	} else {
		out, err = run()
	}
	if err != nil {
		rec.TransformError = fmt.Errorf("document-convert: %w", err)
		rec.Content = record.PlaceholderContent("[conversion failed]")
		return rec, nil
	}

	rec.Content = record.TextContent(string(out))
	rec.Encoding = record.EncodingUTF8
	return rec.WithTrail(d.Name()), nil
}

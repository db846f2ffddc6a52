package transform

import (
	"context"
	"fmt"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"

	"copytree/internal/record"
)

// TokenCount is a converter transformer that counts a text record's BPE
// tokens, stores the result in FileRecord.TokenCount and appends its name
// to FileRecord.Trail,
// using the pkoukk/tiktoken-go encoding (local compute; not a heavy/network transformer).
type TokenCount struct {
	mu       sync.Mutex
	encoders map[string]*tiktoken.Tiktoken
}

// NewTokenCount creates a TokenCount transformer with a lazily-populated
// encoding cache, since loading a tiktoken encoding is comparatively
// expensive and a profile typically requests only one.
func NewTokenCount() *TokenCount {
	return &TokenCount{encoders: make(map[string]*tiktoken.Tiktoken)}
}

func (t *TokenCount) Name() string           { return "token-count" }
func (t *TokenCount) InputTypes() []IOType   { return []IOType{IOText} }
func (t *TokenCount) OutputTypes() []IOType  { return []IOType{IOText} }
func (t *TokenCount) Idempotent() bool       { return true }
func (t *TokenCount) Heavy() bool            { return false }
func (t *TokenCount) Dependencies() []string { return nil }
func (t *TokenCount) Bucket() Bucket         { return BucketConverter }

func (t *TokenCount) CanTransform(rec record.FileRecord) bool {
	return rec.Content.Kind == record.ContentText
}

func (t *TokenCount) Apply(_ context.Context, rec record.FileRecord, opts map[string]any) (record.FileRecord, error) {
	encodingName := "cl100k_base"
	if v, ok := opts["encoding"].(string); ok && v != "" {
		encodingName = v
	}

	enc, err := t.encoderFor(encodingName)
	if err != nil {
		rec.TransformError = fmt.Errorf("token-count: %w", err)
		return rec, nil
	}

	rec.TokenCount = len(enc.Encode(rec.Content.Text, nil, nil))
	return rec.WithTrail(t.Name()), nil
}

func (t *TokenCount) encoderFor(name string) (*tiktoken.Tiktoken, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if enc, ok := t.encoders[name]; ok {
		return enc, nil
	}
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("loading tiktoken encoding %q: %w", name, err)
	}
	t.encoders[name] = enc
	return enc, nil
}

package transform

import (
	"context"

	"copytree/internal/record"
)

// IOType labels the input/output shapes a transformer accepts or produces
// (spec.md §3 "Transformer descriptor").
type IOType string

const (
	IOText       IOType = "text"
	IOBinary     IOType = "binary"
	IOStructured IOType = "structured"
	IOMarkdown   IOType = "markdown"
	IOHTML       IOType = "html"
)

// Transformer is the contract every pipeline stage satisfies (spec.md §3,
// §4.F). Apply receives the profile-declared options for this transformer
// instance and returns the new record; it must not mutate the record it
// receives.
type Transformer interface {
	Name() string
	InputTypes() []IOType
	OutputTypes() []IOType
	Idempotent() bool
	Heavy() bool
	Dependencies() []string
	Bucket() Bucket
	CanTransform(rec record.FileRecord) bool
	Apply(ctx context.Context, rec record.FileRecord, opts map[string]any) (record.FileRecord, error)
}

// BatchTransformer is implemented by transformers that can process several
// records in one call (spec.md §4.G "Batching"). BatchSize reports the
// maximum batch the transformer accepts; the pipeline never submits more.
type BatchTransformer interface {
	Transformer
	BatchSize() int
	ApplyBatch(ctx context.Context, recs []record.FileRecord, opts map[string]any) ([]record.FileRecord, error)
}

// DependencyChecker is satisfied by transformers whose declared
// Dependencies() require a runtime probe to confirm availability (e.g. an
// external CLI on PATH). Transformers that don't need this simply omit it;
// the registry treats a declared dependency with no checker as always
// available.
type DependencyChecker interface {
	CheckDependencies() error
}

package transform

import (
	"context"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"copytree/internal/record"
)

// Limits applies the two per-file caps spec.md §4.G's stage 4 describes.
// Zero means unbounded.
type Limits struct {
	MaxLines      int
	MaxCharacters int
}

// PipelineConfig configures a single Pipeline.Run call (spec.md §4.G).
type PipelineConfig struct {
	// Chain is the ordered, available transformer list for the active
	// profile, as produced by Registry.Chain.
	Chain []Transformer

	// Options maps transformer name -> its profile-declared options.
	Options map[string]map[string]any

	// Concurrency bounds how many records a single stage processes at once.
	Concurrency int

	Limits Limits
}

// Pipeline runs FileRecords through a transformer chain, stage by stage:
// every record advances through stage N before any record starts stage
// N+1. This is what lets a BatchTransformer see every eligible record at
// once rather than one at a time, and it makes order preservation free —
// the slice order never changes, only individual elements are replaced in
// place — at the cost of buffering the whole input set. spec.md's profiles
// scan one source tree per invocation, so this is the same buffering the
// teacher's tokenizer.TokenCounter.CountFiles phase already does.
type Pipeline struct {
	cfg PipelineConfig
}

func NewPipeline(cfg PipelineConfig) *Pipeline {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.NumCPU()
	}
	return &Pipeline{cfg: cfg}
}

// Run consumes in, applies the configured transformer chain stage by
// stage, and emits the finalized records on the returned channel in their
// original input order. Output ordering for streaming-NDJSON formatting
// (spec.md §4.G) is the formatter's concern, not the pipeline's: it may
// re-stream these already-ordered records in any order it likes.
func (p *Pipeline) Run(ctx context.Context, in <-chan record.FileRecord) <-chan record.FileRecord {
	out := make(chan record.FileRecord, p.cfg.Concurrency)

	go func() {
		defer close(out)

		recs := drain(in)
		recs = p.runChain(ctx, recs)

		for _, rec := range recs {
			select {
			case out <- rec:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func drain(in <-chan record.FileRecord) []record.FileRecord {
	var recs []record.FileRecord
	for rec := range in {
		recs = append(recs, rec)
	}
	return recs
}

// runChain advances every record through each stage in turn, then applies
// the trailing per-file limits.
func (p *Pipeline) runChain(ctx context.Context, recs []record.FileRecord) []record.FileRecord {
	for _, t := range p.cfg.Chain {
		if ctx.Err() != nil {
			break
		}
		opts := p.cfg.Options[t.Name()]

		if bt, ok := t.(BatchTransformer); ok {
			recs = p.runBatchStage(ctx, bt, recs, opts)
			continue
		}
		recs = p.runStage(ctx, t, recs, opts)
	}

	for i, rec := range recs {
		recs[i] = applyLimits(rec, p.cfg.Limits)
	}
	return recs
}

// runStage applies t to every eligible record concurrently, bounded by
// Concurrency, and writes results back in place so slice order never
// changes.
func (p *Pipeline) runStage(ctx context.Context, t Transformer, recs []record.FileRecord, opts map[string]any) []record.FileRecord {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Concurrency)

	for i := range recs {
		i := i
		if !t.CanTransform(recs[i]) {
			continue
		}
		g.Go(func() error {
			result, err := t.Apply(gctx, recs[i], opts)
			if err != nil {
				recs[i].TransformError = err
				return nil
			}
			result.Transformed = true
			recs[i] = result.WithTrail(t.Name())
			return nil
		})
	}
	_ = g.Wait()
	return recs
}

// runBatchStage groups the records eligible for bt (CanTransform == true)
// into chunks no larger than bt.BatchSize and submits each chunk via
// ApplyBatch, writing results back to their original positions. Records
// bt can't handle pass through untouched (spec.md §4.G "Batching").
func (p *Pipeline) runBatchStage(ctx context.Context, bt BatchTransformer, recs []record.FileRecord, opts map[string]any) []record.FileRecord {
	var (
		eligible []record.FileRecord
		indices  []int
	)
	for i, rec := range recs {
		if bt.CanTransform(rec) {
			eligible = append(eligible, rec)
			indices = append(indices, i)
		}
	}
	if len(eligible) == 0 {
		return recs
	}

	results := RunBatch(ctx, bt, eligible, opts)
	for j, idx := range indices {
		result := results[j]
		if result.TransformError == nil {
			result.Transformed = true
			result = result.WithTrail(bt.Name())
		}
		recs[idx] = result
	}
	return recs
}

// RunBatch submits recs to a BatchTransformer in chunks no larger than its
// BatchSize, demultiplexing each chunk's results back by index. A failed
// chunk marks every record in it with TransformError; peer chunks are
// unaffected (spec.md §4.G "Partial-batch failures are reported per
// record; successful peers are unaffected").
func RunBatch(ctx context.Context, bt BatchTransformer, recs []record.FileRecord, opts map[string]any) []record.FileRecord {
	size := bt.BatchSize()
	if size <= 0 {
		size = 1
	}

	out := make([]record.FileRecord, len(recs))
	copy(out, recs)

	for start := 0; start < len(recs); start += size {
		end := start + size
		if end > len(recs) {
			end = len(recs)
		}
		chunk := recs[start:end]

		results, err := bt.ApplyBatch(ctx, chunk, opts)
		if err != nil {
			for i := start; i < end; i++ {
				out[i].TransformError = err
			}
			continue
		}
		for i, r := range results {
			out[start+i] = r
		}
	}

	return out
}

// applyLimits enforces the trailing line/character caps (spec.md §4.G
// stage 4).
func applyLimits(rec record.FileRecord, limits Limits) record.FileRecord {
	if rec.Content.Kind != record.ContentText {
		return rec
	}

	text := rec.Content.Text

	if limits.MaxLines > 0 {
		lines := strings.Split(text, "\n")
		if len(lines) > limits.MaxLines {
			text = strings.Join(lines[:limits.MaxLines], "\n")
		}
	}

	if limits.MaxCharacters > 0 && len(text) > limits.MaxCharacters {
		text = text[:limits.MaxCharacters]
	}

	rec.Content = record.TextContent(text)
	return rec
}

package copytree

import (
	"context"
	"os"
	"path/filepath"

	"copytree/internal/progress"
	"copytree/internal/record"
	"copytree/internal/transform"
)

// defaultCacheDir returns "~/.copytree/cache" (spec.md §6 "Cache layout").
func defaultCacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".copytree", "cache"), nil
}

// runTransforms builds the registry for opts and pushes in through the
// ordered chain, returning the content-bearing output stream (spec.md
// §4.F/§4.G).
func runTransforms(ctx context.Context, in <-chan record.FileRecord, opts Options) (<-chan record.FileRecord, error) {
	cacheDir := opts.CacheDir
	if cacheDir == "" {
		dir, err := defaultCacheDir()
		if err != nil {
			return nil, TransformerError("resolving cache directory", err)
		}
		cacheDir = dir
	}
	cache, err := transform.NewCache(cacheDir, opts.CacheTTL)
	if err != nil {
		return nil, TransformerError("opening transformer cache", err)
	}

	reg, err := buildRegistry(opts, cache)
	if err != nil {
		return nil, TransformerError("building transformer registry", err)
	}

	chain, err := reg.Chain(opts.Transformers)
	if err != nil {
		return nil, PatternError("resolving transformer chain", err)
	}

	if opts.Reporter != nil {
		opts.Reporter.Start(progress.StageTransform, "transforming")
	}

	pipeline := transform.NewPipeline(transform.PipelineConfig{
		Chain:       chain,
		Options:     opts.TransformerOptions,
		Concurrency: opts.Concurrency,
		Limits:      opts.TransformLimits,
	})

	out := pipeline.Run(ctx, in)

	// The pipeline fully drains its input before emitting (spec.md §4.G:
	// buffered reorder), so the transform stage-end event is reported by
	// the caller once it has drained out, not here.

	return out, nil
}

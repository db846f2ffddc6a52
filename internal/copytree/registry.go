package copytree

import (
	"copytree/internal/retry"
	"copytree/internal/transform"
)

// buildRegistry registers every built-in transformer in bucket order
// (spec.md §4.F), wiring opts.Summarizer/Converter/cache into the heavy,
// cacheable ones. Declared order follows the profile's transformers map
// order so within-bucket ties break the same way Registry.Chain expects.
func buildRegistry(opts Options, cache *transform.Cache) (*transform.Registry, error) {
	reg := transform.NewRegistry()

	loader := transform.NewLoader(opts.WalkLimits.MaxFileSize, opts.Converter)
	loader.RetryPolicy = opts.RetryPolicy
	if opts.retryReporter != nil {
		loader.Reporter = opts.retryReporter
	}
	if err := reg.Register(loader, 0); err != nil {
		return nil, err
	}
	if err := reg.Register(transform.StripHTML{}, declaredOrder(opts, "strip-html")); err != nil {
		return nil, err
	}
	if err := reg.Register(transform.StripMarkdownLinks{}, declaredOrder(opts, "strip-markdown-links")); err != nil {
		return nil, err
	}
	if err := reg.Register(transform.NewHeadLines(), declaredOrder(opts, "head-lines")); err != nil {
		return nil, err
	}
	if err := reg.Register(transform.NewHeadCSV(), declaredOrder(opts, "head-csv")); err != nil {
		return nil, err
	}
	if err := reg.Register(transform.NewTokenCount(), declaredOrder(opts, "token-count")); err != nil {
		return nil, err
	}
	if err := reg.Register(transform.NewDocumentConvert(opts.Converter, cache), declaredOrder(opts, "document-convert")); err != nil {
		return nil, err
	}
	if err := reg.Register(transform.NewAISummarize(opts.Summarizer, cache), declaredOrder(opts, "ai-summarize")); err != nil {
		return nil, err
	}

	return reg, nil
}

// declaredOrder looks up name's position in opts.Transformers, defaulting
// to the end of the list so an unnamed (never-active) transformer sorts
// last within its bucket without affecting the active ones' ordering.
func declaredOrder(opts Options, name string) int {
	for i, n := range opts.Transformers {
		if n == name {
			return i
		}
	}
	return len(opts.Transformers)
}

package copytree

import (
	"time"

	"copytree/internal/progress"
	"copytree/internal/retry"
	"copytree/internal/transform"
	"copytree/internal/walker"
)

// Options carries every input to a scan/copy/format call (spec.md §5,
// SPEC_FULL.md §5 component table). It is always passed explicitly — never
// read from a package-level singleton (SPEC_FULL.md §6 Design Notes:
// "Implicit singletons").
type Options struct {
	// Root is the base path reported in the rendered output's metadata.
	// Scan, Copy and CopyStream walk their base argument, not Root, and an
	// empty Root is rendered as an empty base path.
	Root string

	// ProfileName selects a named .copytree profile ("" for the unnamed
	// default).
	ProfileName string

	// Filter/Exclude are CLI-supplied glob overrides, layered on top of
	// the resolved profile per profile.Resolve's merge rule.
	Filter  []string
	Exclude []string

	// Transformers is the active opt-in transformer name set, exactly as the
	// caller supplies it; the resolved profile's transformers map is not
	// merged in. The loader and content filters run regardless.
	Transformers []string

	// TransformerOptions carries each active transformer's free-form
	// options, keyed by name.
	TransformerOptions map[string]map[string]any

	// Format selects the output formatter ("xml", "json", "markdown",
	// "tree", "ndjson", "sarif").
	Format string

	// FormatOptions is passed through to the chosen Formatter.
	FormatOptions map[string]any

	// Sort selects the walker's buffered ordering.
	Sort walker.SortKey

	// FollowSymlinks controls the walker's symlink policy.
	FollowSymlinks bool

	// Concurrency bounds walker and transform-pipeline parallelism.
	// Zero defaults to runtime.NumCPU() in each subsystem.
	Concurrency int

	// WalkLimits bounds the walk (spec.md §4.D).
	WalkLimits walker.Limits

	// RetryPolicy governs retry/backoff for the walker's directory reads
	// and the loader's file reads (component J, spec.md §4.J). The zero
	// value falls back to retry.DefaultPolicy().
	RetryPolicy retry.Policy

	// retryReporter aggregates retry outcomes across both the walker and
	// the loader for a single scan/copy call (spec.md §4.J/§7: "{retries,
	// given_up, permanent, success_after_retry}" surfaced in stats).
	// collect() creates one per call and shares it across both stages;
	// Scan falls back to a throwaway Reporter when called directly.
	retryReporter *retry.Reporter

	// TransformLimits bounds per-record output size (spec.md §4.F
	// MaxLines/MaxCharacters).
	TransformLimits transform.Limits

	// CacheDir is the on-disk root for the heavy-transformer cache
	// (spec.md §4.G). Defaults to ~/.copytree/cache when empty.
	CacheDir string
	CacheTTL time.Duration

	// Summarizer backs the ai-summarize transformer; nil disables it
	// even if named in Transformers (it is simply skipped as
	// unavailable, per spec.md §4.F).
	Summarizer transform.Summarizer

	// Converter backs both the loader's document-conversion fallback and
	// the document-convert transformer.
	Converter transform.Converter

	// CaseSensitiveIgnore controls .gitignore/.copytreeignore matching
	// case sensitivity (spec.md §4.B).
	CaseSensitiveIgnore bool

	// Reporter receives progress Events across all four stages
	// (component I). Nil disables progress reporting entirely.
	Reporter *progress.Reporter

	// Instructions is free-form text surfaced in Metadata and some
	// formatters' front matter.
	Instructions string

	// ToClipboard, when true, additionally writes the rendered output to
	// the system clipboard via ClipboardWriter (spec.md §6 "clipboard").
	ToClipboard bool
	Clipboard   ClipboardWriter

	// OutputPath, when non-empty, additionally writes the rendered output
	// to that file (spec.md §6 "output: path").
	OutputPath string

	// Display, when true, additionally writes the rendered output to
	// stderr for interactive viewing (spec.md §6 "display: bool").
	Display bool

	// DryRun produces Stats and a Manifest but leaves Result.Output empty
	// and skips every side-effect sink (spec.md §6 "dry_run: bool").
	DryRun bool
}

// ClipboardWriter abstracts the system clipboard sink so Copy can be tested
// without a real clipboard, and so a caller can supply a no-op
// implementation in headless environments.
type ClipboardWriter interface {
	WriteAll(text string) error
}

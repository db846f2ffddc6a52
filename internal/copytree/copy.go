package copytree

import (
	"context"
	"fmt"
	"os"
	"time"

	"copytree/internal/progress"
	"copytree/internal/record"
	"copytree/internal/retry"
)

// collect runs base through Scan then the transform pipeline and drains the
// result into a slice, along with the scan error (if any, non-fatal ones
// recorded rather than returned), a retry summary, and elapsed wall time.
// A single retry.Reporter is shared across the walker and loader stages so
// Stats.RetrySummary/ScanErrors reflect both (spec.md §4.J/§7).
func collect(ctx context.Context, base string, opts Options) ([]record.FileRecord, []string, retry.Stats, time.Duration, error) {
	start := time.Now()

	reporter := retry.NewReporter()
	opts.retryReporter = reporter

	walked, wait, err := Scan(ctx, base, opts)
	if err != nil {
		return nil, nil, reporter.Snapshot(), time.Since(start), err
	}

	transformed, err := runTransforms(ctx, walked, opts)
	if err != nil {
		return nil, nil, reporter.Snapshot(), time.Since(start), err
	}

	recs := make([]record.FileRecord, 0, 64)
	for r := range transformed {
		recs = append(recs, r)
	}
	if opts.Reporter != nil {
		opts.Reporter.StageEnd(progress.StageTransform, "transform complete")
	}

	var scanErrors []string
	if werr := wait(); werr != nil {
		if copErr, ok := werr.(*Error); ok && copErr.Kind == KindScanAborted {
			return recs, scanErrors, reporter.Snapshot(), time.Since(start), copErr
		}
		scanErrors = append(scanErrors, werr.Error())
	}

	for _, e := range reporter.Entries() {
		scanErrors = append(scanErrors, fmt.Sprintf("%s: %s after %d attempt(s)", e.Path, e.Classification, e.Attempts))
	}

	return recs, scanErrors, reporter.Snapshot(), time.Since(start), nil
}

// Copy scans base, transforms and renders the result, and writes it to any
// configured side-effect sinks, matching spec.md §6: `copy(base, options) →
// {output, files, manifest, stats, output_path?}`.
func Copy(ctx context.Context, base string, opts Options) (Result, error) {
	recs, scanErrors, retrySummary, elapsed, err := collect(ctx, base, opts)
	if err != nil {
		return Result{}, err
	}

	var totalSize int64
	var transformerErrors []string
	for _, r := range recs {
		totalSize += r.Size
		if r.TransformError != nil {
			transformerErrors = append(transformerErrors, fmt.Sprintf("%s: %v", r.Path, r.TransformError))
		}
	}

	stats := Stats{
		TotalFiles:        len(recs),
		TotalSize:         totalSize,
		Duration:          elapsed,
		ScanErrors:        scanErrors,
		RetrySummary:      retrySummary,
		TransformerErrors: transformerErrors,
		DryRun:            opts.DryRun,
	}

	result := Result{
		Files:    recs,
		Manifest: buildManifest(recs),
		Stats:    stats,
	}

	if opts.DryRun {
		return result, nil
	}

	var rendered string
	if rerr := reportFormatStage(opts.Reporter, func() error {
		out, ferr := Format(recs, opts)
		if ferr != nil {
			return ferr
		}
		rendered = out
		return nil
	}); rerr != nil {
		return Result{}, rerr
	}

	result.Output = rendered
	result.Stats.OutputSize = len(rendered)

	if opts.OutputPath != "" {
		if werr := os.WriteFile(opts.OutputPath, []byte(rendered), 0o644); werr != nil {
			return Result{}, OutputError(fmt.Sprintf("writing output to %s", opts.OutputPath), werr)
		}
		result.OutputPath = opts.OutputPath
	}

	if opts.Display {
		fmt.Fprint(os.Stderr, rendered)
	}

	if opts.ToClipboard {
		writer := opts.Clipboard
		if writer == nil {
			writer = SystemClipboard{}
		}
		if cerr := writer.WriteAll(rendered); cerr != nil {
			result.Stats.ClipboardError = cerr.Error()
		}
	}

	return result, nil
}

// CopyStream scans, transforms, and renders base, delivering the output as
// a stream of chunks (spec.md §6: `copy_stream(base, options) → async
// sequence<string chunks>`). It writes no side-effect sinks; callers that
// need clipboard/file/display behavior should use Copy instead.
func CopyStream(ctx context.Context, base string, opts Options) (<-chan string, error) {
	recs, _, _, _, err := collect(ctx, base, opts)
	if err != nil {
		return nil, err
	}
	return FormatStream(recs, opts)
}

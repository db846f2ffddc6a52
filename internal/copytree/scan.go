package copytree

import (
	"context"
	"fmt"

	"copytree/internal/ignore"
	"copytree/internal/profile"
	"copytree/internal/progress"
	"copytree/internal/record"
	"copytree/internal/retry"
	"copytree/internal/walker"
)

// Scan walks base and returns a stream of FileRecords plus a wait function,
// matching spec.md §6's `scan(base, options) → async sequence<FileRecord>`.
// The returned records carry no content unless opts forces eager loading
// through the transform pipeline separately (scan itself never runs
// transformers; it is the walker stage alone, per spec.md §4.D/§4.E).
func Scan(ctx context.Context, base string, opts Options) (<-chan record.FileRecord, func() error, error) {
	if base == "" {
		return nil, nil, ValidationError("base path must not be empty", nil)
	}

	resolved, err := profile.Resolve(profile.ResolveOptions{
		Dir:         base,
		ProfileName: opts.ProfileName,
		CLIFilter:   opts.Filter,
		CLIExclude:  opts.Exclude,
	})
	if err != nil {
		if opts.ProfileName != "" {
			return nil, nil, ProfileNotFound(fmt.Sprintf("profile %q not found", opts.ProfileName), err)
		}
		return nil, nil, ValidationError("resolving profile", err)
	}

	sets, err := ignore.DiscoverRuleSets(base, opts.CaseSensitiveIgnore)
	if err != nil {
		return nil, nil, ScanIoError("discovering ignore files", err)
	}
	sets = append(sets, ignore.DefaultRuleSet(opts.CaseSensitiveIgnore))
	engine := ignore.NewEngine(sets)

	exclude := append(append([]string{}, resolved.Exclude...), resolved.GlobalExcludes...)

	var onEvent func(walker.Event)
	if opts.Reporter != nil {
		opts.Reporter.Start(progress.StageWalk, "walking "+base)
		onEvent = func(ev walker.Event) {
			if ev.Stage == "dir" {
				opts.Reporter.Tick(progress.StageWalk, 1, ev.Path)
			}
		}
	}

	reporter := opts.retryReporter
	if reporter == nil {
		reporter = retry.NewReporter()
	}

	out, wait, err := walker.Walk(ctx, walker.Config{
		Root:           base,
		Ignore:         engine,
		Include:        resolved.Include,
		Exclude:        exclude,
		FollowSymlinks: opts.FollowSymlinks,
		Concurrency:    opts.Concurrency,
		Limits:         opts.WalkLimits,
		Sort:           opts.Sort,
		RetryPolicy:    opts.RetryPolicy,
		Reporter:       reporter,
		OnEvent:        onEvent,
	})
	if err != nil {
		return nil, nil, ScanIoError("starting walk", err)
	}

	waitFn := func() error {
		werr := wait()
		if opts.Reporter != nil {
			opts.Reporter.StageEnd(progress.StageWalk, "walk complete")
		}
		if werr != nil {
			if walker.IsScanAborted(werr) {
				return ScanAbortedError("scan aborted", werr)
			}
			return ScanIoError("walk failed", werr)
		}
		return nil
	}

	return out, waitFn, nil
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"copytree/internal/copytree"
)

var generateCmd = &cobra.Command{
	Use:     "generate [path]",
	Aliases: []string{"gen"},
	Short:   "Generate an LLM-optimized context document from a codebase",
	Long: `Recursively discover files, apply profile-driven filters and transformers,
and render a single structured context document.

This is the primary workflow command. Running 'copytree' with no subcommand
is equivalent to running 'copytree generate'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

// runGenerate builds copytree.Options from the parsed global flags and runs
// Copy, writing the rendered output to whichever sinks were requested
// (stdout by default, plus --output/--display/--clipboard).
func runGenerate(cmd *cobra.Command, args []string) error {
	fv := GlobalFlags()
	opts := optionsFromFlags(fv)

	result, err := copytree.Copy(cmd.Context(), fv.Path, opts)
	if err != nil {
		return err
	}

	logScanIssues(result)

	if fv.DryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "scanned %d files, %d bytes, %s\n",
			result.Stats.TotalFiles, result.Stats.TotalSize, result.Stats.Duration)
		return nil
	}

	wroteSomewhere := fv.Output != "" || fv.Display || fv.Clipboard
	if !wroteSomewhere {
		fmt.Fprint(cmd.OutOrStdout(), result.Output)
	}

	if result.Stats.ClipboardError != "" {
		fmt.Fprintf(os.Stderr, "clipboard write failed: %s\n", result.Stats.ClipboardError)
	}

	return nil
}

// optionsFromFlags maps the CLI's FlagValues onto copytree.Options.
func optionsFromFlags(fv *FlagValues) copytree.Options {
	opts := copytree.Options{
		Root:        fv.Path,
		ProfileName: fv.Profile,
		Filter:      fv.Filter,
		Exclude:     fv.Exclude,
		Format:      fv.Format,
		FormatOptions: map[string]any{
			"only_tree":        fv.OnlyTree,
			"add_line_numbers": fv.WithLineNumbers,
			"show_size":        fv.ShowSize,
		},
		Concurrency: fv.Concurrency,
		OutputPath:  fv.Output,
		Display:     fv.Display,
		DryRun:      fv.DryRun,
		ToClipboard: fv.Clipboard,
		Reporter:    newReporter(fv),
	}
	if fv.NoCache {
		if dir, err := os.MkdirTemp("", "copytree-nocache-*"); err == nil {
			opts.CacheDir = dir
		}
	}
	return opts
}

// logScanIssues surfaces non-fatal scan/transform errors via slog without
// failing the command (spec.md §7: "A non-empty scanErrors does not fail
// the command").
func logScanIssues(result copytree.Result) {
	for _, e := range result.Stats.ScanErrors {
		cmdLogger().Warn("scan error", "error", e)
	}
	for _, e := range result.Stats.TransformerErrors {
		cmdLogger().Warn("transformer error", "error", e)
	}
}

// Package cli implements the Cobra command hierarchy for the copytree CLI
// tool. This file implements the `copytree preview` subcommand which shows
// file selection and token statistics without generating an output file.
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"copytree/internal/copytree"
	"copytree/internal/format"
)

var previewHeatmap bool

// previewCmd implements `copytree preview`, which runs the walk and
// transform stages (with token-count enabled) without rendering or writing
// an output document.
var previewCmd = &cobra.Command{
	Use:   "preview [path]",
	Short: "Preview file selection and token counts without generating output",
	Long: `Preview runs the file discovery and transformation stages without writing
an output context document. Use this to inspect which files would be
included and their per-file token counts.

Examples:
  # Preview the current directory
  copytree preview

  # Show a directory tree annotated with per-file sizes
  copytree preview --heatmap`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().BoolVar(&previewHeatmap, "heatmap", false, "show a tree annotated with per-file sizes instead of the token table")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	fv := GlobalFlags()
	opts := optionsFromFlags(fv)
	opts.DryRun = true
	opts.Transformers = append(opts.Transformers, "token-count")

	result, err := copytree.Copy(cmd.Context(), fv.Path, opts)
	if err != nil {
		return err
	}
	logScanIssues(result)

	errOut := cmd.ErrOrStderr()
	if previewHeatmap {
		fmt.Fprintln(errOut, format.RenderTree(result.Files, format.TreeOptions{ShowSize: true}))
		return nil
	}

	tw := tabwriter.NewWriter(errOut, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tSIZE\tTOKENS")
	var totalTokens int
	for _, rec := range result.Files {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", rec.Path, rec.Size, rec.TokenCount)
		totalTokens += rec.TokenCount
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(errOut, "\n%d files, %d bytes, %d tokens, %s\n",
		result.Stats.TotalFiles, result.Stats.TotalSize, totalTokens, result.Stats.Duration)
	return nil
}

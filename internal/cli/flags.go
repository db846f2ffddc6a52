// Package cli implements the Cobra command hierarchy for the copytree CLI
// tool (SPEC_FULL.md §6 "CLI surface (minimal)").
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// FlagValues collects the parsed global flag values, matching spec.md §6's
// minimal CLI surface plus the ambient verbose/quiet/concurrency knobs the
// teacher's FlagValues also carries.
type FlagValues struct {
	Path            string
	Profile         string
	Filter          []string
	Exclude         []string
	Format          string
	Output          string
	Display         bool
	DryRun          bool
	OnlyTree        bool
	WithLineNumbers bool
	ShowSize        bool
	NoCache         bool
	Clipboard       bool
	Concurrency     int
	Verbose         bool
	Quiet           bool
}

// BindFlags registers copytree's flags on cmd's persistent flag set and
// returns the FlagValues they populate once Cobra parses arguments.
func BindFlags(cmd *cobra.Command) *FlagValues {
	fv := &FlagValues{}

	pf := cmd.PersistentFlags()
	pf.StringVar(&fv.Profile, "profile", "", "named .copytree profile to use")
	pf.StringArrayVar(&fv.Filter, "filter", nil, "include glob pattern (repeatable, replaces profile include)")
	pf.StringArrayVar(&fv.Exclude, "exclude", nil, "exclude glob pattern (repeatable, merged with profile exclude)")
	pf.StringVar(&fv.Format, "format", "xml", "output format: xml, json, markdown, tree, ndjson, sarif")
	pf.StringVarP(&fv.Output, "output", "o", "", "write rendered output to this file")
	pf.BoolVar(&fv.Display, "display", false, "also print rendered output to stderr")
	pf.BoolVar(&fv.DryRun, "dry-run", false, "compute stats and manifest without rendering output")
	pf.BoolVar(&fv.OnlyTree, "only-tree", false, "omit file contents from the rendered output")
	pf.BoolVar(&fv.WithLineNumbers, "with-line-numbers", false, "prefix each content line with its line number")
	pf.BoolVar(&fv.ShowSize, "show-size", false, "annotate the tree section with file sizes")
	pf.BoolVar(&fv.NoCache, "no-cache", false, "bypass the heavy-transformer result cache")
	pf.BoolVar(&fv.Clipboard, "clipboard", false, "also write rendered output to the system clipboard")
	pf.IntVar(&fv.Concurrency, "concurrency", 0, "walker/transform concurrency (0 = runtime.NumCPU())")
	pf.BoolVarP(&fv.Verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVarP(&fv.Quiet, "quiet", "q", false, "suppress all output except errors")

	return fv
}

// ValidateFlags checks fv for internal consistency and normalizes it,
// resolving Path from args.
func ValidateFlags(fv *FlagValues, args []string) error {
	if fv.Verbose && fv.Quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}

	fv.Path = "."
	if len(args) > 0 {
		fv.Path = args[0]
	}
	info, err := os.Stat(fv.Path)
	if err != nil {
		return fmt.Errorf("path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path: %s is not a directory", fv.Path)
	}

	switch fv.Format {
	case "xml", "json", "markdown", "tree", "ndjson", "sarif":
	default:
		return fmt.Errorf("--format: invalid value %q", fv.Format)
	}

	for i, f := range fv.Filter {
		fv.Filter[i] = strings.TrimSpace(f)
	}
	return nil
}

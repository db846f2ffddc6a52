// Package cli implements the Cobra command hierarchy for the copytree CLI
// tool. The root command defined here is the entry point for all
// subcommands and handles cross-cutting concerns like logging
// initialization and error handling.
package cli

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"copytree/internal/appconfig"
	"copytree/internal/copytree"
)

// flagValues holds the parsed global flag values, populated by BindFlags
// during command initialization and validated in PersistentPreRunE.
var flagValues *FlagValues

var rootCmd = &cobra.Command{
	Use:   "copytree [path]",
	Short: "Package codebases into LLM-optimized context documents.",
	Long: `Copytree walks a directory tree, applies profile-driven include/exclude
rules, runs an ordered transformer chain over the matched files, and
renders the result as a single structured document (xml, json, markdown,
tree, ndjson, or sarif) suitable for pasting into an LLM context window.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Only the root, generate and preview commands take a [path]
		// argument; other subcommands' arguments are not paths.
		pathArgs := args
		if cmd.HasParent() && cmd.Name() != "generate" && cmd.Name() != "preview" {
			pathArgs = nil
		}

		// Validate all global flags.
		if err := ValidateFlags(flagValues, pathArgs); err != nil {
			return err
		}

		// Initialize logging with validated flag values.
		level := appconfig.ResolveLogLevel(flagValues.Verbose, flagValues.Quiet)
		format := appconfig.ResolveLogFormat()
		appconfig.SetupLogging(level, format)

		slog.Debug("logging initialized", "level", level, "format", format)
		return nil
	},
	// When no subcommand is given, delegate to the generate command.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args)
	},
}

func init() {
	flagValues = BindFlags(rootCmd)

	// Register flag completion functions for flags with fixed valid values.
	rootCmd.RegisterFlagCompletionFunc("format", completeFormat)
}

// completeFormat returns the valid values for the --format flag.
func completeFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"xml", "json", "markdown", "tree", "ndjson", "sarif"}, cobra.ShellCompDirectiveNoFileComp
}

// Execute runs the root command and returns an appropriate exit code.
// If the error is a *copytree.Error, its Code is used.
// Generic errors return ExitError (1). Nil returns ExitSuccess (0).
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		return extractExitCode(err)
	}
	return int(copytree.ExitSuccess)
}

// extractExitCode determines the process exit code from an error.
// If the error is a *copytree.Error, its Code field is used.
// Otherwise, ExitError (1) is returned for any non-nil error.
func extractExitCode(err error) int {
	if err == nil {
		return int(copytree.ExitSuccess)
	}
	var ctErr *copytree.Error
	if errors.As(err, &ctErr) {
		return ctErr.Code
	}
	return int(copytree.ExitError)
}

// RootCmd returns the root cobra.Command for use in testing and subcommand registration.
func RootCmd() *cobra.Command {
	return rootCmd
}

// GlobalFlags returns the parsed global flag values. This is available after
// PersistentPreRunE has run. Subcommands use this to access shared configuration.
func GlobalFlags() *FlagValues {
	return flagValues
}

// Package cli implements the Cobra command hierarchy for the copytree CLI
// tool. This file implements `copytree profiles`, which discovers and
// resolves the flat .copytree.* profile files component C reads (no
// extends/templates layer -- that hierarchical model doesn't apply to
// this simpler single-file profile model).
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"copytree/internal/profile"
)

// profilesCmd is the parent command for profile discovery subcommands.
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Discover and inspect .copytree profile files",
	Long: `Profile inspection commands for copytree.

  list   Show the .copytree profile files discovered in a directory
  show   Print the merged include/exclude/transformer set for a profile`,
}

var profilesListCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List .copytree profile files discovered in a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProfilesList,
}

var profilesShowCmd = &cobra.Command{
	Use:   "show [name] [dir]",
	Short: "Show the resolved include/exclude/transformer set for a profile",
	Long: `Resolve the named profile (or the unnamed default) and print its
merged include patterns, exclude patterns, and transformer chain.

If no profile name is given, the unnamed ".copytree.*" file is resolved.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runProfilesShow,
}

func init() {
	profilesShowCmd.Flags().Bool("json", false, "output the resolved profile as JSON")
	profilesCmd.AddCommand(profilesListCmd, profilesShowCmd)
	rootCmd.AddCommand(profilesCmd)
}

func runProfilesList(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFILE")
	found := false
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name, ok := profileNameFromFile(e.Name())
		if !ok {
			continue
		}
		found = true
		fmt.Fprintf(tw, "%s\t%s\n", name, e.Name())
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	if !found {
		fmt.Fprintln(out, "(no .copytree profile files found; the built-in default applies)")
	}
	return nil
}

// profileNameFromFile reports whether filename is a .copytree profile file
// and, if so, the profile name it resolves to: "default" for the unnamed
// ".copytree"/".copytree.yml"/etc, or the name after "-" otherwise.
func profileNameFromFile(filename string) (string, bool) {
	if filename != ".copytree" && !strings.HasPrefix(filename, ".copytree.") && !strings.HasPrefix(filename, ".copytree-") {
		return "", false
	}
	stem := filename
	for _, ext := range []string{".yml", ".yaml", ".json"} {
		stem = strings.TrimSuffix(stem, ext)
	}
	if stem == ".copytree" {
		return "default", true
	}
	return strings.TrimPrefix(stem, ".copytree-"), true
}

func runProfilesShow(cmd *cobra.Command, args []string) error {
	name, dir := "", "."
	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 1 {
		dir = args[1]
	}
	if name == "default" {
		name = ""
	}

	resolved, err := profile.Resolve(profile.ResolveOptions{Dir: dir, ProfileName: name})
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resolved)
	}

	fmt.Fprintf(out, "profile: %s\n\n", resolved.Profile.Name)
	fmt.Fprintln(out, "include:")
	for _, p := range resolved.Include {
		fmt.Fprintf(out, "  - %s\n", p)
	}
	fmt.Fprintln(out, "exclude:")
	for _, p := range resolved.Exclude {
		fmt.Fprintf(out, "  - %s\n", p)
	}
	fmt.Fprintln(out, "global excludes:")
	for _, p := range resolved.GlobalExcludes {
		fmt.Fprintf(out, "  - %s\n", p)
	}
	if len(resolved.Profile.Transformers) > 0 {
		fmt.Fprintln(out, "transformers:")
		for _, tr := range resolved.Profile.Transformers {
			fmt.Fprintf(out, "  - %s\n", tr.Name)
		}
	}
	return nil
}

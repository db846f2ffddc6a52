package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copytree/internal/copytree"
)

func TestRootCommandUse(t *testing.T) {
	assert.Equal(t, "copytree [path]", rootCmd.Use)
}

func TestRootCommandSilenceUsage(t *testing.T) {
	assert.True(t, rootCmd.SilenceUsage, "SilenceUsage must be true to avoid printing usage on errors")
}

func TestRootCommandSilenceErrors(t *testing.T) {
	assert.True(t, rootCmd.SilenceErrors, "SilenceErrors must be true for manual error handling")
}

func TestRootCommandHasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag, "root command must have --verbose persistent flag")
	assert.Equal(t, "v", flag.Shorthand)
}

func TestRootCommandHasQuietFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("quiet")
	require.NotNil(t, flag, "root command must have --quiet persistent flag")
	assert.Equal(t, "q", flag.Shorthand)
}

func TestRootCommandHasFormatFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("format")
	require.NotNil(t, flag, "root command must have --format persistent flag")
	assert.Equal(t, "xml", flag.DefValue)
}

func TestRootCommandHasOutputFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("output")
	require.NotNil(t, flag, "root command must have --output persistent flag")
	assert.Equal(t, "o", flag.Shorthand)
}

func TestRootCommandHasBooleanFlags(t *testing.T) {
	boolFlags := []string{
		"display", "dry-run", "only-tree", "with-line-numbers",
		"show-size", "no-cache", "clipboard",
	}
	for _, name := range boolFlags {
		t.Run(name, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(name)
			require.NotNil(t, flag, "root command must have --%s persistent flag", name)
			assert.Equal(t, "false", flag.DefValue)
		})
	}
}

func TestExecuteWithHelp(t *testing.T) {
	rootCmd.SetArgs([]string{"--help"})
	defer rootCmd.SetArgs(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	defer rootCmd.SetOut(nil)

	code := Execute()
	assert.Equal(t, int(copytree.ExitSuccess), code)
	assert.Contains(t, buf.String(), "LLM-optimized context documents")
}

func TestExecuteHelpShowsAllFlags(t *testing.T) {
	rootCmd.SetArgs([]string{"--help"})
	defer rootCmd.SetArgs(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	defer rootCmd.SetOut(nil)

	code := Execute()
	assert.Equal(t, int(copytree.ExitSuccess), code)

	output := buf.String()
	expectedFlags := []string{
		"--profile", "--filter", "--exclude", "--format", "--output",
		"--display", "--dry-run", "--only-tree", "--with-line-numbers",
		"--show-size", "--no-cache", "--clipboard", "--concurrency",
		"--verbose", "--quiet",
	}
	for _, flag := range expectedFlags {
		assert.Contains(t, output, flag, "help output should show %s flag", flag)
	}
}

func TestExecuteWithUnknownFlag(t *testing.T) {
	rootCmd.SetArgs([]string{"--nonexistent-flag"})
	defer rootCmd.SetArgs(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetErr(buf)
	defer rootCmd.SetErr(nil)

	code := Execute()
	assert.Equal(t, int(copytree.ExitError), code)
}

func TestRootCmdReturnsCommand(t *testing.T) {
	cmd := RootCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "copytree [path]", cmd.Use)
}

func TestRootCommandLongDescription(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "structured document")
}

func TestGlobalFlagsReturnsValues(t *testing.T) {
	fv := GlobalFlags()
	require.NotNil(t, fv, "GlobalFlags() should return non-nil FlagValues")
}

func TestExtractExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error returns ExitSuccess",
			err:  nil,
			want: int(copytree.ExitSuccess),
		},
		{
			name: "generic error returns ExitError",
			err:  errors.New("something went wrong"),
			want: int(copytree.ExitError),
		},
		{
			name: "copytree.Error with ExitError code",
			err:  copytree.ValidationError("bad flag", errors.New("cause")),
			want: int(copytree.ExitError),
		},
		{
			name: "copytree.Error with ExitPartial code",
			err:  copytree.ScanIoError("reading path", errors.New("cause")),
			want: int(copytree.ExitPartial),
		},
		{
			name: "wrapped copytree.Error preserves exit code",
			err:  fmt.Errorf("command failed: %w", copytree.ScanIoError("partial", nil)),
			want: int(copytree.ExitPartial),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := extractExitCode(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractExitCode_NilReturnsZero(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, extractExitCode(nil))
}

func TestExtractExitCode_GenericErrorReturnsOne(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, extractExitCode(errors.New("generic")))
}

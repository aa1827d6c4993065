// Package cli implements the chlog command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/chlog/internal/changelog"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/git"
	"github.com/ariel-frischer/chlog/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Command group IDs shown in help output.
const (
	GroupRelease       = "release"
	GroupInspect       = "inspect"
	GroupConfiguration = "configuration"
	GroupInternal      = "internal"
)

var (
	configPath string
	repoPath   string
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "chlog",
	Short: "Generate changelogs from conventional commits",
	Long: `chlog writes a Markdown release section from the conventional commits made
since the latest stable release tag and merges it into CHANGELOG.md.

Commits are grouped by type (feat, fix, perf, refactor, docs, test, style,
revert) with breaking changes listed first. Re-running for a version that is
already recorded leaves the document unchanged.

Source: https://github.com/ariel-frischer/chlog`,
	Example: `  # Record release 1.4.0
  chlog generate 1.4.0

  # Preview without writing
  chlog generate 1.4.0 --dry-run

  # Show which tag the next release is compared against
  chlog baseline

  # Print the notes of a recorded release
  chlog show 1.3.0`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureDebugLogging(cmd)
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspection Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
		&cobra.Group{ID: GroupInternal, Title: "Other Commands:"},
	)
	rootCmd.SetHelpCommandGroupID(GroupInternal)
	rootCmd.SetCompletionCommandGroupID(GroupInternal)

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Project config file (default: .chlog/config.yml)")
	rootCmd.PersistentFlags().StringVarP(&repoPath, "repo", "r", "", "Repository directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Print repository queries and pipeline decisions to stderr")
}

// configureDebugLogging installs or clears the package debug hooks.
func configureDebugLogging(cmd *cobra.Command) {
	if !debugMode {
		git.SetDebugLogger(nil)
		changelog.SetDebugLogger(nil)
		return
	}

	out := cmd.ErrOrStderr()
	dim := color.New(color.Faint).SprintFunc()
	logger := func(format string, args ...any) {
		fmt.Fprintln(out, dim("[debug] "+fmt.Sprintf(format, args...)))
	}
	git.SetDebugLogger(logger)
	changelog.SetDebugLogger(logger)
}

// Execute runs the root command and prints any error it returns.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !isSilent(err) {
		clierrors.FprintError(os.Stderr, err)
	}
	return err
}

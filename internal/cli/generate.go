package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/chlog/internal/changelog"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/git"
	"github.com/ariel-frischer/chlog/internal/output"
	"github.com/ariel-frischer/chlog/internal/progress"
	"github.com/spf13/cobra"
)

var (
	generateDryRun bool
	generateTo     string
	generateDate   string
	generateFile   string
	generatePlain  bool
)

var generateCmd = &cobra.Command{
	Use:     "generate <version>",
	Aliases: []string{"gen", "g"},
	Short:   "Write a release section for <version> into the changelog (gen, g)",
	Long: `Generate the changelog section for a release.

The baseline is the newest stable release tag (MAJOR.MINOR.PATCH, optional
leading 'v', no pre-release suffix) that is an ancestor of the target ref.
When no such tag exists the last fallback_window commits are used instead.

Commits between the baseline and the target are classified by their
conventional-commit type. Breaking changes are listed first, followed by
features, fixes, performance, refactors, documentation, tests, styles and
reverts. Merge commits, unrecognized types and beta release bookkeeping
commits are left out.

The section is inserted newest-first below the document header. If the
version is already recorded the document is left untouched.`,
	Example: `  # Record release 1.4.0 in CHANGELOG.md
  chlog generate 1.4.0

  # Preview the section without writing
  chlog generate v1.4.0 --dry-run

  # Release a branch other than HEAD with a fixed date
  chlog generate 1.4.0 --to release/1.4 --date 2026-05-04

  # Write to another document
  chlog generate 1.4.0 --file docs/CHANGES.md`,
	Args: versionArg("generate"),
	RunE: runGenerate,
}

func init() {
	generateCmd.GroupID = GroupRelease
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVarP(&generateDryRun, "dry-run", "n", false, "Preview the section without writing the changelog")
	generateCmd.Flags().StringVar(&generateTo, "to", "", "Ref to release (default: target_ref, usually HEAD)")
	generateCmd.Flags().StringVar(&generateDate, "date", "", "Release date as YYYY-MM-DD (default: today)")
	generateCmd.Flags().StringVarP(&generateFile, "file", "f", "", "Changelog document (default: changelog_file)")
	generateCmd.Flags().BoolVar(&generatePlain, "plain", false, "Plain output without colors or icons")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	version := args[0]
	date, err := parseReleaseDate(generateDate)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	repo, err := openRepository(cfg)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	path := changelogPath(cfg, generateFile)
	store := changelog.NewStore(path)
	existing, exists, err := store.Load()
	if err != nil {
		return clierrors.ChangelogReadFailed(path, err)
	}

	links := buildLinks(ctx, cfg, repo)
	status := newStatus(cmd)
	status.Start("Reading repository history")

	synth := &changelog.Synthesizer{Source: repo}
	result, err := synth.Synthesize(ctx, existing, exists, changelog.Options{
		Version:        version,
		TargetRef:      targetRef(cfg, generateTo),
		Date:           date,
		FallbackWindow: cfg.FallbackWindow,
		Links:          links,
	})
	if err != nil {
		status.Fail("")
		return historyError(err)
	}
	status.Success(fmt.Sprintf("%d commits since %s", len(result.Commits), result.Baseline))

	out := cmd.OutOrStdout()
	switch {
	case result.NothingToRelease:
		output.PrintWarning(out, "No commits since %s; %s was not changed", result.Baseline, path)
		return nil
	case result.AlreadyPresent:
		output.PrintWarning(out, "Version %s is already recorded in %s; nothing to do", version, path)
		return nil
	}

	if generateDryRun {
		return printPreview(out, result, links)
	}

	if result.ShouldPersist(generateDryRun) {
		if err := store.Save(result.Document); err != nil {
			return clierrors.ChangelogWriteFailed(path, err)
		}
	}

	output.PrintSuccess(out, "Wrote %s to %s (%s)", version, path, changelog.FormatSummary(result.Fragment))
	return nil
}

func printPreview(out io.Writer, result *changelog.Result, links changelog.Links) error {
	opts := changelog.FormatOptions{Plain: generatePlain}
	if err := changelog.FormatPreview(result.Fragment, links, out, opts); err != nil {
		return fmt.Errorf("formatting preview: %w", err)
	}
	if !generatePlain {
		fmt.Fprintln(out)
		output.PrintNote(out, "dry run: nothing was written")
	}
	return nil
}

// historyError classifies a pipeline failure. All of them come from the
// repository queries.
func historyError(err error) error {
	if errors.Is(err, git.ErrNotRepository) {
		return clierrors.NotRepository(repoPath, err)
	}
	return clierrors.HistoryUnavailable(err)
}

// newStatus returns a progress status line on the command's stderr. A
// redirected writer is treated as a non-terminal.
func newStatus(cmd *cobra.Command) *progress.Status {
	out := cmd.ErrOrStderr()
	caps := progress.TerminalCapabilities{}
	if out == os.Stderr {
		caps = progress.DetectTerminalCapabilities()
	}
	return progress.NewStatus(out, caps)
}

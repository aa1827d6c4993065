package cli

import (
	"fmt"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"github.com/ariel-frischer/chlog/internal/output"
	"github.com/spf13/cobra"
)

var baselineTo string

var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Show the release the next changelog section is compared against",
	Long: `Show the baseline used by 'chlog generate': the newest stable release tag
that is an ancestor of the target ref, or the fallback window of recent
commits when no such tag exists.

Run with --debug to see why individual tags were skipped.`,
	Example: `  # Baseline for HEAD
  chlog baseline

  # Baseline for a release branch, with skipped tags explained
  chlog baseline --to release/1.4 --debug`,
	Args: cobra.NoArgs,
	RunE: runBaseline,
}

func init() {
	baselineCmd.GroupID = GroupInspect
	rootCmd.AddCommand(baselineCmd)

	baselineCmd.Flags().StringVar(&baselineTo, "to", "", "Ref to release (default: target_ref, usually HEAD)")
}

func runBaseline(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	repo, err := openRepository(cfg)
	if err != nil {
		return err
	}

	target := targetRef(cfg, baselineTo)
	resolver := &changelog.BaselineResolver{Tags: repo, Tip: target, FallbackWindow: cfg.FallbackWindow}
	baseline, err := resolver.Resolve(commandContext(cmd))
	if err != nil {
		return historyError(err)
	}

	out := cmd.OutOrStdout()
	if baseline.IsFallback() {
		output.PrintWarning(out, "No stable release tag reaches %s; using the %s", target, baseline)
		return nil
	}
	fmt.Fprintln(out, baseline.Tag)
	return nil
}

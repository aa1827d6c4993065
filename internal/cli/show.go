package cli

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/chlog/internal/changelog"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/spf13/cobra"
)

var showFile string

var showCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "Print a recorded release section from the changelog",
	Long: `Print the section of a recorded release, from its heading up to the next
release heading. Without a version, list the recorded versions newest first.

The leading 'v' of the version is optional.`,
	Example: `  # Notes for 1.3.0 (e.g. as a GitHub release body)
  chlog show 1.3.0

  # Same, with the v prefix
  chlog show v1.3.0

  # List recorded versions
  chlog show`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.GroupID = GroupInspect
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showFile, "file", "f", "", "Changelog document (default: changelog_file)")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := changelogPath(cfg, showFile)
	doc, exists, err := changelog.NewStore(path).Load()
	if err != nil {
		return clierrors.ChangelogReadFailed(path, err)
	}
	if !exists {
		return clierrors.ChangelogMissing(path)
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, v := range changelog.ListVersions(doc) {
			fmt.Fprintln(out, v)
		}
		return nil
	}

	section, err := changelog.FindVersion(doc, args[0])
	if err != nil {
		var notFound *changelog.VersionNotFoundError
		if errors.As(err, &notFound) {
			return clierrors.VersionNotFound(args[0], notFound.AvailableVersions)
		}
		return fmt.Errorf("finding version: %w", err)
	}

	fmt.Fprint(out, section)
	return nil
}

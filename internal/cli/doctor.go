package cli

import (
	"fmt"

	"github.com/ariel-frischer/chlog/internal/health"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that chlog can run in this repository",
	Long: `Check the configuration, the repository backend, release tags, link
settings and write access to the changelog document.

Checks marked with ○ describe optional features and do not fail the command.`,
	Example: `  chlog doctor
  chlog --repo ../widget doctor`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := health.RunHealthChecks(commandContext(cmd), health.Options{
			Dir:               repoPath,
			ProjectConfigPath: configPath,
		})
		fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))
		if !report.Passed {
			return NewExitError(ExitFailure)
		}
		return nil
	},
}

func init() {
	doctorCmd.GroupID = GroupInspect
	rootCmd.AddCommand(doctorCmd)
}

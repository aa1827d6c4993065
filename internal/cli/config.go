package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ariel-frischer/chlog/internal/config"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	configShowJSON  bool
	configUser      bool
	configForce     bool
	configMigUser   bool
	configMigProj   bool
	configMigDryRun bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage chlog configuration",
	Long: `Manage chlog configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (CHLOG_*)
  2. Project config (.chlog/config.yml)
  3. User config (~/.config/chlog/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration and where each value came from
  chlog config show

  # Create a project config
  chlog config init

  # Set a value in the user config
  chlog config set fallback_window 50 --user`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the configuration keys",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		bold := color.New(color.Bold).SprintFunc()
		dim := color.New(color.Faint).SprintFunc()
		for _, key := range config.SortedKeys() {
			schema := config.KnownKeys[key]
			fmt.Fprintf(out, "%s (%s)\n", bold(key), schema.Type)
			fmt.Fprintf(out, "  %s %s\n", schema.Description, dim(fmt.Sprintf("[default: %v]", schema.Default)))
			if len(schema.AllowedValues) > 0 {
				fmt.Fprintf(out, "  %s %v\n", dim("values:"), schema.AllowedValues)
			}
		}
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented configuration file",
	Long: `Write a configuration file with every key and its default value.

By default the project config (.chlog/config.yml) is created. Use --user for
the user config. An existing file is left unchanged unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the project config, or the user config with
--user. The value is validated against the key's type and comments in the
file are preserved.`,
	Example: `  chlog config set tag_prefix ""
  chlog config set git_backend cli --user`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert legacy JSON configuration to YAML",
	Long: `Convert .chlog/config.json and ~/.chlog/config.json to YAML.

Unknown keys are dropped and reported. The JSON file is kept as <file>.bak.
Without --user or --project both levels are migrated.`,
	Args: cobra.NoArgs,
	RunE: runConfigMigrate,
}

func init() {
	configCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configKeysCmd, configInitCmd, configSetCmd, configMigrateCmd)

	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "Output as JSON")

	configInitCmd.Flags().BoolVar(&configUser, "user", false, "Write the user config instead of the project config")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configSetCmd.Flags().BoolVar(&configUser, "user", false, "Write the user config instead of the project config")

	configMigrateCmd.Flags().BoolVar(&configMigUser, "user", false, "Migrate only the user config")
	configMigrateCmd.Flags().BoolVar(&configMigProj, "project", false, "Migrate only the project config")
	configMigrateCmd.Flags().BoolVar(&configMigDryRun, "dry-run", false, "Show what would be migrated without writing")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, sources, err := config.LoadWithSources(config.LoadOptions{
		ProjectConfigPath: configPath,
		ProjectDir:        repoPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return clierrors.ConfigLoadFailed(err)
	}

	values := cfg.Values()
	out := cmd.OutOrStdout()
	if configShowJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(values)
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	dim := color.New(color.Faint).SprintFunc()
	for _, key := range keys {
		fmt.Fprintf(out, "%s: %v %s\n", key, values[key], dim("("+string(sources[key])+")"))
	}
	return nil
}

// targetConfigPath returns the user or project config path for init and set.
func targetConfigPath(user bool) (string, error) {
	if user {
		path, err := config.UserConfigPath()
		if err != nil {
			return "", clierrors.Wrap(err, clierrors.Configuration)
		}
		return path, nil
	}
	if configPath != "" {
		return configPath, nil
	}
	return filepath.Join(repoPath, config.ProjectConfigPath()), nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path, err := targetConfigPath(configUser)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := os.Stat(path); err == nil && !configForce {
		fmt.Fprintf(out, "%s already exists (use --force to overwrite)\n", path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return clierrors.Wrap(fmt.Errorf("creating config directory: %w", err), clierrors.Runtime)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.Wrap(fmt.Errorf("writing config: %w", err), clierrors.Runtime)
	}

	output.PrintSuccess(out, "Created %s", path)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := targetConfigPath(configUser)
	if err != nil {
		return err
	}

	if err := config.SetConfigValue(path, args[0], args[1]); err != nil {
		return clierrors.NewConfigError(err.Error(), "List valid keys with: chlog config keys")
	}

	output.PrintSuccess(cmd.OutOrStdout(), "Set %s = %s in %s", args[0], args[1], path)
	return nil
}

func runConfigMigrate(cmd *cobra.Command, _ []string) error {
	both := !configMigUser && !configMigProj
	var results []*config.MigrationResult

	if configMigUser || both {
		result, err := config.MigrateUserConfig(configMigDryRun)
		if err != nil {
			return clierrors.Wrap(err, clierrors.Configuration)
		}
		results = append(results, result)
	}
	if configMigProj || both {
		result, err := config.MigrateProjectConfig(repoPath, configMigDryRun)
		if err != nil {
			return clierrors.Wrap(err, clierrors.Configuration)
		}
		results = append(results, result)
	}

	out := cmd.OutOrStdout()
	for _, result := range results {
		fmt.Fprintln(out, result.Message)
		for _, key := range result.Dropped {
			output.PrintWarning(out, "dropped unknown key %q", key)
		}
		if result.Success {
			if err := config.RemoveLegacyConfig(result.SourcePath, configMigDryRun); err != nil {
				return clierrors.Wrap(err, clierrors.Runtime)
			}
		}
	}
	return nil
}

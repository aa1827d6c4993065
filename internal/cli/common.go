package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"github.com/ariel-frischer/chlog/internal/config"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/git"
	"github.com/spf13/cobra"
)

// originRemote is the remote used to derive the repository web URL.
const originRemote = "origin"

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			fmt.Sprintf("Run 'chlog %s --help' for the available flags", cmd.Name()))
	})
}

// versionArg validates that exactly one version argument was passed.
func versionArg(command string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		switch {
		case len(args) == 0 || args[0] == "":
			return clierrors.VersionRequired(command)
		case len(args) > 1:
			return clierrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("expected one version, got %d arguments", len(args)),
				fmt.Sprintf("chlog %s <version>", command),
				"Pass a single version such as 1.4.0",
			)
		}
		return nil
	}
}

// loadConfig loads configuration for the repository selected by --repo.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPath,
		ProjectDir:        repoPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.ConfigLoadFailed(err)
	}
	return cfg, nil
}

// openRepository opens the repository selected by --repo with the configured backend.
func openRepository(cfg *config.Configuration) (git.Repository, error) {
	repo, err := git.Open(repoPath, cfg.GitBackend)
	switch {
	case err == nil:
		return repo, nil
	case errors.Is(err, git.ErrNotRepository):
		return nil, clierrors.NotRepository(repoPath, err)
	case errors.Is(err, git.ErrGitUnavailable):
		return nil, clierrors.GitUnavailable(err)
	default:
		return nil, clierrors.Wrap(err, clierrors.Repository)
	}
}

// buildLinks returns the link settings for rendered fragments. Without a
// configured repository_url the origin remote is used; a missing remote only
// means the fragment has no links.
func buildLinks(ctx context.Context, cfg *config.Configuration, repo git.Repository) changelog.Links {
	links := changelog.Links{
		RepositoryURL:   cfg.RepositoryURL,
		CompareTemplate: cfg.CompareURL,
		CommitTemplate:  cfg.CommitURL,
		TagPrefix:       cfg.TagPrefix,
	}
	if links.RepositoryURL != "" {
		return links
	}

	remote, err := repo.RemoteURL(ctx, originRemote)
	if err != nil {
		return links
	}
	links.RepositoryURL = git.WebURL(remote)
	return links
}

// changelogPath resolves the document path. Relative paths are taken from
// the repository directory.
func changelogPath(cfg *config.Configuration, override string) string {
	path := cfg.ChangelogFile
	if override != "" {
		path = override
	}
	if filepath.IsAbs(path) || repoPath == "" {
		return path
	}
	return filepath.Join(repoPath, path)
}

// targetRef returns the --to override or the configured target ref.
func targetRef(cfg *config.Configuration, override string) string {
	if override != "" {
		return override
	}
	return cfg.TargetRef
}

// parseReleaseDate parses a --date value. An empty value means today.
func parseReleaseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	date, err := time.ParseInLocation(changelog.DateFormat, value, time.Local)
	if err != nil {
		return time.Time{}, clierrors.InvalidDate(value)
	}
	return date, nil
}

// commandContext returns the command's context or a background context.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

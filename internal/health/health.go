// Package health provides environment checks for chlog. It validates that the
// configuration loads, the repository can be queried with the configured
// backend, and the changelog document can be written, returning structured
// reports used by the 'chlog doctor' command.
package health

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"github.com/ariel-frischer/chlog/internal/config"
	"github.com/ariel-frischer/chlog/internal/git"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Advisory results describe optional features; they never fail the report.
	Advisory bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// Options selects the repository and configuration to check.
type Options struct {
	// Dir is the repository directory (empty = current directory).
	Dir string
	// ProjectConfigPath overrides the project config path.
	ProjectConfigPath string
	// LookPath finds executables; nil means exec.LookPath.
	LookPath func(file string) (string, error)
}

// RunHealthChecks runs all health checks and returns a report. Checks that
// depend on a failed check are skipped.
func RunHealthChecks(ctx context.Context, opts Options) *HealthReport {
	report := &HealthReport{Passed: true}
	add := func(r CheckResult) {
		report.Checks = append(report.Checks, r)
		if !r.Passed && !r.Advisory {
			report.Passed = false
		}
	}

	cfg, cfgCheck := CheckConfiguration(opts)
	add(cfgCheck)
	if cfg == nil {
		return report
	}

	add(CheckGitCLI(cfg.GitBackend, opts.LookPath))

	repo, repoCheck := CheckRepository(opts.Dir, cfg.GitBackend)
	add(repoCheck)
	if repo != nil {
		add(CheckReleaseTags(ctx, repo, cfg.TargetRef))
		add(CheckLinks(ctx, repo, cfg))
	}

	add(CheckChangelog(changelogPath(opts.Dir, cfg.ChangelogFile)))
	return report
}

// CheckConfiguration loads the layered configuration.
func CheckConfiguration(opts Options) (*config.Configuration, CheckResult) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: opts.ProjectConfigPath,
		ProjectDir:        opts.Dir,
		SkipWarnings:      true,
	})
	if err != nil {
		return nil, CheckResult{Name: "Configuration", Passed: false, Message: err.Error()}
	}
	return cfg, CheckResult{Name: "Configuration", Passed: true, Message: "loaded and valid"}
}

// CheckGitCLI checks if the git executable is available. It is only required
// by the cli backend.
func CheckGitCLI(backend string, lookPath func(string) (string, error)) CheckResult {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	required := backend == git.BackendCLI

	if _, err := lookPath("git"); err != nil {
		if required {
			return CheckResult{Name: "Git CLI", Passed: false, Message: "git not found in PATH (required by git_backend: cli)"}
		}
		return CheckResult{Name: "Git CLI", Passed: false, Advisory: true, Message: "git not found in PATH (not needed by the go-git backend)"}
	}
	return CheckResult{Name: "Git CLI", Passed: true, Message: "git found"}
}

// CheckRepository opens the repository with the configured backend.
func CheckRepository(dir, backend string) (git.Repository, CheckResult) {
	repo, err := git.Open(dir, backend)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, git.ErrNotRepository) {
			msg = "not inside a git repository"
		}
		return nil, CheckResult{Name: "Repository", Passed: false, Message: msg}
	}
	if backend == "" {
		backend = git.BackendGoGit
	}
	return repo, CheckResult{Name: "Repository", Passed: true, Message: fmt.Sprintf("opened with the %s backend", backend)}
}

// CheckReleaseTags reports the stable release tags that can serve as a baseline.
func CheckReleaseTags(ctx context.Context, repo git.Repository, target string) CheckResult {
	resolver := &changelog.BaselineResolver{Tags: repo, Tip: target}
	baseline, err := resolver.Resolve(ctx)
	if err != nil {
		return CheckResult{Name: "Release tags", Passed: false, Message: err.Error()}
	}
	if baseline.IsFallback() {
		return CheckResult{
			Name:     "Release tags",
			Passed:   false,
			Advisory: true,
			Message:  fmt.Sprintf("no stable release tag reaches %s; the fallback window will be used", target),
		}
	}
	return CheckResult{Name: "Release tags", Passed: true, Message: fmt.Sprintf("next release is compared against %s", baseline.Tag)}
}

// CheckLinks reports whether fragments will carry compare and commit links.
func CheckLinks(ctx context.Context, repo git.Repository, cfg *config.Configuration) CheckResult {
	if cfg.RepositoryURL != "" {
		return CheckResult{Name: "Links", Passed: true, Message: cfg.RepositoryURL + " (configured)"}
	}
	if cfg.CompareURL != "" || cfg.CommitURL != "" {
		return CheckResult{Name: "Links", Passed: true, Message: "custom link templates configured"}
	}

	remote, err := repo.RemoteURL(ctx, "origin")
	if err == nil {
		if url := git.WebURL(remote); url != "" {
			return CheckResult{Name: "Links", Passed: true, Message: url + " (from origin)"}
		}
	}
	return CheckResult{
		Name:     "Links",
		Passed:   false,
		Advisory: true,
		Message:  "no repository URL; set repository_url to add compare and commit links",
	}
}

// CheckChangelog checks that the changelog document can be read and replaced.
func CheckChangelog(path string) CheckResult {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return CheckResult{Name: "Changelog", Passed: false, Message: path + " is a directory"}
	case err == nil:
		if err := checkWritableDir(filepath.Dir(path)); err != nil {
			return CheckResult{Name: "Changelog", Passed: false, Message: err.Error()}
		}
		return CheckResult{Name: "Changelog", Passed: true, Message: path + " found"}
	case os.IsNotExist(err):
		if err := checkWritableDir(nearestDir(filepath.Dir(path))); err != nil {
			return CheckResult{Name: "Changelog", Passed: false, Message: err.Error()}
		}
		return CheckResult{Name: "Changelog", Passed: true, Message: path + " will be created"}
	default:
		return CheckResult{Name: "Changelog", Passed: false, Message: err.Error()}
	}
}

// checkWritableDir creates and removes a temporary file in dir.
func checkWritableDir(dir string) error {
	f, err := os.CreateTemp(dir, ".chlog-doctor-*")
	if err != nil {
		return fmt.Errorf("%s is not writable: %w", dir, err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// nearestDir walks up from dir to the first directory that exists.
func nearestDir(dir string) string {
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

func changelogPath(dir, file string) string {
	if filepath.IsAbs(file) || dir == "" {
		return file
	}
	return filepath.Join(dir, file)
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var b strings.Builder
	for _, check := range report.Checks {
		switch {
		case check.Passed:
			fmt.Fprintf(&b, "✓ %s: %s\n", check.Name, check.Message)
		case check.Advisory:
			fmt.Fprintf(&b, "○ %s: %s\n", check.Name, check.Message)
		default:
			fmt.Fprintf(&b, "✗ %s: %s\n", check.Name, check.Message)
		}
	}
	return b.String()
}

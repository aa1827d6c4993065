package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the chlog CLI.
// These templates ensure consistent, actionable error messages.

// VersionRequired creates an error for a missing version argument.
func VersionRequired(command string) *CLIError {
	return NewArgumentErrorWithUsage(
		"version is required",
		fmt.Sprintf("chlog %s <version>", command),
		"Pass the release being written, e.g. chlog generate 1.4.0",
		"A leading 'v' is accepted: chlog generate v1.4.0",
	)
}

// InvalidDate creates an error for a --date value that is not YYYY-MM-DD.
func InvalidDate(value string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid date %q", value),
		"chlog generate <version> --date YYYY-MM-DD",
		"Use an ISO calendar date such as 2026-05-04",
		"Omit --date to use today's date",
	)
}

// NotRepository creates an error when the working directory is not inside a git repository.
func NotRepository(path string, cause error) *CLIError {
	if path == "" {
		path = "the current directory"
	}
	return &CLIError{
		Category: Repository,
		Message:  fmt.Sprintf("%s is not inside a git repository", path),
		Remediation: []string{
			"Run chlog from within a git working tree",
			"Or point at one with: chlog --repo <path> generate <version>",
		},
		Cause: cause,
	}
}

// GitUnavailable creates an error when the cli backend cannot run the git executable.
func GitUnavailable(cause error) *CLIError {
	return &CLIError{
		Category: Repository,
		Message:  "git executable not available",
		Remediation: []string{
			"Install git and make sure it is in your PATH",
			"Or use the in-process backend: CHLOG_GIT_BACKEND=go-git",
		},
		Cause: cause,
	}
}

// HistoryUnavailable creates an error when tags or commits cannot be read.
func HistoryUnavailable(cause error) *CLIError {
	return WrapWithMessage(cause, Repository,
		"reading repository history failed",
		"Check that the target ref exists: git rev-parse --verify <ref>",
		"Run with --debug to see the queries chlog issued",
	)
}

// ConfigLoadFailed creates an error when configuration cannot be loaded or validated.
func ConfigLoadFailed(cause error) *CLIError {
	return WrapWithMessage(cause, Configuration,
		"loading configuration failed",
		"Show the effective configuration with: chlog config show",
		"List valid keys with: chlog config keys",
	)
}

// ChangelogReadFailed creates an error when the changelog document cannot be read.
func ChangelogReadFailed(path string, cause error) *CLIError {
	return WrapWithMessage(cause, Runtime,
		fmt.Sprintf("reading %s failed", path),
		"Check the file permissions",
		"Or choose another document with --file",
	)
}

// ChangelogWriteFailed creates an error when the updated document cannot be persisted.
func ChangelogWriteFailed(path string, cause error) *CLIError {
	return WrapWithMessage(cause, Runtime,
		fmt.Sprintf("writing %s failed", path),
		"Check that the directory is writable",
		"Preview without writing using --dry-run",
	)
}

// ChangelogMissing creates an error when a command needs an existing changelog.
func ChangelogMissing(path string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("%s does not exist", path),
		"Generate a release first: chlog generate <version>",
		"Or choose another document with --file",
	)
}

// VersionNotFound creates an error for a version with no heading in the changelog.
func VersionNotFound(version string, available []string) *CLIError {
	remediation := []string{"Check the version spelling; a leading 'v' is optional"}
	if len(available) > 0 {
		remediation = append(remediation, "Available versions: "+strings.Join(available, ", "))
	} else {
		remediation = append(remediation, "The changelog has no version headings yet")
	}
	return NewArgumentError(fmt.Sprintf("version %q not found in changelog", version), remediation...)
}

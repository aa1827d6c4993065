// Package git provides the version-control query layer used by chlog: tag listing,
// ancestry tests, range log retrieval and remote discovery. The default backend uses
// the go-git library so no git installation is required; a CLI backend shells out to
// the git binary for repositories go-git cannot read (e.g. partial clones).
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Backend names accepted by Open.
const (
	BackendGoGit = "go-git"
	BackendCLI   = "cli"
)

// ErrNotRepository is returned when the working directory is not inside a git
// repository. It is the only condition the changelog pipeline treats as fatal.
var ErrNotRepository = errors.New("not a git repository")

// ErrGitUnavailable is returned by the CLI backend when the git executable
// cannot be run.
var ErrGitUnavailable = errors.New("git executable not available")

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// LogQuery describes a commit range and the per-commit output format.
type LogQuery struct {
	// Target is the ref the walk starts from (e.g. "HEAD").
	Target string
	// Exclude hides every commit reachable from this ref. Empty means no exclusion.
	Exclude string
	// MaxCount limits the number of commits returned. Zero means unlimited.
	MaxCount int
	// Format is a git pretty-format string (%H, %s, %b, %an, %ae, %aI, %xNN).
	Format string
}

// Repository is the query interface the changelog engine consumes.
// Merge commits are never returned by Log.
type Repository interface {
	ListTags(ctx context.Context) ([]string, error)
	IsAncestor(ctx context.Context, ref, tip string) (bool, error)
	Log(ctx context.Context, q LogQuery) (string, error)
	RemoteURL(ctx context.Context, name string) (string, error)
}

// Open opens the repository containing path with the named backend.
// An empty path means the current working directory; an empty backend means go-git.
func Open(path, backend string) (Repository, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		path = wd
	}

	switch backend {
	case "", BackendGoGit:
		return OpenGoGit(path)
	case BackendCLI:
		return OpenCLI(path, NewExecExecutor())
	default:
		return nil, fmt.Errorf("unknown git backend %q (valid: %s, %s)", backend, BackendGoGit, BackendCLI)
	}
}

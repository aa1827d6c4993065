package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// CommandError describes a failed git invocation.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// CommandExecutor defines an interface for executing commands
type CommandExecutor interface {
	// Execute runs a command and returns its error, if any
	Execute(cmd *exec.Cmd) error

	// ExecuteWithOutput runs a command and returns its stdout
	ExecuteWithOutput(cmd *exec.Cmd) (string, error)
}

// ExecExecutor is the default implementation of CommandExecutor
// that delegates to the os/exec package
type ExecExecutor struct{}

// NewExecExecutor creates a new ExecExecutor
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

// Execute implements CommandExecutor.Execute
func (e *ExecExecutor) Execute(cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &CommandError{Args: commandArgs(cmd), Stderr: stderr.String(), Err: err}
	}
	return nil
}

// ExecuteWithOutput implements CommandExecutor.ExecuteWithOutput
func (e *ExecExecutor) ExecuteWithOutput(cmd *exec.Cmd) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &CommandError{Args: commandArgs(cmd), Stderr: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}

func commandArgs(cmd *exec.Cmd) []string {
	if len(cmd.Args) > 1 {
		return cmd.Args[1:]
	}
	return nil
}

// CLIRepository implements Repository by running the git binary.
type CLIRepository struct {
	dir      string
	executor CommandExecutor
}

// OpenCLI verifies that dir is inside a work tree and returns a CLI-backed repository.
func OpenCLI(dir string, executor CommandExecutor) (*CLIRepository, error) {
	r := &CLIRepository{dir: dir, executor: executor}
	if err := executor.Execute(r.command(context.Background(), "rev-parse", "--is-inside-work-tree")); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return nil, fmt.Errorf("%w: %v", ErrGitUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, dir)
	}
	logDebug("[git] using git CLI in %s", dir)
	return r, nil
}

func (r *CLIRepository) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir
	return cmd
}

// ListTags returns all tag names as printed by `git tag --list`.
func (r *CLIRepository) ListTags(ctx context.Context) ([]string, error) {
	out, err := r.executor.ExecuteWithOutput(r.command(ctx, "tag", "--list"))
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var names []string
	for _, line := range strings.Split(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	logDebug("[git] ListTags: found %d tags", len(names))
	return names, nil
}

// IsAncestor runs `git merge-base --is-ancestor`. Exit status 1 means "not an
// ancestor"; any other failure is returned as an error.
func (r *CLIRepository) IsAncestor(ctx context.Context, ref, tip string) (bool, error) {
	err := r.executor.Execute(r.command(ctx, "merge-base", "--is-ancestor", ref, tip))
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, fmt.Errorf("testing ancestry of %s against %s: %w", ref, tip, err)
}

// Log runs `git log --no-merges` for the query's range.
func (r *CLIRepository) Log(ctx context.Context, q LogQuery) (string, error) {
	args := []string{"log", "--no-merges", "--format=" + q.Format}
	if q.MaxCount > 0 {
		args = append(args, "-n", strconv.Itoa(q.MaxCount))
	}
	if q.Exclude != "" {
		args = append(args, q.Exclude+".."+q.Target)
	} else {
		args = append(args, q.Target)
	}
	args = append(args, "--")

	out, err := r.executor.ExecuteWithOutput(r.command(ctx, args...))
	if err != nil {
		return "", fmt.Errorf("reading log: %w", err)
	}
	return out, nil
}

// RemoteURL returns the URL of the named remote, or an empty string when the
// remote is not configured.
func (r *CLIRepository) RemoteURL(ctx context.Context, name string) (string, error) {
	out, err := r.executor.ExecuteWithOutput(r.command(ctx, "remote", "get-url", name))
	if err != nil {
		logDebug("[git] remote %s not available: %v", name, err)
		return "", nil
	}
	return strings.TrimSpace(out), nil
}

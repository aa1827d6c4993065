package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	switch os.Getenv("TEST_MOCK_BEHAVIOR") {
	case "exit1":
		os.Exit(1)
	case "exit128":
		os.Exit(128)
	default:
		os.Exit(m.Run())
	}
}

// exitError produces a genuine *exec.ExitError by re-running the test binary
// in mock mode.
func exitError(t *testing.T, behavior string) error {
	t.Helper()
	cmd := exec.Command(os.Args[0])
	cmd.Env = append(os.Environ(), "TEST_MOCK_BEHAVIOR="+behavior)
	err := cmd.Run()
	require.Error(t, err)
	return &CommandError{Args: []string{"merge-base"}, Err: err}
}

// mockExecutor records invocations and returns canned results.
type mockExecutor struct {
	calls  [][]string
	output string
	err    error
}

func (m *mockExecutor) Execute(cmd *exec.Cmd) error {
	m.calls = append(m.calls, cmd.Args[1:])
	return m.err
}

func (m *mockExecutor) ExecuteWithOutput(cmd *exec.Cmd) (string, error) {
	m.calls = append(m.calls, cmd.Args[1:])
	return m.output, m.err
}

func TestOpenCLI(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err     error
		wantErr error
	}{
		"inside work tree": {},
		"outside work tree": {
			err:     &CommandError{Args: []string{"rev-parse"}, Err: errors.New("exit status 128")},
			wantErr: ErrNotRepository,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			mock := &mockExecutor{err: tt.err}
			repo, err := OpenCLI("/work", mock)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, repo)
			assert.Equal(t, [][]string{{"rev-parse", "--is-inside-work-tree"}}, mock.calls)
		})
	}
}

func TestCLIRepository_ListTags(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{output: "v1.0.0\n\nv1.1.0-beta.1\n v1.1.0 \n"}
	repo := &CLIRepository{dir: "/work", executor: mock}

	tags, err := repo.ListTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"v1.0.0", "v1.1.0-beta.1", "v1.1.0"}, tags)
	assert.Equal(t, [][]string{{"tag", "--list"}}, mock.calls)
}

func TestCLIRepository_IsAncestor(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err     error
		want    bool
		wantErr bool
	}{
		"ancestor":             {err: nil, want: true},
		"not an ancestor":      {err: exitError(t, "exit1"), want: false},
		"unknown ref is error": {err: exitError(t, "exit128"), wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			mock := &mockExecutor{err: tt.err}
			repo := &CLIRepository{dir: "/work", executor: mock}

			got, err := repo.IsAncestor(context.Background(), "v1.0.0", "HEAD")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, [][]string{{"merge-base", "--is-ancestor", "v1.0.0", "HEAD"}}, mock.calls)
		})
	}
}

func TestCLIRepository_Log(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		query LogQuery
		want  []string
	}{
		"range": {
			query: LogQuery{Target: "HEAD", Exclude: "v1.0.0", Format: "%H%x1f%s"},
			want:  []string{"log", "--no-merges", "--format=%H%x1f%s", "v1.0.0..HEAD", "--"},
		},
		"window": {
			query: LogQuery{Target: "main", MaxCount: 30, Format: "%s"},
			want:  []string{"log", "--no-merges", "--format=%s", "-n", "30", "main", "--"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			mock := &mockExecutor{output: "abc\x1ffeat: x\n"}
			repo := &CLIRepository{dir: "/work", executor: mock}

			out, err := repo.Log(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, "abc\x1ffeat: x\n", out)
			require.Len(t, mock.calls, 1)
			assert.Equal(t, tt.want, mock.calls[0])
		})
	}
}

func TestCLIRepository_LogError(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{err: &CommandError{Args: []string{"log"}, Stderr: "fatal: bad revision", Err: errors.New("exit status 128")}}
	repo := &CLIRepository{dir: "/work", executor: mock}

	_, err := repo.Log(context.Background(), LogQuery{Target: "nope", Format: "%s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fatal: bad revision")
}

func TestCLIRepository_RemoteURL(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{output: "https://github.com/acme/widgets.git\n"}
	repo := &CLIRepository{dir: "/work", executor: mock}

	url, err := repo.RemoteURL(context.Background(), "origin")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/widgets.git", url)

	mock.err = errors.New("no such remote")
	url, err = repo.RemoteURL(context.Background(), "upstream")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestCommandError(t *testing.T) {
	t.Parallel()

	inner := errors.New("exit status 1")
	err := &CommandError{Args: []string{"tag", "--list"}, Stderr: "boom\n", Err: inner}
	assert.Equal(t, "git tag --list: exit status 1: boom", err.Error())
	assert.ErrorIs(t, err, inner)
}

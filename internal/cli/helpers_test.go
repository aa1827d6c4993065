package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// fixtureRepo is a throwaway repository with strictly increasing commit times.
type fixtureRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	wt   *git.Worktree
	n    int
}

func newFixtureRepo(t *testing.T) *fixtureRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &fixtureRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func (r *fixtureRepo) commit(msg string) plumbing.Hash {
	r.t.Helper()
	r.n++
	name := fmt.Sprintf("file%d.txt", r.n)
	require.NoError(r.t, os.WriteFile(filepath.Join(r.dir, name), []byte(name), 0o644))
	_, err := r.wt.Add(name)
	require.NoError(r.t, err)

	hash, err := r.wt.Commit(msg, &git.CommitOptions{Author: &object.Signature{
		Name:  "Test User",
		Email: "test@example.com",
		When:  testEpoch.Add(time.Duration(r.n) * time.Minute),
	}})
	require.NoError(r.t, err)
	return hash
}

func (r *fixtureRepo) tag(name string, hash plumbing.Hash) {
	r.t.Helper()
	_, err := r.repo.CreateTag(name, hash, nil)
	require.NoError(r.t, err)
}

func (r *fixtureRepo) origin(url string) {
	r.t.Helper()
	_, err := r.repo.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{url}})
	require.NoError(r.t, err)
}

func (r *fixtureRepo) read(name string) string {
	r.t.Helper()
	data, err := os.ReadFile(filepath.Join(r.dir, name))
	require.NoError(r.t, err)
	return string(data)
}

// isolateConfig points user-level config lookups at an empty directory,
// clears CHLOG_* overrides and disables colors.
func isolateConfig(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, kv := range os.Environ() {
		if name, _, _ := strings.Cut(kv, "="); strings.HasPrefix(name, "CHLOG_") {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })
}

// resetFlags restores every flag of cmd and its subcommands to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command with args and returns its output.
// Cannot be used from parallel tests: rootCmd and its flags are global.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	_, err = rootCmd.ExecuteC()
	return out.String(), errOut.String(), err
}

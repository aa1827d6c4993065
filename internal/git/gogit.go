package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// GoGitRepository implements Repository on top of go-git.
type GoGitRepository struct {
	repo *git.Repository
	path string
}

// OpenGoGit opens the repository at path, walking up the directory tree to find
// the .git directory.
func OpenGoGit(path string) (*GoGitRepository, error) {
	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
		}
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return &GoGitRepository{repo: repo, path: path}, nil
}

// ListTags returns the short names of all tags, sorted by name.
func (r *GoGitRepository) ListTags(ctx context.Context) ([]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sort.Strings(names)
	logDebug("[git] ListTags: found %d tags", len(names))
	return names, nil
}

// IsAncestor reports whether ref is reachable from tip. A commit counts as its
// own ancestor, matching `git merge-base --is-ancestor`.
func (r *GoGitRepository) IsAncestor(ctx context.Context, ref, tip string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	refCommit, err := r.resolveCommit(ref)
	if err != nil {
		return false, err
	}
	tipCommit, err := r.resolveCommit(tip)
	if err != nil {
		return false, err
	}

	ok, err := refCommit.IsAncestor(tipCommit)
	if err != nil {
		return false, fmt.Errorf("testing ancestry of %s against %s: %w", ref, tip, err)
	}
	return ok, nil
}

// Log walks history from q.Target newest-first (by committer time), skipping merge
// commits and anything reachable from q.Exclude, and renders each commit with q.Format.
// Every rendered record is followed by a newline, as `git log --format` does.
func (r *GoGitRepository) Log(ctx context.Context, q LogQuery) (string, error) {
	tip, err := r.resolveCommit(q.Target)
	if err != nil {
		return "", err
	}

	excluded := map[plumbing.Hash]bool{}
	if q.Exclude != "" {
		base, err := r.resolveCommit(q.Exclude)
		if err != nil {
			return "", err
		}
		excluded, err = r.reachable(ctx, base.Hash)
		if err != nil {
			return "", err
		}
	}

	iter, err := r.repo.Log(&git.LogOptions{
		From:  tip.Hash,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return "", fmt.Errorf("walking log from %s: %w", q.Target, err)
	}
	defer iter.Close()

	var b strings.Builder
	count := 0
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if excluded[c.Hash] || c.NumParents() > 1 {
			return nil
		}
		if q.MaxCount > 0 && count >= q.MaxCount {
			return storer.ErrStop
		}
		b.WriteString(expandFormat(q.Format, c))
		b.WriteByte('\n')
		count++
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking log from %s: %w", q.Target, err)
	}

	logDebug("[git] Log %s (exclude %q, max %d): %d commits", q.Target, q.Exclude, q.MaxCount, count)
	return b.String(), nil
}

// RemoteURL returns the first configured URL of the named remote, or an empty
// string if the remote does not exist.
func (r *GoGitRepository) RemoteURL(ctx context.Context, name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading remote %s: %w", name, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}
	return urls[0], nil
}

// resolveCommit resolves a revision (branch, tag, hash, HEAD) to its commit,
// peeling annotated tags.
func (r *GoGitRepository) resolveCommit(rev string) (*object.Commit, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", rev, err)
	}
	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", rev, err)
	}
	return commit, nil
}

// reachable collects every commit hash reachable from start.
func (r *GoGitRepository) reachable(ctx context.Context, start plumbing.Hash) (map[plumbing.Hash]bool, error) {
	iter, err := r.repo.Log(&git.LogOptions{From: start})
	if err != nil {
		return nil, fmt.Errorf("walking log from %s: %w", start, err)
	}
	defer iter.Close()

	seen := make(map[plumbing.Hash]bool)
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking log from %s: %w", start, err)
	}
	return seen, nil
}

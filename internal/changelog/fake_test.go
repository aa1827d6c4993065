package changelog

import (
	"context"
	"strings"

	"github.com/ariel-frischer/chlog/internal/git"
)

// fakeSource is an in-memory Source for pipeline tests.
type fakeSource struct {
	tags         []string
	listErr      error
	ancestors    map[string]bool
	ancestorErrs map[string]error

	logOutput string
	logErr    error
	queries   []git.LogQuery
}

func (f *fakeSource) ListTags(ctx context.Context) ([]string, error) {
	return f.tags, f.listErr
}

func (f *fakeSource) IsAncestor(ctx context.Context, ref, tip string) (bool, error) {
	if err := f.ancestorErrs[ref]; err != nil {
		return false, err
	}
	return f.ancestors[ref], nil
}

func (f *fakeSource) Log(ctx context.Context, q git.LogQuery) (string, error) {
	f.queries = append(f.queries, q)
	return f.logOutput, f.logErr
}

// commitLog formats commits the way `git log --format=<recordFormat>` would.
func commitLog(commits ...CommitRecord) string {
	var b strings.Builder
	for _, c := range commits {
		b.WriteString(strings.Join([]string{
			c.Hash,
			c.Subject,
			c.Body,
			c.AuthorName,
			c.AuthorEmail,
			"2026-01-15T10:00:00Z",
		}, fieldSeparator))
		b.WriteString(recordSeparator + "\n")
	}
	return b.String()
}

// hashFor returns a deterministic 40-character hash starting with prefix.
func hashFor(prefix string) string {
	return prefix + strings.Repeat("0", 40-len(prefix))
}

func commit(prefix, subject, body string) CommitRecord {
	return CommitRecord{
		Hash:        hashFor(prefix),
		Subject:     subject,
		Body:        body,
		AuthorName:  "Test User",
		AuthorEmail: "test@example.com",
	}
}

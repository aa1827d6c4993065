package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubject(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		subject string
		want    SubjectMatch
	}{
		"type only": {
			subject: "feat: add export",
			want:    SubjectMatch{Matched: true, Type: "feat", Description: "add export"},
		},
		"with scope": {
			subject: "fix(core): null check",
			want:    SubjectMatch{Matched: true, Type: "fix", Scope: "core", Description: "null check"},
		},
		"scope with spaces and slashes": {
			subject: "refactor(cli / flags): tidy",
			want:    SubjectMatch{Matched: true, Type: "refactor", Scope: "cli / flags", Description: "tidy"},
		},
		"empty scope": {
			subject: "docs(): readme",
			want:    SubjectMatch{Matched: true, Type: "docs", Description: "readme"},
		},
		"uppercase type kept": {
			subject: "Fix: crash",
			want:    SubjectMatch{Matched: true, Type: "Fix", Description: "crash"},
		},
		"no space after colon": {
			subject: "perf:faster",
			want:    SubjectMatch{Matched: true, Type: "perf", Description: "faster"},
		},
		"plain sentence":        {subject: "Update README", want: SubjectMatch{}},
		"merge subject":         {subject: "Merge branch 'main' into dev", want: SubjectMatch{}},
		"missing description":   {subject: "feat: ", want: SubjectMatch{}},
		"unclosed scope":        {subject: "feat(core: x", want: SubjectMatch{}},
		"space before colon":    {subject: "feat : x", want: SubjectMatch{}},
		"nested paren in scope": {subject: "feat(a(b)): x", want: SubjectMatch{}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSubject(tt.subject))
		})
	}
}

func TestIsBetaNoise(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		subject string
		want    bool
	}{
		"beta release chore":    {subject: "chore: release v1.2.0-beta.3", want: true},
		"beta bump chore":       {subject: "chore: bump beta to v9.8.0-beta.2", want: true},
		"scoped beta chore":     {subject: "chore(release): publish beta", want: true},
		"regular chore":         {subject: "chore: update deps", want: false},
		"feature mentions beta": {subject: "feat: beta flag support", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBetaNoise(ParseSubject(tt.subject)))
		})
	}
}

func TestClassify_DualClassification(t *testing.T) {
	t.Parallel()

	entries := Classify([]CommitRecord{
		commit("abc1234def", "feat(x): add y", "BREAKING CHANGE: z"),
	})
	require.Len(t, entries, 2)

	assert.Equal(t, BreakingChanges, entries[0].Category)
	assert.Equal(t, "add y", entries[0].Description)
	assert.Equal(t, "z", entries[0].Detail)
	assert.Equal(t, "x", entries[0].Scope)

	assert.Equal(t, Features, entries[1].Category)
	assert.Equal(t, "add y", entries[1].Description)
	assert.Equal(t, "abc1234", entries[1].ShortHash)
	assert.Equal(t, "BREAKING CHANGE: z", entries[1].Detail)
}

func TestClassify_BreakingOnUnmappedType(t *testing.T) {
	t.Parallel()

	entries := Classify([]CommitRecord{
		commit("aaa", "build: drop node 16", "BREAKING CHANGE: node 18 required"),
	})
	require.Len(t, entries, 1)
	assert.Equal(t, BreakingChanges, entries[0].Category)
	assert.Equal(t, "node 18 required", entries[0].Detail)
}

func TestClassify_Filtering(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commit CommitRecord
		want   []Category
	}{
		"beta chore dropped":                   {commit: commit("a1", "chore: release v1.2.0-beta.3", ""), want: nil},
		"beta chore breaking dropped":          {commit: commit("a1", "chore: beta", "BREAKING CHANGE: x"), want: nil},
		"chore unmapped":                       {commit: commit("a1", "chore: update deps", ""), want: nil},
		"ci unmapped":                          {commit: commit("a1", "ci: cache modules", ""), want: nil},
		"non conventional":                     {commit: commit("a1", "Update README", ""), want: nil},
		"feat":                                 {commit: commit("a1", "feat: x", ""), want: []Category{Features}},
		"fix":                                  {commit: commit("a1", "fix: x", ""), want: []Category{BugFixes}},
		"perf":                                 {commit: commit("a1", "perf: x", ""), want: []Category{Performance}},
		"refactor":                             {commit: commit("a1", "refactor: x", ""), want: []Category{Refactors}},
		"docs":                                 {commit: commit("a1", "docs: x", ""), want: []Category{Documentation}},
		"style":                                {commit: commit("a1", "style: x", ""), want: []Category{Styles}},
		"test":                                 {commit: commit("a1", "test: x", ""), want: []Category{Tests}},
		"revert":                               {commit: commit("a1", "revert: x", ""), want: []Category{Reverts}},
		"capitalized fix unmapped":             {commit: commit("a1", "Fix: Case", ""), want: nil},
		"uppercase feat unmapped":              {commit: commit("a1", "FEAT: x", ""), want: nil},
		"capitalized beta chore breaking kept": {commit: commit("a1", "Chore: beta", "BREAKING CHANGE: x"), want: []Category{BreakingChanges}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var got []Category
			for _, e := range Classify([]CommitRecord{tt.commit}) {
				got = append(got, e.Category)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_PreservesOrder(t *testing.T) {
	t.Parallel()

	entries := Classify([]CommitRecord{
		commit("c3", "feat: third", ""),
		commit("c2", "fix: second", ""),
		commit("c1", "feat: first", ""),
	})
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Description)
	assert.Equal(t, "second", entries[1].Description)
	assert.Equal(t, "first", entries[2].Description)
}

func TestBreakingDetail(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		body   string
		want   string
		wantOK bool
	}{
		"colon form":      {body: "BREAKING CHANGE: z", want: "z", wantOK: true},
		"after prose":     {body: "Some context.\n\nBREAKING CHANGE: config moved", want: "config moved", wantOK: true},
		"plural":          {body: "BREAKING CHANGES: api v2", want: "api v2", wantOK: true},
		"multi-line rest": {body: "BREAKING CHANGE: first\nsecond", want: "first\nsecond", wantOK: true},
		"marker only":     {body: "BREAKING CHANGE", want: "", wantOK: true},
		"absent":          {body: "breaking change in lowercase", wantOK: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := BreakingDetail(tt.body)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShortHash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0123456", ShortHash("0123456789abcdef"))
	assert.Equal(t, "abc", ShortHash("abc"))
}

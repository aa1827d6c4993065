package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinks(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		links      Links
		wantCmp    string
		wantCommit string
	}{
		"repository defaults": {
			links:      Links{RepositoryURL: "https://github.com/acme/widget/", TagPrefix: "v"},
			wantCmp:    "https://github.com/acme/widget/compare/v1.0.0...v1.1.0",
			wantCommit: "https://github.com/acme/widget/commit/abc1234",
		},
		"custom templates win": {
			links: Links{
				RepositoryURL:   "https://github.com/acme/widget",
				CompareTemplate: "https://gitlab.example.com/w/-/compare/{from}...{to}",
				CommitTemplate:  "https://gitlab.example.com/w/-/commit/{hash}",
				TagPrefix:       "v",
			},
			wantCmp:    "https://gitlab.example.com/w/-/compare/v1.0.0...v1.1.0",
			wantCommit: "https://gitlab.example.com/w/-/commit/abc1234",
		},
		"no prefix": {
			links:      Links{RepositoryURL: "https://example.com/r"},
			wantCmp:    "https://example.com/r/compare/v1.0.0...1.1.0",
			wantCommit: "https://example.com/r/commit/abc1234",
		},
		"nothing configured": {},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.wantCmp, tt.links.CompareURL("v1.0.0", "1.1.0"))
			assert.Equal(t, tt.wantCommit, tt.links.CommitURL("abc1234"))
		})
	}
}

func TestLinks_Tag(t *testing.T) {
	t.Parallel()

	l := Links{TagPrefix: "v"}
	assert.Equal(t, "v1.0.0", l.Tag("1.0.0"))
	assert.Equal(t, "v1.0.0", l.Tag("v1.0.0"))
	assert.Equal(t, "1.0.0", Links{}.Tag("1.0.0"))
}

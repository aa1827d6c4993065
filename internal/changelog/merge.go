package changelog

import (
	"regexp"
	"strings"
)

// Header opens every changelog document chlog creates.
const Header = `# Changelog

All notable changes to this project will be documented in this file. See [Conventional Commits](https://www.conventionalcommits.org/) for commit guidelines.

`

// anyHeadingPattern matches the start of any version heading line.
var anyHeadingPattern = regexp.MustCompile(`(?m)^## \[`)

// MergeResult is the outcome of merging a fragment into a document.
type MergeResult struct {
	Document string
	Applied  bool
}

// Merge inserts fragment into the persisted document. A missing or empty
// document starts from Header. If the document already has a heading for
// version it is returned unchanged with Applied false. Otherwise the fragment is
// placed directly after Header (or before the first version heading when the
// header has been edited away) and the remaining text is kept verbatim.
func Merge(existing string, exists bool, fragment Fragment, version string) MergeResult {
	if !exists || strings.TrimSpace(existing) == "" {
		existing = Header
	}

	if HasVersion(existing, version) {
		logDebug("[merge] %s already present, leaving document unchanged", version)
		return MergeResult{Document: existing, Applied: false}
	}

	return MergeResult{Document: splice(existing, fragment.Markdown), Applied: true}
}

// HasVersion reports whether doc contains a heading for version. A leading "v"
// is ignored on both sides.
func HasVersion(doc, version string) bool {
	return headingPattern(version).MatchString(doc)
}

func headingPattern(version string) *regexp.Regexp {
	bare := regexp.QuoteMeta(NormalizeVersion(version))
	return regexp.MustCompile(`(?mi)^## \[v?` + bare + `\]`)
}

func splice(doc, fragment string) string {
	if strings.HasPrefix(doc, Header) {
		return joinFragments(Header, fragment, strings.TrimPrefix(doc, Header))
	}

	if loc := anyHeadingPattern.FindStringIndex(doc); loc != nil {
		return joinFragments(doc[:loc[0]], fragment, doc[loc[0]:])
	}

	head := strings.TrimRight(doc, "\n") + "\n\n"
	return joinFragments(head, fragment, "")
}

// joinFragments places fragment between head and rest, separated by one blank line.
func joinFragments(head, fragment, rest string) string {
	rest = strings.TrimLeft(rest, "\n")
	if rest == "" {
		return head + fragment
	}
	return head + strings.TrimRight(fragment, "\n") + "\n\n" + rest
}

package changelog

import "strings"

// Links builds the compare and commit URLs embedded in a fragment.
// Templates use {from}, {to} and {hash} placeholders. When a template is empty
// and RepositoryURL is set, GitHub-style paths under the repository are used.
type Links struct {
	RepositoryURL   string
	CompareTemplate string
	CommitTemplate  string
	TagPrefix       string
}

// Tag returns the tag name a version is released under.
func (l Links) Tag(version string) string {
	if l.TagPrefix == "" || strings.HasPrefix(version, l.TagPrefix) {
		return version
	}
	return l.TagPrefix + version
}

// CompareURL returns the link comparing from with the version's tag, or "" when
// no template or repository URL is known.
func (l Links) CompareURL(from, version string) string {
	tmpl := l.CompareTemplate
	if tmpl == "" {
		if l.RepositoryURL == "" {
			return ""
		}
		tmpl = strings.TrimSuffix(l.RepositoryURL, "/") + "/compare/{from}...{to}"
	}
	return strings.NewReplacer("{from}", from, "{to}", l.Tag(version)).Replace(tmpl)
}

// CommitURL returns the link to a commit, or "" when no template or repository
// URL is known.
func (l Links) CommitURL(hash string) string {
	tmpl := l.CommitTemplate
	if tmpl == "" {
		if l.RepositoryURL == "" {
			return ""
		}
		tmpl = strings.TrimSuffix(l.RepositoryURL, "/") + "/commit/{hash}"
	}
	return strings.ReplaceAll(tmpl, "{hash}", hash)
}

package changelog

import (
	"regexp"
	"strings"
)

// BreakingMarker flags an incompatible change when it appears in a commit body.
const BreakingMarker = "BREAKING CHANGE"

// subjectPattern matches "type: description" and "type(scope): description".
var subjectPattern = regexp.MustCompile(`^(\w+)(?:\(([^)]*)\))?:\s*(.+)$`)

// betaReleasePattern matches version bumps such as "v1.2.0-beta".
var betaReleasePattern = regexp.MustCompile(`v\d+\.\d+\.\d+-beta`)

// typeCategories maps conventional-commit types to sections. BreakingChanges is
// only reachable through the body marker.
var typeCategories = map[string]Category{
	"feat":     Features,
	"fix":      BugFixes,
	"perf":     Performance,
	"refactor": Refactors,
	"docs":     Documentation,
	"style":    Styles,
	"test":     Tests,
	"revert":   Reverts,
}

// SubjectMatch is the result of parsing a commit subject. Matched is false for
// subjects that do not follow the conventional-commit grammar.
type SubjectMatch struct {
	Matched     bool
	Type        string
	Scope       string
	Description string
}

// ParseSubject parses a commit subject against the conventional-commit grammar.
// The type is kept as written; only lowercase types map to a category.
func ParseSubject(subject string) SubjectMatch {
	m := subjectPattern.FindStringSubmatch(strings.TrimSpace(subject))
	if m == nil {
		return SubjectMatch{}
	}
	return SubjectMatch{
		Matched:     true,
		Type:        m[1],
		Scope:       strings.TrimSpace(m[2]),
		Description: strings.TrimSpace(m[3]),
	}
}

// IsBetaNoise reports whether a parsed subject is pre-release bookkeeping
// (a chore mentioning a beta) that must never reach a stable changelog.
func IsBetaNoise(m SubjectMatch) bool {
	if m.Type != "chore" {
		return false
	}
	d := m.Description
	return strings.Contains(d, "beta") ||
		strings.Contains(d, "-beta.") ||
		betaReleasePattern.MatchString(d)
}

// Classify turns commits into changelog entries, preserving input order.
// Non-conventional subjects, unmapped types and beta chores produce nothing. A
// commit whose body contains BreakingMarker produces a BreakingChanges entry in
// addition to its regular entry.
func Classify(commits []CommitRecord) []Entry {
	var entries []Entry

	for _, c := range commits {
		m := ParseSubject(c.Subject)
		if !m.Matched {
			logDebug("[classify] %s: non-conventional subject %q", ShortHash(c.Hash), c.Subject)
			continue
		}
		if IsBetaNoise(m) {
			logDebug("[classify] %s: dropping beta bookkeeping %q", ShortHash(c.Hash), c.Subject)
			continue
		}

		if detail, ok := BreakingDetail(c.Body); ok {
			entries = append(entries, Entry{
				ShortHash:   ShortHash(c.Hash),
				Scope:       m.Scope,
				Description: m.Description,
				Detail:      detail,
				Category:    BreakingChanges,
			})
		}

		category, ok := typeCategories[m.Type]
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			ShortHash:   ShortHash(c.Hash),
			Scope:       m.Scope,
			Description: m.Description,
			Detail:      c.Body,
			Category:    category,
		})
	}

	return entries
}

// BreakingDetail extracts the text following BreakingMarker in a commit body.
// The plural "BREAKING CHANGES" and a separating colon are accepted.
func BreakingDetail(body string) (string, bool) {
	idx := strings.Index(body, BreakingMarker)
	if idx < 0 {
		return "", false
	}
	rest := body[idx+len(BreakingMarker):]
	rest = strings.TrimPrefix(rest, "S")
	rest = strings.TrimLeft(rest, ": \t")
	return strings.TrimSpace(rest), true
}

// ShortHash truncates a commit hash to seven characters.
func ShortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

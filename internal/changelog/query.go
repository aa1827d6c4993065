package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

// versionHeadingPattern captures the version of each heading line.
var versionHeadingPattern = regexp.MustCompile(`(?m)^## \[([^\]]+)\]`)

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// NormalizeVersion normalizes a version string by removing the "v" prefix.
// This allows accepting both "v0.6.0" and "0.6.0" as input.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v")
}

// ListVersions returns the versions of all headings in doc, in document order
// (newest first for documents chlog maintains).
func ListVersions(doc string) []string {
	matches := versionHeadingPattern.FindAllStringSubmatch(doc, -1)
	versions := make([]string, 0, len(matches))
	for _, m := range matches {
		versions = append(versions, m[1])
	}
	return versions
}

// FindVersion returns the section of doc for version, from its heading up to
// the next version heading. Accepts both "v0.6.0" and "0.6.0".
// Returns VersionNotFoundError if the version doesn't exist.
func FindVersion(doc, version string) (string, error) {
	loc := headingPattern(version).FindStringIndex(doc)
	if loc == nil {
		return "", &VersionNotFoundError{
			Version:           version,
			AvailableVersions: ListVersions(doc),
		}
	}

	section := doc[loc[0]:]
	if next := anyHeadingPattern.FindStringIndex(section[loc[1]-loc[0]:]); next != nil {
		section = section[:loc[1]-loc[0]+next[0]]
	}
	return strings.TrimRight(section, "\n") + "\n", nil
}

package changelog

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateFormat is the layout of the date in version headings.
const DateFormat = "2006-01-02"

// bulletPrefix matches a Markdown list marker at the start of a body line.
var bulletPrefix = regexp.MustCompile(`^[-*]\s*`)

// Renderer produces the Markdown fragment for one version.
type Renderer struct {
	Links Links
}

// Render groups entries by category and renders them in precedence order,
// omitting empty categories. The output is deterministic for a given input.
func (r *Renderer) Render(entries []Entry, version, compareURL string, date time.Time) Fragment {
	f := Fragment{
		Version:  version,
		Heading:  formatHeading(version, compareURL, date),
		Sections: GroupEntries(entries),
	}

	var b strings.Builder
	b.WriteString(f.Heading + "\n")
	for _, s := range f.Sections {
		b.WriteString("\n### " + s.Category.Title() + "\n\n")
		for _, e := range s.Entries {
			b.WriteString("- " + r.EntryLine(e) + "\n")
			writeSubItems(&b, e)
		}
	}
	f.Markdown = b.String()

	return f
}

// GroupEntries buckets entries by category, keeping input order within each
// bucket, and returns the non-empty buckets in precedence order.
func GroupEntries(entries []Entry) []Section {
	buckets := make(map[Category][]Entry)
	for _, e := range entries {
		buckets[e.Category] = append(buckets[e.Category], e)
	}

	var sections []Section
	for _, c := range Categories() {
		if len(buckets[c]) > 0 {
			sections = append(sections, Section{Category: c, Entries: buckets[c]})
		}
	}
	return sections
}

// formatHeading formats the version heading line.
func formatHeading(version, compareURL string, date time.Time) string {
	if compareURL == "" {
		return fmt.Sprintf("## [%s] (%s)", version, date.Format(DateFormat))
	}
	return fmt.Sprintf("## [%s](%s) (%s)", version, compareURL, date.Format(DateFormat))
}

// EntryLine renders the bullet text of an entry without the leading marker:
// optional bold scope, description, and the short-hash commit link.
func (r *Renderer) EntryLine(e Entry) string {
	var b strings.Builder
	if e.Scope != "" {
		b.WriteString("**" + e.Scope + ":** ")
	}
	b.WriteString(e.Description)

	if url := r.Links.CommitURL(e.ShortHash); url != "" {
		fmt.Fprintf(&b, " ([%s](%s))", e.ShortHash, url)
	} else if e.ShortHash != "" {
		fmt.Fprintf(&b, " (%s)", e.ShortHash)
	}
	return b.String()
}

func writeSubItems(b *strings.Builder, e Entry) {
	items := SubItems(e)
	if e.Category == BreakingChanges {
		for _, item := range items {
			b.WriteString("  " + item + "\n")
		}
		return
	}
	for _, item := range items {
		b.WriteString("  - " + item + "\n")
	}
}

// SubItems returns the lines rendered beneath an entry's bullet. Breaking
// changes yield their detail collapsed onto one line. Other categories yield
// each non-blank body line with any leading "-" or "*" marker removed; lines
// carrying the breaking-change marker are dropped.
func SubItems(e Entry) []string {
	if e.Category == BreakingChanges {
		detail := strings.Join(nonBlankLines(e.Detail), " ")
		if detail == "" {
			return nil
		}
		return []string{detail}
	}

	var items []string
	for _, line := range nonBlankLines(e.Detail) {
		if strings.Contains(line, BreakingMarker) {
			continue
		}
		line = stripBullet(line)
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}

// stripBullet removes one leading "-" or "*" marker. Lines opening with
// "**" are bold text, not list items, and are left alone.
func stripBullet(line string) string {
	if strings.HasPrefix(line, "**") {
		return line
	}
	return strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

package changelog

import (
	"fmt"
	"time"
)

// Category is a changelog section. The constant order is the rendering order.
type Category int

const (
	BreakingChanges Category = iota
	Features
	BugFixes
	Performance
	Refactors
	Documentation
	Tests
	Styles
	Reverts
)

// Categories returns every category in rendering precedence order.
func Categories() []Category {
	return []Category{
		BreakingChanges,
		Features,
		BugFixes,
		Performance,
		Refactors,
		Documentation,
		Tests,
		Styles,
		Reverts,
	}
}

// String returns the lowercase identifier of the category.
func (c Category) String() string {
	switch c {
	case BreakingChanges:
		return "breaking"
	case Features:
		return "features"
	case BugFixes:
		return "fixes"
	case Performance:
		return "performance"
	case Refactors:
		return "refactors"
	case Documentation:
		return "docs"
	case Tests:
		return "tests"
	case Styles:
		return "styles"
	case Reverts:
		return "reverts"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Title returns the section heading used in the rendered document.
func (c Category) Title() string {
	switch c {
	case BreakingChanges:
		return "Breaking Changes"
	case Features:
		return "Features"
	case BugFixes:
		return "Bug Fixes"
	case Performance:
		return "Performance Improvements"
	case Refactors:
		return "Code Refactoring"
	case Documentation:
		return "Documentation"
	case Tests:
		return "Tests"
	case Styles:
		return "Styles"
	case Reverts:
		return "Reverts"
	default:
		return c.String()
	}
}

// CommitRecord is one harvested non-merge commit.
type CommitRecord struct {
	Hash        string
	Subject     string
	Body        string
	AuthorName  string
	AuthorEmail string
	Date        time.Time
}

// Entry is a classified commit. Detail holds the extracted text for breaking
// changes and the full commit body for every other category.
type Entry struct {
	ShortHash   string
	Scope       string
	Description string
	Detail      string
	Category    Category
}

// Section groups the entries of one category in harvest order.
type Section struct {
	Category Category
	Entries  []Entry
}

// Fragment is the rendered changelog entry for a single version.
type Fragment struct {
	Version  string
	Heading  string
	Sections []Section
	Markdown string
}

// IsEmpty returns true if the fragment has no sections.
func (f Fragment) IsEmpty() bool {
	return len(f.Sections) == 0
}

// Count returns the total number of entries across all sections.
func (f Fragment) Count() int {
	n := 0
	for _, s := range f.Sections {
		n += len(s.Entries)
	}
	return n
}

// Baseline is the point history is diffed from: either a release tag or, when no
// usable tag exists, a window of the most recent commits.
type Baseline struct {
	Tag    string
	Window int
}

// IsFallback reports whether the baseline is the recent-commits window.
func (b Baseline) IsFallback() bool {
	return b.Tag == ""
}

func (b Baseline) String() string {
	if b.IsFallback() {
		return fmt.Sprintf("last %d commits", b.Window)
	}
	return b.Tag
}

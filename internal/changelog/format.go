package changelog

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ariel-frischer/chlog/internal/output"
	"github.com/fatih/color"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps categories to their terminal styling.
var categoryStyles = map[Category]CategoryStyle{
	BreakingChanges: {Color: color.New(color.FgRed, color.Bold), Icon: "⚠"},
	Features:        {Color: color.New(color.FgGreen), Icon: "✓"},
	BugFixes:        {Color: color.New(color.FgYellow), Icon: "⚡"},
	Performance:     {Color: color.New(color.FgCyan), Icon: "»"},
	Refactors:       {Color: color.New(color.FgBlue), Icon: "~"},
	Documentation:   {Color: color.New(color.FgMagenta), Icon: "¶"},
	Tests:           {Color: color.New(color.FgBlue), Icon: "✔"},
	Styles:          {Color: color.New(color.FgWhite), Icon: "✎"},
	Reverts:         {Color: color.New(color.FgRed), Icon: "↺"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons; print the Markdown verbatim
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatPreview writes a fragment for human review. Plain mode writes the
// Markdown exactly as it would be persisted.
func FormatPreview(f Fragment, links Links, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := io.WriteString(w, f.Markdown)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	if _, err := fmt.Fprintln(w, bold(f.Heading)); err != nil {
		return fmt.Errorf("writing heading: %w", err)
	}

	if f.IsEmpty() {
		_, err := fmt.Fprintln(w, color.New(color.Faint).Sprint("\n  (no notable changes)"))
		return err
	}

	width := resolveWidth(opts.MaxWidth)
	r := &Renderer{Links: links}
	for _, s := range f.Sections {
		if err := writeCategorySection(s, r, w, width); err != nil {
			return fmt.Errorf("writing %s: %w", s.Category, err)
		}
	}
	return nil
}

// writeCategorySection writes a single category with its entries.
func writeCategorySection(s Section, r *Renderer, w io.Writer, width int) error {
	style := categoryStyles[s.Category]
	colored := style.Color.SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(s.Category.Title())); err != nil {
		return err
	}

	for _, e := range s.Entries {
		prefix := "  - "
		if _, err := fmt.Fprintf(w, "%s%s\n", prefix, wrapText(r.EntryLine(e), width-len(prefix), "    ")); err != nil {
			return err
		}
		for _, item := range SubItems(e) {
			if _, err := fmt.Fprintf(w, "      %s\n", dim(wrapText(item, width-6, "      "))); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	return output.GetTerminalWidth()
}

// wrapText wraps text to fit within maxWidth runes, using indent for
// continuation lines. Breaks fall on rune boundaries.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || utf8.RuneCountInString(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := []rune(text)

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, string(remaining[:breakPoint]))
		remaining = remaining[breakPoint:]
		for len(remaining) > 0 && remaining[0] == ' ' {
			remaining = remaining[1:]
		}
	}

	if len(remaining) > 0 {
		lines = append(lines, string(remaining))
	}

	return strings.Join(lines, "\n"+indent)
}

// FormatSummary returns a one-line summary of the fragment, e.g.
// "3 entries: 2 features, 1 fixes".
func FormatSummary(f Fragment) string {
	if f.IsEmpty() {
		return "no notable changes"
	}
	parts := make([]string, 0, len(f.Sections))
	for _, s := range f.Sections {
		parts = append(parts, fmt.Sprintf("%d %s", len(s.Entries), s.Category))
	}
	noun := "entries"
	if f.Count() == 1 {
		noun = "entry"
	}
	return fmt.Sprintf("%d %s: %s", f.Count(), noun, strings.Join(parts, ", "))
}

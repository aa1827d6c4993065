// Package progress reports long-running repository queries in the terminal.
package progress

// TerminalCapabilities describes what the attached terminal can display.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// ProgressSymbols is the symbol set used for status lines.
type ProgressSymbols struct {
	Checkmark string
	Failure   string
	// SpinnerSet is an index into spinner.CharSets.
	SpinnerSet int
}

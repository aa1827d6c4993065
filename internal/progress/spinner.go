package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

const spinnerInterval = 100 * time.Millisecond

// Status shows a spinner while a step runs and a final status line when it
// ends. Without a TTY the spinner is skipped and only the final line is written.
type Status struct {
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	spin    *spinner.Spinner
	message string
}

// NewStatus returns a Status writing to out with the given capabilities.
func NewStatus(out io.Writer, caps TerminalCapabilities) *Status {
	return &Status{out: out, caps: caps, symbols: SelectSymbols(caps)}
}

// Start begins a step. A running step is stopped first.
func (s *Status) Start(message string) {
	s.stop()
	s.message = message
	if !s.caps.IsTTY {
		return
	}

	charset, ok := spinner.CharSets[s.symbols.SpinnerSet]
	if !ok {
		charset = spinner.CharSets[9]
	}
	s.spin = spinner.New(charset, spinnerInterval, spinner.WithWriter(s.out), spinner.WithHiddenCursor(true))
	s.spin.Suffix = " " + message
	if s.caps.SupportsColor {
		_ = s.spin.Color("cyan")
	}
	s.spin.Start()
}

// Success ends the step with a checkmark. An empty detail reuses the step message.
func (s *Status) Success(detail string) {
	s.finish(s.symbols.Checkmark, color.FgGreen, detail)
}

// Fail ends the step with a failure mark.
func (s *Status) Fail(detail string) {
	s.finish(s.symbols.Failure, color.FgRed, detail)
}

func (s *Status) finish(symbol string, attr color.Attribute, detail string) {
	s.stop()
	if detail == "" {
		detail = s.message
	}
	if s.caps.SupportsColor {
		symbol = color.New(attr).Sprint(symbol)
	}
	fmt.Fprintf(s.out, "%s %s\n", symbol, detail)
	s.message = ""
}

func (s *Status) stop() {
	if s.spin != nil {
		s.spin.Stop()
		s.spin = nil
	}
}

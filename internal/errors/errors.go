// Package errors defines the categorized errors chlog commands return. The
// category decides the process exit code.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory groups errors by the exit code they map to.
type ErrorCategory int

const (
	Argument      ErrorCategory = iota // bad flags, version or date
	Configuration                      // config files or CHLOG_* values
	Repository                         // history cannot be queried
	Runtime                            // everything else, e.g. changelog I/O
)

func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Repository:
		return "Repository Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is an error carrying the category that selects the exit code,
// steps the user can take, and optionally the correct command syntax.
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Remediation []string
	Usage       string
	Cause       error
}

func (e *CLIError) Error() string { return e.Message }

// Unwrap exposes Cause to errors.Is and errors.As.
func (e *CLIError) Unwrap() error { return e.Cause }

// NewArgumentError returns an Argument error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewArgumentErrorWithUsage returns an Argument error that shows usage.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Usage: usage, Remediation: remediation}
}

// NewConfigError returns a Configuration error.
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Configuration, Message: message, Remediation: remediation}
}

// Wrap categorizes err, keeping its message. A nil err yields nil.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{Category: category, Message: err.Error(), Remediation: remediation, Cause: err}
}

// WrapWithMessage is Wrap with message prefixed to the cause's text.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
		Cause:       err,
	}
}

// AsCLIError returns the first CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}

package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/chlog/internal/errors"
)

// Exit codes for the chlog CLI
// These codes support scripting and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates an unexpected runtime failure (e.g. the changelog could not be written)
	ExitFailure = 1

	// ExitConfiguration indicates invalid or unreadable configuration
	ExitConfiguration = 2

	// ExitInvalidArguments indicates invalid command arguments or an unknown version
	ExitInvalidArguments = 3

	// ExitRepository indicates the repository could not be opened or queried
	ExitRepository = 4
)

// ExitError carries an exit code for a failure that has already been reported
// to the user. Execute does not print it.
type ExitError struct {
	Code int
}

// NewExitError returns an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func isSilent(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// ExitCode maps an error returned by Execute to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Configuration:
			return ExitConfiguration
		case clierrors.Repository:
			return ExitRepository
		}
	}
	return ExitFailure
}

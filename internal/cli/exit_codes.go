package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/SavaKodi/DatexReleaseNotes/internal/errors"
)

// Exit codes for the relnotes CLI.
// These codes support scripting and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitParseFailed indicates nothing usable was parsed, or a runtime failure
	ExitParseFailed = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingDependencies indicates a missing input file, store or credential
	ExitMissingDependencies = 4

	// ExitTimeout indicates the command was interrupted or timed out
	ExitTimeout = 5
)

// ExitError carries an exit code for an error that has already been
// reported to the user.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps an error to the process exit code.
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
		case clierrors.Argument, clierrors.Configuration:
			return ExitInvalidArguments
		case clierrors.Prerequisite:
			return ExitMissingDependencies
		}
	}

	if isTimeout(err) {
		return ExitTimeout
	}
	return ExitParseFailed
}

package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdindent/pkg/runner"
)

// Exit codes for mdindent.
const (
	// ExitSuccess indicates a clean run.
	ExitSuccess = 0

	// ExitIssues indicates diagnostics were reported or a file could not be linted.
	ExitIssues = 1

	// ExitUsage indicates invalid flags, arguments or configuration.
	ExitUsage = 2

	// ExitInternal indicates an unexpected failure.
	ExitInternal = 3
)

// ErrLintIssuesFound signals that the lint run reported issues.
var ErrLintIssuesFound = errors.New("lint issues found")

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// usageError marks err as a usage or configuration problem.
func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, ErrLintIssuesFound) {
		return ExitIssues
	}

	return ExitInternal
}

// ExitCodeFromResult determines the exit code for a finished lint run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasIssues() || result.HasErrors() {
		return ExitIssues
	}
	return ExitSuccess
}

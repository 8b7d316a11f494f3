// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"strconv"

	"github.com/jeranaias/ragchat-tui/internal/config"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError covers failed answers and unknown errors
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates an unreadable or invalid config
	ExitConfigError = 3
)

// ExitError carries a specific exit code. Err may be nil when the command
// already reported the problem itself.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// usageError wraps err with ExitUsageError.
func usageError(err error) error {
	return &ExitError{Code: ExitUsageError, Err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, config.ErrInvalid) {
		return ExitConfigError
	}
	return ExitGeneralError
}

// shouldReport tells whether Execute still has to print err.
func shouldReport(err error) bool {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Err != nil
	}
	return err != nil
}

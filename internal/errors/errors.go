package errors

import (
	"errors"
	"fmt"
)

// Exit codes for projctl
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitProjectNotFound = 2
	ExitStoreError      = 3
	ExitEditorError     = 4
	ExitConfigError     = 5
	ExitCreateFailed    = 6
)

// ProjctlError is the base error type for projctl
type ProjctlError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ProjctlError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ProjctlError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *ProjctlError) ExitCode() int {
	return e.Code
}

// New creates a new ProjctlError
func New(code int, message string) *ProjctlError {
	return &ProjctlError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ProjctlError
func Wrap(code int, message string, cause error) *ProjctlError {
	return &ProjctlError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ProjectNotFound returns an error for a key that is not registered
func ProjectNotFound(key string) *ProjctlError {
	return New(ExitProjectNotFound, fmt.Sprintf("project not found: %s", key))
}

// StoreError returns an error for project store operations
func StoreError(op string, cause error) *ProjctlError {
	return Wrap(ExitStoreError, fmt.Sprintf("store %s failed", op), cause)
}

// EditorFailed returns an error when the external editor could not be launched
func EditorFailed(cause error) *ProjctlError {
	return Wrap(ExitEditorError, "failed to open editor", cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *ProjctlError {
	return Wrap(ExitConfigError, message, cause)
}

// CreateFailed returns an error for a project creation job that did not finish
func CreateFailed(name string, cause error) *ProjctlError {
	return Wrap(ExitCreateFailed, fmt.Sprintf("creating project %s failed", name), cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *ProjctlError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var projErr *ProjctlError
	if errors.As(err, &projErr) {
		return projErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}

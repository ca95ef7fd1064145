// Package errors defines the error codes reported by agentboot commands and
// maps them onto process exit statuses.
package errors

import (
	"errors"
	"fmt"
	"io"
)

// Code is a stable error code string.
type Code string

const (
	EUsage    Code = "E_USAGE"
	EConfig   Code = "E_CONFIG"
	EInternal Code = "E_INTERNAL"

	// Repository resolution.
	EAlreadyExists Code = "E_ALREADY_EXISTS"
	ENotARepo      Code = "E_NOT_A_REPO"
	EClone         Code = "E_CLONE"

	// Template materialization.
	ETemplateClone   Code = "E_TEMPLATE_CLONE"
	EMissingTemplate Code = "E_MISSING_TEMPLATE"
	EInvalidTemplate Code = "E_INVALID_TEMPLATE"

	// External processes and prompts.
	ESubprocess   Code = "E_SUBPROCESS"
	ENotInstalled Code = "E_NOT_INSTALLED"
	EAborted      Code = "E_ABORTED"
)

// BootError is the error type returned by every agentboot operation.
type BootError struct {
	Code    Code
	Msg     string
	Cause   error
	Status  int               // exit status of the failed subprocess, 0 if none
	Details map[string]string // optional structured context
}

// Error returns "CODE: message".
func (e *BootError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *BootError) Unwrap() error {
	return e.Cause
}

// New creates a BootError with the given code and message.
func New(code Code, msg string) error {
	return &BootError{Code: code, Msg: msg}
}

// Newf creates a BootError with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &BootError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates a BootError wrapping an underlying error.
func Wrap(code Code, msg string, err error) error {
	return &BootError{Code: code, Msg: msg, Cause: err}
}

// Exited creates a BootError for a subprocess that ran and exited non-zero.
// The command line and stderr tail are kept in Details.
func Exited(code Code, msg string, status int, command, stderr string) error {
	details := map[string]string{"command": command}
	if stderr != "" {
		details["stderr"] = stderr
	}
	return &BootError{Code: code, Msg: msg, Status: status, Details: details}
}

// GetCode extracts the error code from an error, or "" if it is not a BootError.
func GetCode(err error) Code {
	var be *BootError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// AsBootError returns (*BootError, true) if err is or wraps a BootError.
func AsBootError(err error) (*BootError, bool) {
	var be *BootError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// ExitCode returns the process exit status for err.
// nil is 0, E_USAGE is 2, a failed subprocess propagates its own status,
// everything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	be, ok := AsBootError(err)
	if !ok {
		return 1
	}
	switch be.Code {
	case EUsage:
		return 2
	case ESubprocess, EClone, ETemplateClone:
		if be.Status > 0 {
			return be.Status
		}
	}
	return 1
}

// Print writes err to w as "error [CODE]: message", followed by the stderr
// of a failed subprocess when one was captured.
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}
	be, ok := AsBootError(err)
	if !ok {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	msg := be.Msg
	if be.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, be.Cause)
	}
	fmt.Fprintf(w, "error [%s]: %s\n", be.Code, msg)
	if stderr := be.Details["stderr"]; stderr != "" {
		fmt.Fprintln(w, stderr)
	}
}

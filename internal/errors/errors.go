// Package errors carries hostmon's user-facing failures. Each one names the
// subsystem that failed so the CLI can print a short report and tests can
// match on the category instead of on message text.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is the failing subsystem.
type Code string

const (
	ErrConfig   Code = "CONFIG"   // flags, env, config file
	ErrSettings Code = "SETTINGS" // settings file save
	ErrTerminal Code = "TERMINAL" // stdout writes, watch view
	ErrMetrics  Code = "METRICS"  // gopsutil reads
	ErrInput    Code = "INPUT"    // stdin reads and polls
	ErrDebugLog Code = "DEBUGLOG" // debug log file write
)

// Error is a categorised failure. Message says what went wrong, Suggestion
// (optional) what the user can do about it.
type Error struct {
	Code       Code
	Message    string
	Suggestion string
	Cause      error
}

func New(code Code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion}
}

// Wrap attaches message to err under ErrTerminal, the category of most
// unexpected I/O failures here.
func Wrap(err error, message string) *Error {
	return WrapWithCode(err, ErrTerminal, message, "")
}

func WrapWithCode(err error, code Code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion, Cause: err}
}

// Error renders a block for stderr: a marked headline, then the cause and
// the suggestion as indented paragraphs.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "✗ %s\n", e.Message)
	for _, para := range []string{e.causeText(), e.Suggestion} {
		if para != "" {
			fmt.Fprintf(&b, "\n  %s\n", para)
		}
	}
	return b.String()
}

func (e *Error) causeText() string {
	if e.Cause == nil {
		return ""
	}
	return e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error of the same code, so errors.Is(err, New(code,
// "", "")) works as a category test.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// IsCode reports whether err or anything it wraps is an *Error with code.
func IsCode(err error, code Code) bool {
	var e *Error
	for err != nil && errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

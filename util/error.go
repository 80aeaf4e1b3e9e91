// util/error.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorLogger is a small utility class used to log errors when validating
// loaded candidate and scenario tables. It tracks context about what is
// currently being validated and accumulates multiple errors, making it
// possible to report every problem in an input file in one go.
type ErrorLogger struct {
	// Tracked via Push()/Pop() calls to remember what we're looking at if
	// an error is found.
	hierarchy []string
	// Actual error messages to report.
	errors []string
	// Errors passed to Error(), kept so errors.Is works on Err().
	kinds []error
}

func (e *ErrorLogger) Push(s string) {
	e.hierarchy = append(e.hierarchy, s)
}

func (e *ErrorLogger) Pop() {
	e.hierarchy = e.hierarchy[:len(e.hierarchy)-1]
}

func (e *ErrorLogger) prefix() string {
	if len(e.hierarchy) == 0 {
		return ""
	}
	return strings.Join(e.hierarchy, " / ") + ": "
}

func (e *ErrorLogger) ErrorString(s string, args ...any) {
	e.errors = append(e.errors, e.prefix()+fmt.Sprintf(s, args...))
}

func (e *ErrorLogger) Error(err error) {
	e.errors = append(e.errors, e.prefix()+err.Error())
	e.kinds = append(e.kinds, err)
}

func (e *ErrorLogger) HaveErrors() bool {
	return len(e.errors) > 0
}

func (e *ErrorLogger) Count() int {
	return len(e.errors)
}

func (e *ErrorLogger) String() string {
	return strings.Join(e.errors, "\n")
}

// Err returns nil if no errors were recorded and otherwise a single error
// holding all of the messages. It matches (via errors.Is) every error that
// was passed to Error().
func (e *ErrorLogger) Err() error {
	if !e.HaveErrors() {
		return nil
	}
	return &accumulatedError{msg: e.String(), kinds: errors.Join(e.kinds...)}
}

func (e *ErrorLogger) CurrentDepth() int {
	if e == nil {
		return 0
	}
	return len(e.hierarchy)
}

// CheckDepth is meant to be deferred at the start of a validation function
// to catch unbalanced Push/Pop calls.
func (e *ErrorLogger) CheckDepth(d int) {
	if e == nil || e.CurrentDepth() == d {
		return
	}
	if r := recover(); r != nil {
		// Don't mask the original panic.
		panic(r)
	}
	panic(fmt.Sprintf("ErrorLogger: initial depth %d, final %d", d, e.CurrentDepth()))
}

type accumulatedError struct {
	msg   string
	kinds error
}

func (a *accumulatedError) Error() string {
	return a.msg
}

func (a *accumulatedError) Unwrap() error {
	return a.kinds
}

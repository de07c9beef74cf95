package cmd

import (
	"context"
	"errors"
)

const (
	ExitOK       = 0
	ExitSystem   = 1
	ExitStore    = 3
	ExitCanceled = 130
)

// fatalResponseError marks errors for which the fatal hook response was
// already emitted on stdout; App.Execute must not print them again.
type fatalResponseError struct {
	err error
}

func (e *fatalResponseError) Error() string {
	return e.err.Error()
}

func (e *fatalResponseError) Unwrap() error {
	return e.err
}

func emittedFatalResponse(err error) bool {
	var fe *fatalResponseError
	return errors.As(err, &fe)
}

// ExitCode maps a command error to a stable process exit code for the hook
// runner and for automation.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCanceled
	}
	if emittedFatalResponse(err) {
		return ExitStore
	}
	return ExitSystem
}

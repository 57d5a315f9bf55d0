// Package launcherror defines the two failure kinds of the launcher:
// environment-preparation failures and parser-invocation failures.
package launcherror

import (
	"errors"
	"fmt"
)

// Sentinel reasons for environment failures, usable with errors.Is.
var (
	ErrEnvironmentNotFound = errors.New("environment not found")
	ErrEnvironmentCorrupt  = errors.New("environment corrupt")
)

// EnvironmentError reports that the isolated interpreter environment is missing or broken.
type EnvironmentError struct {
	Dir    string
	Reason string
	Err    error
}

func (e *EnvironmentError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("prepare environment %s: %s: %v", e.Dir, e.Reason, e.Err)
	}
	return fmt.Sprintf("prepare environment %s: %v", e.Dir, e.Err)
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

// InvocationError reports that an external process (the parser or the host opener)
// could not be started or exited non-zero.
type InvocationError struct {
	Step     string
	Command  string
	ExitCode int // -1 when the process never ran to completion
	Err      error
}

func (e *InvocationError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("%s: %s exited with code %d: %v", e.Step, e.Command, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Step, e.Command, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code the launcher should terminate with for err.
// A child's non-zero exit code is propagated as is; any other failure maps to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr.ExitCode > 0 {
		return invErr.ExitCode
	}
	return 1
}

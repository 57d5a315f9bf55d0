// Package opener asks the host to open a file with its default associated application.
package opener

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"exmuzzy/pdf-spec/internal/launcherror"
	"exmuzzy/pdf-spec/internal/logging"
)

// StepName identifies the open step in errors and logs.
const StepName = "open result"

// Opener hands a path to the host's file-open mechanism. It never checks that the
// path exists; a missing file surfaces as the host tool's own failure.
type Opener struct {
	// Command overrides the host default when non-empty, e.g. "libreoffice --calc".
	Command string

	goos   string
	exec   func(ctx context.Context, name string, args ...string) *exec.Cmd
	logger logging.Logger
}

// New creates an Opener for the running OS.
func New(command string, logger logging.Logger) *Opener {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Opener{
		Command: command,
		goos:    runtime.GOOS,
		exec:    exec.CommandContext,
		logger:  logger,
	}
}

// HostCommand returns the program and arguments that open path on goos.
// An override is split on whitespace and receives path as its last argument.
func HostCommand(goos, override, path string) (string, []string) {
	if fields := strings.Fields(override); len(fields) > 0 {
		return fields[0], append(fields[1:], path)
	}
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		// The empty string is start's window title; without it a quoted path is taken as the title.
		return "cmd", []string{"/c", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}

// Open requests the host to open path and waits for the request to be handed off.
func (o *Opener) Open(ctx context.Context, path string) error {
	name, args := HostCommand(o.goos, o.Command, path)

	cmd := o.exec(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	o.logger.Debug("Requesting host open",
		logging.Field{Key: logging.FieldCommand, Value: name},
		logging.Field{Key: logging.FieldFile, Value: path})

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			o.logger.Error(msg, logging.Field{Key: logging.FieldCommand, Value: name})
		}
		return &launcherror.InvocationError{
			Step:     StepName,
			Command:  name + " " + path,
			ExitCode: exitCode,
			Err:      err,
		}
	}

	return nil
}

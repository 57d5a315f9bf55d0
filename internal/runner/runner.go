// Package runner invokes the external parsing process inside a prepared environment.
package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"exmuzzy/pdf-spec/internal/launcherror"
	"exmuzzy/pdf-spec/internal/logging"
	"exmuzzy/pdf-spec/internal/venv"
)

// StepName identifies the parser step in errors and logs.
const StepName = "run parser"

// Runner starts the parser as a blocking subprocess. The child's standard streams
// are connected to the launcher's, so its diagnostics reach the terminal unchanged.
type Runner struct {
	Command string
	Args    []string
	Workdir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	logger logging.Logger
}

// New creates a Runner wired to the process's own standard streams.
func New(command string, args []string, workdir string, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Runner{
		Command: command,
		Args:    args,
		Workdir: workdir,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		logger:  logger,
	}
}

// Run executes the parser with the environment's variables and waits for it to exit.
// A start failure or non-zero exit is returned as *launcherror.InvocationError.
func (r *Runner) Run(ctx context.Context, env *venv.Environment) error {
	command := r.Command
	var vars []string
	if env != nil {
		command = env.Resolve(r.Command)
		vars = env.Vars
	}

	cmd := exec.CommandContext(ctx, command, r.Args...)
	cmd.Env = vars
	cmd.Dir = r.Workdir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	display := strings.TrimSpace(r.Command + " " + strings.Join(r.Args, " "))
	log := r.logger.WithField(logging.FieldCommand, display)
	log.Debug("Starting parser process",
		logging.Field{Key: "path", Value: command},
		logging.Field{Key: logging.FieldDirectory, Value: r.Workdir})

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		log.WithError(err).Debug("Parser process failed",
			logging.Field{Key: logging.FieldExitCode, Value: exitCode},
			logging.Field{Key: logging.FieldDuration, Value: elapsed})
		return &launcherror.InvocationError{
			Step:     StepName,
			Command:  display,
			ExitCode: exitCode,
			Err:      err,
		}
	}

	log.Debug("Parser process exited", logging.Field{Key: logging.FieldDuration, Value: elapsed})
	return nil
}

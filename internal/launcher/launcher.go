// Package launcher runs the three steps of a conversion in strict order:
// prepare the interpreter environment, run the parser, open the produced spreadsheet.
// The first failing step aborts the sequence and its error is returned unchanged.
package launcher

import (
	"context"

	"exmuzzy/pdf-spec/internal/logging"
	"exmuzzy/pdf-spec/internal/venv"
)

// Step names carried in log entries.
const (
	StepPrepare = "prepare environment"
	StepRun     = "run parser"
	StepOpen    = "open result"
)

// EnvironmentPreparer prepares the isolated interpreter environment.
type EnvironmentPreparer interface {
	Prepare() (*venv.Environment, error)
}

// ParserRunner invokes the external parsing process and blocks until it exits.
type ParserRunner interface {
	Run(ctx context.Context, env *venv.Environment) error
}

// ResultOpener asks the host to open a file with its default application.
type ResultOpener interface {
	Open(ctx context.Context, path string) error
}

// Launcher sequences environment preparation, parser invocation and result display.
type Launcher struct {
	env    EnvironmentPreparer
	parser ParserRunner
	opener ResultOpener
	output string
	logger logging.Logger
}

// New creates a Launcher that opens output once the parser succeeds.
func New(env EnvironmentPreparer, parser ParserRunner, opener ResultOpener, output string, logger logging.Logger) *Launcher {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Launcher{
		env:    env,
		parser: parser,
		opener: opener,
		output: output,
		logger: logger,
	}
}

// Run executes the sequence once.
func (l *Launcher) Run(ctx context.Context) error {
	l.logger.Info("Activating virtual environment...",
		logging.Field{Key: logging.FieldStep, Value: StepPrepare})
	env, err := l.env.Prepare()
	if err != nil {
		return err
	}
	l.logger.Info("Virtual environment ready",
		logging.Field{Key: logging.FieldDirectory, Value: env.Dir})

	l.logger.Info("Running PDF parser...",
		logging.Field{Key: logging.FieldStep, Value: StepRun})
	if err := l.parser.Run(ctx, env); err != nil {
		return err
	}
	l.logger.Info("PDF parser finished")

	l.logger.Info("Opening result...",
		logging.Field{Key: logging.FieldStep, Value: StepOpen},
		logging.Field{Key: logging.FieldOutputFile, Value: l.output})
	if err := l.opener.Open(ctx, l.output); err != nil {
		return err
	}
	l.logger.Info("Done", logging.Field{Key: logging.FieldOutputFile, Value: l.output})

	return nil
}

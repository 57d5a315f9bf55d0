// Package root contains the root command for the application
package root

import (
	"fmt"

	"exmuzzy/pdf-spec/internal/config"
	"exmuzzy/pdf-spec/internal/launcher"
	"exmuzzy/pdf-spec/internal/logging"
	"exmuzzy/pdf-spec/internal/opener"
	"exmuzzy/pdf-spec/internal/runner"
	"exmuzzy/pdf-spec/internal/venv"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger for commands, replaced once configuration is loaded.
	Log = logging.NewLogrusAdapter("info", "text")

	// AppConfig holds the configuration loaded in PersistentPreRunE.
	AppConfig *config.Config

	// ConfigFile is the value of the --config flag.
	ConfigFile string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "pdf-spec",
		Short: "Activate the parser environment, extract specification PDFs to XLSX and open the result.",
		Long: `pdf-spec prepares the Python virtual environment in ./venv, runs the PDF
parser inside it and opens the produced specifications_full.xlsx with the
default application of the host.

Run "pdf-spec parse" to use the built-in parser instead of the script.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initialize,
		RunE:              launch,
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&ConfigFile, "config", "",
		"config file (default is config.yaml in $HOME/.pdf-spec, .pdf-spec or the working directory)")
}

func initialize(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg, err := config.InitializeConfig(ConfigFile)
	if err != nil {
		return err
	}
	AppConfig = cfg
	Log = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))

	Log.Debug("Configuration loaded",
		logging.Field{Key: "config_file", Value: ConfigFile},
		logging.Field{Key: logging.FieldOutputFile, Value: cfg.Output.File})
	return nil
}

func launch(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if cfg == nil {
		return fmt.Errorf("configuration not initialized")
	}
	return NewLauncher(cfg, Log).Run(cmd.Context())
}

// NewLauncher wires the launcher steps from cfg.
func NewLauncher(cfg *config.Config, logger logging.Logger) *launcher.Launcher {
	return launcher.New(
		venv.NewPreparer(cfg.Environment.Dir, logger),
		runner.New(cfg.Parser.Command, cfg.Parser.Args, cfg.Parser.Workdir, logger),
		opener.New(cfg.Open.Command, logger),
		cfg.Output.File,
		logger,
	)
}

// GetConfig returns the loaded configuration, or nil before PersistentPreRunE ran.
func GetConfig() *config.Config {
	return AppConfig
}

// GetLogger returns the configured logger.
func GetLogger() logging.Logger {
	return Log
}

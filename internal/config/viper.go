// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"exmuzzy/pdf-spec/internal/logging"
	"exmuzzy/pdf-spec/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	// Environment is the isolated interpreter environment the parser runs in.
	Environment struct {
		Dir string `mapstructure:"dir" yaml:"dir"`
	} `mapstructure:"environment" yaml:"environment"`

	// Parser describes the external parsing process started by the launcher.
	Parser struct {
		Command string   `mapstructure:"command" yaml:"command"`
		Args    []string `mapstructure:"args" yaml:"args"`
		Workdir string   `mapstructure:"workdir" yaml:"workdir"`
	} `mapstructure:"parser" yaml:"parser"`

	// Native configures the built-in "parse" subcommand.
	Native struct {
		InputDir      string `mapstructure:"input_dir" yaml:"input_dir"`
		Extractor     string `mapstructure:"extractor" yaml:"extractor"`
		PdftotextPath string `mapstructure:"pdftotext_path" yaml:"pdftotext_path"`
		RulesFile     string `mapstructure:"rules_file" yaml:"rules_file"`
	} `mapstructure:"native" yaml:"native"`

	Output struct {
		File         string `mapstructure:"file" yaml:"file"`
		CSV          string `mapstructure:"csv" yaml:"csv"`
		CSVDelimiter string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`
	} `mapstructure:"output" yaml:"output"`

	Open struct {
		Command string `mapstructure:"command" yaml:"command"`
	} `mapstructure:"open" yaml:"open"`
}

// Extractor names accepted by native.extractor.
const (
	ExtractorPdftotext = "pdftotext"
	ExtractorNative    = "native"
)

// InitializeConfig initializes Viper configuration with hierarchical loading.
// An explicit configFile takes the place of the search path when non-empty.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.pdf-spec")
		v.AddConfigPath(".pdf-spec")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("PDFSPEC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. Plain LOG_LEVEL / LOG_FORMAT are honoured like the rest of the toolchain
	if err := v.BindEnv("log.level", "PDFSPEC_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("log.format", "PDFSPEC_LOG_FORMAT", "LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind LOG_FORMAT: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("environment.dir", "venv")

	v.SetDefault("parser.command", "python")
	v.SetDefault("parser.args", []string{"parse_pdfs.py"})
	v.SetDefault("parser.workdir", ".")

	v.SetDefault("native.input_dir", "pdf")
	v.SetDefault("native.extractor", ExtractorPdftotext)
	v.SetDefault("native.pdftotext_path", "pdftotext")
	v.SetDefault("native.rules_file", "")

	v.SetDefault("output.file", "specifications_full.xlsx")
	v.SetDefault("output.csv", "")
	v.SetDefault("output.csv_delimiter", ",")

	v.SetDefault("open.command", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if strings.TrimSpace(config.Environment.Dir) == "" {
		return fmt.Errorf("environment.dir must not be empty")
	}

	if strings.TrimSpace(config.Parser.Command) == "" {
		return fmt.Errorf("parser.command must not be empty")
	}

	if strings.TrimSpace(config.Output.File) == "" {
		return fmt.Errorf("output.file must not be empty")
	}

	if err := validation.Delimiter(config.Output.CSVDelimiter); err != nil {
		return fmt.Errorf("invalid output.csv_delimiter: %w", err)
	}

	switch config.Native.Extractor {
	case ExtractorPdftotext, ExtractorNative:
	default:
		return fmt.Errorf("invalid native.extractor: %s (must be '%s' or '%s')",
			config.Native.Extractor, ExtractorPdftotext, ExtractorNative)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	return logging.NewLogrus(strings.ToLower(config.Log.Level), strings.ToLower(config.Log.Format))
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.Output.CSVDelimiter)
	return r
}

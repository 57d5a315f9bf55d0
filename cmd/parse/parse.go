// Package parse handles the built-in specification parser command
package parse

import (
	"context"
	"errors"
	"fmt"

	"exmuzzy/pdf-spec/cmd/root"
	"exmuzzy/pdf-spec/internal/config"
	"exmuzzy/pdf-spec/internal/export"
	"exmuzzy/pdf-spec/internal/logging"
	"exmuzzy/pdf-spec/internal/nomenclature"
	"exmuzzy/pdf-spec/internal/pdfextract"
	"exmuzzy/pdf-spec/internal/specparser"
	"exmuzzy/pdf-spec/internal/validation"
	"exmuzzy/pdf-spec/internal/workbook"

	"github.com/spf13/cobra"
)

var (
	inputDir   string
	outputFile string
	csvFile    string
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract pipes and fittings from specification PDFs into an XLSX workbook",
	Long: `Reads every PDF in the input directory, finds the specification table on
each page and writes the pipes and fittings it lists, with the mass of one
metre of polyethylene pipe per GOST 18599-2001, to a formatted workbook.`,
	Args: cobra.NoArgs,
	RunE: parseFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory with specification PDFs (default native.input_dir)")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output workbook (default output.file)")
	Cmd.Flags().StringVar(&csvFile, "csv", "", "Also write the rows to this CSV file (default output.csv)")
}

// Options controls one run of the parser.
type Options struct {
	InputDir   string
	OutputFile string
	CSVFile    string
	Delimiter  rune
}

// OptionsFromConfig returns the options configured in cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		InputDir:   cfg.Native.InputDir,
		OutputFile: cfg.Output.File,
		CSVFile:    cfg.Output.CSV,
		Delimiter:  cfg.Delimiter(),
	}
}

func parseFunc(cmd *cobra.Command, args []string) error {
	cfg := root.GetConfig()
	if cfg == nil {
		return fmt.Errorf("configuration not initialized")
	}
	logger := root.GetLogger()

	opts := OptionsFromConfig(cfg)
	if inputDir != "" {
		opts.InputDir = inputDir
	}
	if outputFile != "" {
		opts.OutputFile = outputFile
	}
	if csvFile != "" {
		opts.CSVFile = csvFile
	}
	if err := validation.InputDirectory(opts.InputDir); err != nil {
		return err
	}
	if err := validation.WorkbookPath(opts.OutputFile); err != nil {
		return err
	}

	extractor, err := pdfextract.New(cfg.Native.Extractor, cfg.Native.PdftotextPath, logger)
	if err != nil {
		return err
	}

	rules := nomenclature.DefaultRules()
	if cfg.Native.RulesFile != "" {
		if rules, err = nomenclature.LoadRules(cfg.Native.RulesFile); err != nil {
			return err
		}
	}

	return Run(cmd.Context(), opts, extractor, rules, logger)
}

// Run parses the PDFs in opts.InputDir and writes the workbook and, when
// requested, the CSV companion. Finding no rows is not an error: a warning is
// logged and nothing is written.
func Run(ctx context.Context, opts Options, extractor pdfextract.Extractor, rules nomenclature.Rules, logger logging.Logger) error {
	logger.Info("Parsing specifications",
		logging.Field{Key: logging.FieldInputDir, Value: opts.InputDir},
		logging.Field{Key: logging.FieldExtractor, Value: extractor.Name()})

	rows, err := specparser.New(extractor, rules, logger).ParseDir(ctx, opts.InputDir)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", opts.InputDir, err)
	}

	if err := workbook.NewWriter(logger).Write(opts.OutputFile, rows); err != nil {
		if errors.Is(err, workbook.ErrNoRows) {
			return nil
		}
		return err
	}

	if opts.CSVFile != "" {
		if err := export.NewCSVExporter(opts.Delimiter, logger).Write(opts.CSVFile, rows); err != nil {
			return err
		}
	}

	logger.Info("Specification parsing completed",
		logging.Field{Key: logging.FieldOutputFile, Value: opts.OutputFile},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return nil
}

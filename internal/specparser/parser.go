// Package specparser extracts pipe and fitting rows from the tables of
// specification PDFs.
package specparser

import (
	"context"
	"errors"
	"strings"

	"exmuzzy/pdf-spec/internal/fileutils"
	"exmuzzy/pdf-spec/internal/logging"
	"exmuzzy/pdf-spec/internal/nomenclature"
	"exmuzzy/pdf-spec/internal/parsererror"
	"exmuzzy/pdf-spec/internal/pdfextract"
)

// Parser reads specification PDFs through an Extractor.
type Parser struct {
	extractor pdfextract.Extractor
	rules     nomenclature.Rules
	logger    logging.Logger
}

// New creates a Parser.
func New(extractor pdfextract.Extractor, rules nomenclature.Rules, logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Parser{
		extractor: extractor,
		rules:     rules,
		logger:    logger,
	}
}

// ParseDir parses every PDF directly inside dir in name order. A file that fails
// is logged and skipped; only a missing or unreadable directory is an error.
func (p *Parser) ParseDir(ctx context.Context, dir string) ([]nomenclature.Row, error) {
	files, err := fileutils.ListFilesWithExtension(dir, ".pdf")
	if err != nil {
		return nil, err
	}

	p.logger.Info("Found PDF files",
		logging.Field{Key: logging.FieldInputDir, Value: dir},
		logging.Field{Key: logging.FieldCount, Value: len(files)})

	var all []nomenclature.Row
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rows, err := p.ParseFile(ctx, file)
		if err != nil {
			p.logger.WithError(err).Warn("Failed to process file",
				logging.Field{Key: logging.FieldFile, Value: file})
		}
		p.logger.Info("Processed file",
			logging.Field{Key: logging.FieldFile, Value: file},
			logging.Field{Key: logging.FieldCount, Value: len(rows)})

		all = append(all, rows...)
	}

	p.logger.Info("Extraction finished", logging.Field{Key: logging.FieldCount, Value: len(all)})
	return all, nil
}

// ParseFile extracts the rows of one PDF.
func (p *Parser) ParseFile(ctx context.Context, path string) ([]nomenclature.Row, error) {
	log := p.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldExtractor, Value: p.extractor.Name()})
	log.Debug("Extracting text")

	text, err := p.extractor.ExtractText(ctx, path)
	if err != nil {
		return nil, err
	}

	rows, issues := parseText(fileutils.BaseNameWithoutExt(path), text, p.rules.Classifier())
	for _, issue := range issues {
		log.WithError(issue).Warn("Unrecognised quantity")
	}
	return rows, nil
}

var errNoNumber = errors.New("no number found")

// ParseText extracts rows from layout text whose pages are separated by form feeds.
// Rows are labelled with file and kept only when the rules call them a pipe or fitting.
func ParseText(file, text string, rules nomenclature.Rules) []nomenclature.Row {
	rows, _ := parseText(file, text, rules.Classifier())
	return rows
}

// parseText is ParseText that also reports quantity cells holding no number.
func parseText(file, text string, classifier *nomenclature.Classifier) ([]nomenclature.Row, []error) {
	var out []nomenclature.Row
	var issues []error

	for _, page := range strings.Split(text, pdfextract.PageSeparator) {
		lines := strings.Split(strings.ReplaceAll(page, "\r\n", "\n"), "\n")

		t, ok := detectTable(lines)
		if !ok {
			continue
		}

		for _, raw := range t.rows(lines) {
			name := squash(strings.Join(raw.nomenclature, " "))
			if name == "" || !classifier.IsPipeOrFitting(name) {
				continue
			}

			quantityText := squash(strings.Join(raw.quantity, " "))
			quantity := nomenclature.ParseQuantity(quantityText)
			if quantityText != "" && !quantity.Valid {
				issues = append(issues, &parsererror.ParseError{
					File:  file,
					Field: "quantity",
					Value: quantityText,
					Err:   errNoNumber,
				})
			}

			out = append(out, nomenclature.Row{
				File:         file,
				Nomenclature: name,
				Quantity:     quantity,
				Mass:         classifier.PipeMass(name),
				Manufacturer: squash(strings.Join(raw.manufacturer, " ")),
			})
		}
	}

	return out, issues
}

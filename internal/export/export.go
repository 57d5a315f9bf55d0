// Package export writes the CSV companion of the specification workbook.
package export

import (
	"encoding/csv"
	"fmt"

	"exmuzzy/pdf-spec/internal/fileutils"
	"exmuzzy/pdf-spec/internal/logging"
	"exmuzzy/pdf-spec/internal/nomenclature"

	"github.com/gocarina/gocsv"
)

// CSVExporter writes rows as delimited text with a header line.
type CSVExporter struct {
	delimiter rune
	logger    logging.Logger
}

// NewCSVExporter creates an exporter using delimiter between fields.
func NewCSVExporter(delimiter rune, logger logging.Logger) *CSVExporter {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &CSVExporter{delimiter: delimiter, logger: logger}
}

// Write saves rows to csvFile, creating parent directories.
func (e *CSVExporter) Write(csvFile string, rows []nomenclature.Row) error {
	if rows == nil {
		return fmt.Errorf("cannot write nil rows to CSV")
	}

	e.logger.Info("Writing rows to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})

	file, err := fileutils.CreateFile(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	records := make([]nomenclature.CSVRow, len(rows))
	for i, r := range rows {
		records[i] = r.ToCSV()
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = e.delimiter

	if err := gocsv.MarshalCSV(records, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}

	return nil
}

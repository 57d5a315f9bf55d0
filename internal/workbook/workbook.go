// Package workbook writes extracted specification rows to a formatted XLSX file.
package workbook

import (
	"errors"
	"fmt"

	"exmuzzy/pdf-spec/internal/fileutils"
	"exmuzzy/pdf-spec/internal/logging"
	"exmuzzy/pdf-spec/internal/nomenclature"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the only sheet in the workbook.
const SheetName = "Спецификация"

// Headers are the column titles of the first row.
var Headers = []string{"Файл", "Номенклатура", "Количество", "Масса", "Завод изготовитель"}

var columnWidths = []struct {
	column string
	width  float64
}{
	{"A", 30},
	{"B", 70},
	{"C", 15},
	{"D", 15},
	{"E", 25},
}

const (
	headerFill    = "4472C4"
	separatorFill = "D3D3D3"
)

// ErrNoRows is returned by Write when there is nothing to write.
var ErrNoRows = errors.New("no rows to write")

// Writer saves rows as a workbook.
type Writer struct {
	logger logging.Logger
}

// NewWriter creates a Writer.
func NewWriter(logger logging.Logger) *Writer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Writer{logger: logger}
}

// Write builds the workbook for rows and saves it at path, creating parent
// directories. With no rows it logs a warning, leaves path untouched and
// returns ErrNoRows.
func (w *Writer) Write(path string, rows []nomenclature.Row) error {
	if len(rows) == 0 {
		w.logger.Warn("No data to write", logging.Field{Key: logging.FieldOutputFile, Value: path})
		return ErrNoRows
	}

	f, err := Build(rows)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	if err := fileutils.EnsureParentDirectory(path); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}

	w.logger.Info("Workbook written",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldSheet, Value: SheetName},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return nil
}

// Build lays rows out on a new workbook. Rows are grouped under a merged
// separator row each time the source file changes; groups after the first
// are preceded by a blank row. The caller closes the returned file.
func Build(rows []nomenclature.Row) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := build(f, rows); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

type styles struct {
	header    int
	separator int
	text      int
	centered  int
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	var s styles
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Border:    border,
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return s, fmt.Errorf("failed to create header style: %w", err)
	}

	s.separator, err = f.NewStyle(&excelize.Style{
		Border:    border,
		Fill:      excelize.Fill{Type: "pattern", Color: []string{separatorFill}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return s, fmt.Errorf("failed to create separator style: %w", err)
	}

	s.text, err = f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return s, fmt.Errorf("failed to create text style: %w", err)
	}

	s.centered, err = f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return s, fmt.Errorf("failed to create centered style: %w", err)
	}

	return s, nil
}

func build(f *excelize.File, rows []nomenclature.Row) error {
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "E1", st.header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	line := 2
	for i, r := range rows {
		if i == 0 || r.File != rows[i-1].File {
			if i > 0 {
				line++
			}
			if err := writeSeparator(f, line, r.File, st); err != nil {
				return err
			}
			line++
		}
		if err := writeRow(f, line, r, st); err != nil {
			return err
		}
		line++
	}

	for _, cw := range columnWidths {
		if err := f.SetColWidth(SheetName, cw.column, cw.column, cw.width); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", cw.column, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header row: %w", err)
	}

	return nil
}

func writeSeparator(f *excelize.File, line int, file string, st styles) error {
	start, end := cell(1, line), cell(len(Headers), line)
	if err := f.SetCellValue(SheetName, start, file); err != nil {
		return fmt.Errorf("failed to write separator for %s: %w", file, err)
	}
	if err := f.MergeCell(SheetName, start, end); err != nil {
		return fmt.Errorf("failed to merge separator for %s: %w", file, err)
	}
	return f.SetCellStyle(SheetName, start, end, st.separator)
}

func writeRow(f *excelize.File, line int, r nomenclature.Row, st styles) error {
	values := []interface{}{nil, r.Nomenclature, number(r.Quantity), number(r.Mass), r.Manufacturer}
	if err := f.SetSheetRow(SheetName, cell(1, line), &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", line, err)
	}

	if err := f.SetCellStyle(SheetName, cell(1, line), cell(1, line), st.centered); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, cell(2, line), cell(2, line), st.text); err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, cell(3, line), cell(len(Headers), line), st.centered)
}

// number returns d as a float64 for a numeric cell, or nil for an empty one.
func number(d decimal.NullDecimal) interface{} {
	if !d.Valid {
		return nil
	}
	return d.Decimal.InexactFloat64()
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

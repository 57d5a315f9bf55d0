package pdfextract

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"exmuzzy/pdf-spec/internal/logging"
	"exmuzzy/pdf-spec/internal/parsererror"

	"github.com/ledongthuc/pdf"
)

const (
	// pointsPerColumn converts a glyph's X position in points into a text column.
	pointsPerColumn = 4.5
	// Gaps wider than columnGap font sizes start a new table cell.
	columnGap = 1.0
	// Gaps wider than wordGap font sizes become a single space.
	wordGap         = 0.15
	defaultFontSize = 10.0
)

// Native extracts text in pure Go by laying positioned glyph runs out on a character grid.
// It needs no external tools but is less exact than pdftotext on complex tables.
type Native struct {
	logger logging.Logger
}

// NewNative creates a Native extractor.
func NewNative(logger logging.Logger) *Native {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Native{logger: logger}
}

// Name implements Extractor.
func (n *Native) Name() string { return "native" }

// ExtractText reads every page of the PDF and rebuilds its lines.
func (n *Native) ExtractText(ctx context.Context, pdfPath string) (text string, err error) {
	// The reader panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			err = &parsererror.DataExtractionError{
				FilePath:  pdfPath,
				Extractor: n.Name(),
				Reason:    "malformed PDF",
				Err:       fmt.Errorf("%v", r),
			}
		}
	}()

	f, reader, err := pdf.Open(pdfPath)
	if err != nil {
		return "", &parsererror.InvalidFormatError{
			FilePath:       pdfPath,
			ExpectedFormat: "PDF",
			Msg:            err.Error(),
		}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			n.logger.WithError(cerr).Warn("Failed to close PDF file",
				logging.Field{Key: logging.FieldFile, Value: pdfPath})
		}
	}()

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", &parsererror.DataExtractionError{
				FilePath:  pdfPath,
				Extractor: n.Name(),
				Reason:    fmt.Sprintf("page %d", i),
				Err:       err,
			}
		}
		pages = append(pages, layoutPage(rows))
	}

	n.logger.Debug("Extracted PDF text",
		logging.Field{Key: logging.FieldFile, Value: pdfPath},
		logging.Field{Key: logging.FieldCount, Value: len(pages)})

	return strings.Join(pages, PageSeparator), nil
}

// layoutPage renders rows top to bottom.
func layoutPage(rows pdf.Rows) string {
	sorted := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil {
			sorted = append(sorted, row)
		}
	}
	// PDF coordinates grow upwards.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position > sorted[j].Position
	})

	lines := make([]string, 0, len(sorted))
	for _, row := range sorted {
		lines = append(lines, layoutLine(row.Content))
	}
	return strings.Join(lines, "\n")
}

// layoutLine places the glyph runs of one row on a character grid so that
// cells of the same table column start at roughly the same offset.
func layoutLine(texts []pdf.Text) string {
	items := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if t.S != "" {
			items = append(items, t)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].X < items[j].X })

	var b strings.Builder
	col := 0
	prevEnd := 0.0
	for i, t := range items {
		target := int(math.Round(t.X / pointsPerColumn))
		fontSize := t.FontSize
		if fontSize <= 0 {
			fontSize = defaultFontSize
		}

		switch {
		case i == 0:
			col = pad(&b, col, target)
		case t.X-prevEnd > fontSize*columnGap:
			col = pad(&b, col, max(target, col+2))
		case t.X-prevEnd > fontSize*wordGap:
			b.WriteByte(' ')
			col++
		}

		b.WriteString(t.S)
		col += utf8.RuneCountInString(t.S)
		prevEnd = t.X + t.W
	}

	return strings.TrimRight(b.String(), " ")
}

func pad(b *strings.Builder, col, target int) int {
	for col < target {
		b.WriteByte(' ')
		col++
	}
	return col
}

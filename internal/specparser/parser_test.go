package specparser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"exmuzzy/pdf-spec/internal/logging"
	"exmuzzy/pdf-spec/internal/nomenclature"
	"exmuzzy/pdf-spec/internal/parsererror"
	"exmuzzy/pdf-spec/internal/pdfextract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flangePage() string {
	return strings.Join([]string{
		at(0, "Поз.", 8, "Наименование", 40, "Кол.", 50, "Завод изготовитель"),
		at(0, "1", 8, "Фланец стальной", 40, "2", 50, "Завод ТПК"),
	}, "\n")
}

func specificationText() string {
	return strings.Join([]string{
		strings.Join(specificationPage(), "\n"),
		flangePage(),
		"Примечания\n1. Трубы укладывать на песчаное основание.",
	}, pdfextract.PageSeparator)
}

func TestParseText(t *testing.T) {
	rows := ParseText("ВК-1", specificationText(), nomenclature.DefaultRules())
	require.Len(t, rows, 5)

	assert.Equal(t, "ВК-1", rows[0].File)
	assert.Equal(t, "Труба ПЭ100 SDR17 160х9,5 ГОСТ 18599-2001", rows[0].Nomenclature)
	require.True(t, rows[0].Quantity.Valid)
	assert.Equal(t, "120", rows[0].Quantity.Decimal.String())
	require.True(t, rows[0].Mass.Valid)
	assert.Equal(t, "4.31", rows[0].Mass.Decimal.String())
	assert.Equal(t, "Полипластик", rows[0].Manufacturer)

	assert.Equal(t, "Отвод 90° ПЭ100 SDR17 d160", rows[1].Nomenclature)
	assert.Equal(t, "4", rows[1].Quantity.Decimal.String())
	assert.False(t, rows[1].Mass.Valid, "fittings carry no mass")

	assert.Equal(t, "Футляр из трубы ПЭ100 SDR17 ∅160х23,7", rows[2].Nomenclature)
	assert.Equal(t, "12.5", rows[2].Quantity.Decimal.String())
	assert.Equal(t, "9.74", rows[2].Mass.Decimal.String())

	assert.Equal(t, "Муфта электросварная", rows[3].Nomenclature)
	assert.False(t, rows[3].Quantity.Valid)
	assert.Empty(t, rows[3].Manufacturer)

	assert.Equal(t, "Фланец стальной", rows[4].Nomenclature)
	assert.Equal(t, "2", rows[4].Quantity.Decimal.String())
	assert.Equal(t, "Завод ТПК", rows[4].Manufacturer)
}

func TestParseText_WrappedPipeRow(t *testing.T) {
	text := strings.Join([]string{
		at(0, "Поз.", 8, "Наименование", 52, "Завод изготовитель", 76, "Кол."),
		at(0, "1", 8, "Труба ПЭ100 SDR17"),
		at(8, "160х9,5 ГОСТ 18599", 52, "Полипластик", 76, "120"),
		at(8, "-2001"),
	}, "\n")

	rows := ParseText("ВК-2", text, nomenclature.DefaultRules())
	require.Len(t, rows, 1)
	assert.Equal(t, "Труба ПЭ100 SDR17 160х9,5 ГОСТ 18599 -2001", rows[0].Nomenclature)
	require.True(t, rows[0].Quantity.Valid)
	assert.Equal(t, "120", rows[0].Quantity.Decimal.String())
	require.True(t, rows[0].Mass.Valid)
	assert.Equal(t, "4.31", rows[0].Mass.Decimal.String())
	assert.Equal(t, "Полипластик", rows[0].Manufacturer)
}

func TestParseText_NoTable(t *testing.T) {
	assert.Empty(t, ParseText("x", "", nomenclature.DefaultRules()))
	assert.Empty(t, ParseText("x", "Примечания\n\f\n", nomenclature.DefaultRules()))
}

func TestParseText_CustomRules(t *testing.T) {
	rules := nomenclature.DefaultRules()
	rules.FittingKeywords = []string{"задвижка"}

	rows := ParseText("x", strings.Join(specificationPage(), "\n"), rules)

	var names []string
	for _, r := range rows {
		names = append(names, r.Nomenclature)
	}
	assert.Equal(t, []string{
		"Труба ПЭ100 SDR17 160х9,5 ГОСТ 18599-2001",
		"Задвижка клиновая",
		"Футляр из трубы ПЭ100 SDR17 ∅160х23,7",
	}, names)
}

func TestParser_ParseFile(t *testing.T) {
	mock := pdfextract.NewMockExtractor(flangePage(), nil)
	p := New(mock, nomenclature.DefaultRules(), logging.NewMockLogger())

	rows, err := p.ParseFile(context.Background(), filepath.Join("pdf", "Лист 3.pdf"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Лист 3", rows[0].File)

	mock.MockErr = &parsererror.DataExtractionError{FilePath: "pdf/Лист 3.pdf", Extractor: "mock", Reason: "broken"}
	_, err = p.ParseFile(context.Background(), filepath.Join("pdf", "Лист 3.pdf"))
	var extractErr *parsererror.DataExtractionError
	assert.True(t, errors.As(err, &extractErr))
}

func TestParser_ParseDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.PDF", "c.pdf", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF"), 0o600))
	}

	mock := pdfextract.NewMockExtractor("", nil)
	mock.ByFile = map[string]string{
		filepath.Join(dir, "a.PDF"): flangePage(),
		filepath.Join(dir, "c.pdf"): specificationText(),
	}
	mock.ErrByFile = map[string]error{
		filepath.Join(dir, "b.pdf"): errors.New("damaged xref table"),
	}
	logger := logging.NewMockLogger()
	p := New(mock, nomenclature.DefaultRules(), logger)

	rows, err := p.ParseDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.PDF"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(dir, "c.pdf"),
	}, mock.Calls, "PDFs are processed in name order")

	require.Len(t, rows, 6)
	assert.Equal(t, "a", rows[0].File)
	for _, r := range rows[1:] {
		assert.Equal(t, "c", r.File)
	}
	assert.True(t, logger.HasEntry("WARN", "Failed to process file"))
}

func TestParser_ParseDirMissing(t *testing.T) {
	p := New(pdfextract.NewMockExtractor("", nil), nomenclature.DefaultRules(), logging.NewMockLogger())

	_, err := p.ParseDir(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestParser_ParseDirCancelled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("%PDF"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := pdfextract.NewMockExtractor(flangePage(), nil)
	p := New(mock, nomenclature.DefaultRules(), logging.NewMockLogger())

	_, err := p.ParseDir(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, mock.Calls)
}

func TestParser_ParseFileWarnsOnUnreadableQuantity(t *testing.T) {
	page := strings.Join([]string{
		at(0, "Поз.", 8, "Наименование", 40, "Кол.", 52, "Завод изготовитель"),
		at(0, "1", 8, "Фланец стальной", 40, "по месту", 52, "Завод ТПК"),
	}, "\n")
	logger := logging.NewMockLogger()
	p := New(pdfextract.NewMockExtractor(page, nil), nomenclature.DefaultRules(), logger)

	rows, err := p.ParseFile(context.Background(), "a.pdf")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Quantity.Valid)
	assert.Equal(t, "Завод ТПК", rows[0].Manufacturer)
	assert.True(t, logger.HasEntry("WARN", "Unrecognised quantity"))
}

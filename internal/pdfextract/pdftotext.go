package pdfextract

import (
	"bytes"
	"context"
	"strings"

	"exmuzzy/pdf-spec/internal/logging"
	"exmuzzy/pdf-spec/internal/parsererror"
)

// Pdftotext extracts text with the poppler pdftotext command in -layout mode,
// which keeps table columns aligned with runs of spaces.
type Pdftotext struct {
	binPath string
	logger  logging.Logger
}

// NewPdftotext creates a Pdftotext extractor. If binPath is empty, "pdftotext" is used.
func NewPdftotext(binPath string, logger logging.Logger) *Pdftotext {
	if binPath == "" {
		binPath = "pdftotext"
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Pdftotext{binPath: binPath, logger: logger}
}

// Name implements Extractor.
func (p *Pdftotext) Name() string { return "pdftotext" }

// ExtractText runs pdftotext -layout -enc UTF-8 on the PDF and returns its stdout.
func (p *Pdftotext) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	cmd := execCommand(ctx, p.binPath, "-layout", "-enc", "UTF-8", pdfPath, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		p.logger.WithError(err).Debug("pdftotext failed",
			logging.Field{Key: logging.FieldFile, Value: pdfPath})
		return "", &parsererror.DataExtractionError{
			FilePath:  pdfPath,
			Extractor: p.Name(),
			Reason:    strings.TrimSpace(stderr.String()),
			Err:       err,
		}
	}

	return stdout.String(), nil
}

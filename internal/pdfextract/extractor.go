// Package pdfextract turns PDF pages into layout-preserving plain text.
// Pages are separated by a form feed, the way pdftotext writes them.
package pdfextract

import (
	"context"
	"fmt"

	"exmuzzy/pdf-spec/internal/logging"
)

// PageSeparator separates pages in extracted text.
const PageSeparator = "\f"

// Extractor defines the interface for extracting layout text from PDF files.
type Extractor interface {
	// ExtractText extracts the text of every page of the PDF at pdfPath.
	ExtractText(ctx context.Context, pdfPath string) (string, error)
	// Name identifies the extractor in logs and errors.
	Name() string
}

// New returns the extractor registered under name ("pdftotext" or "native").
func New(name, pdftotextPath string, logger logging.Logger) (Extractor, error) {
	switch name {
	case "pdftotext", "":
		return NewPdftotext(pdftotextPath, logger), nil
	case "native":
		return NewNative(logger), nil
	default:
		return nil, fmt.Errorf("unknown extractor %q", name)
	}
}

// MockExtractor implements Extractor for testing purposes.
// It returns predefined text or errors per file, falling back to MockText and MockErr.
type MockExtractor struct {
	MockText  string
	ByFile    map[string]string
	MockErr   error
	ErrByFile map[string]error
	Calls     []string
}

// NewMockExtractor creates a new MockExtractor with the given mock data.
func NewMockExtractor(mockText string, mockErr error) *MockExtractor {
	return &MockExtractor{
		MockText: mockText,
		MockErr:  mockErr,
	}
}

// ExtractText returns the predefined mock text or error.
func (e *MockExtractor) ExtractText(_ context.Context, pdfPath string) (string, error) {
	e.Calls = append(e.Calls, pdfPath)
	if err, ok := e.ErrByFile[pdfPath]; ok {
		return "", err
	}
	if e.MockErr != nil {
		return "", e.MockErr
	}
	if text, ok := e.ByFile[pdfPath]; ok {
		return text, nil
	}
	return e.MockText, nil
}

// Name implements Extractor.
func (e *MockExtractor) Name() string { return "mock" }

// Package parsererror defines the error types returned by the native specification parser.
package parsererror

import "fmt"

// ParseError represents a value that could not be parsed from a specification table
type ParseError struct {
	File  string
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.File, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected format, e.g. a file with a .pdf extension that is not a PDF.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// DataExtractionError represents an error where text could not be extracted
// from a file, even if the file format itself might be valid.
type DataExtractionError struct {
	FilePath  string
	Extractor string
	Reason    string
	Err       error
}

func (e *DataExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data extraction failed in file '%s' using %s: %s: %v",
			e.FilePath, e.Extractor, e.Reason, e.Err)
	}
	return fmt.Sprintf("data extraction failed in file '%s' using %s: %s",
		e.FilePath, e.Extractor, e.Reason)
}

func (e *DataExtractionError) Unwrap() error {
	return e.Err
}

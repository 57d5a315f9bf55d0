// Package validation checks user-supplied paths and options before any work starts.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// InputDirectory checks that path exists and is a directory.
func InputDirectory(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input directory does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking input directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path %s is not a directory", path)
	}
	return nil
}

// WorkbookPath checks that path names an .xlsx file and does not point at a directory.
func WorkbookPath(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return fmt.Errorf("unsupported workbook extension: %s. The output must be an .xlsx file", path)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("workbook path %s is a directory", path)
	}
	return nil
}

// Delimiter checks that s is a single character usable as a CSV field separator.
func Delimiter(s string) error {
	if utf8.RuneCountInString(s) != 1 {
		return fmt.Errorf("csv delimiter must be a single character: %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return fmt.Errorf("csv delimiter %q is not allowed", s)
	}
	return nil
}

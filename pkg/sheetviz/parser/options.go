// Package parser reads CSV and Excel files into rows of typed cells.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the detected input format.
type Format string

const (
	// FormatCSV is comma (or semicolon, or tab) separated text.
	FormatCSV Format = "csv"
	// FormatWorkbook is an Excel workbook.
	FormatWorkbook Format = "workbook"
)

// DetectFormat picks the format from the file extension, ignoring case.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xls":
		return FormatWorkbook, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Options configures parsing.
type Options struct {
	// Sheet selects a workbook sheet by name. Empty means the first sheet.
	Sheet string
	// Delimiter is the CSV field separator. Zero auto-detects among ',', ';' and '\t'.
	Delimiter rune
}

// DefaultOptions returns default parsing options.
func DefaultOptions() Options {
	return Options{}
}

package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat indicates a file extension other than .xlsx, .xls or .csv.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrCorruptFile indicates the file could not be decoded.
	ErrCorruptFile = errors.New("corrupt file")
)

// ParseError represents a failure while decoding a file. It matches
// ErrCorruptFile as well as the underlying cause.
type ParseError struct {
	File  string
	Stage string // "read", "open", "sheet", "rows"
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %q (%s): %v", e.File, e.Stage, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrCorruptFile, e.Err}
}

func newParseError(file, stage string, err error) *ParseError {
	return &ParseError{
		File:  file,
		Stage: stage,
		Err:   err,
	}
}

package sheetviz

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/parser"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/remote"
)

var (
	// ErrEmptyDataset indicates the file parsed to zero rows.
	ErrEmptyDataset = models.ErrEmptyDataset

	// ErrUnsupportedFormat indicates the file extension is not .xlsx, .xls or .csv.
	ErrUnsupportedFormat = parser.ErrUnsupportedFormat

	// ErrCorruptFile indicates the parser could not decode the file.
	ErrCorruptFile = parser.ErrCorruptFile

	// ErrRemoteFailure indicates a backend call failed.
	ErrRemoteFailure = remote.ErrRemoteFailure

	// ErrNotFound indicates a dataset id absent from the session.
	ErrNotFound = errors.New("dataset not found")

	// ErrBusy indicates an ingestion is already in flight for the session.
	ErrBusy = errors.New("upload already in progress")

	// ErrNoRemote indicates a backend call on a session without an API URL.
	ErrNoRemote = errors.New("no remote configured")
)

// IngestError represents a failure while turning a file into a dataset.
type IngestError struct {
	File  string
	Stage string // "format", "read", "parse", "construct", "submit"
	Err   error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest error in %q (%s): %v", e.File, e.Stage, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

// NewIngestError creates a new IngestError.
func NewIngestError(file, stage string, err error) *IngestError {
	return &IngestError{
		File:  file,
		Stage: stage,
		Err:   err,
	}
}

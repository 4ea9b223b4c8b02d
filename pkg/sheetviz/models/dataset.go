package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"
)

// ErrEmptyDataset indicates the parsed input has no header row.
var ErrEmptyDataset = errors.New("empty dataset")

// DefaultPreviewRows is the number of rows shown in a data preview.
const DefaultPreviewRows = 10

// Dataset is one parsed spreadsheet snapshot. Headers and rows are fixed at
// construction; accessors hand out copies.
type Dataset struct {
	id         string
	name       string
	uploadedAt time.Time
	headers    []string
	rows       [][]Cell
	size       int64
}

// NewDataset builds a dataset from raw parsed rows. Row 0 becomes the header
// row (stringified), the remaining rows are kept verbatim.
func NewDataset(name string, size int64, raw [][]Cell) (*Dataset, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyDataset
	}

	headers := make([]string, len(raw[0]))
	for i, c := range raw[0] {
		headers[i] = c.String()
	}

	return RestoreDataset(uuid.NewString(), name, time.Now(), size, headers, raw[1:])
}

// RestoreDataset rebuilds a dataset whose identity and timestamp were
// assigned elsewhere, e.g. one fetched from remote storage.
func RestoreDataset(id, name string, uploadedAt time.Time, size int64, headers []string, rows [][]Cell) (*Dataset, error) {
	ds := &Dataset{
		id:         id,
		name:       name,
		uploadedAt: uploadedAt,
		size:       size,
	}
	if err := deepcopy.Copy(&ds.headers, headers); err != nil {
		return nil, err
	}
	if err := deepcopy.Copy(&ds.rows, rows); err != nil {
		return nil, err
	}
	if ds.headers == nil {
		ds.headers = []string{}
	}
	if ds.rows == nil {
		ds.rows = [][]Cell{}
	}
	return ds, nil
}

// ID returns the dataset identifier.
func (d *Dataset) ID() string { return d.id }

// Name returns the original file name.
func (d *Dataset) Name() string { return d.name }

// UploadedAt returns the creation time.
func (d *Dataset) UploadedAt() time.Time { return d.uploadedAt }

// Size returns the original file size in bytes.
func (d *Dataset) Size() int64 { return d.size }

// NumRows returns the number of data rows (excluding the header row).
func (d *Dataset) NumRows() int { return len(d.rows) }

// NumColumns returns the number of headers.
func (d *Dataset) NumColumns() int { return len(d.headers) }

// Headers returns a copy of the header row.
func (d *Dataset) Headers() []string {
	out := make([]string, len(d.headers))
	copy(out, d.headers)
	return out
}

// Row returns a copy of data row i, or nil when i is out of range.
func (d *Dataset) Row(i int) []Cell {
	if i < 0 || i >= len(d.rows) {
		return nil
	}
	out := make([]Cell, len(d.rows[i]))
	copy(out, d.rows[i])
	return out
}

// Rows returns a copy of all data rows.
func (d *Dataset) Rows() [][]Cell {
	return d.Preview(len(d.rows))
}

// Preview returns copies of at most n leading rows.
func (d *Dataset) Preview(n int) [][]Cell {
	if n > len(d.rows) {
		n = len(d.rows)
	}
	if n < 0 {
		n = 0
	}
	out := make([][]Cell, n)
	for i := 0; i < n; i++ {
		out[i] = d.Row(i)
	}
	return out
}

// Cell returns the value at (row, col). Positions past the end of a short
// row, or outside the dataset, read as null.
func (d *Dataset) Cell(row, col int) Cell {
	if row < 0 || row >= len(d.rows) || col < 0 || col >= len(d.rows[row]) {
		return Null()
	}
	return d.rows[row][col]
}

// HeaderIndex returns the index of the first header equal to name, or -1.
func (d *Dataset) HeaderIndex(name string) int {
	for i, h := range d.headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Stats summarizes a dataset for display.
type Stats struct {
	// Rows is the number of data rows.
	Rows int `json:"rows"`
	// Columns is the number of headers.
	Columns int `json:"columns"`
	// CompletePercent is the rounded share of rows with no blank cells.
	CompletePercent int `json:"complete_percent"`
}

// Stats computes display statistics. A row is complete when it covers every
// header and none of its cells are blank.
func (d *Dataset) Stats() Stats {
	s := Stats{Rows: len(d.rows), Columns: len(d.headers)}
	if s.Rows == 0 {
		return s
	}
	complete := 0
	for _, row := range d.rows {
		if isCompleteRow(row, len(d.headers)) {
			complete++
		}
	}
	s.CompletePercent = (complete*100 + s.Rows/2) / s.Rows
	return s
}

func isCompleteRow(row []Cell, width int) bool {
	if len(row) < width {
		return false
	}
	for _, c := range row {
		if c.IsBlank() {
			return false
		}
	}
	return true
}

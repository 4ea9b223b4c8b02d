package parser

import (
	"io"

	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
)

// Parse reads a CSV or workbook file into rows of cells. The format is taken
// from name's extension and checked before r is read.
func Parse(name string, r io.Reader, opts Options) ([][]models.Cell, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV:
		return ParseCSV(name, r, opts.Delimiter)
	default:
		return ParseWorkbook(name, r, opts.Sheet)
	}
}

package parser

import (
	"fmt"
	"io"

	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
	"github.com/xuri/excelize/v2"
)

// ParseWorkbook reads one sheet of an Excel workbook into rows of cells,
// cropped to the sheet's used range. An empty sheet name selects the first
// sheet.
func ParseWorkbook(name string, r io.Reader, sheet string) ([][]models.Cell, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, newParseError(name, "open", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, newParseError(name, "sheet", fmt.Errorf("workbook has no sheets"))
		}
		sheet = sheets[0]
	}

	rows, err := ExtractCells(f, sheet)
	if err != nil {
		return nil, newParseError(name, "rows", err)
	}

	return cropToUsedRange(rows), nil
}

// cropToUsedRange drops leading and trailing blank rows and columns, so the
// first row of the result is the first row holding data.
func cropToUsedRange(rows [][]models.Cell) [][]models.Cell {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return nil
	}

	result := make([][]models.Cell, 0, maxRow-minRow+1)
	for rowIdx := minRow; rowIdx <= maxRow; rowIdx++ {
		row := rows[rowIdx]
		end := len(row)
		if end > maxCol+1 {
			end = maxCol + 1
		}
		if minCol >= end {
			result = append(result, []models.Cell{})
			continue
		}
		cropped := make([]models.Cell, end-minCol)
		copy(cropped, row[minCol:end])
		result = append(result, cropped)
	}
	return result
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]models.Cell) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if !cell.IsEmpty() {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

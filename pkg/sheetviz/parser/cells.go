package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
	"github.com/xuri/excelize/v2"
)

// ExtractCells extracts typed cell data from a sheet. Rows are returned as
// stored; trailing empty cells are not included.
func ExtractCells(f *excelize.File, sheetName string) ([][]models.Cell, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	result := make([][]models.Cell, len(rows))
	for rowIdx, row := range rows {
		cells := make([]models.Cell, len(row))
		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			cells[colIdx] = typedValue(cellType, cellValue)
		}
		result[rowIdx] = cells
	}

	return result, nil
}

// typedValue converts a raw workbook value using the stored cell type.
func typedValue(cellType excelize.CellType, raw string) models.Cell {
	switch cellType {
	case excelize.CellTypeBool:
		return models.Bool(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return models.Str(raw)
	default:
		return parseValue(raw)
	}
}

// parseValue attempts to parse a string value as a number or boolean.
// Returns an empty cell for "", a number for finite numeric text, a boolean
// for TRUE/FALSE, or the original string.
func parseValue(s string) models.Cell {
	if s == "" {
		return models.Null()
	}
	// Try number
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return models.Num(f)
	}
	// Try boolean
	switch strings.ToUpper(s) {
	case "TRUE":
		return models.Bool(true)
	case "FALSE":
		return models.Bool(false)
	}
	// Return as string
	return models.Str(s)
}

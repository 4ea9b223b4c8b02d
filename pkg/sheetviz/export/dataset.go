package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
)

// WriteDataset writes ds in a data format (Parquet or CSV).
func WriteDataset(w io.Writer, format Format, ds *models.Dataset) error {
	switch format {
	case FormatParquet:
		return WriteParquet(w, ds)
	case FormatCSV:
		return WriteCSV(w, ds)
	default:
		return fmt.Errorf("format %q is not a data format", format)
	}
}

// WriteCSV writes the header row followed by every data row.
func WriteCSV(w io.Writer, ds *models.Dataset) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(ds.Headers()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range ds.Rows() {
		record := make([]string, len(row))
		for i, c := range row {
			record[i] = c.String()
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteParquet writes ds as a Snappy-compressed Parquet file. Columns whose
// non-blank cells all coerce to numbers become nullable float64; others
// become nullable strings. Columns beyond the header row are dropped.
func WriteParquet(w io.Writer, ds *models.Dataset) error {
	table := datasetTable(ds)
	defer table.Release()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(table.Schema(), w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	chunk := table.NumRows()
	if chunk < 1 {
		chunk = 1
	}
	if err := writer.WriteTable(table, chunk); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}
	return writer.Close()
}

// datasetTable converts ds into an Arrow table.
func datasetTable(ds *models.Dataset) arrow.Table {
	pool := memory.NewGoAllocator()
	names := FieldNames(ds.Headers())

	fields := make([]arrow.Field, len(names))
	columns := make([]arrow.Column, len(names))
	for col, name := range names {
		numeric := isNumericOnly(ds, col)
		field := arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: true}
		if numeric {
			field.Type = arrow.PrimitiveTypes.Float64
		}
		fields[col] = field

		builder := array.NewBuilder(pool, field.Type)
		for row := 0; row < ds.NumRows(); row++ {
			appendCell(builder, ds.Cell(row, col), numeric)
		}
		arr := builder.NewArray()
		builder.Release()

		chunked := arrow.NewChunked(field.Type, []arrow.Array{arr})
		arr.Release()
		columns[col] = *arrow.NewColumn(field, chunked)
		chunked.Release()
	}

	schema := arrow.NewSchema(fields, nil)
	table := array.NewTable(schema, columns, int64(ds.NumRows()))
	for i := range columns {
		columns[i].Release()
	}
	return table
}

func appendCell(builder array.Builder, c models.Cell, numeric bool) {
	if c.IsBlank() {
		builder.AppendNull()
		return
	}
	if numeric {
		v, _ := c.Float()
		builder.(*array.Float64Builder).Append(v)
		return
	}
	builder.(*array.StringBuilder).Append(c.String())
}

// isNumericOnly reports whether every non-blank cell of column col coerces
// to a number and at least one does.
func isNumericOnly(ds *models.Dataset, col int) bool {
	seen := false
	for row := 0; row < ds.NumRows(); row++ {
		c := ds.Cell(row, col)
		if c.IsBlank() {
			continue
		}
		if _, ok := c.Float(); !ok {
			return false
		}
		seen = true
	}
	return seen
}

// FieldNames makes header names usable as column names: empty headers
// become "column_<n>" and repeats get a "_<k>" suffix.
func FieldNames(headers []string) []string {
	used := make(map[string]bool, len(headers))
	names := make([]string, len(headers))
	for i, h := range headers {
		name := h
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		base := name
		for k := 2; used[name]; k++ {
			name = fmt.Sprintf("%s_%d", base, k)
		}
		used[name] = true
		names[i] = name
	}
	return names
}

package sheetviz

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/chart"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/parser"
	"github.com/xuri/excelize/v2"
)

func TestLoadFileWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Month")
	f.SetCellValue(sheetName, "B1", "Revenue")
	f.SetCellValue(sheetName, "A2", "Jan")
	f.SetCellValue(sheetName, "B2", 100)
	f.SetCellValue(sheetName, "A3", "Feb")
	f.SetCellValue(sheetName, "B3", 150)

	path := filepath.Join(t.TempDir(), "revenue.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	ds, err := LoadFile(path, parser.DefaultOptions())
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if ds.Name() != "revenue.xlsx" {
		t.Errorf("Expected name revenue.xlsx, got %q", ds.Name())
	}
	if got := ds.Headers(); len(got) != 2 || got[0] != "Month" || got[1] != "Revenue" {
		t.Errorf("Unexpected headers %v", got)
	}
	if ds.NumRows() != 2 {
		t.Errorf("Expected 2 rows, got %d", ds.NumRows())
	}
	if numeric := chart.NumericColumns(ds); len(numeric) != 1 || numeric[0] != "Revenue" {
		t.Errorf("Unexpected numeric columns %v", numeric)
	}
}

func TestLoadRejectsFormatBeforeReading(t *testing.T) {
	_, err := Load("data.json", failingReader{}, 0, parser.DefaultOptions())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "data.json") {
		t.Errorf("Expected file name in %q", err.Error())
	}
}

func TestLoadFileUnsupportedDoesNotOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.pdf")
	_, err := LoadFile(path, parser.DefaultOptions())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Expected ErrUnsupportedFormat, got %v", err)
	}
	if errors.Is(err, os.ErrNotExist) {
		t.Error("Expected the format check to run before opening")
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	ds, err := Load("h.csv", strings.NewReader("a,b\n"), 4, parser.DefaultOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ds.NumRows() != 0 || ds.NumColumns() != 2 {
		t.Errorf("Unexpected shape %dx%d", ds.NumRows(), ds.NumColumns())
	}
	if ds.Cell(0, 0) != models.Null() {
		t.Error("Expected out of range cell to be null")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read must not be called")
}

package sheetviz

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/parser"
)

// Load parses r as the file called name and builds a dataset from it. The
// format is checked before r is read.
func Load(name string, r io.Reader, size int64, opts parser.Options) (*models.Dataset, error) {
	if _, err := parser.DetectFormat(name); err != nil {
		return nil, NewIngestError(name, "format", err)
	}

	rows, err := parser.Parse(name, r, opts)
	if err != nil {
		return nil, NewIngestError(name, "parse", err)
	}

	ds, err := models.NewDataset(name, size, rows)
	if err != nil {
		return nil, NewIngestError(name, "construct", err)
	}
	return ds, nil
}

// LoadFile loads the file at path. The dataset is named after the file's
// base name.
func LoadFile(path string, opts parser.Options) (*models.Dataset, error) {
	name := filepath.Base(path)
	if _, err := parser.DetectFormat(name); err != nil {
		return nil, NewIngestError(name, "format", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, NewIngestError(name, "read", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, NewIngestError(name, "read", err)
	}

	return Load(name, f, info.Size(), opts)
}

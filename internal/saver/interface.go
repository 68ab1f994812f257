package saver

import (
	"path/filepath"
	"strings"

	"marcap/internal/model"
)

// FrameSaver persists one query result frame to a file.
// The CLI picks an implementation by output extension; tests use it to build year files.
type FrameSaver interface {
	Save(frame model.Frame, path string) error
	Extension() string
}

// NewFrameSaver creates implementation by format (csv, csv.gz, parquet, json).
// Returns nil if format not supported.
func NewFrameSaver(format string) FrameSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "csv.gz", "gz":
		return CSVSaver{Gzip: true}
	case "parquet":
		return ParquetSaver{}
	case "json":
		return JSONSaver{}
	default:
		return nil
	}
}

// ForPath picks a FrameSaver from the extension of path. Returns nil if not supported.
func ForPath(path string) FrameSaver {
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, ".csv.gz") {
		return CSVSaver{Gzip: true}
	}
	return NewFrameSaver(strings.TrimPrefix(filepath.Ext(name), "."))
}

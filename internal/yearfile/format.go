package yearfile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"marcap/internal/model"
)

var (
	// ErrUnknownFormat is returned for a format name with no reader.
	ErrUnknownFormat = errors.New("unknown year file format")
	// ErrMissingColumn is returned when a year file lacks a required column.
	ErrMissingColumn = errors.New("missing column")
)

// Reader reads records of one year file in batches.
// Read fills buf and returns the number of records read. A call may return n > 0
// together with io.EOF; callers must consume the n records before checking err.
// ExtraColumns lists the stored columns outside the fixed schema in file order;
// their values are in Record.Extra.
type Reader interface {
	Read(buf []model.Record) (int, error)
	ExtraColumns() []string
	Close() error
}

// Format opens year files of one on-disk encoding.
type Format interface {
	Extension() string
	Open(path string) (Reader, error)
}

// NewFormat returns the Format for name (csv.gz, csv, parquet).
func NewFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv.gz", "gz":
		return CSVFormat{Gzip: true}, nil
	case "csv":
		return CSVFormat{}, nil
	case "parquet":
		return ParquetFormat{}, nil
	default:
		return nil, fmt.Errorf("%w %q (use: csv.gz, csv, parquet)", ErrUnknownFormat, name)
	}
}

// Path returns <dir>/marcap-<year>.<ext>.
func Path(dir string, year int, f Format) string {
	return filepath.Join(dir, fmt.Sprintf("marcap-%d.%s", year, f.Extension()))
}

package saver

import (
	"github.com/parquet-go/parquet-go"

	"marcap/internal/model"
)

// ParquetSaver writes frame records with the model.Record parquet schema.
// The schema is fixed, so frame.Columns does not affect the output and Record.Extra is not written.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(frame model.Frame, path string) error {
	return parquet.WriteFile(path, frame.Records)
}

package saver

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"marcap/internal/model"
)

// CSVSaver writes a frame as CSV with a header of frame.Columns, optionally gzip-compressed.
// Extra columns are written from Record.Extra.
type CSVSaver struct {
	Gzip bool
}

func (s CSVSaver) Extension() string {
	if s.Gzip {
		return "csv.gz"
	}
	return "csv"
}

func (s CSVSaver) Save(frame model.Frame, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var w io.Writer = f
	var zw *gzip.Writer
	if s.Gzip {
		zw = gzip.NewWriter(f)
		w = zw
	}
	if err := s.Write(w, frame); err != nil {
		return err
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return err
		}
	}
	return f.Close()
}

// Write encodes frame as plain CSV to w. Gzip is ignored.
func (CSVSaver) Write(w io.Writer, frame model.Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(frame.Columns); err != nil {
		return err
	}
	for i, r := range frame.Records {
		if err := cw.Write(model.Row(r, frame.Columns)); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

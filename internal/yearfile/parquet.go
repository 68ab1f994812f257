package yearfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"

	"marcap/internal/model"
)

// ParquetFormat reads year files with the model.Record parquet schema.
// Like the CSV reader it accepts the delta-ratio column under either spelling and
// keeps columns outside the schema as Record.Extra.
type ParquetFormat struct{}

func (ParquetFormat) Extension() string { return "parquet" }

func (ParquetFormat) Open(path string) (Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	// NewGenericReader panics on a bad file; OpenFile reports it as an error.
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}
	schema := pf.Schema()
	aliasRatio := false
	for _, c := range model.DateColumns {
		if _, ok := schema.Lookup(c); ok {
			continue
		}
		if c == model.ColChagesRatio {
			if _, ok := schema.Lookup(model.ColChangesRatio); ok {
				aliasRatio = true
				continue
			}
		}
		file.Close()
		return nil, fmt.Errorf("%s: %w %s", path, ErrMissingColumn, c)
	}

	r := &parquetReader{
		file:     file,
		rows:     parquet.NewGenericReader[model.Record](file),
		ratioCol: -1,
		extraCol: make(map[int]string),
	}
	for i, leaf := range schema.Columns() {
		if len(leaf) != 1 {
			continue
		}
		switch name := leaf[0]; {
		case aliasRatio && name == model.ColChangesRatio:
			r.ratioCol = i
		case !model.Known(name):
			r.extra = append(r.extra, name)
			r.extraCol[i] = name
		}
	}
	if r.ratioCol >= 0 || len(r.extra) > 0 {
		r.side = parquet.NewReader(file)
	}
	return r, nil
}

// parquetReader decodes the schema columns through rows. When the file stores the
// alias ratio column or extra columns, side reads the same rows untyped in lockstep.
type parquetReader struct {
	file     *os.File
	rows     *parquet.GenericReader[model.Record]
	side     *parquet.Reader
	sideBuf  []parquet.Row
	ratioCol int
	extra    []string
	extraCol map[int]string
}

func (r *parquetReader) ExtraColumns() []string { return r.extra }

// Read normalizes Date to its UTC calendar date.
func (r *parquetReader) Read(buf []model.Record) (int, error) {
	n, err := r.rows.Read(buf)
	for i := range buf[:n] {
		buf[i].Date = model.Day(buf[i].Date.UTC())
	}
	if r.side != nil && n > 0 {
		if serr := r.readSide(buf[:n]); serr != nil {
			return 0, serr
		}
	}
	return n, err
}

func (r *parquetReader) readSide(buf []model.Record) error {
	if cap(r.sideBuf) < len(buf) {
		r.sideBuf = make([]parquet.Row, len(buf))
	}
	rows := r.sideBuf[:len(buf)]
	for m := 0; m < len(rows); {
		k, err := r.side.ReadRows(rows[m:])
		m += k
		if err != nil && m < len(rows) {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return fmt.Errorf("parquet side columns: %w", err)
		}
		if k == 0 && err == nil {
			return fmt.Errorf("parquet side columns: no progress after %d of %d rows", m, len(rows))
		}
	}
	for i, row := range rows {
		if len(r.extra) > 0 {
			buf[i].Extra = make(map[string]string, len(r.extra))
			for _, name := range r.extra {
				buf[i].Extra[name] = ""
			}
		}
		for _, v := range row {
			col := v.Column()
			if col == r.ratioCol {
				f, err := parquetFloat(v)
				if err != nil {
					return fmt.Errorf("column %s: %w", model.ColChangesRatio, err)
				}
				buf[i].ChangesRatio = f
				continue
			}
			if name, ok := r.extraCol[col]; ok && !v.IsNull() {
				buf[i].Extra[name] = v.String()
			}
		}
	}
	return nil
}

// parquetFloat reads a numeric value; null is zero like an empty CSV cell.
func parquetFloat(v parquet.Value) (float64, error) {
	if v.IsNull() {
		return 0, nil
	}
	switch v.Kind() {
	case parquet.Double:
		return v.Double(), nil
	case parquet.Float:
		return float64(v.Float()), nil
	case parquet.Int32:
		return float64(v.Int32()), nil
	case parquet.Int64:
		return float64(v.Int64()), nil
	default:
		return strconv.ParseFloat(v.String(), 64)
	}
}

func (r *parquetReader) Close() error {
	err := r.rows.Close()
	if r.side != nil {
		if serr := r.side.Close(); err == nil {
			err = serr
		}
	}
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	return err
}

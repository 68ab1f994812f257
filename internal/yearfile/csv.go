package yearfile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"marcap/internal/model"
)

// CSVFormat reads year files as CSV with a header row, optionally gzip-compressed.
type CSVFormat struct {
	Gzip bool
}

func (f CSVFormat) Extension() string {
	if f.Gzip {
		return "csv.gz"
	}
	return "csv"
}

func (f CSVFormat) Open(path string) (Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := &csvReader{closers: []io.Closer{file}}
	var src io.Reader = bufio.NewReaderSize(file, 1<<16)
	if f.Gzip {
		zr, err := gzip.NewReader(src)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("gzip %s: %w", path, err)
		}
		r.closers = append([]io.Closer{zr}, r.closers...)
		src = zr
	}
	r.csv = csv.NewReader(src)
	r.csv.ReuseRecord = true

	header, err := r.csv.Read()
	if err != nil {
		r.Close()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header %s: empty file", path)
		}
		return nil, fmt.Errorf("read header %s: %w", path, err)
	}
	r.cols, err = indexColumns(header)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.line = 1
	return r, nil
}

type csvReader struct {
	closers []io.Closer
	csv     *csv.Reader
	cols    columnIndex
	line    int
	eof     bool
}

func (r *csvReader) Read(buf []model.Record) (int, error) {
	if r.eof {
		return 0, io.EOF
	}
	n := 0
	for n < len(buf) {
		row, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			r.eof = true
			break
		}
		r.line++
		if err != nil {
			return n, err
		}
		rec, err := r.cols.parse(row)
		if err != nil {
			return n, fmt.Errorf("line %d: %w", r.line, err)
		}
		buf[n] = rec
		n++
	}
	if n == 0 && r.eof {
		return 0, io.EOF
	}
	return n, nil
}

func (r *csvReader) ExtraColumns() []string { return r.cols.extra }

func (r *csvReader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// columnIndex maps each required column to its position in the header,
// and keeps the remaining columns in header order.
type columnIndex struct {
	pos      map[string]int
	extra    []string
	extraPos []int
}

// indexColumns accepts the delta-ratio column under either spelling.
func indexColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	var names []string
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[h]; !dup {
			pos[h] = i
			names = append(names, h)
		}
	}
	if _, ok := pos[model.ColChagesRatio]; !ok {
		if i, ok := pos[model.ColChangesRatio]; ok {
			pos[model.ColChagesRatio] = i
		}
	}
	ix := columnIndex{pos: make(map[string]int, len(model.DateColumns))}
	for _, c := range model.DateColumns {
		i, ok := pos[c]
		if !ok {
			return columnIndex{}, fmt.Errorf("%w %s", ErrMissingColumn, c)
		}
		ix.pos[c] = i
	}
	for _, h := range names {
		if h != "" && !model.Known(h) {
			ix.extra = append(ix.extra, h)
			ix.extraPos = append(ix.extraPos, pos[h])
		}
	}
	return ix, nil
}

func (ix columnIndex) parse(row []string) (model.Record, error) {
	p := rowParser{row: row, ix: ix}
	rec := model.Record{
		Code:          p.str(model.ColCode),
		Name:          p.str(model.ColName),
		Open:          p.decimal(model.ColOpen),
		High:          p.decimal(model.ColHigh),
		Low:           p.decimal(model.ColLow),
		Close:         p.decimal(model.ColClose),
		Volume:        p.integer(model.ColVolume),
		Amount:        p.integer(model.ColAmount),
		Changes:       p.decimal(model.ColChanges),
		ChangesRatio:  p.decimal(model.ColChagesRatio),
		Marcap:        p.integer(model.ColMarcap),
		Stocks:        p.integer(model.ColStocks),
		MarcapRatio:   p.decimal(model.ColMarcapRatio),
		ForeignShares: p.integer(model.ColForeignShares),
		ForeignRatio:  p.decimal(model.ColForeignRatio),
		Rank:          p.integer(model.ColRank),
	}
	rec.Date = p.date(model.ColDate)
	if len(ix.extra) > 0 {
		rec.Extra = make(map[string]string, len(ix.extra))
		for k, c := range ix.extra {
			rec.Extra[c] = p.at(ix.extraPos[k])
		}
	}
	return rec, p.err
}

// rowParser keeps the first conversion error of a row.
type rowParser struct {
	row []string
	ix  columnIndex
	err error
}

func (p *rowParser) cell(col string) string {
	return p.at(p.ix.pos[col])
}

func (p *rowParser) at(i int) string {
	if i >= len(p.row) {
		return ""
	}
	return strings.TrimSpace(p.row[i])
}

func (p *rowParser) fail(col, v string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("column %s value %q: %w", col, v, err)
	}
}

func (p *rowParser) str(col string) string {
	return p.cell(col)
}

func (p *rowParser) date(col string) time.Time {
	v := p.cell(col)
	t, err := model.ParseDate(v)
	if err != nil {
		p.fail(col, v, err)
	}
	return t
}

// decimal treats an empty cell as zero.
func (p *rowParser) decimal(col string) float64 {
	v := p.cell(col)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(col, v, err)
		return 0
	}
	return f
}

// integer accepts float-formatted integers ("123.0"); empty and NaN cells are zero.
func (p *rowParser) integer(col string) int64 {
	v := p.cell(col)
	if v == "" {
		return 0
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(col, v, err)
		return 0
	}
	if math.IsNaN(f) {
		return 0
	}
	return int64(f)
}

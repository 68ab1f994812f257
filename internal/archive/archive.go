package archive

import (
	"errors"
	"io"
	"iter"
	"log/slog"

	"marcap/internal/model"
	"marcap/internal/yearfile"
)

// DefaultChunkSize is the streaming batch size used when none is given.
const DefaultChunkSize = 100_000

// loadBatch is the read buffer size of a full (non-streaming) load.
const loadBatch = 8192

// Archive reads year files from one directory in one format.
// It holds no mutable state and may be shared between goroutines.
type Archive struct {
	dir    string
	format yearfile.Format
	log    *slog.Logger
}

// New creates an Archive over dir. A nil logger uses slog.Default().
func New(dir string, format yearfile.Format, logger *slog.Logger) *Archive {
	if logger == nil {
		logger = slog.Default()
	}
	return &Archive{dir: dir, format: format, log: logger}
}

// Dir returns the archive directory.
func (a *Archive) Dir() string { return a.dir }

// YearPath returns the path of the year file for year.
func (a *Archive) YearPath(year int) string {
	return yearfile.Path(a.dir, year, a.format)
}

// chunks returns a restartable sequence of batches of at most size records.
// The file is opened each time the sequence is ranged over and closed when it stops.
func (a *Archive) chunks(year, size int) iter.Seq2[Batch, error] {
	return a.chunksExtra(year, size, nil)
}

// chunksExtra is chunks that also stores the file's extra columns in *extra
// (when non-nil) once the file is open.
func (a *Archive) chunksExtra(year, size int, extra *[]string) iter.Seq2[Batch, error] {
	path := a.YearPath(year)
	return func(yield func(Batch, error) bool) {
		r, err := a.format.Open(path)
		if err != nil {
			yield(nil, err)
			return
		}
		defer r.Close()
		if extra != nil {
			*extra = r.ExtraColumns()
		}
		for {
			buf := make(Batch, size)
			n, err := r.Read(buf)
			if n > 0 && !yield(buf[:n:n], nil) {
				return
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
		}
	}
}

// readAll loads the whole year file and the names of its extra columns.
func (a *Archive) readAll(year int) ([]model.Record, []string, error) {
	var out []model.Record
	var extra []string
	for b, err := range a.chunksExtra(year, loadBatch, &extra) {
		if err != nil {
			return nil, nil, err
		}
		out = append(out, b...)
	}
	return out, extra, nil
}

// yearResult is the outcome of loading one year: Records when Err is nil, skipped otherwise.
type yearResult struct {
	Year    int
	Path    string
	Records []model.Record
	Extra   []string // stored columns outside model.DateColumns
	Err     error
}

func (r yearResult) Skipped() bool { return r.Err != nil }

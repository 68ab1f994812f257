package archive

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"marcap/internal/model"
	"marcap/internal/saver"
	"marcap/internal/slogx"
	"marcap/internal/yearfile"
)

var csvGz = yearfile.CSVFormat{Gzip: true}

func onDate(t *testing.T, s string) model.Record {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return model.Record{Date: d}
}

// rec builds a record on date s for code with the given rank.
func rec(t *testing.T, s, code string, rank int64) model.Record {
	t.Helper()
	r := onDate(t, s)
	r.Code = code
	r.Name = "name-" + code
	r.Rank = rank
	r.Close = float64(1000 * rank)
	r.ChangesRatio = 1.5
	r.Marcap = 1_000_000_000 / rank
	return r
}

// writeYear stores records as the year file of year in dir using format f.
func writeYear(t *testing.T, dir string, f yearfile.Format, year int, records ...model.Record) string {
	t.Helper()
	path := yearfile.Path(dir, year, f)
	s := saver.NewFrameSaver(f.Extension())
	require.NotNil(t, s)
	require.NoError(t, s.Save(model.Frame{Columns: model.DateColumns, Records: records}, path))
	return path
}

// fixtureArchive writes a two-year archive: late December 2017 and early January 2018.
// Records are stored out of rank order on purpose.
func fixtureArchive(t *testing.T, f yearfile.Format) *Archive {
	t.Helper()
	dir := t.TempDir()
	writeYear(t, dir, f, 2017,
		rec(t, "2017-12-28", "000660", 2),
		rec(t, "2017-12-28", "005930", 1),
		rec(t, "2017-12-28", "035420", 3),
		rec(t, "2017-12-29", "035420", 3),
		rec(t, "2017-12-29", "000660", 2),
		rec(t, "2017-12-29", "005930", 1),
		rec(t, "2017-12-30", "005930", 1),
		rec(t, "2017-12-30", "035420", 2),
		rec(t, "2017-12-30", "000660", 3),
	)
	writeYear(t, dir, f, 2018,
		rec(t, "2018-01-02", "035420", 3),
		rec(t, "2018-01-02", "005930", 1),
		rec(t, "2018-01-02", "000660", 2),
		rec(t, "2018-01-03", "000660", 1),
		rec(t, "2018-01-03", "005930", 2),
	)
	return New(dir, f, slogx.Discard())
}

func writeRaw(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func rawArchive(t *testing.T) (*Archive, string) {
	t.Helper()
	dir := t.TempDir()
	return New(dir, yearfile.CSVFormat{}, slogx.Discard()), dir
}

const rawHeader = "Date,Code,Name,Open,High,Low,Close,Volume,Amount,Changes,ChagesRatio,Marcap,Stocks,MarcapRatio,ForeignShares,ForeignRatio,Rank\n"

func rawPath(dir string, year int) string {
	return yearfile.Path(dir, year, yearfile.CSVFormat{})
}

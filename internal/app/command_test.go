package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marcap/internal/archive"
	"marcap/internal/model"
	"marcap/internal/saver"
	"marcap/internal/slogx"
	"marcap/internal/yearfile"
)

func testArchive(t *testing.T) *archive.Archive {
	t.Helper()
	dir := t.TempDir()
	f := yearfile.CSVFormat{Gzip: true}
	d1 := time.Date(2018, 1, 2, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	frame := model.Frame{Columns: model.DateColumns, Records: []model.Record{
		{Date: d1, Code: "000660", Rank: 2},
		{Date: d1, Code: "005930", Rank: 1},
		{Date: d2, Code: "005930", Rank: 1},
		{Date: d2, Code: "035420", Rank: 2},
	}}
	require.NoError(t, saver.CSVSaver{Gzip: true}.Save(frame, yearfile.Path(dir, 2018, f)))
	return archive.New(dir, f, slogx.Discard())
}

func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return cmd.Execute(context.Background(), fs)
}

func readCSV(t *testing.T, b *bytes.Buffer) [][]string {
	t.Helper()
	rows, err := csv.NewReader(b).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestDateCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := &DateCmd{Archive: testArchive(t), Stdout: &out}
	require.Equal(t, subcommands.ExitSuccess, run(t, cmd, "20180102"))

	rows := readCSV(t, &out)
	require.Len(t, rows, 3)
	assert.Equal(t, model.DateColumns, rows[0])
	assert.Equal(t, "005930", rows[1][1])
	assert.Equal(t, "000660", rows[2][1])
}

func TestDateCmdErrors(t *testing.T) {
	cmd := &DateCmd{Archive: testArchive(t), Stdout: &bytes.Buffer{}}
	assert.Equal(t, subcommands.ExitUsageError, run(t, cmd))
	assert.Equal(t, subcommands.ExitUsageError, run(t, cmd, "yesterday"))
	assert.Equal(t, subcommands.ExitFailure, run(t, cmd, "2016-01-04"))
}

func TestRangeCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := &RangeCmd{Archive: testArchive(t), Stdout: &out, ChunkSize: 100}
	require.Equal(t, subcommands.ExitSuccess, run(t, cmd, "-codes", "005930, 035420", "-streaming", "-chunksize", "1", "2017-12-01", "2018-01-03"))

	rows := readCSV(t, &out)
	require.Len(t, rows, 4)
	assert.Equal(t, model.RangeColumns, rows[0])
	assert.Equal(t, []string{"2018-01-02", "2018-01-03", "2018-01-03"}, []string{rows[1][0], rows[2][0], rows[3][0]})
	assert.Equal(t, []string{"005930", "005930", "035420"}, []string{rows[1][1], rows[2][1], rows[3][1]})
}

func TestRangeCmdSavesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "range.json")
	cmd := &RangeCmd{Archive: testArchive(t), Stdout: &bytes.Buffer{}}
	require.Equal(t, subcommands.ExitSuccess, run(t, cmd, "-out", path, "2018-01-02", "2018-01-02"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ChangesRatio"`)
	assert.Contains(t, string(data), `"000660"`)
}

func TestRangeCmdErrors(t *testing.T) {
	cmd := &RangeCmd{Archive: testArchive(t), Stdout: &bytes.Buffer{}}
	assert.Equal(t, subcommands.ExitUsageError, run(t, cmd, "2018-01-02"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, cmd, "bad", "2018-01-02"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, cmd, "2018-01-02", "bad"))
	assert.Equal(t, subcommands.ExitFailure, run(t, cmd, "-out", "result.txt", "2018-01-02", "2018-01-03"))
}

func TestSplitCodes(t *testing.T) {
	assert.Nil(t, splitCodes(""))
	assert.Equal(t, []string{"005930", "000660"}, splitCodes(" 005930 ,,000660,"))
}

package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/subcommands"

	"marcap/internal/archive"
	"marcap/internal/model"
	"marcap/internal/saver"
)

// DateCmd prints the ranked snapshot of one date.
type DateCmd struct {
	Archive *archive.Archive
	Stdout  io.Writer
	out     string
}

func (*DateCmd) Name() string { return "date" }

func (*DateCmd) Synopsis() string {
	return "market snapshot of one date, ranked by marcap"
}

func (*DateCmd) Usage() string {
	return "date [-out path] <date>\n"
}

func (c *DateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "out", "", "output file (.csv, .csv.gz, .json, .parquet); stdout CSV when empty")
}

func (c *DateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := model.ParseDate(f.Arg(0))
	if err != nil {
		slog.Error("invalid date", "error", err)
		return subcommands.ExitUsageError
	}
	frame, ok := c.Archive.LookupDate(day)
	if !ok {
		slog.Error("no result", "date", day.Format(model.DateLayout), "path", c.Archive.YearPath(day.Year()))
		return subcommands.ExitFailure
	}
	if err := writeFrame(c.Stdout, c.out, frame); err != nil {
		slog.Error("failed to write result", "error", err)
		return subcommands.ExitFailure
	}
	slog.Info("date lookup done", "date", day.Format(model.DateLayout), "records", frame.Len())
	return subcommands.ExitSuccess
}

// RangeCmd prints all records of a date range.
type RangeCmd struct {
	Archive   *archive.Archive
	Stdout    io.Writer
	ChunkSize int
	codes     string
	streaming bool
	out       string
}

func (*RangeCmd) Name() string { return "range" }

func (*RangeCmd) Synopsis() string {
	return "records between two dates (inclusive), optionally by code"
}

func (*RangeCmd) Usage() string {
	return "range [-codes a,b] [-streaming] [-chunksize n] [-out path] <start> <end>\n"
}

func (c *RangeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.codes, "codes", "", "comma separated security codes; all when empty")
	f.BoolVar(&c.streaming, "streaming", false, "read year files in chunks to cap memory")
	f.IntVar(&c.ChunkSize, "chunksize", c.ChunkSize, "records per chunk in streaming mode")
	f.StringVar(&c.out, "out", "", "output file (.csv, .csv.gz, .json, .parquet); stdout CSV when empty")
}

func (c *RangeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	start, err := model.ParseDate(f.Arg(0))
	if err != nil {
		slog.Error("invalid start date", "error", err)
		return subcommands.ExitUsageError
	}
	end, err := model.ParseDate(f.Arg(1))
	if err != nil {
		slog.Error("invalid end date", "error", err)
		return subcommands.ExitUsageError
	}
	opts := archive.RangeOptions{
		Codes:     archive.Codes(splitCodes(c.codes)...),
		Streaming: c.streaming,
		ChunkSize: c.ChunkSize,
	}
	frame := c.Archive.LookupRange(start, end, opts)
	if err := writeFrame(c.Stdout, c.out, frame); err != nil {
		slog.Error("failed to write result", "error", err)
		return subcommands.ExitFailure
	}
	slog.Info("range lookup done",
		"start", start.Format(model.DateLayout),
		"end", end.Format(model.DateLayout),
		"codes", opts.Codes.String(),
		"records", frame.Len())
	return subcommands.ExitSuccess
}

func splitCodes(s string) []string {
	var codes []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

// writeFrame saves frame to out, or writes CSV to stdout when out is empty.
func writeFrame(stdout io.Writer, out string, frame model.Frame) error {
	if out == "" {
		return saver.CSVSaver{}.Write(stdout, frame)
	}
	s := saver.ForPath(out)
	if s == nil {
		return fmt.Errorf("unsupported output %q (use: .csv, .csv.gz, .json, .parquet)", out)
	}
	return s.Save(frame, out)
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"marcap/internal/app"
	"marcap/internal/archive"
	"marcap/internal/slogx"
)

// App holds application dependencies built by Wire.
type App struct {
	Config  *app.Config
	Logger  *slog.Logger
	Archive *archive.Archive
}

func init() {
	slog.SetDefault(slogx.NewDefault("info"))
}

func main() {
	a, err := InitializeApp()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	slog.Debug("archive", "dir", a.Archive.Dir(), "format", a.Config.Format)

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&app.DateCmd{Archive: a.Archive, Stdout: os.Stdout}, "query")
	subcommands.Register(&app.RangeCmd{Archive: a.Archive, Stdout: os.Stdout, ChunkSize: a.Config.ChunkSize}, "query")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}

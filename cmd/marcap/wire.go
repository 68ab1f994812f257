//go:build wireinject
// +build wireinject

package main

import (
	"marcap/internal/app"

	"github.com/google/wire"
)

// InitializeApp builds App (Config + Logger + Archive) via Wire.
func InitializeApp() (*App, error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideLogger,
		app.ProvideFormat,
		app.ProvideArchive,
		wire.Struct(new(App), "Config", "Logger", "Archive"),
	)
	return nil, nil
}

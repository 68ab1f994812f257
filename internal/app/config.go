package app

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"marcap/internal/yearfile"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "MARCAP"

// Config holds application configuration from env
type Config struct {
	DataDir   string `envconfig:"DATA_DIR" default:"marcap/data"`
	Format    string `envconfig:"FORMAT" default:"csv.gz"`     // csv.gz | csv | parquet
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`    // debug | info | warn | error
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`   // text | json
	ChunkSize int    `envconfig:"CHUNK_SIZE" default:"100000"` // streaming batch size
}

// LoadConfig reads config from environment (MARCAP_DATA_DIR, MARCAP_FORMAT, ...).
// envconfig falls back to the unprefixed name (DATA_DIR, ...) when the prefixed one is unset.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the year file format and chunk size.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("%s_DATA_DIR must not be empty", EnvPrefix)
	}
	if _, err := yearfile.NewFormat(c.Format); err != nil {
		return fmt.Errorf("%s_FORMAT: %w", EnvPrefix, err)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%s_CHUNK_SIZE must be positive, got %d", EnvPrefix, c.ChunkSize)
	}
	return nil
}

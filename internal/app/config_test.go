package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets both the prefixed and the bare names envconfig looks up.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DATA_DIR", "FORMAT", "LOG_LEVEL", "LOG_FORMAT", "CHUNK_SIZE"} {
		for _, name := range []string{EnvPrefix + "_" + k, k} {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "marcap/data", cfg.DataDir)
	assert.Equal(t, "csv.gz", cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 100000, cfg.ChunkSize)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MARCAP_DATA_DIR", "/srv/marcap")
	t.Setenv("MARCAP_FORMAT", "parquet")
	t.Setenv("MARCAP_LOG_LEVEL", "debug")
	t.Setenv("MARCAP_LOG_FORMAT", "json")
	t.Setenv("MARCAP_CHUNK_SIZE", "5000")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/srv/marcap", cfg.DataDir)
	assert.Equal(t, "parquet", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 5000, cfg.ChunkSize)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"unknown format", map[string]string{"MARCAP_FORMAT": "xlsx"}, "MARCAP_FORMAT"},
		{"zero chunk size", map[string]string{"MARCAP_CHUNK_SIZE": "0"}, "MARCAP_CHUNK_SIZE"},
		{"non numeric chunk size", map[string]string{"MARCAP_CHUNK_SIZE": "many"}, "load config from env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{DataDir: "", Format: "csv", ChunkSize: 1}
	assert.ErrorContains(t, cfg.Validate(), "MARCAP_DATA_DIR")

	cfg = Config{DataDir: "d", Format: "csv", ChunkSize: 1}
	assert.NoError(t, cfg.Validate())
}

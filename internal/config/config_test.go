package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/escansion"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
cors:
  allowed_origins: "https://a.example, https://b.example"
log:
  level: "debug"
  format: "text"
scan:
  rhythm_format: "binary"
  offset: 6
  best_effort: true
  max_fusion_bits: 8
`

func TestLoad_ValidYAML(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeYAML(t, validYAML))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout, "default applies to fields missing from the file")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.Origins())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4096, cfg.Scan.CacheSize)

	opts := cfg.Scan.Options()
	assert.Equal(t, escansion.FormatBinary, opts.RhythmFormat)
	assert.Equal(t, 6, opts.Offset)
	assert.True(t, opts.BestEffort)
	assert.Equal(t, 8, opts.MaxFusionBits)
	assert.True(t, opts.RhymeAnalysis)
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("SCAN_CONCURRENCY", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "pattern", cfg.Scan.RhythmFormat)
	assert.Len(t, cfg.Scan.ScannerOptions(), 2)
	assert.Equal(t, []string{"GET", "POST", "OPTIONS"}, cfg.CORS.Methods())
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeYAML(t, validYAML))
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Port: 8080, MaxBodyBytes: 1 << 20},
			Log:    LogConfig{Level: "info", Format: "json"},
			Scan:   ScanConfig{RhythmFormat: "pattern", MaxFusionBits: 10, CacheSize: 10},
		}
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, false},
		{"bad body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, false},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, false},
		{"bad rhythm format", func(c *Config) { c.Scan.RhythmFormat = "morse" }, false},
		{"too many fusion bits", func(c *Config) { c.Scan.MaxFusionBits = 17 }, false},
		{"zero cache", func(c *Config) { c.Scan.CacheSize = 0 }, false},
		{"negative concurrency", func(c *Config) { c.Scan.Concurrency = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

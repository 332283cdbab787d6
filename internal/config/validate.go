package config

import (
	"fmt"
	"strings"

	"github.com/cours-de-latin/escansion"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}
	if err := c.Scan.validate(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	return nil
}

func (s *ScanConfig) validate() error {
	if _, err := escansion.ParseRhythmFormat(s.RhythmFormat); err != nil {
		return err
	}
	if s.MaxFusionBits <= 0 || s.MaxFusionBits > 16 {
		return fmt.Errorf("max_fusion_bits must be in 1..16 (got %d)", s.MaxFusionBits)
	}
	if s.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be > 0 (got %d)", s.CacheSize)
	}
	if s.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0 (got %d)", s.Concurrency)
	}
	return nil
}

// Options returns the scan options these defaults describe.
func (s ScanConfig) Options() escansion.Options {
	opts := escansion.DefaultOptions()
	opts.RhythmFormat = escansion.RhythmFormat(s.RhythmFormat)
	opts.Offset = s.Offset
	opts.BestEffort = s.BestEffort
	opts.MaxFusionBits = s.MaxFusionBits
	return opts
}

// ScannerOptions returns the constructor options for escansion.New.
func (s ScanConfig) ScannerOptions() []escansion.Option {
	opts := []escansion.Option{escansion.WithCacheSize(s.CacheSize)}
	if s.Concurrency > 0 {
		opts = append(opts, escansion.WithConcurrency(s.Concurrency))
	}
	return opts
}

// Origins splits the comma-separated origin list.
func (c CORSConfig) Origins() []string { return splitList(c.AllowedOrigins) }

// Methods splits the comma-separated method list.
func (c CORSConfig) Methods() []string { return splitList(c.AllowedMethods) }

// Headers splits the comma-separated header list.
func (c CORSConfig) Headers() []string { return splitList(c.AllowedHeaders) }

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package config holds the tunables threaded through the core as
// explicit parameters elsewhere in this toolkit (flatten tolerance,
// join tolerance, reindex strategy, default page size), loaded from a
// TOML file via github.com/BurntSushi/toml — the same decoder the
// teacher's broader lineage reaches for flat settings files — so the
// CLI and any embedding application share one defaulting story.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vsvg-go/vsvg/document"
	"github.com/vsvg-go/vsvg/spatial"
)

// Config is the toolkit's tunable parameter set.
type Config struct {
	FlattenTolerance float64
	JoinTolerance    float64
	ReindexStrategy  spatial.Strategy
	DefaultPageSize  document.PageSize
}

// rawConfig mirrors the TOML file's flat shape before ReindexStrategy
// is parsed into a spatial.Strategy.
type rawConfig struct {
	FlattenTolerance float64 `toml:"flatten_tolerance"`
	JoinTolerance    float64 `toml:"join_tolerance"`
	ReindexStrategy  string  `toml:"reindex_strategy"`
}

// Default returns the toolkit's built-in defaults: flatten tolerance
// 0.1px, join tolerance 0.05px, the default reindex strategy, and an
// A4 portrait default page.
func Default() Config {
	return Config{
		FlattenTolerance: 0.1,
		JoinTolerance:    0.05,
		ReindexStrategy:  spatial.Default(),
		DefaultPageSize:  document.A4Portrait,
	}
}

// Load reads a TOML config file at path, falling back to Default()
// for any field the file omits.
func Load(path string) (Config, error) {
	cfg := Default()
	var raw rawConfig
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if raw.FlattenTolerance != 0 {
		cfg.FlattenTolerance = raw.FlattenTolerance
	}
	if raw.JoinTolerance != 0 {
		cfg.JoinTolerance = raw.JoinTolerance
	}
	if raw.ReindexStrategy != "" {
		strategy, err := parseReindexStrategy(raw.ReindexStrategy)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
		cfg.ReindexStrategy = strategy
	}
	return cfg, nil
}

// parseReindexStrategy reads "default", "never", "threshold:<n>", or
// "ratio:<r>" per the vsvg.toml grammar documented alongside Config.
func parseReindexStrategy(s string) (spatial.Strategy, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "default":
		return spatial.Default(), nil
	case s == "never":
		return spatial.Never(), nil
	case strings.HasPrefix(s, "threshold:"):
		n, err := strconv.Atoi(strings.TrimPrefix(s, "threshold:"))
		if err != nil {
			return nil, fmt.Errorf("invalid threshold strategy %q: %w", s, err)
		}
		return spatial.Threshold(n), nil
	case strings.HasPrefix(s, "ratio:"):
		r, err := strconv.ParseFloat(strings.TrimPrefix(s, "ratio:"), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ratio strategy %q: %w", s, err)
		}
		return spatial.Ratio(r), nil
	default:
		return nil, fmt.Errorf("unrecognized reindex strategy %q", s)
	}
}

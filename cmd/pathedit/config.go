package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"honnef.co/go/pathedit"
)

// Config holds the settings that can be read from a TOML file. Flags that
// are set explicitly take precedence over the file.
//
//	tolerance = 0.5
//	min_spacing = 1
//	fit = true
//	grid = 0.25
//	log_level = "debug"
type Config struct {
	Tolerance  float64 `toml:"tolerance"`
	MinSpacing float64 `toml:"min_spacing"`
	Steps      int     `toml:"steps"`
	Fit        bool    `toml:"fit"`
	Lookahead  int     `toml:"lookahead"`
	Grid       float64 `toml:"grid"`
	Precision  int     `toml:"precision"`
	LogLevel   string  `toml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		Tolerance:  pathedit.DefaultSimplifyOptions.Tolerance,
		MinSpacing: pathedit.DefaultMinSpacing,
		Steps:      pathedit.DefaultFlattenSteps,
		Lookahead:  pathedit.DefaultMaxLookahead,
		Precision:  3,
		LogLevel:   "warn",
	}
}

// loadConfig decodes the TOML file name into cfg. Keys that don't
// correspond to a field are an error.
func loadConfig(name string, cfg *Config) error {
	b, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	dec := toml.NewDecoder(bytes.NewReader(b)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// override copies the setting for the named flag from flags.
func (cfg *Config) override(name string, flags Config) {
	switch name {
	case "tolerance":
		cfg.Tolerance = flags.Tolerance
	case "min-spacing":
		cfg.MinSpacing = flags.MinSpacing
	case "steps":
		cfg.Steps = flags.Steps
	case "fit":
		cfg.Fit = flags.Fit
	case "lookahead":
		cfg.Lookahead = flags.Lookahead
	case "grid":
		cfg.Grid = flags.Grid
	case "precision":
		cfg.Precision = flags.Precision
	}
}

func (cfg Config) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

func (cfg Config) simplifyOptions() pathedit.SimplifyOptions {
	return pathedit.SimplifyOptions{
		Tolerance:    cfg.Tolerance,
		MinSpacing:   cfg.MinSpacing,
		FlattenSteps: cfg.Steps,
		FitCurves:    cfg.Fit,
		MaxLookahead: cfg.Lookahead,
		Snap:         pathedit.GridSnap(cfg.Grid),
	}
}

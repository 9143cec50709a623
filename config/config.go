// Package config reads the YAML run file of the hydrogr driver.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted when no run file is given.
const EnvVar = "HYDROGR_CONFIG"

const dateLayout = "2006-01-02"

// Config is one simulation run.
type Config struct {
	// Model is the variant name, e.g. "gr4j".
	Model string `yaml:"model"`

	// Parameters maps X1..X6 to values; the set must match the model.
	Parameters map[string]float64 `yaml:"parameters"`

	// Forcing is a .csv or .gob forcing file.
	Forcing string `yaml:"forcing"`

	// Units of the forcing file, "mm" (default) or "m".
	Units string `yaml:"units"`

	// Aggregate sums the forcing to "M" (monthly) or "A" (annual) before running.
	Aggregate string `yaml:"aggregate,omitempty"`

	Period   PeriodConfig   `yaml:"period"`
	Hotstart HotstartConfig `yaml:"hotstart"`
	Output   OutputConfig   `yaml:"output"`
	Ensemble EnsembleConfig `yaml:"ensemble"`
}

// PeriodConfig bounds the run. Dates are formatted 2006-01-02; empty
// values select the whole record.
type PeriodConfig struct {
	WarmUp string `yaml:"warmup"` // first simulated timestep
	Start  string `yaml:"start"`  // first scored timestep
	End    string `yaml:"end"`    // last simulated timestep
}

// HotstartConfig names state files read before and written after the run.
type HotstartConfig struct {
	In  string `yaml:"in,omitempty"`
	Out string `yaml:"out,omitempty"`
}

type OutputConfig struct {
	Hydrograph string `yaml:"hydrograph,omitempty"` // full diagnostics csv
	Flows      string `yaml:"flows,omitempty"`      // date,obs,sim csv
}

// EnsembleConfig enables a Latin hypercube ensemble of Size runs in place
// of the single parameter set.
type EnsembleConfig struct {
	Size    int    `yaml:"size"`
	Workers int    `yaml:"workers"`
	Seed    int64  `yaml:"seed"`
	Prefix  string `yaml:"prefix,omitempty"`
}

// Default returns a configuration with the documented defaults.
func Default() *Config {
	return &Config{
		Model:      "gr4j",
		Parameters: map[string]float64{},
		Units:      "mm",
		Ensemble:   EnsembleConfig{Seed: 1},
	}
}

// Load reads the run file at path, or at $HYDROGR_CONFIG when path is empty.
// Values absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return nil, errors.New("config: no run file given and " + EnvVar + " not set")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that do not depend on the model library.
func (cfg *Config) Validate() error {
	if cfg.Forcing == "" {
		return errors.New("config: forcing file required")
	}
	switch cfg.Units {
	case "", "mm", "m":
	default:
		return fmt.Errorf("config: units must be mm or m, got %q", cfg.Units)
	}
	switch cfg.Aggregate {
	case "", "M", "A":
	default:
		return fmt.Errorf("config: aggregate must be M or A, got %q", cfg.Aggregate)
	}
	if cfg.Ensemble.Size < 0 {
		return fmt.Errorf("config: ensemble size %d", cfg.Ensemble.Size)
	}
	w, s, e, err := cfg.Period.Dates()
	if err != nil {
		return err
	}
	if !w.IsZero() && !s.IsZero() && s.Before(w) {
		return fmt.Errorf("config: start %v precedes warm-up %v", s, w)
	}
	if !s.IsZero() && !e.IsZero() && e.Before(s) {
		return fmt.Errorf("config: end %v precedes start %v", e, s)
	}
	return nil
}

// Dates parses the period; empty fields give zero times.
func (p PeriodConfig) Dates() (warmup, start, end time.Time, err error) {
	parse := func(nam, s string) (time.Time, error) {
		if s == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("config: period %s: %w", nam, err)
		}
		return t, nil
	}
	if warmup, err = parse("warmup", p.WarmUp); err != nil {
		return
	}
	if start, err = parse("start", p.Start); err != nil {
		return
	}
	end, err = parse("end", p.End)
	return
}

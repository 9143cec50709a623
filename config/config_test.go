package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/maseology/hydrogr/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, txt string) string {
	t.Helper()
	fp := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(fp, []byte(txt), 0644))
	return fp
}

func TestLoad(t *testing.T) {
	fp := write(t, `
model: gr4j
parameters:
  X1: 257.238
  X2: 1.012
  X3: 88.235
  X4: 2.208
forcing: data/L0123001.csv
period:
  warmup: 1989-01-01
  start: 1990-01-01
  end: 1999-12-31
hotstart:
  out: end.cbor
output:
  flows: hyd.csv
`)
	cfg, err := config.Load(fp)
	require.NoError(t, err)
	assert.Equal(t, "gr4j", cfg.Model)
	assert.Equal(t, 2.208, cfg.Parameters["X4"])
	assert.Equal(t, "mm", cfg.Units) // default kept
	assert.Equal(t, "end.cbor", cfg.Hotstart.Out)
	assert.Equal(t, int64(1), cfg.Ensemble.Seed)

	w, s, e, err := cfg.Period.Dates()
	require.NoError(t, err)
	assert.Equal(t, time.Date(1989, 1, 1, 0, 0, 0, 0, time.UTC), w)
	assert.Equal(t, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), s)
	assert.Equal(t, time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC), e)
}

func TestLoadFromEnv(t *testing.T) {
	fp := write(t, "model: gr2m\nforcing: f.csv\naggregate: M\n")
	t.Setenv(config.EnvVar, fp)
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "gr2m", cfg.Model)
	assert.Equal(t, "M", cfg.Aggregate)

	t.Setenv(config.EnvVar, "")
	_, err = config.Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"no forcing":    "model: gr4j\n",
		"bad units":     "forcing: f.csv\nunits: ft\n",
		"bad aggregate": "forcing: f.csv\naggregate: W\n",
		"bad date":      "forcing: f.csv\nperiod:\n  start: 1990/01/01\n",
		"end first":     "forcing: f.csv\nperiod:\n  start: 1990-01-01\n  end: 1989-01-01\n",
		"negative size": "forcing: f.csv\nensemble:\n  size: -1\n",
	}
	for name, txt := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(write(t, txt))
			assert.Error(t, err)
		})
	}
}

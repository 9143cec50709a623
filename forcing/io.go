package forcing

import (
	"encoding/gob"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/maseology/mmio"
)

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02 15:04"}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if dt, err := time.Parse(l, s); err == nil {
			return dt, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseValue reads a numeric cell; empty and NA cells are missing (NaN).
func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "na", "nan", "-9999":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// LoadCSV reads a forcing table with columns
// date,precipitation,evapotranspiration[,flow]. A header row is skipped.
func LoadCSV(fp string) (*Forcing, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("forcing.LoadCSV: %w", err)
	}
	defer f.Close()

	var (
		t          []time.Time
		ya, ea, qo []float64
		hasq       = true
		ln         = 0
	)
	for rec := range mmio.LoadCSV(io.Reader(f)) {
		ln++
		if len(rec) < 3 {
			return nil, fmt.Errorf("forcing.LoadCSV: line %d has %d columns, expected at least 3", ln, len(rec))
		}
		dt, err := parseDate(rec[0])
		if err != nil {
			if ln == 1 {
				continue // header
			}
			return nil, fmt.Errorf("forcing.LoadCSV: line %d: %w", ln, err)
		}
		var v [3]float64
		for i := 0; i < 3; i++ {
			v[i] = math.NaN()
			if i+1 < len(rec) {
				if v[i], err = parseValue(rec[i+1]); err != nil {
					return nil, fmt.Errorf("forcing.LoadCSV: line %d: %w", ln, err)
				}
			}
		}
		hasq = hasq && len(rec) > 3
		t = append(t, dt)
		ya = append(ya, v[0])
		ea = append(ea, v[1])
		qo = append(qo, v[2])
	}
	if len(t) == 0 {
		return nil, fmt.Errorf("forcing.LoadCSV: no records in %s", fp)
	}
	if !hasq {
		qo = nil
	}
	return New(t, ya, ea, qo)
}

// SaveGob writes the forcing set in gob format.
func (frc *Forcing) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf("forcing.SaveGob: %w", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(frc); err != nil {
		return fmt.Errorf("forcing.SaveGob: %w", err)
	}
	return nil
}

// LoadGob reads a forcing set written by SaveGob.
func LoadGob(fp string) (*Forcing, error) {
	var frc Forcing
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("forcing.LoadGob: %w", err)
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&frc); err != nil {
		return nil, fmt.Errorf("forcing.LoadGob: %w", err)
	}
	return &frc, nil
}

// Load reads a forcing set by file extension (.csv or .gob).
func Load(fp string) (*Forcing, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, fmt.Errorf("forcing.Load: file not found: %s", fp)
	}
	switch strings.ToLower(mmio.GetExtension(fp)) {
	case ".csv":
		return LoadCSV(fp)
	case ".gob":
		return LoadGob(fp)
	}
	return nil, fmt.Errorf("forcing.Load: unsupported file type %s", fp)
}

package hydrogr

import (
	"fmt"
	"strings"
)

// Variant identifies one member of the GR model family.
type Variant int

const (
	GR1A Variant = iota // annual
	GR2M                // monthly
	GR4J                // daily
	GR4H                // hourly
	GR5J                // daily, thresholded exchange
	GR6J                // daily, exponential store
)

// Variants lists every supported model.
var Variants = []Variant{GR1A, GR2M, GR4J, GR4H, GR5J, GR6J}

type variantSpec struct {
	name       string
	params     []string
	states     []string
	freq       []string // accepted frequency tokens
	nuh1, nuh2 int      // hydrograph buffer capacities, 0 when unused
	exp        float64  // UH S-curve exponent
	perc       float64  // percolation denominator
}

var specs = map[Variant]variantSpec{
	GR1A: {
		name:   "gr1a",
		params: []string{"X1"},
		states: []string{"previous_precipitation"},
		freq:   []string{"A", "Y", "BA", "BY", "AS", "YS", "BAS", "BYS"},
	},
	GR2M: {
		name:   "gr2m",
		params: []string{"X1", "X2"},
		states: []string{"production_store", "routing_store"},
		freq:   []string{"M", "SM", "BM", "CBM", "MS", "SMS", "BMS", "CBMS"},
	},
	GR4J: {
		name:   "gr4j",
		params: []string{"X1", "X2", "X3", "X4"},
		states: []string{"production_store", "routing_store", "uh1", "uh2"},
		freq:   []string{"D", "B", "C"},
		nuh1:   nhDaily,
		nuh2:   2 * nhDaily,
		exp:    expDaily,
		perc:   percDailyLegacy,
	},
	GR4H: {
		name:   "gr4h",
		params: []string{"X1", "X2", "X3", "X4"},
		states: []string{"production_store", "routing_store", "uh1", "uh2"},
		freq:   []string{"H", "h"},
		nuh1:   nhHourly,
		nuh2:   2 * nhHourly,
		exp:    expHourly,
		perc:   percHourly,
	},
	GR5J: {
		name:   "gr5j",
		params: []string{"X1", "X2", "X3", "X4", "X5"},
		states: []string{"production_store", "routing_store", "uh2"},
		freq:   []string{"D", "B", "C"},
		nuh2:   2 * nhDaily,
		exp:    expDaily,
		perc:   percDaily,
	},
	GR6J: {
		name:   "gr6j",
		params: []string{"X1", "X2", "X3", "X4", "X5", "X6"},
		states: []string{"production_store", "routing_store", "exponential_store", "uh1", "uh2"},
		freq:   []string{"D", "B", "C"},
		nuh1:   nhDaily,
		nuh2:   2 * nhDaily,
		exp:    expDaily,
		perc:   percDaily,
	},
}

func (v Variant) spec() variantSpec {
	s, ok := specs[v]
	if !ok {
		panic(fmt.Sprintf("hydrogr: unknown variant %d", int(v)))
	}
	return s
}

func (v Variant) String() string {
	if s, ok := specs[v]; ok {
		return s.name
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParameterNames returns the exact, ordered parameter set of the variant.
func (v Variant) ParameterNames() []string { return append([]string(nil), v.spec().params...) }

// StateNames returns the keys of the variant's state mapping.
func (v Variant) StateNames() []string { return append([]string(nil), v.spec().states...) }

// Frequencies returns the accepted input frequency tokens.
func (v Variant) Frequencies() []string { return append([]string(nil), v.spec().freq...) }

// BufferLengths returns the UH1 and UH2 buffer capacities (0 when unused).
func (v Variant) BufferLengths() (int, int) {
	s := v.spec()
	return s.nuh1, s.nuh2
}

// AcceptsFrequency reports whether the frequency token suits the variant.
// Anchored tokens such as "A-DEC" are matched on their prefix.
func (v Variant) AcceptsFrequency(tok string) bool {
	tok = strings.SplitN(tok, "-", 2)[0]
	for _, f := range v.spec().freq {
		if f == tok {
			return true
		}
	}
	return false
}

// ParseVariant resolves a model name such as "GR4J" or "gr4j".
func ParseVariant(s string) (Variant, error) {
	ls := strings.ToLower(strings.TrimSpace(s))
	for _, v := range Variants {
		if specs[v].name == ls {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrVariant, s)
}

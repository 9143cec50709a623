package hydrogr

import (
	"fmt"
	"math"
)

// State is the warm-start record of a run. Store levels are fill fractions:
// production relative to X1, routing relative to X3 (GR2M: the 60 mm routing
// capacity) and exponential relative to X6. UH1/UH2 hold routed rainfall still
// pending in the hydrograph buffers, position 0 being due next.
type State struct {
	Production  float64
	Routing     float64
	Exponential float64 // GR6J only; unbounded, may be negative

	// PreviousPrecipitation is GR1A's only memory: last year's precipitation
	// [mm], NaN when unknown.
	PreviousPrecipitation float64

	UH1, UH2 []float64
}

// DefaultState builds the documented cold-start state of a variant:
// production 0.3, routing 0.5, exponential 0.3 and empty hydrographs.
func DefaultState(v Variant) State {
	s := v.spec()
	if v == GR1A {
		return State{PreviousPrecipitation: math.NaN()}
	}
	var st State
	st.Production, st.Routing = defaultProduction, defaultRouting
	if v == GR6J {
		st.Exponential = defaultExponential
	}
	if s.nuh1 > 0 {
		st.UH1 = make([]float64, s.nuh1)
	}
	if s.nuh2 > 0 {
		st.UH2 = make([]float64, s.nuh2)
	}
	return st
}

// Clone returns a deep copy.
func (st State) Clone() State {
	o := st
	if st.UH1 != nil {
		o.UH1 = append([]float64(nil), st.UH1...)
	}
	if st.UH2 != nil {
		o.UH2 = append([]float64(nil), st.UH2...)
	}
	return o
}

// Validate checks the state against the variant.
func (st State) Validate(v Variant) error {
	s := v.spec()
	frac := func(nam string, x float64) error {
		if math.IsNaN(x) || x < 0. || x > 1. {
			return fmt.Errorf("%w: %s %s = %v, expected within [0, 1]", ErrStateRange, v, nam, x)
		}
		return nil
	}
	if v == GR1A {
		if math.IsInf(st.PreviousPrecipitation, 0) || st.PreviousPrecipitation < 0. {
			return fmt.Errorf("%w: %s previous_precipitation = %v", ErrStateRange, v, st.PreviousPrecipitation)
		}
		return nil
	}
	if err := frac("production_store", st.Production); err != nil {
		return err
	}
	if err := frac("routing_store", st.Routing); err != nil {
		return err
	}
	if v == GR6J && (math.IsNaN(st.Exponential) || math.IsInf(st.Exponential, 0)) {
		return fmt.Errorf("%w: %s exponential_store = %v", ErrStateRange, v, st.Exponential)
	}
	if len(st.UH1) != s.nuh1 {
		return fmt.Errorf("%w: %s uh1 has length %d, expected %d", ErrStateField, v, len(st.UH1), s.nuh1)
	}
	if len(st.UH2) != s.nuh2 {
		return fmt.Errorf("%w: %s uh2 has length %d, expected %d", ErrStateField, v, len(st.UH2), s.nuh2)
	}
	return nil
}

// Map returns the named state mapping of the variant, the persistence format
// used for hotstarts. Values are float64 or []float64.
func (st State) Map(v Variant) map[string]any {
	m := make(map[string]any, len(v.spec().states))
	for _, k := range v.spec().states {
		switch k {
		case "production_store":
			m[k] = st.Production
		case "routing_store":
			m[k] = st.Routing
		case "exponential_store":
			m[k] = st.Exponential
		case "previous_precipitation":
			m[k] = st.PreviousPrecipitation
		case "uh1":
			m[k] = append([]float64(nil), st.UH1...)
		case "uh2":
			m[k] = append([]float64(nil), st.UH2...)
		}
	}
	return m
}

// StateFromMap rebuilds a state from its named mapping. Every key the variant
// declares must be present; the result is validated.
func StateFromMap(v Variant, m map[string]any) (State, error) {
	var st State
	for _, k := range v.spec().states {
		x, ok := m[k]
		if !ok {
			return State{}, fmt.Errorf("%w: %s state requires key %q", ErrStateField, v, k)
		}
		switch k {
		case "uh1", "uh2":
			a, err := toFloats(x)
			if err != nil {
				return State{}, fmt.Errorf("%w: %s %s: %v", ErrStateField, v, k, err)
			}
			if k == "uh1" {
				st.UH1 = a
			} else {
				st.UH2 = a
			}
		default:
			f, err := toFloat(x)
			if err != nil {
				return State{}, fmt.Errorf("%w: %s %s: %v", ErrStateField, v, k, err)
			}
			switch k {
			case "production_store":
				st.Production = f
			case "routing_store":
				st.Routing = f
			case "exponential_store":
				st.Exponential = f
			case "previous_precipitation":
				st.PreviousPrecipitation = f
			}
		}
	}
	if err := st.Validate(v); err != nil {
		return State{}, err
	}
	return st, nil
}

func toFloat(x any) (float64, error) {
	switch t := x.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	}
	return 0., fmt.Errorf("expected a number, got %T", x)
}

func toFloats(x any) ([]float64, error) {
	switch t := x.(type) {
	case []float64:
		return append([]float64(nil), t...), nil
	case []any:
		o := make([]float64, len(t))
		for i, e := range t {
			f, err := toFloat(e)
			if err != nil {
				return nil, fmt.Errorf("element %d: %v", i, err)
			}
			o[i] = f
		}
		return o, nil
	}
	return nil, fmt.Errorf("expected an array, got %T", x)
}

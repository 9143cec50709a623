package hydrogr

import (
	"fmt"
	"iter"

	"github.com/maseology/hydrogr/forcing"
	"github.com/maseology/hydrogr/uh"
)

// Engine advances one GR model through time. It holds the checked
// parameters, the hydrograph ordinates and the mutable store levels.
// An Engine is not safe for concurrent use; parallel runs each build their own.
type Engine struct {
	v   Variant
	par Parameters
	m   model
	l   *levels
}

// New checks the parameter set, builds the variant's model and installs the
// default cold-start state. Parameters moved onto a threshold are reported
// in the returned notices.
func New(v Variant, par Parameters) (*Engine, []Notice, error) {
	if _, ok := specs[v]; !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrVariant, int(v))
	}
	cr, err := Check(v, par)
	if err != nil {
		return nil, nil, err
	}
	eng := &Engine{
		v:   v,
		par: cr.Params,
		m:   newModel(v, cr.Params),
		l:   newLevels(v),
	}
	if err := eng.SetState(DefaultState(v)); err != nil {
		panic(err) // default states are always valid
	}
	return eng, cr.Notices, nil
}

// Variant returns the simulated model.
func (eng *Engine) Variant() Variant { return eng.v }

// Parameters returns a copy of the (clamped) parameters in use.
func (eng *Engine) Parameters() Parameters { return eng.par.Clone() }

// Clone returns an independent engine at the same point in time.
func (eng *Engine) Clone() *Engine {
	l := *eng.l
	cp := func(b *uh.Buffer) *uh.Buffer {
		if b == nil {
			return nil
		}
		return b.Clone()
	}
	l.uh1, l.uh2 = cp(eng.l.uh1), cp(eng.l.uh2)
	return &Engine{v: eng.v, par: eng.par.Clone(), m: eng.m, l: &l}
}

// State returns a deep copy of the current state as fill fractions.
func (eng *Engine) State() State {
	ps, rs, es := eng.m.caps()
	var st State
	if eng.v == GR1A {
		st.PreviousPrecipitation = eng.l.pprev
	}
	if ps > 0. {
		st.Production = eng.l.s / ps
	}
	if rs > 0. {
		st.Routing = eng.l.r / rs
	}
	if es > 0. {
		st.Exponential = eng.l.exp / es
	}
	if eng.l.uh1 != nil {
		st.UH1 = eng.l.uh1.Values()
	}
	if eng.l.uh2 != nil {
		st.UH2 = eng.l.uh2.Values()
	}
	return st
}

// SetState validates st and installs it, converting fractions to levels.
// On error the engine state is unchanged.
func (eng *Engine) SetState(st State) error {
	if err := st.Validate(eng.v); err != nil {
		return err
	}
	ps, rs, es := eng.m.caps()
	eng.l.s = st.Production * ps
	eng.l.r = st.Routing * rs
	eng.l.exp = st.Exponential * es
	if eng.v == GR1A {
		eng.l.pprev = st.PreviousPrecipitation
	}
	if eng.l.uh1 != nil {
		if err := eng.l.uh1.Load(st.UH1); err != nil {
			return fmt.Errorf("%w: uh1: %v", ErrStateField, err)
		}
	}
	if eng.l.uh2 != nil {
		if err := eng.l.uh2.Load(st.UH2); err != nil {
			return fmt.Errorf("%w: uh2: %v", ErrStateField, err)
		}
	}
	return nil
}

// Step advances the model by one timestep given precipitation p and
// potential evapotranspiration e [mm].
func (eng *Engine) Step(p, e float64) Output { return eng.m.step(eng.l, p, e) }

// Run simulates the full series, continuing from the current state.
func (eng *Engine) Run(p, e []float64) ([]Output, error) {
	if len(p) != len(e) {
		return nil, fmt.Errorf("%w: precipitation has %d values, evapotranspiration %d", ErrLength, len(p), len(e))
	}
	out := make([]Output, len(p))
	for j := range p {
		out[j] = eng.m.step(eng.l, p[j], e[j])
	}
	return out, nil
}

// Steps yields the outputs of successive timesteps; the caller may stop
// early, leaving the engine at the last yielded step. Series of unequal
// length yield nothing and leave the engine untouched, as Run rejects them
// with ErrLength.
func (eng *Engine) Steps(p, e []float64) iter.Seq2[int, Output] {
	return func(yield func(int, Output) bool) {
		if len(p) != len(e) {
			return
		}
		for j := range p {
			if !yield(j, eng.m.step(eng.l, p[j], e[j])) {
				return
			}
		}
	}
}

// CheckForcing verifies the forcing series suit the variant: equal lengths
// and an inferred frequency the variant accepts.
func CheckForcing(v Variant, frc *forcing.Forcing) error {
	if len(frc.Ya) != len(frc.Ea) {
		return fmt.Errorf("%w: precipitation has %d values, evapotranspiration %d", ErrLength, len(frc.Ya), len(frc.Ea))
	}
	f, err := frc.Frequency()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFrequency, err)
	}
	if !v.AcceptsFrequency(f) {
		return fmt.Errorf("%w: %s requires %v, input is %q", ErrFrequency, v, v.Frequencies(), f)
	}
	return nil
}

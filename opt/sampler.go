// Package opt maps unit-hypercube samples onto GR parameter sets for
// ensemble runs.
package opt

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/maseology/hydrogr"
	"github.com/maseology/mmaths"
	"github.com/maseology/montecarlo/invdistr"
	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/pnrg/MRG63k3a"
)

// Range is the sampling interval of one parameter. Log ranges are sampled
// uniformly in log space. A non-zero Mode replaces the uniform law with a
// triangular one peaking at Mode.
type Range struct {
	Name      string
	Low, High float64
	Log       bool
	Mode      float64
}

// Ranges returns the default sampling ranges of the variant, in parameter order.
func Ranges(v hydrogr.Variant) []Range {
	x4h := 10. // [d]
	if v == hydrogr.GR4H {
		x4h = 240. // [h]
	}
	switch v {
	case hydrogr.GR1A:
		return []Range{{Name: "X1", Low: .13, High: 3.5}}
	case hydrogr.GR2M:
		return []Range{
			{Name: "X1", Low: 10., High: 2000., Log: true}, // production store capacity [mm]
			{Name: "X2", Low: .2, High: 2.},                // exchange coefficient [-]
		}
	}
	r := []Range{
		{Name: "X1", Low: 10., High: 3000., Log: true}, // production store capacity [mm]
		{Name: "X2", Low: -5., High: 5.},               // exchange coefficient [mm/ts]
		{Name: "X3", Low: 1., High: 1000., Log: true},  // routing store capacity [mm]
		{Name: "X4", Low: .5, High: x4h},               // unit hydrograph time base
	}
	switch v {
	case hydrogr.GR5J:
		r = append(r, Range{Name: "X5", Low: 0., High: 1.})
	case hydrogr.GR6J:
		r = append(r, Range{Name: "X5", Low: 0., High: 1.}, Range{Name: "X6", Low: .1, High: 100., Log: true})
	}
	return r
}

func (r Range) distr() *invdistr.Map {
	if r.Low > r.Mode || r.Mode > r.High || (r.Log && r.Low <= 0.) {
		log.Panicf("opt.Range %s: invalid triangle %v, %v, %v", r.Name, r.Low, r.Mode, r.High)
	}
	l, m, h := r.Low, r.Mode, r.High
	if r.Log {
		l, m, h = math.Log10(l), math.Log10(m), math.Log10(h)
	}
	return &invdistr.Map{
		Low:   l,
		High:  h,
		Log:   r.Log,
		Distr: invdistr.NewTriangle((m - l) / (h - l)),
	}
}

// Value maps u in [0, 1] onto the range.
func (r Range) Value(u float64) float64 {
	switch {
	case r.Mode != 0.:
		return r.distr().P(u)
	case r.Log:
		return mmaths.LogLinearTransform(r.Low, r.High, u)
	default:
		return mmaths.LinearTransform(r.Low, r.High, u)
	}
}

// Transform maps one unit sample onto a parameter set of the variant.
func Transform(rs []Range, u []float64) (hydrogr.Parameters, error) {
	if len(u) != len(rs) {
		return nil, fmt.Errorf("opt.Transform: %d ranges, sample has %d dimensions", len(rs), len(u))
	}
	par := make(hydrogr.Parameters, len(rs))
	for i, r := range rs {
		par[r.Name] = r.Value(u[i])
	}
	return par, nil
}

// LatinHypercube draws n parameter sets over the ranges with a Latin
// hypercube plan. The same seed yields the same sets.
func LatinHypercube(rs []Range, n int, seed int64) ([]hydrogr.Parameters, error) {
	rng := rand.New(mrg63k3a.New())
	rng.Seed(seed)

	nd := len(rs)
	sp := smpln.NewLHC(rng, n, nd, false)
	o := make([]hydrogr.Parameters, n)
	for k := 0; k < n; k++ {
		ut := make([]float64, nd)
		for j := 0; j < nd; j++ {
			ut[j] = sp.U[j][k]
		}
		par, err := Transform(rs, ut)
		if err != nil {
			return nil, err
		}
		o[k] = par
	}
	return o, nil
}

package hydrogr

import (
	"math"

	"github.com/maseology/hydrogr/uh"
)

// model is the per-timestep transition shared by every variant:
// (levels, P, E) -> (levels', Output). levels are mutated in place.
type model interface {
	step(l *levels, p, e float64) Output
	// capacities used to convert levels to and from fill fractions
	caps() (prod, rout, exp float64)
}

// levels is the working form of State: absolute store levels [mm] and live
// hydrograph buffers.
type levels struct {
	s, r, exp float64
	pprev     float64 // GR1A previous precipitation
	uh1, uh2  *uh.Buffer
}

func newLevels(v Variant) *levels {
	s := v.spec()
	l := levels{pprev: math.NaN()}
	if s.nuh1 > 0 {
		l.uh1 = uh.NewBuffer(s.nuh1)
	}
	if s.nuh2 > 0 {
		l.uh2 = uh.NewBuffer(s.nuh2)
	}
	return &l
}

// newModel builds the variant's model from an already checked parameter set.
// Hydrograph ordinates are computed here, once.
func newModel(v Variant, par Parameters) model {
	s := v.spec()
	switch v {
	case GR1A:
		return &gr1a{x1: par["X1"]}
	case GR2M:
		return &gr2m{x1: par["X1"], x2: par["X2"]}
	case GR4J, GR4H:
		x4 := par["X4"]
		return &gr4{
			x1: par["X1"], x2: par["X2"], x3: par["X3"],
			perc: s.perc,
			o1:   uh.Ordinates1(x4, s.exp),
			o2:   uh.Ordinates2(x4, s.exp),
		}
	case GR5J:
		return &gr5j{
			x1: par["X1"], x2: par["X2"], x3: par["X3"], x5: par["X5"],
			perc: s.perc,
			o2:   uh.Ordinates2(par["X4"], s.exp),
		}
	case GR6J:
		x4 := par["X4"]
		return &gr6j{
			x1: par["X1"], x2: par["X2"], x3: par["X3"], x5: par["X5"], x6: par["X6"],
			perc: s.perc,
			o1:   uh.Ordinates1(x4, s.exp),
			o2:   uh.Ordinates2(x4, s.exp),
		}
	}
	panic("hydrogr.newModel: unknown variant " + v.String())
}

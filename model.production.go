package hydrogr

import "math"

// prodFlux collects the production store fluxes of one timestep.
type prodFlux struct {
	pn, en, ps, es, ae, perc, pr float64
	clamped                      bool
}

// production applies net demand, the tanh-saturating intake or evaporation,
// and percolation to the production store s (capacity x1). pd is the
// percolation denominator b^4.
func production(x1 float64, s *float64, p, e, pd float64) (f prodFlux) {
	psf := *s / x1 // filling ratio
	if p <= e {
		f.en = e - p
		sc := math.Tanh(math.Min(f.en/x1, maxScaledNet))
		f.es = *s * (2. - psf) * sc / (1. + (1.-psf)*sc)
		*s -= f.es
		f.ae = f.es + p
	} else {
		f.pn = p - e
		sc := math.Tanh(math.Min(f.pn/x1, maxScaledNet))
		f.ps = x1 * (1. - psf*psf) * sc / (1. + psf*sc)
		f.pr = f.pn - f.ps
		*s += f.ps
		f.ae = e
	}
	f.clamped = clamp(s, x1)

	f.perc = percolation(*s, x1, pd)
	*s -= f.perc
	f.pr += f.perc
	return
}

// percolation leak S(1 - (1 + (S/X1)^4/pd)^-1/4); zero at S = 0.
func percolation(s, x1, pd float64) float64 {
	return s * (1. - 1./math.Pow(1.+math.Pow(s/x1, 4.)/pd, .25))
}

// routingOutflow non-linear outflow R(1 - (1 + (R/X3)^4)^-1/4).
func routingOutflow(r, x3 float64) float64 {
	return r * (1. - 1./math.Pow(1.+math.Pow(r/x3, 4.), .25))
}

// exponentialOutflow drains the unbounded GR6J store with a clipped
// exponential so large ratios cannot overflow.
func exponentialOutflow(exp, x6 float64) float64 {
	ar := math.Max(-expClip, math.Min(exp/x6, expClip))
	switch {
	case ar > 7.:
		return exp + x6/math.Exp(ar)
	case ar < -7.:
		return x6 * math.Exp(ar)
	default:
		return x6 * math.Log(math.Exp(ar)+1.)
	}
}

// clamp holds a store within [0, hi], reporting whether it had to.
func clamp(s *float64, hi float64) bool {
	if *s < 0. {
		*s = 0.
		return true
	}
	if *s > hi {
		*s = hi
		return true
	}
	return false
}

// spill holds a store that rounding left just above capacity hi at hi,
// adding the excess to the outflow q.
func spill(s *float64, hi, q float64) (float64, bool) {
	if *s <= hi {
		return q, false
	}
	q += *s - hi
	*s = hi
	return q, true
}

// route applies the exchange to the routing store and the direct branch of
// the GR4J/GR5J/GR6J family. q9 enters the routing store, q1 the direct
// branch. It returns the routing outflow, direct flow, the exchange
// actually applied and whether the store had to be held at capacity.
func route(r *float64, x3, q9, q1, exch float64) (qr, qd, aexch float64, clamped bool) {
	*r += q9 + exch
	aexch = exch
	if *r < 0. {
		aexch -= *r
		*r = 0.
	}
	qr = routingOutflow(*r, x3)
	*r -= qr
	qr, clamped = spill(r, x3, qr)

	qd = q1 + exch
	aexch += exch
	if qd < 0. {
		aexch -= qd
		qd = 0.
	}
	return
}

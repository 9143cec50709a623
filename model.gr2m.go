package hydrogr

import "math"

// gr2m is the two-store monthly model. The routing store has no parameter
// capacity; its quadratic outflow keeps it below 60 mm.
type gr2m struct{ x1, x2 float64 }

func (m *gr2m) caps() (float64, float64, float64) { return m.x1, gr2mRoutingCap, 0. }

func (m *gr2m) step(l *levels, p, e float64) Output {
	s0 := l.s

	phi := math.Tanh(math.Min(p/m.x1, maxScaledNet))
	s1 := (s0 + m.x1*phi) / (1. + s0/m.x1*phi)
	p1 := p + s0 - s1

	psi := math.Tanh(math.Min(e/m.x1, maxScaledNet))
	s2 := s1 * (1. - psi) / (1. + (1.-s1/m.x1)*psi)

	sr := s2 / m.x1
	l.s = s2 / math.Pow(1.+sr*sr*sr, 1./3.)
	p3 := p1 + s2 - l.s

	rin := l.r + p3
	r := m.x2 * rin
	q := r * r / (r + gr2mRoutingCap)
	l.r = r - q
	q, rc := spill(&l.r, gr2mRoutingCap, q)

	return Output{
		PotEvap: e, Precip: p,
		Ps: s1 - s0, AE: s1 - s2, Perc: s2 - l.s, PR: p3,
		Exch: r - rin, AExch: r - rin,
		QR: q, Qsim: q,
		Prod: l.s, Rout: l.r,
		Clamped: rc,
	}
}

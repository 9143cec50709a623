package hydrogr

import "math"

// gr4 implements GR4J (daily) and GR4H (hourly); they differ only in the UH
// exponent and percolation constant chosen at construction.
type gr4 struct {
	x1, x2, x3 float64
	perc       float64
	o1, o2     []float64
}

func (m *gr4) caps() (float64, float64, float64) { return m.x1, m.x3, 0. }

func (m *gr4) step(l *levels, p, e float64) Output {
	f := production(m.x1, &l.s, p, e, m.perc)

	// both hydrographs receive the full routed rainfall, their outputs are split 90/10
	l.uh1.Inject(f.pr, m.o1)
	l.uh2.Inject(f.pr, m.o2)
	q9 := l.uh1.Advance() * storageFraction
	q1 := l.uh2.Advance() * (1. - storageFraction)

	exch := m.x2 * math.Pow(l.r/m.x3, 3.5)
	qr, qd, aexch, rc := route(&l.r, m.x3, q9, q1, exch)

	return Output{
		PotEvap: e, Precip: p,
		Pn: f.pn, En: f.en, Ps: f.ps, Es: f.es, AE: f.ae, Perc: f.perc, PR: f.pr,
		Q9: q9, Q1: q1,
		Exch: exch, AExch: aexch,
		QR: qr, QD: qd,
		Qsim: qr + qd,
		Prod: l.s, Rout: l.r,
		Clamped: f.clamped || rc,
	}
}

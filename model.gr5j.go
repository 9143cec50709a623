package hydrogr

// gr5j routes everything through the single hydrograph UH2 and uses the
// thresholded exchange X2(R/X3 - X5).
type gr5j struct {
	x1, x2, x3, x5 float64
	perc           float64
	o2             []float64
}

func (m *gr5j) caps() (float64, float64, float64) { return m.x1, m.x3, 0. }

func (m *gr5j) step(l *levels, p, e float64) Output {
	f := production(m.x1, &l.s, p, e, m.perc)

	l.uh2.Inject(f.pr, m.o2)
	q := l.uh2.Advance()
	q9 := q * storageFraction
	q1 := q * (1. - storageFraction)

	exch := m.x2 * (l.r/m.x3 - m.x5)
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

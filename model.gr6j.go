package hydrogr

// gr6j adds an unbounded exponential store (coefficient X6) fed by 40% of
// the UH1 output; the exchange acts on the routing store, the exponential
// store and the direct branch.
type gr6j struct {
	x1, x2, x3, x5, x6 float64
	perc               float64
	o1, o2             []float64
}

func (m *gr6j) caps() (float64, float64, float64) { return m.x1, m.x3, m.x6 }

func (m *gr6j) step(l *levels, p, e float64) Output {
	f := production(m.x1, &l.s, p, e, m.perc)

	l.uh1.Inject(f.pr, m.o1)
	l.uh2.Inject(f.pr, m.o2)
	q9 := l.uh1.Advance() * storageFraction
	q1 := l.uh2.Advance() * (1. - storageFraction)

	exch := m.x2 * (l.r/m.x3 - m.x5)
	qr, qd, aexch, rc := route(&l.r, m.x3, q9*(1.-expFraction), q1, exch)

	l.exp += q9*expFraction + exch
	qrexp := exponentialOutflow(l.exp, m.x6)
	l.exp -= qrexp

	return Output{
		PotEvap: e, Precip: p,
		Pn: f.pn, En: f.en, Ps: f.ps, Es: f.es, AE: f.ae, Perc: f.perc, PR: f.pr,
		Q9: q9, Q1: q1,
		Exch: exch, AExch: aexch + exch,
		QR: qr, QRExp: qrexp, QD: qd,
		Qsim: qr + qrexp + qd,
		Prod: l.s, Rout: l.r, Exp: l.exp,
		Clamped: f.clamped || rc,
	}
}

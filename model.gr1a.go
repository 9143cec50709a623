package hydrogr

import "math"

// gr1a is the annual single-parameter model. Its only memory is the previous
// year's precipitation; while that is unknown the step yields no flow.
type gr1a struct{ x1 float64 }

func (m *gr1a) caps() (float64, float64, float64) { return 0., 0., 0. }

func (m *gr1a) step(l *levels, p, e float64) Output {
	o := Output{PotEvap: e, Precip: p}
	pp := l.pprev
	l.pprev = p
	if math.IsNaN(pp) {
		return o
	}
	if e <= 0. {
		// limit of the formula as E -> 0: all precipitation runs off
		o.Qsim, o.QD, o.Clamped = p, p, true
		return o
	}
	d := (.7*p + .3*pp) / m.x1 / e
	o.Qsim = p * (1. - 1./math.Sqrt(1.+d*d))
	o.QD = o.Qsim
	o.AE = p - o.Qsim
	return o
}

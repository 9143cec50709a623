package forcing

import (
	"fmt"
	"math"
	"time"
)

// ToMM converts series supplied in metres to millimetres.
func (frc *Forcing) ToMM() {
	for j := range frc.T {
		frc.Ya[j] *= 1000
		frc.Ea[j] *= 1000
	}
	for j := range frc.Qo {
		frc.Qo[j] *= 1000
	}
}

// Frequency infers the timestep of the series: "H" hourly, "D" daily,
// "M" monthly or "A" annual. Monthly and annual series step by calendar
// month or year. Irregular or too short series return an error.
func (frc *Forcing) Frequency() (string, error) {
	nt := len(frc.T)
	if nt < 2 {
		return "", fmt.Errorf("cannot infer frequency from %d timesteps", nt)
	}
	every := func(f func(t0, t1 time.Time) bool) bool {
		for j := 1; j < nt; j++ {
			if !f(frc.T[j-1], frc.T[j]) {
				return false
			}
		}
		return true
	}
	months := func(t time.Time) int { return t.Year()*12 + int(t.Month()) - 1 }
	switch {
	case every(func(t0, t1 time.Time) bool { return t1.Sub(t0) == time.Hour }):
		return "H", nil
	case every(func(t0, t1 time.Time) bool { return t1.Sub(t0) == 24*time.Hour }):
		return "D", nil
	case every(func(t0, t1 time.Time) bool { return months(t1)-months(t0) == 1 }):
		return "M", nil
	case every(func(t0, t1 time.Time) bool { return t1.Year()-t0.Year() == 1 }):
		return "A", nil
	}
	return "", fmt.Errorf("irregular timesteps from %v", frc.T[0])
}

// Aggregate sums the series to calendar months ("M") or years ("A"),
// labelling each period by its first instant. Missing values are skipped;
// a period with no value at all stays missing.
func (frc *Forcing) Aggregate(freq string) (*Forcing, error) {
	var key func(t time.Time) time.Time
	switch freq {
	case "M":
		key = func(t time.Time) time.Time { return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()) }
	case "A":
		key = func(t time.Time) time.Time { return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location()) }
	default:
		return nil, fmt.Errorf("forcing.Aggregate: unsupported frequency %q", freq)
	}

	var (
		t          []time.Time
		ya, ea, qo []float64
	)
	add := func(s []float64, x float64) {
		i := len(s) - 1
		if math.IsNaN(x) {
			return
		}
		if math.IsNaN(s[i]) {
			s[i] = 0.
		}
		s[i] += x
	}
	for j, dt := range frc.T {
		k := key(dt)
		if len(t) == 0 || !k.Equal(t[len(t)-1]) {
			t = append(t, k)
			ya = append(ya, math.NaN())
			ea = append(ea, math.NaN())
			qo = append(qo, math.NaN())
		}
		add(ya, frc.Ya[j])
		add(ea, frc.Ea[j])
		if frc.HasObs() {
			add(qo, frc.Qo[j])
		}
	}
	if !frc.HasObs() {
		qo = nil
	}
	return New(t, ya, ea, qo)
}

// Package uh builds the GR unit hydrographs: S-curve ordinates and the
// convolution buffer that spreads a rainfall pulse over future timesteps.
package uh

import "math"

// SCurve1 S-curve of the single-sided hydrograph UH1, rising to 1 at t = x4.
func SCurve1(t int, x4, exp float64) float64 {
	ft := float64(t)
	if ft < x4 {
		return math.Pow(ft/x4, exp)
	}
	return 1.
}

// SCurve2 S-curve of the symmetric hydrograph UH2, rising to 1 at t = 2·x4.
func SCurve2(t int, x4, exp float64) float64 {
	ft := float64(t)
	if ft < x4 {
		return .5 * math.Pow(ft/x4, exp)
	}
	if ft < 2.*x4 {
		return 1. - .5*math.Pow(2.-ft/x4, exp)
	}
	return 1.
}

// Ordinates1 returns the ceil(x4) ordinates of UH1.
func Ordinates1(x4, exp float64) []float64 {
	return ordinates(int(math.Ceil(x4)), x4, exp, SCurve1)
}

// Ordinates2 returns the ceil(2·x4) ordinates of UH2.
func Ordinates2(x4, exp float64) []float64 {
	return ordinates(int(math.Ceil(2.*x4)), x4, exp, SCurve2)
}

func ordinates(n int, x4, exp float64, sc func(int, float64, float64) float64) []float64 {
	o := make([]float64, n)
	for i := 1; i <= n; i++ {
		o[i-1] = sc(i, x4, exp) - sc(i-1, x4, exp)
	}
	return o
}

package forcing

import (
	"fmt"
	"math"
)

// Check returns advisories for missing or negative inputs and for
// non-increasing dates. Values are reported, never corrected.
func (frc *Forcing) Check() []string {
	var adv []string
	count := func(nam string, v []float64) {
		nnan, nneg := 0, 0
		for _, x := range v {
			if math.IsNaN(x) {
				nnan++
			} else if x < 0. {
				nneg++
			}
		}
		if nnan > 0 {
			adv = append(adv, fmt.Sprintf("%d missing values detected in %s", nnan, nam))
		}
		if nneg > 0 {
			adv = append(adv, fmt.Sprintf("%d negative values detected in %s", nneg, nam))
		}
	}
	count("precipitation", frc.Ya)
	count("evapotranspiration", frc.Ea)
	for j := 1; j < len(frc.T); j++ {
		if !frc.T[j].After(frc.T[j-1]) {
			adv = append(adv, fmt.Sprintf("dates not increasing at timestep %d (%v)", j, frc.T[j]))
			break
		}
	}
	return adv
}

func (frc *Forcing) CheckAndPrint() {
	fmt.Println("Forcing summary:")
	nt := len(frc.T)
	if nt == 0 {
		fmt.Println(" empty")
		return
	}
	f, err := frc.Frequency()
	if err != nil {
		f = "irregular"
	}
	fmt.Printf(" %v to %v, frequency %s (%d timesteps)\n", frc.T[0], frc.T[nt-1], f, nt)
	fmt.Printf(" model timestep interval: %ds, observed flow: %v\n", int64(frc.IntervalSec), frc.HasObs())

	sy, se, n := 0., 0., 0
	for j := range frc.T {
		if math.IsNaN(frc.Ya[j]) || math.IsNaN(frc.Ea[j]) {
			continue
		}
		sy += frc.Ya[j]
		se += frc.Ea[j]
		n++
	}
	if n > 0 && frc.IntervalSec > 0. {
		fy := secYear / frc.IntervalSec / float64(n)
		fmt.Printf(" totals (mm/yr): Ya: %.1f   Ea: %.1f\n", sy*fy, se*fy)
	}
	for _, a := range frc.Check() {
		fmt.Printf(" warning: %s\n", a)
	}
}

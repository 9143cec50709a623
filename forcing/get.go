package forcing

import (
	"fmt"
	"time"
)

// SubPeriod returns the timesteps within [from, to]. Bounds beyond the
// available record are reported as advisories and the record is trimmed to
// what exists.
func (frc *Forcing) SubPeriod(from, to time.Time) (*Forcing, []string) {
	var adv []string
	nt := len(frc.T)
	if nt > 0 && from.Before(frc.T[0]) {
		adv = append(adv, fmt.Sprintf("selected start date %v is prior to the first sample %v", from, frc.T[0]))
	}
	if nt > 0 && to.After(frc.T[nt-1]) {
		adv = append(adv, fmt.Sprintf("selected end date %v is posterior to the last sample %v", to, frc.T[nt-1]))
	}

	o := Forcing{IntervalSec: frc.IntervalSec}
	for j, t := range frc.T {
		if t.Before(from) || t.After(to) {
			continue
		}
		o.T = append(o.T, t)
		o.Ya = append(o.Ya, frc.Ya[j])
		o.Ea = append(o.Ea, frc.Ea[j])
		if frc.HasObs() {
			o.Qo = append(o.Qo, frc.Qo[j])
		}
	}
	return &o, adv
}

// Index returns the first timestep at or after t, or Nt() when none is.
func (frc *Forcing) Index(t time.Time) int {
	for j, dt := range frc.T {
		if !dt.Before(t) {
			return j
		}
	}
	return len(frc.T)
}

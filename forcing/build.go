package forcing

import (
	"fmt"
	"time"
)

// nominal interval lengths [s]
const (
	secHour  = 3600.
	secDay   = 86400.
	secMonth = 365.25 * secDay / 12.
	secYear  = 365.25 * secDay
)

// New assembles a forcing set from its columns. qo may be nil. The interval
// is taken from the inferred frequency, or from the first two dates when the
// series is irregular.
func New(t []time.Time, ya, ea, qo []float64) (*Forcing, error) {
	nt := len(t)
	if len(ya) != nt || len(ea) != nt {
		return nil, fmt.Errorf("forcing.New: %d dates, %d precipitation, %d evapotranspiration values", nt, len(ya), len(ea))
	}
	if qo != nil && len(qo) != nt {
		return nil, fmt.Errorf("forcing.New: %d dates, %d observed flows", nt, len(qo))
	}
	frc := Forcing{T: t, Ya: ya, Ea: ea, Qo: qo}
	frc.IntervalSec = frc.interval()
	return &frc, nil
}

func (frc *Forcing) interval() float64 {
	f, err := frc.Frequency()
	if err == nil {
		switch f {
		case "H":
			return secHour
		case "D":
			return secDay
		case "M":
			return secMonth
		case "A":
			return secYear
		}
	}
	if len(frc.T) > 1 {
		return frc.T[1].Sub(frc.T[0]).Seconds()
	}
	return 0.
}

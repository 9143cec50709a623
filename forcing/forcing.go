// Package forcing holds the lumped input series of a GR run: precipitation,
// potential evapotranspiration and optionally observed flow, on a regular
// time axis.
package forcing

import "time"

type Forcing struct {
	T           []time.Time // [DateID]
	Ya, Ea      []float64   // [DateID] precipitation and potential evapotranspiration [mm/ts]
	Qo          []float64   // [DateID] observed flow [mm/ts], nil when not supplied
	IntervalSec float64     // nominal timestep
}

// Nt returns the number of timesteps.
func (frc *Forcing) Nt() int { return len(frc.T) }

// HasObs reports whether observed flows are attached.
func (frc *Forcing) HasObs() bool { return len(frc.Qo) == len(frc.T) && len(frc.Qo) > 0 }

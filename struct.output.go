package hydrogr

// Output is one simulated timestep. Fluxes are in mm per timestep, store
// levels in mm after the step. Variants fill what they compute and leave the
// rest at zero.
type Output struct {
	PotEvap, Precip float64 // inputs

	Pn, En  float64 // net rainfall, net evapotranspiration demand
	Ps      float64 // net rainfall entering the production store
	Es      float64 // evaporation from the production store
	AE      float64 // actual evapotranspiration
	Perc    float64 // percolation out of the production store
	PR      float64 // rainfall passed to routing
	Q9, Q1  float64 // hydrograph outputs reaching the routing store and the direct branch
	Exch    float64 // potential groundwater exchange
	AExch   float64 // exchange actually applied (summed over branches)
	QR      float64 // routing store outflow
	QRExp   float64 // exponential store outflow (GR6J)
	QD      float64 // direct flow
	Qsim    float64 // simulated flow
	Prod    float64 // production store level
	Rout    float64 // routing store level
	Exp     float64 // exponential store level (GR6J)
	Clamped bool    // a store was pushed back onto its physical bounds
}

// Flows extracts the simulated flow series.
func Flows(out []Output) []float64 {
	q := make([]float64, len(out))
	for i, o := range out {
		q[i] = o.Qsim
	}
	return q
}

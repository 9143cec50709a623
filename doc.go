// Package hydrogr simulates catchment runoff with the GR family of lumped
// conceptual rainfall-runoff models: GR1A (annual), GR2M (monthly), GR4J,
// GR5J and GR6J (daily) and GR4H (hourly).
//
// An Engine holds one variant's parameters and store levels and advances
// them one timestep at a time from precipitation and potential
// evapotranspiration [mm]. Its State can be read and reinstalled for warm
// starts, and persisted with SaveState/LoadState.
//
//	eng, notices, err := hydrogr.New(hydrogr.GR4J, hydrogr.Parameters{
//		"X1": 257.238, "X2": 1.012, "X3": 88.235, "X4": 2.208,
//	})
//	out, err := eng.Run(precip, pet)
//	q := hydrogr.Flows(out)
package hydrogr

package hydrogr

const (
	// storage fraction of routed rainfall sent to the routing store (the rest is direct flow)
	storageFraction = .9
	// GR6J share of the routed fraction diverted to the exponential store
	expFraction = .4

	// UH exponents
	expDaily  = 2.5
	expHourly = 1.25

	// percolation denominators, (b)^4 with b = 9/4 (daily) and 21/4 (hourly)
	percDaily       = 25.62890625
	percDailyLegacy = 25.62891 // rounded value kept by the GR4J kernel
	percHourly      = 759.69140625

	maxScaledNet = 13. // tanh argument clip
	expClip      = 33. // GR6J exponential store ratio clip

	gr2mRoutingCap = 60. // [mm] fixed GR2M routing store capacity

	// hydrograph buffer capacities [timesteps]
	nhDaily  = 20
	nhHourly = 20 * 24

	// default initial fill fractions
	defaultProduction  = .3
	defaultRouting     = .5
	defaultExponential = .3

	// lower thresholds
	minCapacity = .01 // X1, X3, X6 [mm]
	minTimeBase = .5  // X4 [timestep]
)

package hydrogr

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Parameters maps parameter symbols (X1..X6) to values:
//
//	X1 production store capacity [mm] (GR1A: dimensionless)
//	X2 exchange coefficient [mm/timestep] (GR2M: dimensionless)
//	X3 routing store capacity [mm]
//	X4 unit hydrograph time base [timestep]
//	X5 exchange threshold [-]
//	X6 exponential store coefficient [mm]
type Parameters map[string]float64

// Clone returns an independent copy.
func (par Parameters) Clone() Parameters {
	o := make(Parameters, len(par))
	for k, v := range par {
		o[k] = v
	}
	return o
}

// Slice returns the values in the variant's declared order.
func (par Parameters) Slice(v Variant) []float64 {
	nms := v.spec().params
	o := make([]float64, len(nms))
	for i, n := range nms {
		o[i] = par[n]
	}
	return o
}

// Notice is an advisory raised when a parameter is moved onto a physical threshold.
type Notice struct {
	Name      string
	Value     float64 // value supplied
	Threshold float64 // value used
	Message   string
}

func (n Notice) String() string {
	return fmt.Sprintf("%s = %v %s, replaced by %v", n.Name, n.Value, n.Message, n.Threshold)
}

// ClampResult carries the corrected parameter set with the notices raised while correcting it.
type ClampResult struct {
	Params  Parameters
	Notices []Notice
}

type bound struct {
	name     string
	lo, hi   float64
	what, hu string // description, units
}

func (v Variant) bounds() []bound {
	s := v.spec()
	maxX4 := float64(s.nuh1)
	if s.nuh1 == 0 {
		maxX4 = float64(s.nuh2) / 2.
	}
	hu := "[d]"
	if v == GR4H {
		hu = "[h]"
	}
	switch v {
	case GR1A:
		return []bound{{"X1", minCapacity, math.Inf(1), "deficit coefficient", "[-]"}}
	case GR2M:
		return []bound{
			{"X1", minCapacity, math.Inf(1), "production store capacity", "[mm]"},
			{"X2", minCapacity, math.Inf(1), "groundwater exchange coefficient", "[-]"},
		}
	case GR4J, GR4H, GR5J:
		return []bound{
			{"X1", minCapacity, math.Inf(1), "production store capacity", "[mm]"},
			{"X3", minCapacity, math.Inf(1), "routing store capacity", "[mm]"},
			{"X4", minTimeBase, maxX4, "unit hydrograph time constant", hu},
		}
	case GR6J:
		return []bound{
			{"X1", minCapacity, math.Inf(1), "production store capacity", "[mm]"},
			{"X3", minCapacity, math.Inf(1), "routing store capacity", "[mm]"},
			{"X4", minTimeBase, maxX4, "unit hydrograph time constant", hu},
			{"X6", minCapacity, math.Inf(1), "exponential store coefficient", "[mm]"},
		}
	}
	return nil
}

// Check validates the parameter set against the variant and returns a clamped copy.
// A set whose names or count differ from the variant's fails with ErrParameterSet;
// values beyond a physical threshold are moved onto it and reported as notices.
// The supplied map is not modified.
func Check(v Variant, par Parameters) (ClampResult, error) {
	nms := v.spec().params
	if len(par) != len(nms) {
		return ClampResult{}, fmt.Errorf("%w: %s expects %d parameters %v, got %d (%s)", ErrParameterSet, v, len(nms), nms, len(par), keys(par))
	}
	for _, n := range nms {
		x, ok := par[n]
		if !ok {
			return ClampResult{}, fmt.Errorf("%w: %s parameter %s missing (got %s)", ErrParameterSet, v, n, keys(par))
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ClampResult{}, fmt.Errorf("%w: %s parameter %s = %v", ErrParameterSet, v, n, x)
		}
	}

	cr := ClampResult{Params: par.Clone()}
	for _, b := range v.bounds() {
		x := cr.Params[b.name]
		if x < b.lo {
			cr.Params[b.name] = b.lo
			cr.Notices = append(cr.Notices, Notice{b.name, x, b.lo, fmt.Sprintf("(%s) under threshold %v %s", b.what, b.lo, b.hu)})
		} else if x > b.hi {
			cr.Params[b.name] = b.hi
			cr.Notices = append(cr.Notices, Notice{b.name, x, b.hi, fmt.Sprintf("(%s) exceeds hydrograph capacity %v %s", b.what, b.hi, b.hu)})
		}
	}
	return cr, nil
}

func keys(par Parameters) string {
	ks := make([]string, 0, len(par))
	for k := range par {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return strings.Join(ks, ",")
}

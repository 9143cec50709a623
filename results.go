package hydrogr

import (
	"fmt"
	"math"
	"time"

	"github.com/maseology/mmio"
	"github.com/maseology/objfunc"
)

// Scores summarises a simulated hydrograph against observations.
type Scores struct {
	RMSE, NSE, KGE, Bias float64
	N                    int // samples scored
}

func (s Scores) String() string {
	return fmt.Sprintf("KGE: %.3f  NSE: %.3f  RMSE: %.3f  Bias: %.3f  (n=%d)", s.KGE, s.NSE, s.RMSE, s.Bias, s.N)
}

// Evaluate scores sim against obs over timesteps at or after from. Missing
// observations and non-finite simulations are excluded.
func Evaluate(t []time.Time, obs, sim []float64, from time.Time) (Scores, error) {
	if len(obs) != len(sim) || len(t) != len(sim) {
		return Scores{}, fmt.Errorf("%w: %d dates, %d observations, %d simulations", ErrLength, len(t), len(obs), len(sim))
	}
	o, s := make([]float64, 0, len(obs)), make([]float64, 0, len(sim))
	for j, dt := range t {
		if dt.Before(from) || math.IsNaN(obs[j]) || math.IsNaN(sim[j]) || math.IsInf(sim[j], 0) {
			continue
		}
		o = append(o, obs[j])
		s = append(s, sim[j])
	}
	if len(o) == 0 {
		return Scores{}, fmt.Errorf("Evaluate: no observations on or after %v", from)
	}
	return Scores{
		RMSE: objfunc.RMSE(o, s),
		NSE:  objfunc.NSE(o, s),
		KGE:  objfunc.KGE(o, s),
		Bias: objfunc.Bias(o, s),
		N:    len(o),
	}, nil
}

// WriteHydrograph saves the run to a csv with observed and simulated flow
// followed by the flux and store diagnostics of each timestep. obs may be nil.
func WriteHydrograph(fp string, t []time.Time, obs []float64, out []Output) error {
	if len(t) != len(out) || (obs != nil && len(obs) != len(out)) {
		return fmt.Errorf("%w: WriteHydrograph: %d dates, %d observations, %d outputs", ErrLength, len(t), len(obs), len(out))
	}
	tw, err := mmio.NewTXTwriter(fp)
	if err != nil {
		return fmt.Errorf("WriteHydrograph failed: %v", err)
	}
	defer tw.Close()
	tw.WriteLine("date,obs,sim,precip,potevap,ae,perc,pr,exch,aexch,qr,qrexp,qd,prod,rout,exp")
	for j, o := range out {
		q := math.NaN()
		if obs != nil {
			q = obs[j]
		}
		tw.WriteLine(fmt.Sprintf("%s,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g",
			t[j].Format(time.DateTime), q, o.Qsim, o.Precip, o.PotEvap, o.AE, o.Perc, o.PR,
			o.Exch, o.AExch, o.QR, o.QRExp, o.QD, o.Prod, o.Rout, o.Exp))
	}
	return nil
}

// WriteFlows saves date, observed and simulated flow only.
func WriteFlows(fp string, t []time.Time, obs []float64, out []Output) {
	mmio.WriteCsvDateFloats(fp, "date,obs,sim", t, obs, Flows(out))
}

package main

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/maseology/hydrogr"
	"github.com/maseology/hydrogr/config"
	"github.com/maseology/hydrogr/forcing"
	"github.com/maseology/hydrogr/opt"
	"github.com/maseology/mmio"
	"github.com/spf13/pflag"
)

func main() {
	var (
		cfgfp   = pflag.StringP("config", "c", "", "YAML run file (default $"+config.EnvVar+")")
		hydfp   = pflag.String("hydrograph", "", "override output.hydrograph")
		flowfp  = pflag.String("flows", "", "override output.flows")
		hsout   = pflag.String("hotstart-out", "", "override hotstart.out")
		nsmpl   = pflag.IntP("ensemble", "n", -1, "override ensemble.size (0 for a single run)")
		nwrkrs  = pflag.IntP("workers", "w", 0, "ensemble workers (default one per CPU)")
		summary = pflag.BoolP("summary", "s", false, "print the forcing summary")
	)
	pflag.Parse()

	cfg, err := config.Load(*cfgfp)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if *hydfp != "" {
		cfg.Output.Hydrograph = *hydfp
	}
	if *flowfp != "" {
		cfg.Output.Flows = *flowfp
	}
	if *hsout != "" {
		cfg.Hotstart.Out = *hsout
	}
	if *nsmpl >= 0 {
		cfg.Ensemble.Size = *nsmpl
	}
	if *nwrkrs > 0 {
		cfg.Ensemble.Workers = *nwrkrs
	}

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap(fmt.Sprintf("\nRun complete. n processes: %v", runtime.GOMAXPROCS(0)))

	v, err := hydrogr.ParseVariant(cfg.Model)
	if err != nil {
		log.Fatalf("%v", err)
	}
	frc := loadForcing(cfg)
	if *summary {
		frc.CheckAndPrint()
	}
	if err := hydrogr.CheckForcing(v, frc); err != nil {
		log.Fatalf("%v", err)
	}
	for _, a := range frc.Check() {
		fmt.Printf(" warning: %s\n", a)
	}
	tt.Lap("forcing loaded")

	_, start, _, _ := cfg.Period.Dates()
	var st *hydrogr.State
	if cfg.Hotstart.In != "" {
		hv, hst, err := hydrogr.LoadState(cfg.Hotstart.In)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if hv != v {
			log.Fatalf("hotstart %s holds a %s state, model is %s", cfg.Hotstart.In, hv, v)
		}
		st = &hst
	}

	if cfg.Ensemble.Size > 0 {
		runEnsemble(cfg, v, frc, st, start)
	} else {
		runSingle(cfg, v, frc, st, start)
	}
}

func loadForcing(cfg *config.Config) *forcing.Forcing {
	frc, err := forcing.Load(cfg.Forcing)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if cfg.Units == "m" {
		frc.ToMM()
	}
	if cfg.Aggregate != "" {
		if frc, err = frc.Aggregate(cfg.Aggregate); err != nil {
			log.Fatalf("%v", err)
		}
	}
	w, _, e, _ := cfg.Period.Dates()
	if !w.IsZero() || !e.IsZero() {
		if w.IsZero() {
			w = frc.T[0]
		}
		if e.IsZero() {
			e = frc.T[frc.Nt()-1]
		}
		var adv []string
		frc, adv = frc.SubPeriod(w, e)
		for _, a := range adv {
			fmt.Printf(" warning: %s\n", a)
		}
	}
	if frc.Nt() == 0 {
		log.Fatalf("no forcing data within the selected period")
	}
	return frc
}

func runSingle(cfg *config.Config, v hydrogr.Variant, frc *forcing.Forcing, st *hydrogr.State, start time.Time) {
	eng, ntc, err := hydrogr.New(v, cfg.Parameters)
	if err != nil {
		log.Fatalf("%v", err)
	}
	for _, n := range ntc {
		fmt.Printf(" notice: %s\n", n)
	}
	if st != nil {
		if err := eng.SetState(*st); err != nil {
			log.Fatalf("%v", err)
		}
	}

	out, err := eng.Run(frc.Ya, frc.Ea)
	if err != nil {
		log.Fatalf("%v", err)
	}
	tt := mmio.NewTimer()
	fmt.Printf(" %s: %d timesteps simulated\n", v, len(out))

	if frc.HasObs() {
		sc, err := hydrogr.Evaluate(frc.T, frc.Qo, hydrogr.Flows(out), start)
		if err != nil {
			fmt.Printf(" %v\n", err)
		} else {
			fmt.Printf("  %s\n", sc)
		}
	}
	if cfg.Output.Hydrograph != "" {
		if err := hydrogr.WriteHydrograph(cfg.Output.Hydrograph, frc.T, frc.Qo, out); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if cfg.Output.Flows != "" {
		obs := frc.Qo
		if obs == nil {
			obs = make([]float64, frc.Nt())
		}
		hydrogr.WriteFlows(cfg.Output.Flows, frc.T, obs, out)
	}
	if cfg.Hotstart.Out != "" {
		if err := hydrogr.SaveState(cfg.Hotstart.Out, v, eng.State()); err != nil {
			log.Fatalf("%v", err)
		}
	}
	tt.Print("outputs written")
}

func runEnsemble(cfg *config.Config, v hydrogr.Variant, frc *forcing.Forcing, st *hydrogr.State, start time.Time) {
	sets, err := opt.LatinHypercube(opt.Ranges(v), cfg.Ensemble.Size, cfg.Ensemble.Seed)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf(" running %d samples from %d dimensions..\n", len(sets), len(v.ParameterNames()))
	ens := hydrogr.Ensemble{
		Variant:  v,
		Forcing:  frc,
		State:    st,
		From:     start,
		Workers:  cfg.Ensemble.Workers,
		Progress: true,
		OutPrfx:  cfg.Ensemble.Prefix,
	}
	ms := ens.Run(sets)
	nerr := 0
	for _, m := range ms {
		if m.Err != nil {
			nerr++
		}
	}
	if nerr > 0 {
		fmt.Printf(" %d of %d runs failed\n", nerr, len(ms))
	}
	if b, ok := hydrogr.Best(ms); ok {
		fmt.Printf(" best run %d: %v\n  %s\n", b.Index, b.Params.Slice(v), b.Scores)
	}
}

package hydrogr

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/hydrogr/forcing"
)

// Ensemble runs many independent parameter sets of one variant over the
// same forcing. Each run owns its Engine, so runs proceed in parallel.
type Ensemble struct {
	Variant  Variant
	Forcing  *forcing.Forcing
	State    *State    // initial state of every run, nil for the default
	From     time.Time // scoring starts here (end of warm-up)
	Workers  int       // <= 0: one per CPU
	Progress bool      // show a progress bar
	OutPrfx  string    // when set, each run's flows are saved to <OutPrfx><index>.bin
}

// Member is the outcome of one ensemble run.
type Member struct {
	Index   int
	Params  Parameters
	Notices []Notice
	Flows   []float64
	Scores  Scores // zero when the forcing carries no observations
	Err     error
}

// Run simulates every parameter set; results are index-aligned with sets.
func (ens *Ensemble) Run(sets []Parameters) []Member {
	nwrkrs := ens.Workers
	if nwrkrs <= 0 {
		nwrkrs = runtime.GOMAXPROCS(0)
	}
	nwrkrs = max(1, min(nwrkrs, len(sets)))

	var bar *uiprogress.Bar
	if ens.Progress {
		uiprogress.Start()
		defer uiprogress.Stop()
		bar = uiprogress.AddBar(len(sets)).AppendCompleted().PrependElapsed()
	}

	done := make(chan interface{})
	defer close(done)
	jobs := make(chan int)
	go func() {
		defer close(jobs)
		for k := range sets {
			select {
			case jobs <- k:
			case <-done:
				return
			}
		}
	}()

	out := make([]Member, len(sets))
	var wg sync.WaitGroup
	wg.Add(nwrkrs)
	for i := 0; i < nwrkrs; i++ {
		go func() {
			defer wg.Done()
			for k := range jobs {
				out[k] = ens.member(k, sets[k])
				if bar != nil {
					bar.Incr()
				}
			}
		}()
	}
	wg.Wait()
	return out
}

func (ens *Ensemble) member(k int, par Parameters) Member {
	m := Member{Index: k}
	eng, ntc, err := New(ens.Variant, par)
	if err != nil {
		m.Err = err
		return m
	}
	m.Params, m.Notices = eng.Parameters(), ntc
	if ens.State != nil {
		if err := eng.SetState(*ens.State); err != nil {
			m.Err = err
			return m
		}
	}
	res, err := eng.Run(ens.Forcing.Ya, ens.Forcing.Ea)
	if err != nil {
		m.Err = err
		return m
	}
	m.Flows = Flows(res)
	if ens.Forcing.HasObs() {
		if m.Scores, err = Evaluate(ens.Forcing.T, ens.Forcing.Qo, m.Flows, ens.From); err != nil {
			m.Err = err
			return m
		}
	}
	if len(ens.OutPrfx) > 0 {
		if err := writeFloats(fmt.Sprintf("%s%d.bin", ens.OutPrfx, k), m.Flows); err != nil {
			m.Err = err
		}
	}
	return m
}

// Best returns the member with the highest KGE among the successful runs,
// or false when none succeeded.
func Best(ms []Member) (Member, bool) {
	ib := -1
	for i, m := range ms {
		if m.Err != nil || m.Scores.N == 0 {
			continue
		}
		if ib < 0 || m.Scores.KGE > ms[ib].Scores.KGE {
			ib = i
		}
	}
	if ib < 0 {
		return Member{}, false
	}
	return ms[ib], true
}

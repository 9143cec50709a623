package hydrogr_test

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/maseology/hydrogr"
	"github.com/maseology/hydrogr/forcing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gr4jPar = hydrogr.Parameters{"X1": 257.238, "X2": 1.012, "X3": 88.235, "X4": 2.208}

// testParams is a plausible parameter set per variant.
func testParams(v hydrogr.Variant) hydrogr.Parameters {
	switch v {
	case hydrogr.GR1A:
		return hydrogr.Parameters{"X1": .84}
	case hydrogr.GR2M:
		return hydrogr.Parameters{"X1": 265.072, "X2": 1.04}
	case hydrogr.GR4H:
		return hydrogr.Parameters{"X1": 521.113, "X2": -2.918, "X3": 218.009, "X4": 4.124}
	case hydrogr.GR5J:
		return hydrogr.Parameters{"X1": 245.918, "X2": 1.027, "X3": 90.017, "X4": 2.198, "X5": .434}
	case hydrogr.GR6J:
		return hydrogr.Parameters{"X1": 242.257, "X2": .637, "X3": 53.517, "X4": 2.218, "X5": .424, "X6": 4.759}
	}
	return gr4jPar.Clone()
}

func loadDaily(t *testing.T) *forcing.Forcing {
	t.Helper()
	frc, err := forcing.Load("testdata/gr4j_370d.csv")
	require.NoError(t, err)
	require.Equal(t, 370, frc.Nt())
	return frc
}

func rmse(o, s []float64) float64 {
	ss := 0.
	for i := range o {
		ss += (o[i] - s[i]) * (o[i] - s[i])
	}
	return math.Sqrt(ss / float64(len(o)))
}

func sum(v []float64) float64 {
	s := 0.
	for _, x := range v {
		s += x
	}
	return s
}

func TestGR4J_Reference(t *testing.T) {
	frc := loadDaily(t)
	eng, ntc, err := hydrogr.New(hydrogr.GR4J, gr4jPar)
	require.NoError(t, err)
	assert.Empty(t, ntc)

	out, err := eng.Run(frc.Ya, frc.Ea)
	require.NoError(t, err)
	q := hydrogr.Flows(out)
	assert.InDelta(t, 0.4602862058994086, rmse([]float64{1.992, 1.8, 2.856, 2.4, 3.312}, q[365:370]), 1e-9)
}

func TestGR4H_Reference(t *testing.T) {
	eng, _, err := hydrogr.New(hydrogr.GR4H, hydrogr.Parameters{"X1": 200., "X2": 1., "X3": 100., "X4": 2.})
	require.NoError(t, err)
	st := eng.State()
	st.Production, st.Routing = 0., 0.
	require.NoError(t, eng.SetState(st))

	p := []float64{0, 0, 0, 10, 10, 10, 10, 0, 0, 0}
	e := []float64{.1, .1, .1, .1, .1, .1, .1, .1, .1, .1}
	out, err := eng.Run(p, e)
	require.NoError(t, err)
	want := []float64{0.0, 0.0, 0.0, 0.00016981750514207867, 0.0014188328018795034, 0.0050621281264912315,
		0.012368862852729453, 0.01408289101187942, 0.011689660613822294, 0.006163451427650927}
	assert.InDeltaSlice(t, want, hydrogr.Flows(out), 1e-12)
}

func TestGR2M_Reference(t *testing.T) {
	eng, _, err := hydrogr.New(hydrogr.GR2M, testParams(hydrogr.GR2M))
	require.NoError(t, err)
	out, err := eng.Run([]float64{120., 80., 35., 10., 60., 150.}, []float64{20., 40., 90., 110., 70., 25.})
	require.NoError(t, err)
	want := []float64{38.27905327035836, 43.969546162223786, 22.87916991301063, 10.108637232423318, 8.573364343279822, 37.42772754724978}
	assert.InDeltaSlice(t, want, hydrogr.Flows(out), 1e-10)
	st := eng.State()
	assert.InDelta(t, 0.5615276054145674, st.Production, 1e-12)
	assert.InDelta(t, 0.5372640058149913, st.Routing, 1e-12)
}

func TestGR1A_Reference(t *testing.T) {
	eng, _, err := hydrogr.New(hydrogr.GR1A, testParams(hydrogr.GR1A))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(eng.State().PreviousPrecipitation))

	out, err := eng.Run([]float64{900., 1100., 750., 1300.}, []float64{650., 700., 720., 640.})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0., 558.615666148557, 316.880503839487, 743.5144498897986}, hydrogr.Flows(out), 1e-9)
	assert.Equal(t, 1300., eng.State().PreviousPrecipitation)

	// a warm start carries last year's precipitation into the first step
	warm, _, err := hydrogr.New(hydrogr.GR1A, testParams(hydrogr.GR1A))
	require.NoError(t, err)
	st := warm.State()
	st.PreviousPrecipitation = 900.
	require.NoError(t, warm.SetState(st))
	o := warm.Step(1100., 700.)
	assert.InDelta(t, 558.615666148557, o.Qsim, 1e-9)
}

func TestNew_DefaultState(t *testing.T) {
	for _, v := range hydrogr.Variants {
		eng, _, err := hydrogr.New(v, testParams(v))
		require.NoError(t, err, v.String())
		st := eng.State()
		def := hydrogr.DefaultState(v)
		assert.Equal(t, def.Production, st.Production, v.String())
		assert.Equal(t, def.Routing, st.Routing, v.String())
		assert.InDelta(t, def.Exponential, st.Exponential, 1e-15, v.String())
		assert.Equal(t, def.UH1, st.UH1, v.String())
		assert.Equal(t, def.UH2, st.UH2, v.String())
		n1, n2 := v.BufferLengths()
		assert.Len(t, st.UH1, n1)
		assert.Len(t, st.UH2, n2)
	}
	assert.Equal(t, .3, hydrogr.DefaultState(hydrogr.GR4J).Production)
	assert.Equal(t, .5, hydrogr.DefaultState(hydrogr.GR4J).Routing)
	assert.Equal(t, .3, hydrogr.DefaultState(hydrogr.GR6J).Exponential)
}

func TestNew_UnknownVariant(t *testing.T) {
	_, _, err := hydrogr.New(hydrogr.Variant(42), gr4jPar)
	assert.ErrorIs(t, err, hydrogr.ErrVariant)
}

// TestState_RoundTrip checks that installing a state read from a running
// engine reproduces the same future exactly.
func TestState_RoundTrip(t *testing.T) {
	frc := loadDaily(t)
	for _, v := range hydrogr.Variants {
		a, _, err := hydrogr.New(v, testParams(v))
		require.NoError(t, err)
		_, err = a.Run(frc.Ya[:200], frc.Ea[:200])
		require.NoError(t, err)

		st := a.State()
		b, _, err := hydrogr.New(v, testParams(v))
		require.NoError(t, err)
		require.NoError(t, b.SetState(st), v.String())

		// reading back without stepping is idempotent
		st2 := b.State()
		assert.InDelta(t, st.Production, st2.Production, 1e-15, v.String())
		assert.InDelta(t, st.Routing, st2.Routing, 1e-15, v.String())
		assert.Equal(t, st.UH1, st2.UH1, v.String())
		assert.Equal(t, st.UH2, st2.UH2, v.String())

		qa, err := a.Run(frc.Ya[200:], frc.Ea[200:])
		require.NoError(t, err)
		qb, err := b.Run(frc.Ya[200:], frc.Ea[200:])
		require.NoError(t, err)
		assert.InDeltaSlice(t, hydrogr.Flows(qa), hydrogr.Flows(qb), 1e-9, v.String())
	}
}

// TestState_Isolation checks that State returns a copy the caller may modify.
func TestState_Isolation(t *testing.T) {
	eng, _, err := hydrogr.New(hydrogr.GR4J, gr4jPar)
	require.NoError(t, err)
	eng.Step(20., 1.)
	st := eng.State()
	st.UH1[0] = 1e6
	assert.NotEqual(t, 1e6, eng.State().UH1[0])
}

func TestSetState_Errors(t *testing.T) {
	eng, _, err := hydrogr.New(hydrogr.GR6J, testParams(hydrogr.GR6J))
	require.NoError(t, err)
	before := eng.State()

	st := hydrogr.DefaultState(hydrogr.GR6J)
	st.Production = 1.2
	assert.ErrorIs(t, eng.SetState(st), hydrogr.ErrStateRange)

	st = hydrogr.DefaultState(hydrogr.GR6J)
	st.Routing = -.1
	assert.ErrorIs(t, eng.SetState(st), hydrogr.ErrStateRange)

	st = hydrogr.DefaultState(hydrogr.GR6J)
	st.Exponential = math.Inf(1)
	assert.ErrorIs(t, eng.SetState(st), hydrogr.ErrStateRange)

	st = hydrogr.DefaultState(hydrogr.GR6J)
	st.UH2 = st.UH2[:10]
	assert.ErrorIs(t, eng.SetState(st), hydrogr.ErrStateField)

	assert.Equal(t, before, eng.State())

	// the exponential store is unbounded
	st = hydrogr.DefaultState(hydrogr.GR6J)
	st.Exponential = -25.
	require.NoError(t, eng.SetState(st))
	assert.InDelta(t, -25., eng.State().Exponential, 1e-12)
}

func TestStateMap(t *testing.T) {
	for _, v := range hydrogr.Variants {
		m := hydrogr.DefaultState(v).Map(v)
		assert.ElementsMatch(t, v.StateNames(), keysOf(m), v.String())
		st, err := hydrogr.StateFromMap(v, m)
		require.NoError(t, err)
		if v != hydrogr.GR1A {
			assert.Equal(t, hydrogr.DefaultState(v), st)
		}
	}

	m := hydrogr.DefaultState(hydrogr.GR4J).Map(hydrogr.GR4J)
	delete(m, "uh1")
	_, err := hydrogr.StateFromMap(hydrogr.GR4J, m)
	assert.ErrorIs(t, err, hydrogr.ErrStateField)

	m = map[string]any{"production_store": .5, "routing_store": []any{.5}}
	_, err = hydrogr.StateFromMap(hydrogr.GR2M, m)
	assert.ErrorIs(t, err, hydrogr.ErrStateField)

	m = map[string]any{"production_store": 1, "routing_store": .2}
	st, err := hydrogr.StateFromMap(hydrogr.GR2M, m)
	require.NoError(t, err)
	assert.Equal(t, 1., st.Production)
}

func keysOf(m map[string]any) []string {
	o := make([]string, 0, len(m))
	for k := range m {
		o = append(o, k)
	}
	return o
}

// TestZeroFlux checks that empty stores without input stay empty and
// produce no flow.
func TestZeroFlux(t *testing.T) {
	for _, v := range hydrogr.Variants {
		par := testParams(v)
		if v == hydrogr.GR5J || v == hydrogr.GR6J {
			par["X2"] = 0.
		}
		eng, _, err := hydrogr.New(v, par)
		require.NoError(t, err)
		st := eng.State()
		st.Production, st.Routing, st.PreviousPrecipitation = 0., 0., 0.
		require.NoError(t, eng.SetState(st))

		for j := 0; j < 50; j++ {
			o := eng.Step(0., 0.)
			assert.Zero(t, o.Prod, v.String())
			assert.Zero(t, o.Rout, v.String())
			assert.Zero(t, o.QR, v.String())
			assert.Zero(t, o.QD, v.String())
			if v != hydrogr.GR6J {
				assert.Zero(t, o.Qsim, v.String())
			}
		}
	}
}

// TestBoundaryFill runs from full and from empty stores and checks the
// reported fill fractions stay within [0, 1].
func TestBoundaryFill(t *testing.T) {
	frc := loadDaily(t)
	for _, v := range hydrogr.Variants {
		if v == hydrogr.GR1A {
			continue
		}
		for _, f := range []float64{0., 1.} {
			eng, _, err := hydrogr.New(v, testParams(v))
			require.NoError(t, err)
			st := eng.State()
			st.Production, st.Routing = f, f
			require.NoError(t, eng.SetState(st))
			for j, o := range eng.Steps(frc.Ya, frc.Ea) {
				require.False(t, math.IsNaN(o.Qsim), "%s step %d", v, j)
				assert.GreaterOrEqual(t, o.Qsim, 0.)
				s := eng.State()
				require.NoError(t, s.Validate(v), "%s fill %v step %d", v, f, j)
			}
		}
	}
}

// TestWaterBalance checks closure over a year of daily forcing:
// P - AE - Q + AExch = dS + dR + dExp + d(pending routed rainfall).
func TestWaterBalance(t *testing.T) {
	frc := loadDaily(t)
	for _, v := range []hydrogr.Variant{hydrogr.GR2M, hydrogr.GR4J, hydrogr.GR5J, hydrogr.GR6J} {
		par := testParams(v)
		eng, _, err := hydrogr.New(v, par)
		require.NoError(t, err)
		st0 := eng.State()
		out, err := eng.Run(frc.Ya, frc.Ea)
		require.NoError(t, err)

		var sp, sae, sq, sx float64
		for _, o := range out {
			sp += o.Precip
			sae += o.AE
			sq += o.Qsim
			sx += o.AExch
		}
		st1 := eng.State()
		rcap := 60.
		if v != hydrogr.GR2M {
			rcap = par["X3"]
		}
		ds := (st1.Production - st0.Production) * par["X1"]
		dr := (st1.Routing - st0.Routing) * rcap
		de := (st1.Exponential - st0.Exponential) * par["X6"]
		pending := .9*sum(st1.UH1) + .1*sum(st1.UH2)
		if v == hydrogr.GR5J {
			pending = sum(st1.UH2)
		}
		assert.InDelta(t, sp-sae-sq+sx, ds+dr+de+pending, 1e-8, v.String())
	}
}

func TestRun_LengthMismatch(t *testing.T) {
	eng, _, err := hydrogr.New(hydrogr.GR4J, gr4jPar)
	require.NoError(t, err)
	_, err = eng.Run([]float64{1., 2.}, []float64{1.})
	assert.ErrorIs(t, err, hydrogr.ErrLength)

	st0 := eng.State()
	n := 0
	for range eng.Steps([]float64{1., 2.}, []float64{1.}) {
		n++
	}
	assert.Zero(t, n)
	assert.Equal(t, st0, eng.State())
}

// TestRoutingStore_MinCapacity runs at the X3 threshold, where the routing
// store sits on its capacity and rounding would otherwise push it past.
func TestRoutingStore_MinCapacity(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "gr4j.cbor")
	for _, c := range []struct {
		p     float64
		clamp bool
	}{{50., true}, {100., true}, {1e6, false}} {
		p := c.p
		eng, ntc, err := hydrogr.New(hydrogr.GR4J, hydrogr.Parameters{"X1": 100., "X2": 0., "X3": .01, "X4": 1.})
		require.NoError(t, err)
		require.Empty(t, ntc)
		clamped := false
		for j := 0; j < 10; j++ {
			o := eng.Step(p, 0.)
			clamped = clamped || o.Clamped
			st := eng.State()
			require.LessOrEqual(t, st.Routing, 1., "P=%v step %d", p, j)
			require.NoError(t, eng.SetState(st), "P=%v step %d", p, j)
			require.NoError(t, hydrogr.SaveState(fp, hydrogr.GR4J, st), "P=%v step %d", p, j)
		}
		if c.clamp {
			assert.True(t, clamped, "P=%v", p)
		}
	}
}

func TestExponentialStore_Extremes(t *testing.T) {
	par := testParams(hydrogr.GR6J)
	for _, f := range []float64{-1e6, -40., 40., 1e6} {
		eng, _, err := hydrogr.New(hydrogr.GR6J, par)
		require.NoError(t, err)
		st := eng.State()
		st.Exponential = f
		require.NoError(t, eng.SetState(st))

		o := eng.Step(0., 0.)
		require.False(t, math.IsNaN(o.Qsim) || math.IsInf(o.Qsim, 0), "fraction %v", f)
		require.False(t, math.IsNaN(o.Exp) || math.IsInf(o.Exp, 0), "fraction %v", f)
		assert.GreaterOrEqual(t, o.QRExp, 0., "fraction %v", f)
		if f > 0. {
			assert.InDelta(t, 0., o.Exp, 1e-6, "fraction %v", f) // drained
		} else {
			assert.Less(t, o.QRExp, 1e-9, "fraction %v", f)
			assert.InDelta(t, f*par["X6"], o.Exp, 1., "fraction %v", f)
		}
		require.NoError(t, eng.SetState(eng.State()), "fraction %v", f)
	}
}

func TestSteps_EarlyStop(t *testing.T) {
	frc := loadDaily(t)
	a, _, err := hydrogr.New(hydrogr.GR6J, testParams(hydrogr.GR6J))
	require.NoError(t, err)
	var q []float64
	for j, o := range a.Steps(frc.Ya, frc.Ea) {
		q = append(q, o.Qsim)
		if j == 99 {
			break
		}
	}
	require.Len(t, q, 100)

	b, _, err := hydrogr.New(hydrogr.GR6J, testParams(hydrogr.GR6J))
	require.NoError(t, err)
	out, err := b.Run(frc.Ya[:100], frc.Ea[:100])
	require.NoError(t, err)
	assert.Equal(t, hydrogr.Flows(out), q)
	assert.Equal(t, b.State(), a.State())
}

func TestCheckForcing(t *testing.T) {
	frc := loadDaily(t)
	assert.NoError(t, hydrogr.CheckForcing(hydrogr.GR4J, frc))
	assert.NoError(t, hydrogr.CheckForcing(hydrogr.GR6J, frc))
	assert.ErrorIs(t, hydrogr.CheckForcing(hydrogr.GR4H, frc), hydrogr.ErrFrequency)
	assert.ErrorIs(t, hydrogr.CheckForcing(hydrogr.GR2M, frc), hydrogr.ErrFrequency)

	mon, err := frc.Aggregate("M")
	require.NoError(t, err)
	assert.NoError(t, hydrogr.CheckForcing(hydrogr.GR2M, mon))
	assert.ErrorIs(t, hydrogr.CheckForcing(hydrogr.GR1A, mon), hydrogr.ErrFrequency)
}

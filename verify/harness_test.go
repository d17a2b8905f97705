package verify

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"frey-conductor/classify"
	"frey-conductor/frey"
	"frey-conductor/oracle"
)

// tableOracle synthesizes conductor records straight from the closed-form
// table, so every comparison agrees. Local polynomials are reported
// reducible; the synthesized records use the same convention.
type tableOracle struct {
	oracle.Base
}

func (tableOracle) IsIrreducible(*frey.LocalPolynomial) (bool, error) { return false, nil }

func (tableOracle) BuildCurve(f *frey.NumberFieldPolynomial) (*oracle.Curve, error) {
	return &oracle.Curve{Poly: f}, nil
}

func tableRecords(params frey.CurveParameters) (*oracle.RationalConductor, *oracle.IdealConductor, error) {
	delta := classify.Delta(params.R, params.S, params.Z)
	divs, err := (oracle.Base{}).PrimeDivisors(delta)
	if err != nil {
		return nil, nil, err
	}
	primes := map[string]*big.Int{"2": big.NewInt(2)}
	primes[fmt.Sprintf("%d", params.R)] = big.NewInt(params.R)
	for _, p := range divs {
		primes[p.String()] = p
	}

	var qEntries []oracle.PrimeExponent
	var kEntries []oracle.IdealExponent
	for _, p := range primes {
		if p.Bit(0) == 0 {
			qEntries = append(qEntries, oracle.PrimeExponent{Prime: p, Exponent: 8})
			kEntries = append(kEntries, oracle.IdealExponent{
				Ideal:    oracle.PrimeIdeal{Label: "(2)", Norm: big.NewInt(4)},
				Exponent: 8,
			})
			continue
		}
		res, err := classify.Expected(classify.Input{
			R: params.R, S: params.S, Z: params.Z,
			Q:                p,
			Delta:            delta,
			LocalIrreducible: func() (bool, error) { return false, nil },
		})
		if err != nil {
			return nil, nil, err
		}
		qEntries = append(qEntries, oracle.PrimeExponent{Prime: p, Exponent: res.OverQ.Int64()})
		kEntries = append(kEntries, oracle.IdealExponent{
			Ideal:    oracle.PrimeIdeal{Label: "(" + p.String() + ")", Norm: new(big.Int).Set(p)},
			Exponent: res.OverK.Int64(),
		})
	}
	return oracle.NewRationalConductor(qEntries), oracle.NewIdealConductor(kEntries), nil
}

func (tableOracle) Conductor(c *oracle.Curve) (*oracle.RationalConductor, error) {
	q, _, err := tableRecords(c.Params())
	return q, err
}

func (tableOracle) ConductorOverK(c *oracle.Curve) (*oracle.IdealConductor, error) {
	_, k, err := tableRecords(c.Params())
	return k, err
}

// skewOracle perturbs the rational exponent at q = r, manufacturing
// counterexample candidates the harness must count without aborting.
type skewOracle struct {
	tableOracle
}

func (o skewOracle) Conductor(c *oracle.Curve) (*oracle.RationalConductor, error) {
	cond, err := o.tableOracle.Conductor(c)
	if err != nil {
		return nil, err
	}
	r := big.NewInt(c.Params().R)
	var entries []oracle.PrimeExponent
	for _, p := range cond.BadPrimes() {
		e, _ := cond.ExponentAt(p)
		if p.Cmp(r) == 0 {
			e++
		}
		entries = append(entries, oracle.PrimeExponent{Prime: p, Exponent: e})
	}
	return oracle.NewRationalConductor(entries), nil
}

// stuckSampler only ever produces the degenerate triple s = 0.
type stuckSampler struct{ r int64 }

func (s stuckSampler) Draw() (frey.CurveParameters, error) {
	return frey.NewParameters(s.r, 0, 1), nil
}

func TestHarnessAgreesWithTableOracle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trials = 10
	cfg.MaxSize = 30
	cfg.Primes = []int64{5, 7}
	cfg.SeedLabel = "harness-agree"

	sampler, err := NewRandomSampler(cfg)
	require.NoError(t, err)
	h, err := NewHarness(cfg, sampler, tableOracle{}, nil)
	require.NoError(t, err)

	out, err := h.Run()
	require.NoError(t, err)
	require.Equal(t, 10, out.Trials)
	require.Zero(t, out.Mismatches)
	require.Zero(t, out.SetMismatches)
	require.Positive(t, out.Comparisons)
	require.NotEmpty(t, out.RowHits)
	require.Equal(t, Done, h.State())
}

func TestHarnessCountsMismatchesAndContinues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trials = 8
	cfg.MaxSize = 25
	cfg.Primes = []int64{5}
	cfg.SeedLabel = "harness-skew"

	sampler, err := NewRandomSampler(cfg)
	require.NoError(t, err)
	h, err := NewHarness(cfg, sampler, skewOracle{}, nil)
	require.NoError(t, err)

	out, err := h.Run()
	require.NoError(t, err)
	require.Equal(t, 8, out.Trials, "mismatches must not abort the run")
	// Every trial has r = 5 among its bad primes, so every trial mismatches.
	require.GreaterOrEqual(t, out.Mismatches, 8)
}

func TestHarnessSearchExhaustion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trials = 1
	cfg.MaxAttempts = 10

	h, err := NewHarness(cfg, stuckSampler{r: 5}, tableOracle{}, nil)
	require.NoError(t, err)

	_, err = h.Run()
	require.ErrorIs(t, err, ErrSearchExhausted)
}

func TestHarnessDeterministicWithSeedLabel(t *testing.T) {
	run := func() *Outcome {
		cfg := DefaultConfig()
		cfg.Trials = 6
		cfg.MaxSize = 20
		cfg.Primes = []int64{5}
		cfg.SeedLabel = "replay"
		sampler, err := NewRandomSampler(cfg)
		require.NoError(t, err)
		h, err := NewHarness(cfg, sampler, tableOracle{}, nil)
		require.NoError(t, err)
		out, err := h.Run()
		require.NoError(t, err)
		return out
	}
	a, b := run(), run()
	require.Equal(t, a.Comparisons, b.Comparisons)
	require.Equal(t, a.RowHits, b.RowHits)
}

func TestHarnessAgainstGoldenFixture(t *testing.T) {
	fx, err := oracle.Golden()
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Trials = 12
	cfg.Primes = []int64{5}
	cfg.SeedLabel = "golden"

	sampler, err := NewCorpusSampler(fx.Parameters(), cfg.SeedLabel)
	require.NoError(t, err)
	h, err := NewHarness(cfg, sampler, fx, nil)
	require.NoError(t, err)

	out, err := h.Run()
	require.NoError(t, err)
	require.Equal(t, 12, out.Trials)
	require.Zero(t, out.Mismatches)
	require.Zero(t, out.SetMismatches)
}

func TestHarnessRejectsBadWiring(t *testing.T) {
	cfg := DefaultConfig()
	_, err := NewHarness(cfg, nil, tableOracle{}, nil)
	require.Error(t, err)

	cfg.Trials = 0
	sampler := stuckSampler{r: 5}
	_, err = NewHarness(cfg, sampler, tableOracle{}, nil)
	require.Error(t, err)
}

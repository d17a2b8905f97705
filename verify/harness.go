package verify

import (
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"frey-conductor/classify"
	"frey-conductor/frey"
	"frey-conductor/oracle"
)

// ErrSearchExhausted reports a rejection loop that hit MaxAttempts without
// finding a valid triple. It is a configuration failure, not a mismatch.
var ErrSearchExhausted = errors.New("verify: search exhausted without a valid parameter triple")

// State is the harness phase, exported for diagnostics.
type State int

const (
	Searching State = iota
	Verifying
	Done
)

func (s State) String() string {
	switch s {
	case Searching:
		return "searching"
	case Verifying:
		return "verifying"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome aggregates one run. Counters are per run and never shared.
type Outcome struct {
	Trials        int
	Comparisons   int
	Mismatches    int
	SetMismatches int
	RowHits       map[string]int
}

// Harness cross-checks the classifier against the oracle on random triples.
type Harness struct {
	cfg     Config
	sampler Sampler
	orc     oracle.Oracle
	log     *zap.SugaredLogger
	state   State
}

// NewHarness wires a harness. A nil logger disables output.
func NewHarness(cfg Config, sampler Sampler, orc oracle.Oracle, logger *zap.Logger) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sampler == nil || orc == nil {
		return nil, fmt.Errorf("verify: harness needs a sampler and an oracle")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Harness{cfg: cfg, sampler: sampler, orc: orc, log: logger.Sugar()}, nil
}

// State returns the current phase.
func (h *Harness) State() State { return h.state }

// Run executes the configured number of independent trials. Oracle failures
// and configuration errors abort the run; classification mismatches are
// counted and reported, never fatal.
func (h *Harness) Run() (*Outcome, error) {
	out := &Outcome{RowHits: make(map[string]int)}
	for t := 0; t < h.cfg.Trials; t++ {
		h.state = Searching
		params, err := h.search()
		if err != nil {
			return out, err
		}
		h.state = Verifying
		if err := h.verify(params, out); err != nil {
			return out, err
		}
		out.Trials++
	}
	h.state = Done
	h.log.Infow("run complete",
		"trials", out.Trials,
		"comparisons", out.Comparisons,
		"mismatches", out.Mismatches,
		"set_mismatches", out.SetMismatches,
	)
	return out, nil
}

// search rejection-samples until the validity filter accepts a triple.
func (h *Harness) search() (frey.CurveParameters, error) {
	for attempt := 0; attempt < h.cfg.MaxAttempts; attempt++ {
		params, err := h.sampler.Draw()
		if err != nil {
			return frey.CurveParameters{}, err
		}
		reason, err := frey.Check(params)
		if err != nil {
			return frey.CurveParameters{}, err
		}
		if reason == frey.Valid {
			if h.cfg.Verbose {
				h.log.Infow("valid triple found", "params", params.String(), "attempt", attempt+1)
			}
			return params, nil
		}
	}
	return frey.CurveParameters{}, fmt.Errorf("%w after %d attempts", ErrSearchExhausted, h.cfg.MaxAttempts)
}

// verify runs the oracle comparison for one valid triple.
func (h *Harness) verify(params frey.CurveParameters, out *Outcome) error {
	nf, err := frey.NewNumberFieldPolynomial(params)
	if err != nil {
		return err
	}
	local, err := frey.NewLocalPolynomial(params)
	if err != nil {
		return err
	}
	curve, err := h.orc.BuildCurve(nf)
	if err != nil {
		return fmt.Errorf("verify: build curve %s: %w", params, err)
	}
	condQ, err := h.orc.Conductor(curve)
	if err != nil {
		return fmt.Errorf("verify: conductor %s: %w", params, err)
	}
	condK, err := h.orc.ConductorOverK(curve)
	if err != nil {
		return fmt.Errorf("verify: conductor over K %s: %w", params, err)
	}

	delta := classify.Delta(params.R, params.S, params.Z)
	h.checkBadPrimeSet(params, delta, condQ, out)

	irred := func() (bool, error) { return h.orc.IsIrreducible(local) }
	for _, q := range condQ.BadPrimes() {
		if q.Bit(0) == 0 {
			continue // the table does not cover the even prime
		}
		res, err := classify.Expected(classify.Input{
			R: params.R, S: params.S, Z: params.Z,
			Q: q, Delta: delta, LocalIrreducible: irred,
		})
		if err != nil {
			return fmt.Errorf("verify: classify %s at q=%s: %w", params, q, err)
		}
		out.RowHits[res.Name]++
		out.Comparisons++

		actual, _ := condQ.ExponentAt(q)
		if actual != res.OverQ.Int64() {
			out.Mismatches++
			h.log.Warnw("exponent mismatch over Q",
				"params", params.String(), "q", q.String(), "row", res.Name,
				"expected", res.OverQ.String(), "actual", actual,
			)
		} else if h.cfg.Verbose {
			h.log.Infow("exponent agrees over Q",
				"params", params.String(), "q", q.String(), "row", res.Name, "exponent", actual)
		}

		ideals, err := condK.IdealsOver(q)
		if err != nil {
			return fmt.Errorf("verify: ideals over %s: %w", q, err)
		}
		if len(ideals) == 0 {
			out.SetMismatches++
			h.log.Warnw("no ideal above bad prime in number-field record",
				"params", params.String(), "q", q.String())
			continue
		}
		for _, ie := range ideals {
			if ie.Exponent != res.OverK.Int64() {
				out.Mismatches++
				h.log.Warnw("exponent mismatch over K",
					"params", params.String(), "ideal", ie.Ideal.Label, "row", res.Name,
					"expected", res.OverK.String(), "actual", ie.Exponent,
				)
			} else if h.cfg.Verbose {
				h.log.Infow("exponent agrees over K",
					"params", params.String(), "ideal", ie.Ideal.Label, "exponent", ie.Exponent)
			}
		}
	}
	return nil
}

// checkBadPrimeSet compares the oracle's bad-reduction primes against
// {2, r} union PrimeDivisors(Delta). A mismatch is a diagnostic, not fatal.
func (h *Harness) checkBadPrimeSet(params frey.CurveParameters, delta *big.Int, condQ *oracle.RationalConductor, out *Outcome) {
	divs, err := h.orc.PrimeDivisors(delta)
	if err != nil {
		out.SetMismatches++
		h.log.Warnw("cannot factor delta", "params", params.String(), "err", err)
		return
	}
	want := map[string]struct{}{"2": {}}
	want[fmt.Sprintf("%d", params.R)] = struct{}{}
	for _, p := range divs {
		want[p.String()] = struct{}{}
	}
	got := condQ.BadPrimes()
	same := len(got) == len(want)
	if same {
		for _, p := range got {
			if _, ok := want[p.String()]; !ok {
				same = false
				break
			}
		}
	}
	if !same {
		out.SetMismatches++
		h.log.Warnw("bad-reduction prime set mismatch",
			"params", params.String(), "got", fmt.Sprint(got), "want_size", len(want))
	}
}

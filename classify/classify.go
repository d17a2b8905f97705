// Package classify encodes the closed-form conductor-exponent table for the
// curves C(z,s). Given a target prime q it predicts the conductor exponent
// both over Q and over the totally real subfield K of the r-th cyclotomic
// field, by walking an ordered cascade of eight rows. The rows are not
// pairwise disjoint; correctness depends on first-match evaluation in the
// documented order, so they live in one explicitly ordered slice.
package classify

import (
	"errors"
	"fmt"
	"math/big"

	"frey-conductor/arith"
)

// ErrNoRowMatched signals an internal inconsistency: the cascade is
// exhaustive for prime r, so falling through every row is a bug, never an
// expected outcome.
var ErrNoRowMatched = errors.New("classify: no row matched")

// Input carries the facts a classification needs. LocalIrreducible is
// consulted lazily and only by the two rows that depend on it, so callers
// can back it with an expensive oracle call.
type Input struct {
	R     int64
	S     *big.Int
	Z     *big.Int
	Q     *big.Int
	Delta *big.Int
	// LocalIrreducible reports whether f is irreducible over the completion
	// at r. Required when q = r and r does not divide Delta.
	LocalIrreducible func() (bool, error)
}

// Result identifies the row that fired and its predicted exponents.
type Result struct {
	Index int    // 1-based row number
	Name  string // stable diagnostic label
	OverQ *big.Int
	OverK *big.Int
}

// Delta returns s^2 - 4z^r, the quantity the cascade branches on.
func Delta(r int64, s, z *big.Int) *big.Int {
	d := new(big.Int).Exp(z, big.NewInt(r), nil)
	d.Mul(d, big.NewInt(-4))
	sq := new(big.Int).Mul(s, s)
	return d.Add(sq, d)
}

// row is one cascade entry. match may report an oracle error; the exponent
// columns are exact integer functions of r.
type row struct {
	name  string
	match func(*env) (bool, error)
	overQ func(r int64) (*big.Int, error)
	overK func(r int64) (*big.Int, error)
}

// env memoizes the derived facts shared between rows of one classification.
type env struct {
	in        Input
	atR       bool
	rDivDelta bool
	deltaVal  int
	deltaFin  bool

	irredDone bool
	irred     bool
}

func (e *env) localIrreducible() (bool, error) {
	if e.irredDone {
		return e.irred, nil
	}
	if e.in.LocalIrreducible == nil {
		return false, fmt.Errorf("classify: local irreducibility required for q = r = %d but no provider is set", e.in.R)
	}
	v, err := e.in.LocalIrreducible()
	if err != nil {
		return false, fmt.Errorf("classify: local irreducibility: %w", err)
	}
	e.irredDone, e.irred = true, v
	return v, nil
}

// cascade is the ordered decision table. Row order is load-bearing: rows 5-8
// all require q = r and overlap on the numeric Delta conditions.
var cascade = []row{
	{
		name: "away-coprime", // q != r, q does not divide s
		match: func(e *env) (bool, error) {
			return !e.atR && new(big.Int).Mod(e.in.S, e.in.Q).Sign() != 0, nil
		},
		overQ: halfRMinusOne,
		overK: halfRMinusOne,
	},
	{
		name: "away-divides-s", // q != r
		match: func(e *env) (bool, error) {
			return !e.atR, nil
		},
		overQ: rMinusOne,
		overK: rMinusOne,
	},
	{
		name: "at-r-local-reducible", // q = r, r does not divide Delta
		match: func(e *env) (bool, error) {
			if !e.atR || e.rDivDelta {
				return false, nil
			}
			irred, err := e.localIrreducible()
			return !irred, err
		},
		overQ: rMinusOne,
		overK: rMinusOne,
	},
	{
		name: "at-r-local-irreducible",
		match: func(e *env) (bool, error) {
			if !e.atR || e.rDivDelta {
				return false, nil
			}
			return e.localIrreducible()
		},
		overQ: func(r int64) (*big.Int, error) { return big.NewInt(r), nil },
		overK: threeHalvesRMinusOne,
	},
	{
		name: "at-r-divides-s", // q = r, r | s (hence r | Delta)
		match: func(e *env) (bool, error) {
			return e.atR && new(big.Int).Mod(e.in.S, e.in.Q).Sign() == 0, nil
		},
		overQ: func(r int64) (*big.Int, error) { return big.NewInt(2*r - 1), nil },
		overK: func(r int64) (*big.Int, error) {
			return exactDiv((r-1)*(r+2), 2)
		},
	},
	{
		name: "at-r-delta-val-1",
		match: func(e *env) (bool, error) {
			return e.atR && e.deltaFin && e.deltaVal == 1, nil
		},
		overQ: func(r int64) (*big.Int, error) { return exactDiv(3*r-1, 2) },
		overK: func(r int64) (*big.Int, error) {
			return exactDiv((r-1)*(r+5), 4)
		},
	},
	{
		name: "at-r-delta-val-2",
		match: func(e *env) (bool, error) {
			return e.atR && e.deltaFin && e.deltaVal == 2, nil
		},
		overQ: func(r int64) (*big.Int, error) { return big.NewInt(r), nil },
		overK: threeHalvesRMinusOne,
	},
	{
		name: "at-r-delta-val-high", // q = r, val_r(Delta) >= 3
		match: func(e *env) (bool, error) {
			return e.atR, nil
		},
		overQ: rMinusOne,
		overK: rMinusOne,
	},
}

// Expected walks the cascade in order and returns the first matching row's
// prediction. An exhausted cascade or a non-integral exponent formula is an
// internal-consistency failure.
func Expected(in Input) (*Result, error) {
	if in.Q.Sign() <= 0 || !arith.IsPrime(in.Q) {
		return nil, fmt.Errorf("classify: target %s is not prime", in.Q)
	}
	e := &env{in: in}
	e.atR = in.Q.Cmp(big.NewInt(in.R)) == 0
	e.deltaVal, e.deltaFin = arith.Valuation(in.Delta, big.NewInt(in.R))
	e.rDivDelta = !e.deltaFin || e.deltaVal > 0

	for i, rw := range cascade {
		ok, err := rw.match(e)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		overQ, err := rw.overQ(in.R)
		if err != nil {
			return nil, err
		}
		overK, err := rw.overK(in.R)
		if err != nil {
			return nil, err
		}
		return &Result{Index: i + 1, Name: rw.name, OverQ: overQ, OverK: overK}, nil
	}
	return nil, fmt.Errorf("%w: r=%d q=%s", ErrNoRowMatched, in.R, in.Q)
}

// exactDiv divides with a divisibility assertion, keeping every exponent an
// exact integer rather than a rounded float.
func exactDiv(num, den int64) (*big.Int, error) {
	if num%den != 0 {
		return nil, fmt.Errorf("classify: exponent formula %d/%d is not an integer", num, den)
	}
	return big.NewInt(num / den), nil
}

func halfRMinusOne(r int64) (*big.Int, error) { return exactDiv(r-1, 2) }

func rMinusOne(r int64) (*big.Int, error) { return big.NewInt(r - 1), nil }

func threeHalvesRMinusOne(r int64) (*big.Int, error) { return exactDiv(3*(r-1), 2) }

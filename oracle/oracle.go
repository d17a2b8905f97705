// Package oracle defines the algebraic-engine capability the verification
// harness depends on, together with the conductor record types it returns.
// The elementary operations (valuations, factoring, discriminants, the
// cyclotomic subfield polynomial) are computed in-module; curve conductors
// and local irreducibility come from precomputed fixtures, since p-adic
// factorisation and conductor computation over a number field live in an
// external algebra engine.
package oracle

import (
	"fmt"
	"math/big"
	"sort"

	"frey-conductor/arith"
	"frey-conductor/frey"
)

// Curve is an opaque handle for a constructed hyperelliptic curve.
type Curve struct {
	Poly *frey.NumberFieldPolynomial
}

// Params returns the parameter triple the curve was built from.
func (c *Curve) Params() frey.CurveParameters { return c.Poly.Params }

// Oracle is the injected algebraic capability. Implementations must be
// deterministic and exact; the harness performs no retries.
type Oracle interface {
	CyclotomicMinimalPolynomial(r int64) (arith.Poly, error)
	Discriminant(f arith.Poly) (*big.Int, error)
	PrimeDivisors(n *big.Int) ([]*big.Int, error)
	Valuation(n, p *big.Int) (v int, finite bool)
	IsIrreducible(f *frey.LocalPolynomial) (bool, error)
	BuildCurve(f *frey.NumberFieldPolynomial) (*Curve, error)
	Conductor(c *Curve) (*RationalConductor, error)
	ConductorOverK(c *Curve) (*IdealConductor, error)
}

// PrimeExponent is one entry of a rational conductor record.
type PrimeExponent struct {
	Prime    *big.Int
	Exponent int64
}

// RationalConductor maps rational primes of bad reduction to conductor
// exponents. Records are produced once by the oracle and read-only after.
type RationalConductor struct {
	entries []PrimeExponent
}

// NewRationalConductor builds a record from its entries, sorted by prime.
func NewRationalConductor(entries []PrimeExponent) *RationalConductor {
	sorted := make([]PrimeExponent, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Prime.Cmp(sorted[j].Prime) < 0
	})
	return &RationalConductor{entries: sorted}
}

// ExponentAt returns the exponent at p, with ok = false at good primes.
func (c *RationalConductor) ExponentAt(p *big.Int) (int64, bool) {
	for _, e := range c.entries {
		if e.Prime.Cmp(p) == 0 {
			return e.Exponent, true
		}
	}
	return 0, false
}

// BadPrimes lists the primes of bad reduction in increasing order.
func (c *RationalConductor) BadPrimes() []*big.Int {
	out := make([]*big.Int, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Prime
	}
	return out
}

// PrimeIdeal is a prime ideal of the ring of integers of K, identified by a
// printable label and its absolute norm.
type PrimeIdeal struct {
	Label string
	Norm  *big.Int
}

// Over returns the rational prime the ideal lies over, recovered from the
// norm p^f.
func (id PrimeIdeal) Over() (*big.Int, error) {
	ps, err := arith.PrimeDivisors(id.Norm)
	if err != nil {
		return nil, fmt.Errorf("oracle: ideal %s has invalid norm %s: %w", id.Label, id.Norm, err)
	}
	if len(ps) != 1 {
		return nil, fmt.Errorf("oracle: ideal %s norm %s is not a prime power", id.Label, id.Norm)
	}
	return ps[0], nil
}

// IdealExponent is one entry of a number-field conductor record.
type IdealExponent struct {
	Ideal    PrimeIdeal
	Exponent int64
}

// IdealConductor maps prime ideals of bad reduction to conductor exponents.
type IdealConductor struct {
	entries []IdealExponent
}

// NewIdealConductor builds a record from its entries, sorted by norm.
func NewIdealConductor(entries []IdealExponent) *IdealConductor {
	sorted := make([]IdealExponent, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Ideal.Norm.Cmp(sorted[j].Ideal.Norm) < 0
	})
	return &IdealConductor{entries: sorted}
}

// IdealsOver returns the entries whose ideal lies over the rational prime q.
func (c *IdealConductor) IdealsOver(q *big.Int) ([]IdealExponent, error) {
	var out []IdealExponent
	for _, e := range c.entries {
		p, err := e.Ideal.Over()
		if err != nil {
			return nil, err
		}
		if p.Cmp(q) == 0 {
			out = append(out, e)
		}
	}
	return out, nil
}

// Entries returns the full record in norm order.
func (c *IdealConductor) Entries() []IdealExponent { return c.entries }

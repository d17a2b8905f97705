// Package arith implements the exact integer number theory the verification
// harness relies on: p-adic valuations, prime factorisation, primality, dense
// integer polynomials and their resultant-based discriminants. Everything is
// computed over math/big with no rounding anywhere.
package arith

import (
	"fmt"
	"math/big"
)

// Valuation returns the p-adic valuation of n together with a finiteness flag.
// By convention valuation(0, p) is +infinity, reported as finite == false.
// p must be a prime larger than 1.
func Valuation(n, p *big.Int) (v int, finite bool) {
	if p.Cmp(oneInt) <= 0 {
		panic(fmt.Sprintf("arith: valuation at non-prime modulus %s", p.String()))
	}
	if n.Sign() == 0 {
		return 0, false
	}
	rest := new(big.Int).Abs(n)
	r := new(big.Int)
	for {
		q, rem := new(big.Int).QuoRem(rest, p, r)
		if rem.Sign() != 0 {
			return v, true
		}
		rest = q
		v++
	}
}

// ValuationInt64 is the int64 convenience form of Valuation.
func ValuationInt64(n, p int64) (int, bool) {
	return Valuation(big.NewInt(n), big.NewInt(p))
}

var (
	oneInt = big.NewInt(1)
	twoInt = big.NewInt(2)
)

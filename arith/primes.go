package arith

import (
	"fmt"
	"math/big"
	"sort"
)

// IsPrime reports whether p > 1 is prime. ProbablyPrime(0) is deterministic
// for inputs below 2^64, which covers every prime this module samples.
func IsPrime(p *big.Int) bool {
	if p.Cmp(oneInt) <= 0 {
		return false
	}
	return p.ProbablyPrime(20)
}

// IsPrimeInt64 is the int64 convenience form of IsPrime.
func IsPrimeInt64(p int64) bool {
	return IsPrime(big.NewInt(p))
}

// PrimeDivisors returns the distinct prime divisors of n in increasing order.
// The sign of n is ignored; n must be nonzero.
func PrimeDivisors(n *big.Int) ([]*big.Int, error) {
	if n.Sign() == 0 {
		return nil, fmt.Errorf("arith: prime divisors of zero are undefined")
	}
	rest := new(big.Int).Abs(n)
	seen := make(map[string]*big.Int)
	var queue []*big.Int

	// Strip small primes first; rho is only needed for large cofactors.
	r := new(big.Int)
	for _, sp := range smallPrimes {
		d := big.NewInt(sp)
		if q, rem := new(big.Int).QuoRem(rest, d, r); rem.Sign() == 0 {
			seen[d.String()] = d
			rest = q
			for {
				q, rem = new(big.Int).QuoRem(rest, d, r)
				if rem.Sign() != 0 {
					break
				}
				rest = q
			}
		}
	}
	if rest.Cmp(oneInt) > 0 {
		queue = append(queue, rest)
	}

	for len(queue) > 0 {
		m := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if m.Cmp(oneInt) == 0 {
			continue
		}
		if IsPrime(m) {
			seen[m.String()] = m
			continue
		}
		d, err := rhoFactor(m)
		if err != nil {
			return nil, err
		}
		queue = append(queue, d, new(big.Int).Quo(m, d))
	}

	out := make([]*big.Int, 0, len(seen))
	for _, p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out, nil
}

// rhoFactor finds a nontrivial divisor of an odd composite m using Pollard's
// rho with Floyd cycle detection, restarting with a new increment on failure.
func rhoFactor(m *big.Int) (*big.Int, error) {
	if new(big.Int).Mod(m, twoInt).Sign() == 0 {
		return new(big.Int).Set(twoInt), nil
	}
	g := new(big.Int)
	diff := new(big.Int)
	for c := int64(1); c < 64; c++ {
		inc := big.NewInt(c)
		x := big.NewInt(2)
		y := big.NewInt(2)
		for i := 0; i < 1_000_000; i++ {
			x = rhoStep(x, inc, m)
			y = rhoStep(rhoStep(y, inc, m), inc, m)
			diff.Sub(x, y)
			if diff.Sign() == 0 {
				break // cycle without a factor, pick a new increment
			}
			g.GCD(nil, nil, diff.Abs(diff), m)
			if g.Cmp(oneInt) > 0 && g.Cmp(m) < 0 {
				return new(big.Int).Set(g), nil
			}
		}
	}
	return nil, fmt.Errorf("arith: failed to factor %s", m.String())
}

func rhoStep(x, inc, m *big.Int) *big.Int {
	n := new(big.Int).Mul(x, x)
	n.Add(n, inc)
	return n.Mod(n, m)
}

var smallPrimes = []int64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47,
	53, 59, 61, 67, 71, 73, 79, 83, 89, 97,
}

// Package cyclo computes defining polynomials for the maximal totally real
// subfield K = Q(zeta_r + zeta_r^-1) of the r-th cyclotomic field, for odd
// prime r. The coefficients come out of an exact integer recurrence, so no
// floating point or external algebra system is involved.
package cyclo

import (
	"fmt"
	"math/big"

	"frey-conductor/arith"
)

// MinimalPolynomial returns the minimal polynomial of zeta_r + zeta_r^-1
// over Q, a monic integer polynomial of degree (r-1)/2.
//
// Writing y = x + x^-1, each power sum x^k + x^-k is an integer polynomial
// p_k(y) with p_0 = 2, p_1 = y, p_k = y*p_{k-1} - p_{k-2}. Dividing the
// cyclotomic polynomial Phi_r(x) by x^((r-1)/2) gives
// 1 + sum_{k=1}^{(r-1)/2} (x^k + x^-k), so the minimal polynomial is
// 1 + sum p_k(y).
func MinimalPolynomial(r int64) (arith.Poly, error) {
	if r < 5 || r%2 == 0 || !arith.IsPrimeInt64(r) {
		return nil, fmt.Errorf("cyclo: degree parameter must be an odd prime >= 5, got %d", r)
	}
	half := int((r - 1) / 2)

	sum := make(arith.Poly, half+1)
	for i := range sum {
		sum[i] = new(big.Int)
	}
	sum[0].SetInt64(1)

	prev := arith.NewPoly(2) // p_0
	cur := arith.NewPoly(0, 1)
	for k := 1; k <= half; k++ {
		for i := 0; i <= cur.Degree(); i++ {
			sum[i].Add(sum[i], cur.Coeff(i))
		}
		if k < half {
			next := shiftUp(cur)
			for i := 0; i <= prev.Degree(); i++ {
				next[i].Sub(next[i], prev.Coeff(i))
			}
			prev, cur = cur, next
		}
	}
	return sum, nil
}

// shiftUp returns y * p as a fresh polynomial.
func shiftUp(p arith.Poly) arith.Poly {
	out := make(arith.Poly, len(p)+1)
	out[0] = new(big.Int)
	for i, c := range p {
		out[i+1] = new(big.Int).Set(c)
	}
	return out
}

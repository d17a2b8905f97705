// Package frey constructs the defining polynomials of the hyperelliptic
// curves C(z,s): y^2 = f_{r,z,s}(x) and screens parameter triples against the
// hypotheses of the conductor classification. The polynomial
//
//	f = x^r + sum_{k=1}^{(r-1)/2} c_k (-1)^k z^k x^(r-2k) + s,  c_k = r*C(r-k,k)/(r-k)
//
// is instantiated over two coefficient domains sharing one generation
// routine: the totally real cyclotomic subfield K (for the curve itself) and
// the completion at r (for the local irreducibility test).
package frey

import (
	"errors"
	"fmt"
	"math/big"

	"frey-conductor/arith"
	"frey-conductor/internal/cyclo"
)

// ErrInvalidDegree rejects degree parameters outside the odd primes >= 5.
var ErrInvalidDegree = errors.New("frey: degree must be an odd prime >= 5")

// CurveParameters is a candidate triple (r, s, z).
type CurveParameters struct {
	R int64
	S *big.Int
	Z *big.Int
}

// NewParameters builds a parameter triple from int64 inputs.
func NewParameters(r, s, z int64) CurveParameters {
	return CurveParameters{R: r, S: big.NewInt(s), Z: big.NewInt(z)}
}

func (p CurveParameters) String() string {
	return fmt.Sprintf("(r=%d, s=%s, z=%s)", p.R, p.S, p.Z)
}

// Coefficients generates the shared integer coefficient sequence of f in
// ascending degree order, length r+1. Both polynomial domains are built from
// this one routine so they can never drift apart.
func Coefficients(p CurveParameters) (arith.Poly, error) {
	r := p.R
	if r < 5 || r%2 == 0 || !arith.IsPrimeInt64(r) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDegree, r)
	}
	coeffs := make(arith.Poly, r+1)
	for i := range coeffs {
		coeffs[i] = new(big.Int)
	}
	coeffs[r].SetInt64(1)
	coeffs[0].Set(p.S)

	zpow := big.NewInt(1)
	for k := int64(1); k <= (r-1)/2; k++ {
		zpow = new(big.Int).Mul(zpow, p.Z)
		c := binomialWeight(r, k)
		c.Mul(c, zpow)
		if k%2 == 1 {
			c.Neg(c)
		}
		coeffs[r-2*k].Set(c)
	}
	return coeffs, nil
}

// binomialWeight computes c_k = r*C(r-k, k)/(r-k), which is an exact integer
// for 1 <= k <= (r-1)/2; the division is checked.
func binomialWeight(r, k int64) *big.Int {
	c := new(big.Int).Binomial(r-k, k)
	c.Mul(c, big.NewInt(r))
	q, rem := new(big.Int).QuoRem(c, big.NewInt(r-k), new(big.Int))
	if rem.Sign() != 0 {
		panic(fmt.Sprintf("frey: r*C(r-k,k) = %s not divisible by r-k = %d", c, r-k))
	}
	return q
}

// NumberFieldPolynomial is f with its coefficients read in K[x], carrying the
// defining polynomial of the ambient field K = Q(zeta_r + zeta_r^-1).
type NumberFieldPolynomial struct {
	Params   CurveParameters
	Poly     arith.Poly
	FieldMin arith.Poly
}

// LocalPolynomial is f with its coefficients read over the completion Q_r.
type LocalPolynomial struct {
	Params CurveParameters
	Poly   arith.Poly
	Prime  int64
}

// NewNumberFieldPolynomial instantiates f over the number-field domain.
func NewNumberFieldPolynomial(p CurveParameters) (*NumberFieldPolynomial, error) {
	coeffs, err := Coefficients(p)
	if err != nil {
		return nil, err
	}
	min, err := cyclo.MinimalPolynomial(p.R)
	if err != nil {
		return nil, err
	}
	return &NumberFieldPolynomial{Params: p, Poly: coeffs, FieldMin: min}, nil
}

// NewLocalPolynomial instantiates f over the local domain at r.
func NewLocalPolynomial(p CurveParameters) (*LocalPolynomial, error) {
	coeffs, err := Coefficients(p)
	if err != nil {
		return nil, err
	}
	return &LocalPolynomial{Params: p, Poly: coeffs, Prime: p.R}, nil
}

package arith

import (
	"fmt"
	"math/big"
	"strings"
)

// Poly is a dense univariate polynomial with big integer coefficients,
// stored in ascending degree order. The zero polynomial is the empty slice.
type Poly []*big.Int

// NewPoly builds a polynomial from ascending int64 coefficients.
func NewPoly(coeffs ...int64) Poly {
	p := make(Poly, len(coeffs))
	for i, c := range coeffs {
		p[i] = big.NewInt(c)
	}
	return p.trim()
}

// Degree returns the degree of p, with -1 for the zero polynomial.
func (p Poly) Degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Sign() != 0 {
			return i
		}
	}
	return -1
}

// Lead returns the leading coefficient, or zero for the zero polynomial.
func (p Poly) Lead() *big.Int {
	d := p.Degree()
	if d < 0 {
		return new(big.Int)
	}
	return p[d]
}

// Coeff returns the coefficient of x^i, tolerating i beyond the stored length.
func (p Poly) Coeff(i int) *big.Int {
	if i < 0 || i >= len(p) {
		return new(big.Int)
	}
	return p[i]
}

// Derivative returns the formal derivative of p.
func (p Poly) Derivative() Poly {
	if len(p) <= 1 {
		return Poly{}
	}
	d := make(Poly, len(p)-1)
	for i := 1; i < len(p); i++ {
		d[i-1] = new(big.Int).Mul(p[i], big.NewInt(int64(i)))
	}
	return d.trim()
}

// Eval evaluates p at the integer x by Horner's rule.
func (p Poly) Eval(x *big.Int) *big.Int {
	acc := new(big.Int)
	for i := len(p) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, p[i])
	}
	return acc
}

// Clone returns a deep copy of p.
func (p Poly) Clone() Poly {
	q := make(Poly, len(p))
	for i, c := range p {
		q[i] = new(big.Int).Set(c)
	}
	return q
}

// Equal reports coefficient-wise equality of the trimmed polynomials.
func (p Poly) Equal(q Poly) bool {
	dp, dq := p.Degree(), q.Degree()
	if dp != dq {
		return false
	}
	for i := 0; i <= dp; i++ {
		if p.Coeff(i).Cmp(q.Coeff(i)) != 0 {
			return false
		}
	}
	return true
}

func (p Poly) trim() Poly {
	return p[:p.Degree()+1]
}

// String renders p in human-readable form, highest degree first.
func (p Poly) String() string {
	d := p.Degree()
	if d < 0 {
		return "0"
	}
	var b strings.Builder
	first := true
	for i := d; i >= 0; i-- {
		c := p.Coeff(i)
		if c.Sign() == 0 {
			continue
		}
		if !first {
			if c.Sign() > 0 {
				b.WriteString(" + ")
			} else {
				b.WriteString(" - ")
			}
		} else if c.Sign() < 0 {
			b.WriteString("-")
		}
		abs := new(big.Int).Abs(c)
		switch {
		case i == 0:
			b.WriteString(abs.String())
		case i == 1:
			if abs.Cmp(oneInt) != 0 {
				fmt.Fprintf(&b, "%s*", abs.String())
			}
			b.WriteString("x")
		default:
			if abs.Cmp(oneInt) != 0 {
				fmt.Fprintf(&b, "%s*", abs.String())
			}
			fmt.Fprintf(&b, "x^%d", i)
		}
		first = false
	}
	return b.String()
}

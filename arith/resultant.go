package arith

import (
	"fmt"
	"math/big"
)

// Resultant computes Res(f, g) as the determinant of the Sylvester matrix,
// using fraction-free Bareiss elimination so every intermediate stays an
// exact integer. Both polynomials must be nonzero.
func Resultant(f, g Poly) (*big.Int, error) {
	n, m := f.Degree(), g.Degree()
	if n < 0 || m < 0 {
		return nil, fmt.Errorf("arith: resultant of zero polynomial")
	}
	if n == 0 {
		return new(big.Int).Exp(f.Coeff(0), big.NewInt(int64(m)), nil), nil
	}
	if m == 0 {
		return new(big.Int).Exp(g.Coeff(0), big.NewInt(int64(n)), nil), nil
	}

	size := n + m
	mat := make([][]*big.Int, size)
	for i := range mat {
		mat[i] = make([]*big.Int, size)
		for j := range mat[i] {
			mat[i][j] = new(big.Int)
		}
	}
	// m rows of f's coefficients, highest degree first, then n rows of g's.
	for i := 0; i < m; i++ {
		for j := 0; j <= n; j++ {
			mat[i][i+j].Set(f.Coeff(n - j))
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= m; j++ {
			mat[m+i][i+j].Set(g.Coeff(m - j))
		}
	}
	return bareissDet(mat), nil
}

// bareissDet computes the determinant of a square big integer matrix by
// Bareiss' fraction-free elimination. The matrix is consumed.
func bareissDet(mat [][]*big.Int) *big.Int {
	size := len(mat)
	sign := 1
	prev := big.NewInt(1)
	tmp := new(big.Int)
	for k := 0; k < size-1; k++ {
		if mat[k][k].Sign() == 0 {
			swapped := false
			for i := k + 1; i < size; i++ {
				if mat[i][k].Sign() != 0 {
					mat[k], mat[i] = mat[i], mat[k]
					sign = -sign
					swapped = true
					break
				}
			}
			if !swapped {
				return new(big.Int)
			}
		}
		for i := k + 1; i < size; i++ {
			for j := k + 1; j < size; j++ {
				tmp.Mul(mat[i][k], mat[k][j])
				mat[i][j].Mul(mat[i][j], mat[k][k])
				mat[i][j].Sub(mat[i][j], tmp)
				mat[i][j].Quo(mat[i][j], prev) // exact by Bareiss' identity
			}
			mat[i][k].SetInt64(0)
		}
		prev = mat[k][k]
	}
	det := new(big.Int).Set(mat[size-1][size-1])
	if sign < 0 {
		det.Neg(det)
	}
	return det
}

// Discriminant returns disc(f) = (-1)^(n(n-1)/2) Res(f, f') / lc(f) for a
// nonconstant polynomial f of degree n.
func Discriminant(f Poly) (*big.Int, error) {
	n := f.Degree()
	if n < 1 {
		return nil, fmt.Errorf("arith: discriminant needs degree >= 1, got %d", n)
	}
	res, err := Resultant(f, f.Derivative())
	if err != nil {
		return nil, err
	}
	disc, rem := new(big.Int).QuoRem(res, f.Lead(), new(big.Int))
	if rem.Sign() != 0 {
		return nil, fmt.Errorf("arith: resultant %s not divisible by leading coefficient %s", res, f.Lead())
	}
	if (n*(n-1)/2)%2 == 1 {
		disc.Neg(disc)
	}
	return disc, nil
}

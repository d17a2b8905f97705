package oracle

import (
	"math/big"

	"frey-conductor/arith"
	"frey-conductor/internal/cyclo"
)

// Base supplies the elementary operations of the Oracle interface from the
// in-module exact arithmetic. Fixture embeds it; test stubs may as well.
type Base struct{}

func (Base) CyclotomicMinimalPolynomial(r int64) (arith.Poly, error) {
	return cyclo.MinimalPolynomial(r)
}

func (Base) Discriminant(f arith.Poly) (*big.Int, error) {
	return arith.Discriminant(f)
}

func (Base) PrimeDivisors(n *big.Int) ([]*big.Int, error) {
	return arith.PrimeDivisors(n)
}

func (Base) Valuation(n, p *big.Int) (int, bool) {
	return arith.Valuation(n, p)
}

package frey

import (
	"fmt"
	"math/big"

	"frey-conductor/arith"
)

// Reason enumerates why a parameter triple is accepted or rejected.
type Reason int

const (
	Valid Reason = iota
	// DegenerateParameter: s = 0, the divisibility hypothesis has no witness.
	DegenerateParameter
	// DivisibilityViolation: some odd prime p | s has 0 < r*val_p(z) <= val_p(s).
	DivisibilityViolation
	// SingularCurve: disc(f) = 0, so y^2 = f(x) is not a hyperelliptic curve.
	SingularCurve
)

func (r Reason) String() string {
	switch r {
	case Valid:
		return "valid"
	case DegenerateParameter:
		return "degenerate parameter (s = 0)"
	case DivisibilityViolation:
		return "divisibility violation"
	case SingularCurve:
		return "singular curve (zero discriminant)"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Check decides whether (r, s, z) satisfies the theorem's hypotheses. It
// returns the first failing reason, or Valid. The only error case is a
// malformed degree parameter; Check never mutates its input.
func Check(p CurveParameters) (Reason, error) {
	coeffs, err := Coefficients(p)
	if err != nil {
		return 0, err
	}
	if p.S.Sign() == 0 {
		return DegenerateParameter, nil
	}

	sDivisors, err := arith.PrimeDivisors(p.S)
	if err != nil {
		return 0, fmt.Errorf("frey: factoring s: %w", err)
	}
	two := big.NewInt(2)
	for _, q := range sDivisors {
		if q.Cmp(two) == 0 {
			continue
		}
		vz, finite := arith.Valuation(p.Z, q)
		if !finite || vz == 0 {
			// z = 0 makes r*val_q(z) infinite, which always dominates.
			continue
		}
		vs, _ := arith.Valuation(p.S, q)
		if int64(vs) >= p.R*int64(vz) {
			return DivisibilityViolation, nil
		}
	}

	disc, err := arith.Discriminant(coeffs)
	if err != nil {
		return 0, fmt.Errorf("frey: discriminant: %w", err)
	}
	if disc.Sign() == 0 {
		return SingularCurve, nil
	}
	return Valid, nil
}

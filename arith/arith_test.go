package arith

import (
	"math/big"
	"testing"
)

func TestValuation(t *testing.T) {
	cases := []struct {
		n, p   int64
		v      int
		finite bool
	}{
		{236180, 5, 1, true},
		{236180, 2, 2, true},
		{-236000, 5, 3, true},
		{7, 5, 0, true},
		{0, 5, 0, false},
		{-4194300, 5, 2, true},
	}
	for _, c := range cases {
		v, finite := ValuationInt64(c.n, c.p)
		if finite != c.finite || (finite && v != c.v) {
			t.Fatalf("Valuation(%d,%d) = (%d,%v), want (%d,%v)", c.n, c.p, v, finite, c.v, c.finite)
		}
	}
}

func TestIsPrime(t *testing.T) {
	for _, p := range []int64{2, 3, 5, 7, 11, 241, 8537, 76831} {
		if !IsPrimeInt64(p) {
			t.Fatalf("IsPrime(%d) = false", p)
		}
	}
	for _, n := range []int64{-5, 0, 1, 4, 9, 15, 236180} {
		if IsPrimeInt64(n) {
			t.Fatalf("IsPrime(%d) = true", n)
		}
	}
}

func TestPrimeDivisors(t *testing.T) {
	got, err := PrimeDivisors(big.NewInt(-236180))
	if err != nil {
		t.Fatalf("PrimeDivisors: %v", err)
	}
	want := []int64{2, 5, 7, 241}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, p := range want {
		if got[i].Int64() != p {
			t.Fatalf("divisor %d: got %s, want %d", i, got[i], p)
		}
	}
	if _, err := PrimeDivisors(new(big.Int)); err == nil {
		t.Fatal("expected error for PrimeDivisors(0)")
	}
}

func TestPrimeDivisorsLargeCofactor(t *testing.T) {
	// 1157018619708 = 2^2 * 3^2 * 7^2 * 8537 * 76831 forces the rho path.
	got, err := PrimeDivisors(big.NewInt(1157018619708))
	if err != nil {
		t.Fatalf("PrimeDivisors: %v", err)
	}
	want := []int64{2, 3, 7, 8537, 76831}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, p := range want {
		if got[i].Int64() != p {
			t.Fatalf("divisor %d: got %s, want %d", i, got[i], p)
		}
	}
}

func TestPolyBasics(t *testing.T) {
	p := NewPoly(4, 5, 0, -5, 0, 1) // x^5 - 5x^3 + 5x + 4
	if p.Degree() != 5 {
		t.Fatalf("degree = %d", p.Degree())
	}
	if got := p.Eval(big.NewInt(2)); got.Int64() != 6 {
		t.Fatalf("Eval(2) = %s, want 6", got)
	}
	d := p.Derivative() // 5x^4 - 15x^2 + 5
	if !d.Equal(NewPoly(5, 0, -15, 0, 5)) {
		t.Fatalf("derivative = %s", d)
	}
	if !p.Clone().Equal(p) {
		t.Fatal("clone differs")
	}
}

func TestDiscriminantKnownForms(t *testing.T) {
	// disc(x^2 + bx + c) = b^2 - 4c
	q := NewPoly(3, -7, 1)
	disc, err := Discriminant(q)
	if err != nil {
		t.Fatalf("Discriminant: %v", err)
	}
	if disc.Int64() != 37 {
		t.Fatalf("disc = %s, want 37", disc)
	}

	// disc(x^3 + px + q) = -4p^3 - 27q^2
	cubic := NewPoly(2, -3, 0, 1)
	disc, err = Discriminant(cubic)
	if err != nil {
		t.Fatalf("Discriminant: %v", err)
	}
	if disc.Int64() != -4*(-27)-27*4 {
		t.Fatalf("disc = %s, want %d", disc, -4*(-27)-27*4)
	}

	// Repeated root: disc((x-1)^2) = 0.
	disc, err = Discriminant(NewPoly(1, -2, 1))
	if err != nil {
		t.Fatalf("Discriminant: %v", err)
	}
	if disc.Sign() != 0 {
		t.Fatalf("disc = %s, want 0", disc)
	}
}

func TestResultantScalarCases(t *testing.T) {
	res, err := Resultant(NewPoly(3), NewPoly(0, 0, 1))
	if err != nil {
		t.Fatalf("Resultant: %v", err)
	}
	if res.Int64() != 9 {
		t.Fatalf("Res(3, x^2) = %s, want 9", res)
	}
	if _, err := Resultant(Poly{}, NewPoly(1)); err == nil {
		t.Fatal("expected error for zero polynomial")
	}
}

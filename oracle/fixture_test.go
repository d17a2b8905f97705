package oracle

import (
	"errors"
	"math/big"
	"testing"

	"frey-conductor/frey"
)

func TestGoldenCorpusLoads(t *testing.T) {
	fx, err := Golden()
	if err != nil {
		t.Fatalf("Golden: %v", err)
	}
	params := fx.Parameters()
	if len(params) != 8 {
		t.Fatalf("corpus size = %d, want 8", len(params))
	}
	for _, p := range params {
		if p.R != 5 {
			t.Fatalf("unexpected degree %d in golden corpus", p.R)
		}
	}
}

func TestFixtureConductorLookup(t *testing.T) {
	fx, err := Golden()
	if err != nil {
		t.Fatalf("Golden: %v", err)
	}
	nf, err := frey.NewNumberFieldPolynomial(frey.NewParameters(5, 4, 9))
	if err != nil {
		t.Fatalf("polynomial: %v", err)
	}
	curve, err := fx.BuildCurve(nf)
	if err != nil {
		t.Fatalf("BuildCurve: %v", err)
	}
	cond, err := fx.Conductor(curve)
	if err != nil {
		t.Fatalf("Conductor: %v", err)
	}
	bad := cond.BadPrimes()
	want := []int64{2, 5, 7, 241}
	if len(bad) != len(want) {
		t.Fatalf("bad primes %v, want %v", bad, want)
	}
	for i, p := range want {
		if bad[i].Int64() != p {
			t.Fatalf("bad prime %d = %s, want %d", i, bad[i], p)
		}
	}
	if e, ok := cond.ExponentAt(big.NewInt(7)); !ok || e != 2 {
		t.Fatalf("exponent at 7 = (%d,%v), want (2,true)", e, ok)
	}
	if _, ok := cond.ExponentAt(big.NewInt(3)); ok {
		t.Fatal("good prime 3 reported as bad")
	}
}

func TestFixtureIdealRecord(t *testing.T) {
	fx, err := Golden()
	if err != nil {
		t.Fatalf("Golden: %v", err)
	}
	nf, err := frey.NewNumberFieldPolynomial(frey.NewParameters(5, 4, 9))
	if err != nil {
		t.Fatalf("polynomial: %v", err)
	}
	curve, err := fx.BuildCurve(nf)
	if err != nil {
		t.Fatalf("BuildCurve: %v", err)
	}
	cond, err := fx.ConductorOverK(curve)
	if err != nil {
		t.Fatalf("ConductorOverK: %v", err)
	}

	// 241 splits in Q(sqrt 5): two ideals of norm 241, each with exponent 2.
	over241, err := cond.IdealsOver(big.NewInt(241))
	if err != nil {
		t.Fatalf("IdealsOver: %v", err)
	}
	if len(over241) != 2 {
		t.Fatalf("ideals over 241 = %d, want 2", len(over241))
	}
	for _, ie := range over241 {
		if ie.Exponent != 2 {
			t.Fatalf("ideal %s exponent %d, want 2", ie.Ideal.Label, ie.Exponent)
		}
	}

	// 7 is inert: a single ideal of norm 49 lying over 7.
	over7, err := cond.IdealsOver(big.NewInt(7))
	if err != nil {
		t.Fatalf("IdealsOver: %v", err)
	}
	if len(over7) != 1 || over7[0].Ideal.Norm.Int64() != 49 {
		t.Fatalf("ideals over 7 = %v", over7)
	}
	under, err := over7[0].Ideal.Over()
	if err != nil {
		t.Fatalf("Over: %v", err)
	}
	if under.Int64() != 7 {
		t.Fatalf("ideal lies over %s, want 7", under)
	}
}

func TestFixtureIrreducibilityFlags(t *testing.T) {
	fx, err := Golden()
	if err != nil {
		t.Fatalf("Golden: %v", err)
	}
	reducible, err := frey.NewLocalPolynomial(frey.NewParameters(5, 18, 4))
	if err != nil {
		t.Fatalf("local polynomial: %v", err)
	}
	irreducible, err := frey.NewLocalPolynomial(frey.NewParameters(5, 2, 4))
	if err != nil {
		t.Fatalf("local polynomial: %v", err)
	}
	if got, err := fx.IsIrreducible(reducible); err != nil || got {
		t.Fatalf("(5,18,4) irreducible = (%v,%v), want (false,nil)", got, err)
	}
	if got, err := fx.IsIrreducible(irreducible); err != nil || !got {
		t.Fatalf("(5,2,4) irreducible = (%v,%v), want (true,nil)", got, err)
	}
}

func TestFixtureMissingEntry(t *testing.T) {
	fx, err := Golden()
	if err != nil {
		t.Fatalf("Golden: %v", err)
	}
	nf, err := frey.NewNumberFieldPolynomial(frey.NewParameters(5, 6, 1))
	if err != nil {
		t.Fatalf("polynomial: %v", err)
	}
	if _, err := fx.BuildCurve(nf); !errors.Is(err, ErrNoFixtureEntry) {
		t.Fatalf("err = %v, want ErrNoFixtureEntry", err)
	}
}

func TestParseFixtureRejectsGarbage(t *testing.T) {
	if _, err := ParseFixture([]byte(`{"entries":[{"r":5,"s":"x","z":"1"}]}`)); err == nil {
		t.Fatal("bad s accepted")
	}
	if _, err := ParseFixture([]byte(`not json`)); err == nil {
		t.Fatal("garbage accepted")
	}
}

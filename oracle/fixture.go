package oracle

import (
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sort"

	json "github.com/goccy/go-json"

	"frey-conductor/frey"
)

// ErrNoFixtureEntry is returned when a curve has no precomputed facts in the
// loaded corpus.
var ErrNoFixtureEntry = errors.New("oracle: no fixture entry for parameters")

//go:embed golden.json
var goldenJSON []byte

// fixtureEntry mirrors one JSON record of precomputed facts for a triple.
// Primes and norms are decimal strings so the format is not tied to int64.
type fixtureEntry struct {
	R           int64  `json:"r"`
	S           string `json:"s"`
	Z           string `json:"z"`
	Irreducible bool   `json:"irreducible,omitempty"`
	ConductorQ  []struct {
		P string `json:"p"`
		E int64  `json:"e"`
	} `json:"conductor_q"`
	ConductorK []struct {
		Ideal string `json:"ideal"`
		Norm  string `json:"norm"`
		E     int64  `json:"e"`
	} `json:"conductor_k"`
}

type fixtureFile struct {
	Entries []fixtureEntry `json:"entries"`
}

type curveFacts struct {
	params      frey.CurveParameters
	irreducible bool
	overQ       *RationalConductor
	overK       *IdealConductor
}

// Fixture is an Oracle backed by a corpus of curve facts precomputed by an
// external algebra engine. Elementary arithmetic still runs in-module.
type Fixture struct {
	Base
	facts map[string]*curveFacts
}

// Golden returns the embedded corpus covering the eight classification rows.
func Golden() (*Fixture, error) {
	return ParseFixture(goldenJSON)
}

// LoadFixture reads a corpus from a JSON file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("oracle: read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes a corpus from JSON bytes.
func ParseFixture(data []byte) (*Fixture, error) {
	var file fixtureFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("oracle: decode fixture: %w", err)
	}
	fx := &Fixture{facts: make(map[string]*curveFacts, len(file.Entries))}
	for i, e := range file.Entries {
		s, ok := new(big.Int).SetString(e.S, 10)
		if !ok {
			return nil, fmt.Errorf("oracle: entry %d: bad s %q", i, e.S)
		}
		z, ok := new(big.Int).SetString(e.Z, 10)
		if !ok {
			return nil, fmt.Errorf("oracle: entry %d: bad z %q", i, e.Z)
		}
		params := frey.CurveParameters{R: e.R, S: s, Z: z}

		var qEntries []PrimeExponent
		for _, pe := range e.ConductorQ {
			p, ok := new(big.Int).SetString(pe.P, 10)
			if !ok {
				return nil, fmt.Errorf("oracle: entry %d: bad prime %q", i, pe.P)
			}
			qEntries = append(qEntries, PrimeExponent{Prime: p, Exponent: pe.E})
		}

		var kEntries []IdealExponent
		for _, ie := range e.ConductorK {
			norm, ok := new(big.Int).SetString(ie.Norm, 10)
			if !ok {
				return nil, fmt.Errorf("oracle: entry %d: bad norm %q", i, ie.Norm)
			}
			kEntries = append(kEntries, IdealExponent{
				Ideal:    PrimeIdeal{Label: ie.Ideal, Norm: norm},
				Exponent: ie.E,
			})
		}

		fx.facts[fixtureKey(params)] = &curveFacts{
			params:      params,
			irreducible: e.Irreducible,
			overQ:       NewRationalConductor(qEntries),
			overK:       NewIdealConductor(kEntries),
		}
	}
	return fx, nil
}

func fixtureKey(p frey.CurveParameters) string {
	return fmt.Sprintf("%d|%s|%s", p.R, p.S, p.Z)
}

func (fx *Fixture) lookup(p frey.CurveParameters) (*curveFacts, error) {
	if facts, ok := fx.facts[fixtureKey(p)]; ok {
		return facts, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoFixtureEntry, p)
}

// Parameters lists the corpus triples in deterministic order, for samplers
// that draw from the precomputed universe.
func (fx *Fixture) Parameters() []frey.CurveParameters {
	keys := make([]string, 0, len(fx.facts))
	for k := range fx.facts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]frey.CurveParameters, len(keys))
	for i, k := range keys {
		out[i] = fx.facts[k].params
	}
	return out
}

func (fx *Fixture) IsIrreducible(f *frey.LocalPolynomial) (bool, error) {
	facts, err := fx.lookup(f.Params)
	if err != nil {
		return false, err
	}
	return facts.irreducible, nil
}

func (fx *Fixture) BuildCurve(f *frey.NumberFieldPolynomial) (*Curve, error) {
	if _, err := fx.lookup(f.Params); err != nil {
		return nil, err
	}
	return &Curve{Poly: f}, nil
}

func (fx *Fixture) Conductor(c *Curve) (*RationalConductor, error) {
	facts, err := fx.lookup(c.Params())
	if err != nil {
		return nil, err
	}
	return facts.overQ, nil
}

func (fx *Fixture) ConductorOverK(c *Curve) (*IdealConductor, error) {
	facts, err := fx.lookup(c.Params())
	if err != nil {
		return nil, err
	}
	return facts.overK, nil
}

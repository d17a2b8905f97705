package verify

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/lattigo/v4/utils"
	"golang.org/x/crypto/sha3"

	"frey-conductor/frey"
)

// Sampler produces candidate parameter triples for the rejection loop.
type Sampler interface {
	Draw() (frey.CurveParameters, error)
}

// newPRNG builds the sampling PRNG. A nonempty label is stretched through
// SHAKE-256 into a keyed PRNG so runs can be replayed; an empty label uses a
// fresh system-seeded PRNG.
func newPRNG(label string) (utils.PRNG, error) {
	if label == "" {
		return utils.NewPRNG()
	}
	h := sha3.NewShake256()
	h.Write([]byte("frey-conductor/sampler"))
	h.Write([]byte(label))
	seed := make([]byte, 32)
	if _, err := h.Read(seed); err != nil {
		return nil, fmt.Errorf("verify: derive seed: %w", err)
	}
	return utils.NewKeyedPRNG(seed)
}

// randInt64 draws uniformly from [0, max) using the PRNG.
func randInt64(prng utils.PRNG, max int64) (int64, error) {
	if max <= 0 {
		return 0, fmt.Errorf("verify: max must be > 0")
	}
	buf := make([]byte, 8)
	if _, err := prng.Read(buf); err != nil {
		return 0, fmt.Errorf("verify: prng: %w", err)
	}
	n := new(big.Int).SetBytes(buf)
	return n.Mod(n, big.NewInt(max)).Int64(), nil
}

// RandomSampler draws r uniformly from the admissible prime set and s, z
// uniformly from the symmetric range [-maxSize, maxSize].
type RandomSampler struct {
	prng    utils.PRNG
	primes  []int64
	maxSize int64
}

// NewRandomSampler validates the configuration and seeds the PRNG.
func NewRandomSampler(cfg Config) (*RandomSampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prng, err := newPRNG(cfg.SeedLabel)
	if err != nil {
		return nil, err
	}
	return &RandomSampler{prng: prng, primes: cfg.Primes, maxSize: cfg.MaxSize}, nil
}

func (s *RandomSampler) Draw() (frey.CurveParameters, error) {
	i, err := randInt64(s.prng, int64(len(s.primes)))
	if err != nil {
		return frey.CurveParameters{}, err
	}
	sVal, err := s.symmetric()
	if err != nil {
		return frey.CurveParameters{}, err
	}
	zVal, err := s.symmetric()
	if err != nil {
		return frey.CurveParameters{}, err
	}
	return frey.NewParameters(s.primes[i], sVal, zVal), nil
}

func (s *RandomSampler) symmetric() (int64, error) {
	n, err := randInt64(s.prng, 2*s.maxSize+1)
	if err != nil {
		return 0, err
	}
	return n - s.maxSize, nil
}

// CorpusSampler draws uniformly from a fixed universe of triples, used when
// the oracle only knows a precomputed corpus.
type CorpusSampler struct {
	prng   utils.PRNG
	params []frey.CurveParameters
}

// NewCorpusSampler seeds a sampler over the given universe.
func NewCorpusSampler(params []frey.CurveParameters, seedLabel string) (*CorpusSampler, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("verify: corpus sampler needs a nonempty universe")
	}
	prng, err := newPRNG(seedLabel)
	if err != nil {
		return nil, err
	}
	return &CorpusSampler{prng: prng, params: params}, nil
}

func (s *CorpusSampler) Draw() (frey.CurveParameters, error) {
	i, err := randInt64(s.prng, int64(len(s.params)))
	if err != nil {
		return frey.CurveParameters{}, err
	}
	return s.params[i], nil
}

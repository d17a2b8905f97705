// Package verify drives the conductor-classification checks: a randomized
// rejection-sampling harness, a fixed batch of hand-picked examples covering
// every classification row, and a sweep mode that emits machine-readable
// records per (r, maxSize) cell.
package verify

import (
	"fmt"

	"frey-conductor/arith"
)

// Config is the read-once run configuration.
type Config struct {
	// Trials is the number of verified random cases per run.
	Trials int
	// MaxSize bounds |s| and |z| for sampled parameters.
	MaxSize int64
	// Primes is the finite set of admissible degrees r.
	Primes []int64
	// MaxAttempts caps the rejection-sampling loop per trial. The reference
	// search is unbounded; the cap turns a hang on sparse configurations
	// into a loud failure.
	MaxAttempts int
	// Verbose also reports agreeing cases, not only mismatches.
	Verbose bool
	// SeedLabel derives a deterministic PRNG when nonempty.
	SeedLabel string
}

// DefaultConfig mirrors the defaults of the original verification runs.
func DefaultConfig() Config {
	return Config{
		Trials:      25,
		MaxSize:     50,
		Primes:      []int64{5, 7, 13},
		MaxAttempts: 100_000,
	}
}

// Validate rejects configurations the harness cannot run with.
func (c Config) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("verify: trials must be positive, got %d", c.Trials)
	}
	if c.MaxSize <= 0 {
		return fmt.Errorf("verify: max size must be positive, got %d", c.MaxSize)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("verify: max attempts must be positive, got %d", c.MaxAttempts)
	}
	if len(c.Primes) == 0 {
		return fmt.Errorf("verify: admissible prime set is empty")
	}
	for _, r := range c.Primes {
		if r < 5 || r%2 == 0 || !arith.IsPrimeInt64(r) {
			return fmt.Errorf("verify: admissible degree %d is not an odd prime >= 5", r)
		}
	}
	return nil
}

package verify

import (
	"fmt"
	"io"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"frey-conductor/oracle"
)

// SweepRecord is one emitted line of a sweep run: the harness outcome for a
// single (r, maxSize) grid cell.
type SweepRecord struct {
	R             int64          `json:"r"`
	MaxSize       int64          `json:"max_size"`
	Trials        int            `json:"trials"`
	Comparisons   int            `json:"comparisons"`
	Mismatches    int            `json:"mismatches"`
	SetMismatches int            `json:"set_mismatches"`
	RowHits       map[string]int `json:"row_hits"`
	DurationUS    int64          `json:"timing_us"`
}

// RunSweep runs the harness on every (r, maxSize) cell of the grid and
// writes one JSON record per line. The sampler factory receives the cell's
// config, so callers choose between random and corpus-backed sampling.
func RunSweep(base Config, degrees, sizes []int64, newSampler func(Config) (Sampler, error),
	orc oracle.Oracle, out io.Writer, logger *zap.Logger) error {
	if len(degrees) == 0 || len(sizes) == 0 {
		return fmt.Errorf("verify: sweep grid is empty")
	}
	enc := json.NewEncoder(out)
	for _, r := range degrees {
		for _, size := range sizes {
			cfg := base
			cfg.Primes = []int64{r}
			cfg.MaxSize = size
			sampler, err := newSampler(cfg)
			if err != nil {
				return err
			}
			h, err := NewHarness(cfg, sampler, orc, logger)
			if err != nil {
				return err
			}
			start := time.Now()
			res, err := h.Run()
			if err != nil {
				return fmt.Errorf("verify: sweep cell r=%d max=%d: %w", r, size, err)
			}
			rec := SweepRecord{
				R:             r,
				MaxSize:       size,
				Trials:        res.Trials,
				Comparisons:   res.Comparisons,
				Mismatches:    res.Mismatches,
				SetMismatches: res.SetMismatches,
				RowHits:       res.RowHits,
				DurationUS:    time.Since(start).Microseconds(),
			}
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("verify: encode sweep record: %w", err)
			}
		}
	}
	return nil
}

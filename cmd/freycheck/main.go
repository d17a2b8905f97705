// Command freycheck verifies the conductor-exponent classification of the
// Frey hyperelliptic curves C(z,s) against precomputed oracle data, over Q
// and over the totally real cyclotomic subfield K.
package main

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"frey-conductor/frey"
	"frey-conductor/oracle"
	"frey-conductor/verify"
)

var (
	verbose     bool
	fixturePath string
	seedLabel   string
	trials      int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "freycheck",
	Short: "Numerical verification of the conductor classification for Frey hyperelliptic curves",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Encoding = "console"
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Run the fixed example table covering all eight classification rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		orc, err := loadOracle()
		if err != nil {
			return err
		}
		out, err := verify.RunExamples(orc, logger, verify.Examples())
		if err != nil {
			return err
		}
		for _, res := range out.Results {
			status := "ok"
			if !res.Pass {
				status = "MISMATCH"
			}
			fmt.Printf("row %d (%s): r=%d q=%d s=%d z=%d expected Q=%s K=%s actual Q=%d [%s]\n",
				res.Row, res.RowName, res.R, res.Q, res.S, res.Z,
				res.ExpectedQ, res.ExpectedK, res.ActualQ, status)
		}
		fmt.Printf("examples: %d, mismatches: %d\n", len(out.Results), out.Mismatches)
		if out.Mismatches > 0 {
			return fmt.Errorf("%d example(s) disagree with the classification", out.Mismatches)
		}
		return nil
	},
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Cross-check random curves from the precomputed corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		orc, err := loadOracle()
		if err != nil {
			return err
		}
		cfg := verify.DefaultConfig()
		cfg.Trials = trials
		cfg.Verbose = verbose
		cfg.SeedLabel = seedLabel
		cfg.Primes = corpusDegrees(orc)

		sampler, err := verify.NewCorpusSampler(orc.Parameters(), seedLabel)
		if err != nil {
			return err
		}
		h, err := verify.NewHarness(cfg, sampler, orc, logger)
		if err != nil {
			return err
		}
		out, err := h.Run()
		if err != nil {
			return err
		}
		fmt.Printf("trials: %d, comparisons: %d, mismatches: %d, set mismatches: %d\n",
			out.Trials, out.Comparisons, out.Mismatches, out.SetMismatches)
		for row, hits := range out.RowHits {
			fmt.Printf("  %-24s %d\n", row, hits)
		}
		if out.Mismatches > 0 {
			return fmt.Errorf("%d counterexample candidate(s) found", out.Mismatches)
		}
		return nil
	},
}

var (
	sweepOut   string
	sweepSizes string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the harness per (r, maxSize) cell and emit JSON records",
	RunE: func(cmd *cobra.Command, args []string) error {
		orc, err := loadOracle()
		if err != nil {
			return err
		}
		sizes, err := parseInt64List(sweepSizes)
		if err != nil {
			return fmt.Errorf("parse --sizes: %w", err)
		}

		base := verify.DefaultConfig()
		base.Trials = trials
		base.Verbose = verbose
		base.SeedLabel = seedLabel

		f, err := os.Create(sweepOut)
		if err != nil {
			return err
		}
		defer f.Close()

		factory := func(cfg verify.Config) (verify.Sampler, error) {
			universe := corpusForCell(orc.Parameters(), cfg.Primes[0], cfg.MaxSize)
			if len(universe) == 0 {
				return nil, fmt.Errorf("no corpus entry with r=%d and |s|,|z| <= %d", cfg.Primes[0], cfg.MaxSize)
			}
			return verify.NewCorpusSampler(universe, cfg.SeedLabel)
		}
		if err := verify.RunSweep(base, corpusDegrees(orc), sizes, factory, orc, f, logger); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", sweepOut)
		return nil
	},
}

func loadOracle() (*oracle.Fixture, error) {
	if fixturePath == "" {
		return oracle.Golden()
	}
	return oracle.LoadFixture(fixturePath)
}

// corpusDegrees lists the distinct degrees present in the corpus.
func corpusDegrees(fx *oracle.Fixture) []int64 {
	seen := map[int64]bool{}
	var out []int64
	for _, p := range fx.Parameters() {
		if !seen[p.R] {
			seen[p.R] = true
			out = append(out, p.R)
		}
	}
	return out
}

// corpusForCell restricts the corpus universe to one sweep cell: degree r
// with |s|, |z| <= maxSize.
func corpusForCell(universe []frey.CurveParameters, r, maxSize int64) []frey.CurveParameters {
	bound := big.NewInt(maxSize)
	var out []frey.CurveParameters
	for _, p := range universe {
		if p.R != r {
			continue
		}
		if new(big.Int).Abs(p.S).Cmp(bound) > 0 || new(big.Int).Abs(p.Z).Cmp(bound) > 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

func parseInt64List(spec string) ([]int64, error) {
	var out []int64
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "also report agreeing cases")
	rootCmd.PersistentFlags().StringVar(&fixturePath, "fixture", "", "oracle fixture JSON (default: embedded golden corpus)")
	rootCmd.PersistentFlags().StringVar(&seedLabel, "seed", "", "seed label for deterministic sampling")
	rootCmd.PersistentFlags().IntVar(&trials, "trials", verify.DefaultConfig().Trials, "number of random trials")

	sweepCmd.Flags().StringVar(&sweepOut, "out", "conductor_sweep.jsonl", "output JSONL path")
	sweepCmd.Flags().StringVar(&sweepSizes, "sizes", "25,50", "comma-separated maxSize grid bounding |s| and |z| per cell")

	rootCmd.AddCommand(examplesCmd, randomCmd, sweepCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package verify

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"frey-conductor/classify"
	"frey-conductor/frey"
	"frey-conductor/oracle"
)

// Example is one hand-picked regression tuple with the row it exercises.
type Example struct {
	R, Q, S, Z int64
	Row        int
}

// Examples returns the fixed regression table, one witness per row of the
// classification cascade, in row order.
func Examples() []Example {
	return []Example{
		{R: 5, Q: 7, S: 4, Z: 9, Row: 1},
		{R: 5, Q: 7, S: 14, Z: 196, Row: 2},
		{R: 5, Q: 5, S: 18, Z: 4, Row: 3},
		{R: 5, Q: 5, S: 2, Z: 4, Row: 4},
		{R: 5, Q: 5, S: 20, Z: 25, Row: 5},
		{R: 5, Q: 5, S: 4, Z: 4, Row: 6},
		{R: 5, Q: 5, S: 2, Z: 16, Row: 7},
		{R: 5, Q: 5, S: 14, Z: 9, Row: 8},
	}
}

// ExampleResult is the verdict for one tuple.
type ExampleResult struct {
	Example
	RowName   string
	ExpectedQ *big.Int
	ExpectedK *big.Int
	ActualQ   int64
	Pass      bool
}

// BatchOutcome aggregates a batch run.
type BatchOutcome struct {
	Results    []ExampleResult
	Mismatches int
}

// RunExamples drives the classifier/oracle comparison over a fixed tuple
// table. Unlike the random harness, validity violations here are fatal: a
// tuple that fails the hypotheses means the table itself is wrong.
func RunExamples(orc oracle.Oracle, logger *zap.Logger, examples []Example) (*BatchOutcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Sugar()
	out := &BatchOutcome{}

	for _, ex := range examples {
		params := frey.NewParameters(ex.R, ex.S, ex.Z)
		reason, err := frey.Check(params)
		if err != nil {
			return nil, err
		}
		if reason != frey.Valid {
			return nil, fmt.Errorf("verify: example %s violates hypotheses: %s", params, reason)
		}

		nf, err := frey.NewNumberFieldPolynomial(params)
		if err != nil {
			return nil, err
		}
		local, err := frey.NewLocalPolynomial(params)
		if err != nil {
			return nil, err
		}
		curve, err := orc.BuildCurve(nf)
		if err != nil {
			return nil, fmt.Errorf("verify: example %s: %w", params, err)
		}
		condQ, err := orc.Conductor(curve)
		if err != nil {
			return nil, err
		}
		condK, err := orc.ConductorOverK(curve)
		if err != nil {
			return nil, err
		}

		q := big.NewInt(ex.Q)
		res, err := classify.Expected(classify.Input{
			R: ex.R, S: params.S, Z: params.Z,
			Q:                q,
			Delta:            classify.Delta(ex.R, params.S, params.Z),
			LocalIrreducible: func() (bool, error) { return orc.IsIrreducible(local) },
		})
		if err != nil {
			return nil, err
		}

		result := ExampleResult{
			Example:   ex,
			RowName:   res.Name,
			ExpectedQ: res.OverQ,
			ExpectedK: res.OverK,
			Pass:      res.Index == ex.Row,
		}
		if !result.Pass {
			log.Warnw("example classified into unexpected row",
				"params", params.String(), "q", ex.Q, "row", res.Index, "want_row", ex.Row)
		}

		actualQ, known := condQ.ExponentAt(q)
		result.ActualQ = actualQ
		if !known || actualQ != res.OverQ.Int64() {
			result.Pass = false
			log.Warnw("example mismatch over Q",
				"params", params.String(), "q", ex.Q,
				"expected", res.OverQ.String(), "actual", actualQ)
		}
		ideals, err := condK.IdealsOver(q)
		if err != nil {
			return nil, err
		}
		if len(ideals) == 0 {
			result.Pass = false
			log.Warnw("example has no ideal above q", "params", params.String(), "q", ex.Q)
		}
		for _, ie := range ideals {
			if ie.Exponent != res.OverK.Int64() {
				result.Pass = false
				log.Warnw("example mismatch over K",
					"params", params.String(), "ideal", ie.Ideal.Label,
					"expected", res.OverK.String(), "actual", ie.Exponent)
			}
		}

		if !result.Pass {
			out.Mismatches++
		}
		out.Results = append(out.Results, result)
	}
	log.Infow("batch complete", "examples", len(out.Results), "mismatches", out.Mismatches)
	return out, nil
}

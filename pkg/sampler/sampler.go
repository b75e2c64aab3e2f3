// Package sampler implements engine.Sampler as a blocking-clause model
// enumerator: solve, record the model, forbid that exact assignment, and
// repeat. Randomized partial assumptions over X bias successive solves
// toward different regions of the input space rather than always
// returning whatever the underlying solver's static branching order
// would find first.
package sampler

import (
	"context"
	"math/rand"

	"github.com/operator-framework/basissynth/pkg/cnf"
	"github.com/operator-framework/basissynth/pkg/engine"
)

// Sampler draws satisfying assignments of a Spec via an injected
// incremental SAT collaborator.
type Sampler struct {
	sat engine.SATSolver
}

// New returns a Sampler backed by sat. sat is reset at the start of
// every Sample call.
func New(sat engine.SATSolver) *Sampler {
	return &Sampler{sat: sat}
}

// Sample implements engine.Sampler.
func (s *Sampler) Sample(ctx context.Context, spec *cnf.Spec, n int, seed int64) ([]cnf.Sample, error) {
	s.sat.Reset()
	for _, cl := range spec.Clauses {
		s.sat.AddClause(cl)
	}

	x := spec.X()
	all := append(append([]cnf.Variable{}, x...), spec.Y()...)
	rng := rand.New(rand.NewSource(seed))

	samples := make([]cnf.Sample, 0, n)
	consecutiveMisses := 0
	maxConsecutiveMisses := 2*n + 16

	for len(samples) < n {
		if err := ctx.Err(); err != nil {
			return samples, nil
		}

		var assumptions []cnf.Literal
		if consecutiveMisses < maxConsecutiveMisses {
			for _, v := range x {
				if rng.Intn(2) == 0 {
					assumptions = append(assumptions, cnf.Lit(v, rng.Intn(2) == 0))
				}
			}
		}

		sat, err := s.sat.Solve(ctx, assumptions...)
		if err != nil {
			return nil, err
		}
		if !sat {
			if len(assumptions) == 0 {
				// No biased assumptions left to blame: every remaining
				// model has been exhausted.
				break
			}
			consecutiveMisses++
			continue
		}
		consecutiveMisses = 0

		sample := make(cnf.Sample, len(all))
		block := make(cnf.Clause, 0, len(all))
		for _, v := range all {
			val := s.sat.Value(v)
			sample[v] = val
			block = append(block, cnf.Lit(v, !val))
		}
		samples = append(samples, sample)
		s.sat.AddClause(block)
	}

	return samples, nil
}

package engine

import (
	"context"

	"github.com/operator-framework/basissynth/pkg/cnf"
)

// BuildInitialBasis runs Phase 2/3 of the pipeline (spec.md §2 data flow):
// sample F, label each sample per output, fit one decision tree per
// output, and extract Â_i/Ĉ_i from the tree's MUST1/MUST0 leaves into the
// initial DNF forms (spec.md §4.4). Samples, labeled rows, and trees are
// discarded once this function returns (spec.md §3 lifecycle note); only
// the returned BasisStore persists.
//
// If the sampler returns zero samples for a satisfiable spec (spec.md
// §4.2's degenerate case), the Learner is skipped entirely and every
// entry is left at its default false/false state, forcing the loop to
// repair from scratch.
func BuildInitialBasis(ctx context.Context, spec *cnf.Spec, order *Order, sampler Sampler, learner TreeLearner, n int, seed int64) (*BasisStore, []cnf.Sample, error) {
	store := NewBasisStore(order.Sequence())

	samples, err := sampler.Sample(ctx, spec, n, seed)
	if err != nil {
		return nil, nil, &SolverFailureError{Stage: "sampling", Err: err}
	}
	if len(samples) == 0 {
		return store, samples, nil
	}

	for _, y := range order.Sequence() {
		rows, err := LabelRows(order, spec, samples, y)
		if err != nil {
			return nil, nil, err
		}
		tree, err := learner.Fit(rows, seed)
		if err != nil {
			return nil, nil, &SolverFailureError{Stage: "learning", Err: err}
		}
		entry := store.Entry(y)
		tree.Paths(func(path cnf.Cube, label cnf.Label) {
			switch label {
			case cnf.MustBeOne:
				entry.ADNF = entry.ADNF.Or(path)
			case cnf.MustBeZero:
				entry.CDNF = entry.CDNF.Or(path)
			}
		})
	}

	return store, samples, nil
}

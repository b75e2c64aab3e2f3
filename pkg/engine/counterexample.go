package engine

import (
	"context"

	"github.com/operator-framework/basissynth/pkg/cnf"
)

// Counterexample is the model extracted from a SAT answer to the error
// formula E (spec.md §4.6): an input assignment, a choice of free
// parameters, the original output values, and the synthesized output
// values that together witness F(X,Y) ∧ ¬F(X,Y′).
//
// Counterexamples are short-lived: they exist only within one loop
// iteration (spec.md §3).
type Counterexample struct {
	X     cnf.Sample // σ_X
	G     cnf.Sample // σ_G, keyed by the output variable g_i parameterizes
	YOrig cnf.Sample // σ_Y
	YSyn  cnf.Sample // σ_Y′
}

// VerificationCircuit builds and solves the error formula E described in
// spec.md §4.6: two structural copies of F (one over the original Y, one
// over Y wired through ψ) ANDed with their disagreement. It is the
// Verifier's sole collaborator and is implemented with a Tseitin circuit
// builder (spec.md §6, §9).
type VerificationCircuit interface {
	CheckUnsat(ctx context.Context, spec *cnf.Spec, order *Order, basis *BasisStore) (unsat bool, cex *Counterexample, err error)
}

// RepairOracle builds the conflict formula H_i for a single diagnosed
// index (spec.md §4.8) and extracts the generalizing cube β from its
// unsat core.
type RepairOracle interface {
	Conflict(ctx context.Context, spec *cnf.Spec, order *Order, basis *BasisStore, y cnf.Variable, gVal bool, cex *Counterexample, fix cnf.Sample) (beta cnf.Cube, err error)
}

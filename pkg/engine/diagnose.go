package engine

import (
	"context"

	"github.com/operator-framework/basissynth/pkg/cnf"
)

// Diagnose runs the Diagnoser's MaxSAT pass (spec.md §4.7): hold F and
// the counterexample's input assignment hard, treat agreement with every
// synthesized output as a unit-weight soft clause, and let the solver
// drop the minimum-weight set of outputs (Ind) needed to satisfy F. Every
// dropped output is then classified into one of the four repair actions.
func Diagnose(ctx context.Context, maxsat MaxSATSolver, spec *cnf.Spec, order *Order, basis *BasisStore, cex *Counterexample) (fix cnf.Sample, diagnoses []Diagnosis, err error) {
	maxsat.Reset()
	for _, cl := range spec.Clauses {
		maxsat.AddHardClause(cl)
	}
	for v, val := range cex.X {
		maxsat.AddHardClause(cnf.Clause{cnf.Lit(v, val)})
	}
	for _, y := range order.Sequence() {
		maxsat.AddSoftClause(cnf.Clause{cnf.Lit(y, cex.YSyn[y])}, 1)
	}

	fix, err = maxsat.Solve(ctx)
	if err != nil {
		return nil, nil, &SolverFailureError{Stage: "diagnose", Err: err}
	}

	for _, y := range order.Sequence() {
		synVal := cex.YSyn[y]
		fixVal, ok := fix[y]
		if !ok || fixVal == synVal {
			continue
		}
		gVal := cex.G[y]
		sample := restrictedSample(order, cex, y)
		aHolds := basis.Entry(y).EvalA(sample)
		diagnoses = append(diagnoses, Diagnosis{Y: y, Action: classify(fixVal, gVal, aHolds)})
	}

	if len(diagnoses) == 0 {
		return nil, nil, &InvariantViolationError{
			Reason: "diagnoser found a satisfiable fix but no output disagreed with its synthesized value",
		}
	}
	return fix, diagnoses, nil
}

// restrictedSample builds the X ∪ Y_{<rank(y)} assignment y's basis
// entry may consult, taken from the counterexample's synthesized Y
// values (spec.md §4.3's allowed-feature-set rule applies here too).
func restrictedSample(order *Order, cex *Counterexample, y cnf.Variable) cnf.Sample {
	out := make(cnf.Sample, len(cex.X))
	for v, val := range cex.X {
		out[v] = val
	}
	r := order.Rank(y)
	for _, yj := range order.Sequence() {
		if order.Rank(yj) < r {
			out[yj] = cex.YSyn[yj]
		}
	}
	return out
}

// classify implements the Diagnoser's four-row table (spec.md §4.7).
// target is the Diagnoser's fix value, g is the counterexample's g_i
// branch, and aHolds is Â_i evaluated on the counterexample. The
// synthesized value being corrected away from is always !target, since
// classify is only called on disagreement.
// Row 2's ambiguity (target=0, g=1, current=1) is resolved by evaluating
// Â_i first, as the spec's precedence rule requires: if Â_i already
// holds at this point, ψ_i's A-branch is at fault and must be shrunk
// rather than patched through C.
func classify(target, g, aHolds bool) DiagnosisAction {
	switch {
	case !target && !g:
		return ShrinkA
	case !target && g:
		if aHolds {
			return ShrinkA
		}
		return ExpandC
	case target && !g:
		return ExpandA
	default: // target && g
		return ShrinkC
	}
}

package circuit

import (
	"context"

	"github.com/go-air/gini/logic"

	"github.com/operator-framework/basissynth/pkg/cnf"
	"github.com/operator-framework/basissynth/pkg/engine"
)

// Verifier compiles and solves the error formula E (spec.md §4.6):
// valid_orig ∧ ¬valid_syn, where valid_orig is F over the original X,Y
// and valid_syn is F with every output replaced by its synthesized wire
// y′_i = ψ_i(X, Y′_{<i}, g_i). Each call compiles a fresh circuit, the
// same one-shot lifecycle the teacher's lit_mapping follows per Solve.
type Verifier struct{}

// NewVerifier returns a Verifier. It holds no state between calls.
func NewVerifier() *Verifier { return &Verifier{} }

// CheckUnsat implements engine.VerificationCircuit.
func (*Verifier) CheckUnsat(ctx context.Context, spec *cnf.Spec, order *engine.Order, basis *engine.BasisStore) (bool, *engine.Counterexample, error) {
	c := logic.NewC()

	x := make(litSet, len(spec.X()))
	for _, v := range spec.X() {
		x[v] = c.Lit()
	}

	yOrig := make(litSet, len(order.Sequence()))
	g := make(litSet, len(order.Sequence()))
	for _, y := range order.Sequence() {
		yOrig[y] = c.Lit()
		g[y] = c.Lit()
	}

	origLits := make(litSet, len(x)+len(yOrig))
	for v, m := range x {
		origLits[v] = m
	}
	for v, m := range yOrig {
		origLits[v] = m
	}
	validOrig := buildF(c, spec, origLits)

	ySyn := make(litSet, len(order.Sequence()))
	for _, y := range order.Sequence() {
		entry := basis.Entry(y)
		ySyn[y] = buildPsi(c, entry, spec, order, x, ySyn, g[y])
	}

	synLits := make(litSet, len(x)+len(ySyn))
	for v, m := range x {
		synLits[v] = m
	}
	for v, m := range ySyn {
		synLits[v] = m
	}
	validSyn := buildF(c, spec, synLits)

	out := c.And(validOrig, validSyn.Not())

	gini := NewGini()
	c.ToCnf(gini)
	gini.Assume(out)

	result := waitForSolution(ctx, gini.GoSolve())
	switch result {
	case unsatisfiable:
		return true, nil, nil
	case satisfiable:
		cex := &engine.Counterexample{
			X:     make(cnf.Sample, len(x)),
			G:     make(cnf.Sample, len(g)),
			YOrig: make(cnf.Sample, len(yOrig)),
			YSyn:  make(cnf.Sample, len(ySyn)),
		}
		for v, m := range x {
			cex.X[v] = gini.Value(m)
		}
		for v, m := range g {
			cex.G[v] = gini.Value(m)
		}
		for v, m := range yOrig {
			cex.YOrig[v] = gini.Value(m)
		}
		for v, m := range ySyn {
			cex.YSyn[v] = gini.Value(m)
		}
		return false, cex, nil
	default:
		return false, nil, &engine.SolverFailureError{Stage: "verify", Err: context.DeadlineExceeded}
	}
}

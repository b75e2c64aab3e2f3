package circuit

import (
	"context"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/operator-framework/basissynth/pkg/cnf"
	"github.com/operator-framework/basissynth/pkg/engine"
)

// ConflictBuilder compiles and solves the Repairer's conflict formula H_i
// (spec.md §4.8) for one diagnosed output and extracts the unsat core
// restricted to its X ∪ Y_{<i} assumption literals.
type ConflictBuilder struct{}

// NewConflictBuilder returns a ConflictBuilder. It holds no state between
// calls.
func NewConflictBuilder() *ConflictBuilder { return &ConflictBuilder{} }

// Conflict implements engine.RepairOracle. y is the diagnosed output,
// gVal is the g_i branch the counterexample exercised, cex carries the
// counterexample's σ_X and σ_Y′, and fix carries the Diagnoser's target
// assignment Y_fix for every output above y's rank.
func (*ConflictBuilder) Conflict(ctx context.Context, spec *cnf.Spec, order *engine.Order, basis *engine.BasisStore, y cnf.Variable, gVal bool, cex *engine.Counterexample, fix cnf.Sample) (cnf.Cube, error) {
	c := logic.NewC()

	x := make(litSet, len(spec.X()))
	for _, v := range spec.X() {
		x[v] = c.Lit()
	}
	ys := make(litSet, len(order.Sequence()))
	for _, yj := range order.Sequence() {
		ys[yj] = c.Lit()
	}
	g := c.Lit()

	entry := basis.Entry(y)
	feat := featureLits(order, x, ys, y)
	a := buildMust(c, entry, spec, order, x, ys, feat, mustA)
	cc := buildMust(c, entry, spec, order, x, ys, feat, mustC)
	psi := c.Or(a, c.And(g, cc.Not()))

	fVars := make(litSet, len(x)+len(ys))
	for v, m := range x {
		fVars[v] = m
	}
	for v, m := range ys {
		fVars[v] = m
	}
	fGate := buildF(c, spec, fVars)

	gini := NewGini()
	c.ToCnf(gini)

	r := order.Rank(y)
	var assumptions []z.Lit
	var xLits, ltLits []z.Lit
	for v, m := range x {
		l := m
		if !cex.X[v] {
			l = l.Not()
		}
		xLits = append(xLits, l)
	}
	for _, yj := range order.Sequence() {
		switch {
		case order.Rank(yj) < r:
			l := ys[yj]
			if !cex.YSyn[yj] {
				l = l.Not()
			}
			ltLits = append(ltLits, l)
		case yj == y:
			// left free: F determines it, ψ_i ↔ σ_Y′[i] pins it below.
		default:
			l := ys[yj]
			if !fix[yj] {
				l = l.Not()
			}
			assumptions = append(assumptions, l)
		}
	}
	assumptions = append(assumptions, xLits...)
	assumptions = append(assumptions, ltLits...)

	gLit := g
	if !gVal {
		gLit = gLit.Not()
	}
	assumptions = append(assumptions, gLit)

	psiTarget := psi
	if !cex.YSyn[y] {
		psiTarget = psiTarget.Not()
	}
	assumptions = append(assumptions, psiTarget)
	assumptions = append(assumptions, fGate)

	gini.Assume(assumptions...)
	result := waitForSolution(ctx, gini.GoSolve())
	if result != unsatisfiable {
		return nil, &engine.InvariantViolationError{
			Reason: "repair conflict formula was satisfiable; the Diagnoser's fix point should make it UNSAT",
		}
	}

	why := gini.Why(nil)
	core := make(map[z.Lit]bool, len(why))
	for _, w := range why {
		core[w] = true
	}

	var lits []cnf.Literal
	for v, m := range x {
		if core[m] {
			lits = append(lits, cnf.Lit(v, true))
		} else if core[m.Not()] {
			lits = append(lits, cnf.Lit(v, false))
		}
	}
	for _, yj := range order.Sequence() {
		if order.Rank(yj) >= r {
			continue
		}
		m := ys[yj]
		if core[m] {
			lits = append(lits, cnf.Lit(yj, true))
		} else if core[m.Not()] {
			lits = append(lits, cnf.Lit(yj, false))
		}
	}

	cube, ok := cnf.NewCube(lits...)
	if !ok {
		return nil, &engine.InvariantViolationError{Reason: "repair unsat core produced a contradictory cube"}
	}
	return cube, nil
}

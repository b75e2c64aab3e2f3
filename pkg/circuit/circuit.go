// Package circuit compiles the synthesis engine's formulas into CNF via
// go-air/gini's Tseitin circuit builder, the same technique the teacher's
// solver package uses to compile dependency and conflict constraints
// (lit_mapping.go). It backs both the Verifier's error formula E and the
// Repairer's conflict formula H_i.
package circuit

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/operator-framework/basissynth/pkg/cnf"
	"github.com/operator-framework/basissynth/pkg/engine"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// litSet maps engine variables onto circuit wires within one compiled
// formula. It is rebuilt from scratch for every Verifier/Repairer call,
// matching the teacher's one-dict-per-Solve lifecycle (lit_mapping.go).
type litSet map[cnf.Variable]z.Lit

func buildClauseLit(c *logic.C, cl cnf.Clause, lits litSet) z.Lit {
	ms := make([]z.Lit, len(cl))
	for i, l := range cl {
		m := lits[l.Var()]
		if !l.Positive() {
			m = m.Not()
		}
		ms[i] = m
	}
	return c.Ors(ms...)
}

// buildF compiles F's clause database against lits, which must cover
// every variable F's clauses mention.
func buildF(c *logic.C, spec *cnf.Spec, lits litSet) z.Lit {
	ms := make([]z.Lit, len(spec.Clauses))
	for i, cl := range spec.Clauses {
		ms[i] = buildClauseLit(c, cl, lits)
	}
	return c.Ands(ms...)
}

// buildDNF compiles a DNF against lits. An empty DNF compiles to the
// constant false, via c.Ors() with zero terms (cnf.DNF.Evaluate agrees).
func buildDNF(c *logic.C, d cnf.DNF, lits litSet) z.Lit {
	cubes := make([]z.Lit, len(d))
	for i, cube := range d {
		ms := make([]z.Lit, len(cube))
		for j, l := range cube {
			m := lits[l.Var()]
			if !l.Positive() {
				m = m.Not()
			}
			ms[j] = m
		}
		cubes[i] = c.Ands(ms...)
	}
	return c.Ors(cubes...)
}

// buildCNF compiles a CNF against lits. An empty CNF compiles to the
// constant true, via c.Ands() with zero terms (cnf.CNF.Evaluate agrees).
func buildCNF(c *logic.C, cl cnf.CNF, lits litSet) z.Lit {
	clauses := make([]z.Lit, len(cl))
	for i, clause := range cl {
		clauses[i] = buildClauseLit(c, clause, lits)
	}
	return c.Ands(clauses...)
}

// cofactorLits builds a variable map suitable for compiling F|_{y=value}:
// X keeps the caller's wires, every y_j ranked below y keeps its
// already-synthesized wire, y itself is pinned to value, and every other
// output is given a fresh, unconstrained wire. That last choice makes the
// compiled cofactor depend only on X and Y_{<rank(y)} even though F's
// clauses may mention later outputs, which is what lets the frozen
// Hard-to-Learn Fallback definitions (spec.md §4.9) slot into ψ_i's
// X ∪ Y_{<i} ∪ {g_i} signature.
func cofactorLits(c *logic.C, order *engine.Order, x litSet, ySyn litSet, y cnf.Variable, value z.Lit) litSet {
	out := make(litSet, len(x)+len(order.Sequence()))
	for v, m := range x {
		out[v] = m
	}
	r := order.Rank(y)
	for _, yj := range order.Sequence() {
		switch {
		case yj == y:
			out[yj] = value
		case order.Rank(yj) < r:
			out[yj] = ySyn[yj]
		default:
			out[yj] = c.Lit()
		}
	}
	return out
}

type mustKind int

const (
	mustA mustKind = iota
	mustC
)

// buildMust compiles Â_i or Ĉ_i for entry, either from its DNF/CNF pair
// or, once frozen, from the semantic cofactor construction (spec.md
// §4.9), represented structurally rather than flattened.
func buildMust(c *logic.C, entry *engine.BasisEntry, spec *cnf.Spec, order *engine.Order, x litSet, ySyn litSet, feature litSet, kind mustKind) z.Lit {
	if entry.Frozen {
		fAt1 := buildF(c, spec, cofactorLits(c, order, x, ySyn, entry.Y, c.T))
		fAt0 := buildF(c, spec, cofactorLits(c, order, x, ySyn, entry.Y, c.T.Not()))
		if kind == mustA {
			return c.And(fAt1, fAt0.Not())
		}
		return c.And(fAt0, fAt1.Not())
	}
	var dnf cnf.DNF
	var cn cnf.CNF
	if kind == mustA {
		dnf, cn = entry.ADNF, entry.ACNF
	} else {
		dnf, cn = entry.CDNF, entry.CCNF
	}
	return c.And(buildDNF(c, dnf, feature), buildCNF(c, cn, feature))
}

// featureLits restricts x ∪ ySyn to the allowed feature set of y: X
// together with every already-compiled lower-ranked output.
func featureLits(order *engine.Order, x litSet, ySyn litSet, y cnf.Variable) litSet {
	out := make(litSet, len(x)+len(ySyn))
	for v, m := range x {
		out[v] = m
	}
	r := order.Rank(y)
	for _, yj := range order.Sequence() {
		if order.Rank(yj) < r {
			out[yj] = ySyn[yj]
		}
	}
	return out
}

// buildPsi compiles ψ_i = Â_i ∨ (g_i ∧ ¬Ĉ_i) for entry, wiring its
// feature inputs from x and the already-compiled outputs in ySyn.
func buildPsi(c *logic.C, entry *engine.BasisEntry, spec *cnf.Spec, order *engine.Order, x litSet, ySyn litSet, g z.Lit) z.Lit {
	feat := featureLits(order, x, ySyn, entry.Y)
	a := buildMust(c, entry, spec, order, x, ySyn, feat, mustA)
	cc := buildMust(c, entry, spec, order, x, ySyn, feat, mustC)
	return c.Or(a, c.And(g, cc.Not()))
}

// waitForSolution polls an in-flight solve for a result, aborting it if
// ctx expires first. Grounded on the teacher's sat/dict.go helper of the
// same name.
func waitForSolution(ctx context.Context, gs inter.Solve) int {
	t := time.NewTicker(10 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return gs.Stop()
		case <-t.C:
			if result, ok := gs.Test(); ok {
				return result
			}
		}
	}
}

// NewGini constructs a fresh solver instance, isolated so that successive
// engine iterations never leak state between independently-compiled
// formulas.
func NewGini() *gini.Gini {
	return gini.New()
}

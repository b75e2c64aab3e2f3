// Package satsolver implements engine.SATSolver with go-air/gini, the
// same incremental solver the teacher's resolver package compiles
// constraints onto (solver/dict.go, solver/lit_mapping.go).
package satsolver

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"

	"github.com/operator-framework/basissynth/pkg/cnf"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// Solver is an incremental CNF SAT solver over DIMACS-numbered variables,
// backed directly by a *gini.Gini instance.
type Solver struct {
	g *gini.Gini
}

// New returns a Solver with no clauses added.
func New() *Solver {
	return &Solver{g: gini.New()}
}

func toLit(l cnf.Literal) z.Lit {
	n := int(l.Var())
	if !l.Positive() {
		n = -n
	}
	return z.Dimacs2Lit(n)
}

func fromLit(m z.Lit) cnf.Literal {
	d := m.Dimacs()
	if d < 0 {
		return cnf.Lit(cnf.Variable(-d), false)
	}
	return cnf.Lit(cnf.Variable(d), true)
}

// AddClause implements engine.SATSolver.
func (s *Solver) AddClause(c cnf.Clause) {
	for _, l := range c {
		s.g.Add(toLit(l))
	}
	s.g.Add(z.LitNull)
}

// Solve implements engine.SATSolver.
func (s *Solver) Solve(ctx context.Context, assumptions ...cnf.Literal) (bool, error) {
	lits := make([]z.Lit, len(assumptions))
	for i, a := range assumptions {
		lits[i] = toLit(a)
	}
	s.g.Assume(lits...)

	switch waitForSolution(ctx, s.g.GoSolve()) {
	case satisfiable:
		return true, nil
	case unsatisfiable:
		return false, nil
	default:
		return false, context.DeadlineExceeded
	}
}

// Value implements engine.SATSolver.
func (s *Solver) Value(v cnf.Variable) bool {
	return s.g.Value(z.Dimacs2Lit(int(v)))
}

// UnsatCore implements engine.SATSolver.
func (s *Solver) UnsatCore() []cnf.Literal {
	whys := s.g.Why(nil)
	out := make([]cnf.Literal, len(whys))
	for i, w := range whys {
		out[i] = fromLit(w)
	}
	return out
}

// Reset implements engine.SATSolver by discarding the underlying solver
// and starting a fresh one; gini has no cheaper way to drop learned
// clauses and assumptions independent of variable numbering.
func (s *Solver) Reset() {
	s.g = gini.New()
}

// waitForSolution polls an in-flight solve, aborting it if ctx expires
// first. Grounded on the teacher's sat/dict.go helper of the same name.
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

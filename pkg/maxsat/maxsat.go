// Package maxsat implements engine.MaxSATSolver with go-air/gini's
// cardinality-sorting-network construction, the exact weighted-search
// technique the teacher's legacy sat package used to minimize
// Installable weight (sat/dict.go's linearSearch over a logic.CardSort).
// Here the thing being minimized is total violated soft-clause weight
// rather than selected-package weight, but the machinery is identical.
package maxsat

import (
	"context"
	"fmt"
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

// Solver accumulates hard and soft clauses and solves for a
// weight-maximizing assignment on demand.
type Solver struct {
	hard []cnf.Clause
	soft []engine.SoftClause
}

// New returns an empty Solver.
func New() *Solver {
	return &Solver{}
}

// AddHardClause implements engine.MaxSATSolver.
func (s *Solver) AddHardClause(c cnf.Clause) {
	s.hard = append(s.hard, c)
}

// AddSoftClause implements engine.MaxSATSolver.
func (s *Solver) AddSoftClause(c cnf.Clause, weight int) {
	s.soft = append(s.soft, engine.SoftClause{Clause: c, Weight: weight})
}

// Reset implements engine.MaxSATSolver.
func (s *Solver) Reset() {
	s.hard = nil
	s.soft = nil
}

func clauseLit(c *logic.C, cl cnf.Clause, lits map[cnf.Variable]z.Lit) z.Lit {
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

// Solve implements engine.MaxSATSolver: it compiles the hard clauses
// into a single gate that must hold, builds one violation literal per
// soft clause, repeats each violation literal weight-many times to turn
// integer weights into unit counts a cardinality sorting network can
// bound, then linear-searches upward over that bound for the minimum
// total violated weight that still admits a solution.
func (s *Solver) Solve(ctx context.Context) (map[cnf.Variable]bool, error) {
	c := logic.NewC()

	vars := make(map[cnf.Variable]bool)
	for _, cl := range s.hard {
		for _, l := range cl {
			vars[l.Var()] = true
		}
	}
	for _, sc := range s.soft {
		for _, l := range sc.Clause {
			vars[l.Var()] = true
		}
	}

	lits := make(map[cnf.Variable]z.Lit, len(vars))
	for v := range vars {
		lits[v] = c.Lit()
	}

	hardGates := make([]z.Lit, len(s.hard))
	for i, cl := range s.hard {
		hardGates[i] = clauseLit(c, cl, lits)
	}
	hardGate := c.Ands(hardGates...)

	var weights []z.Lit
	for _, sc := range s.soft {
		violated := clauseLit(c, sc.Clause, lits).Not()
		for w := 0; w < sc.Weight; w++ {
			weights = append(weights, violated)
		}
	}
	cards := c.CardSort(weights)

	g := gini.New()
	c.ToCnf(g)

	result := unsatisfiable
	linearSearch(0, cards.N(), func(bound int) bool {
		g.Assume(hardGate)
		if bound >= 0 {
			g.Assume(cards.Leq(bound))
		}
		result = waitForSolution(ctx, g.GoSolve())
		return result == satisfiable
	})

	if result != satisfiable {
		return nil, fmt.Errorf("maxsat: no assignment satisfies the hard clauses")
	}

	out := make(map[cnf.Variable]bool, len(lits))
	for v, l := range lits {
		out[v] = g.Value(l)
	}
	return out, nil
}

func linearSearch(min, max int, f func(int) bool) {
	for x := min; x <= max; x++ {
		if f(x) {
			return
		}
	}
	f(-1)
}

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

package engine

import (
	"context"
	"io"

	"github.com/operator-framework/basissynth/pkg/cnf"
)

// SATSolver is the incremental SAT collaborator (spec.md §6): add-clause,
// solve-under-assumptions, get-model, get-unsat-core. The Sampler
// implementation consumes it; the Verifier and Repairer compile their own
// circuit-local solvers and do not use it. Implementations are expected to be reused
// across calls via Reset rather than reconstructed, though the engine
// never relies on incrementality for correctness (spec.md §5).
type SATSolver interface {
	// AddClause teaches the solver a new hard clause.
	AddClause(c cnf.Clause)
	// Solve attempts to satisfy all added clauses under the given
	// assumption literals. It reports satisfiability, or an error if
	// ctx expires first.
	Solve(ctx context.Context, assumptions ...cnf.Literal) (sat bool, err error)
	// Value returns the truth value assigned to v by the most recent
	// satisfiable Solve call.
	Value(v cnf.Variable) bool
	// UnsatCore returns the subset of the most recent Solve call's
	// assumption literals that is sufficient to explain
	// unsatisfiability. Only meaningful after an unsatisfiable Solve.
	UnsatCore() []cnf.Literal
	// Reset discards all learned clauses and assumptions, returning the
	// solver to a fresh state while keeping its variable numbering.
	Reset()
}

// SoftClause is one weighted clause for the MaxSATSolver: satisfy it if
// the optimum allows, but don't require it.
type SoftClause struct {
	Clause cnf.Clause
	Weight int
}

// MaxSATSolver is the partial-weighted-MaxSAT collaborator required by
// the Diagnoser (spec.md §4.7, §6): hard clauses must hold, soft clauses
// are maximized by total weight.
type MaxSATSolver interface {
	AddHardClause(c cnf.Clause)
	AddSoftClause(c cnf.Clause, weight int)
	// Solve returns a total assignment over every variable mentioned by
	// the hard and soft clauses that satisfies all hard clauses and
	// maximizes the weight of satisfied soft clauses.
	Solve(ctx context.Context) (assignment map[cnf.Variable]bool, err error)
	Reset()
}

// Sampler produces up to n total satisfying assignments of spec. Fewer
// than n may be returned if spec admits fewer models (spec.md §4.2).
type Sampler interface {
	Sample(ctx context.Context, spec *cnf.Spec, n int, seed int64) ([]cnf.Sample, error)
}

// TreeLearner fits a multi-class decision tree over labeled feature rows
// (spec.md §4.4, §6).
type TreeLearner interface {
	Fit(rows []cnf.LabeledRow, seed int64) (*DecisionTree, error)
}

// DecisionTree is a rooted binary tree with internal nodes tagged by a
// feature variable (left = feature false, right = feature true) and
// leaves tagged with a Label.
type DecisionTree struct {
	Feature  cnf.Variable
	IsLeaf   bool
	Label    cnf.Label
	Left     *DecisionTree
	Right    *DecisionTree
}

// Paths performs a pre-order traversal, invoking visit at every leaf with
// the cube of literals collected along the root-to-leaf path (spec.md
// §4.4: right edge = positive literal, left edge = negative).
func (t *DecisionTree) Paths(visit func(path cnf.Cube, label cnf.Label)) {
	if t == nil {
		return
	}
	t.walk(nil, visit)
}

func (t *DecisionTree) walk(path cnf.Cube, visit func(cnf.Cube, cnf.Label)) {
	if t.IsLeaf {
		cp := append(cnf.Cube{}, path...)
		visit(cp, t.Label)
		return
	}
	t.Left.walk(append(path, cnf.Lit(t.Feature, false)), visit)
	t.Right.walk(append(path, cnf.Lit(t.Feature, true)), visit)
}

// CircuitEmitter serializes a synthesized circuit to a structural
// description (spec.md §6).
type CircuitEmitter interface {
	Emit(w io.Writer, circuit *Circuit) error
}

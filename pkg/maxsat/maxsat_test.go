package maxsat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/basissynth/pkg/cnf"
)

func TestSolveSatisfiesAllSoftClausesWhenPossible(t *testing.T) {
	s := New()
	s.AddHardClause(cnf.Clause{cnf.Lit(1, true), cnf.Lit(2, true)})
	s.AddSoftClause(cnf.Clause{cnf.Lit(1, true)}, 1)
	s.AddSoftClause(cnf.Clause{cnf.Lit(2, true)}, 1)

	assignment, err := s.Solve(context.Background())
	require.NoError(t, err)
	// Both soft clauses can hold simultaneously (1=true, 2=true also
	// satisfies the hard clause), so the optimum violates neither.
	assert.True(t, assignment[1])
	assert.True(t, assignment[2])
}

func TestSolveDropsTheLighterSoftClauseUnderConflict(t *testing.T) {
	s := New()
	// Hard clause forces exactly one of 1,2 to be false via direct conflict.
	s.AddHardClause(cnf.Clause{cnf.Lit(1, false), cnf.Lit(2, false)})
	s.AddSoftClause(cnf.Clause{cnf.Lit(1, true)}, 5)
	s.AddSoftClause(cnf.Clause{cnf.Lit(2, true)}, 1)

	assignment, err := s.Solve(context.Background())
	require.NoError(t, err)
	// Satisfying both 1=true and 2=true violates the hard clause, so the
	// optimum keeps the heavier soft clause (1=true) and drops the
	// lighter one (2=false).
	assert.True(t, assignment[1])
	assert.False(t, assignment[2])
}

func TestSolveErrorsWhenHardClausesAreUnsatisfiable(t *testing.T) {
	s := New()
	s.AddHardClause(cnf.Clause{cnf.Lit(1, true)})
	s.AddHardClause(cnf.Clause{cnf.Lit(1, false)})

	_, err := s.Solve(context.Background())
	require.Error(t, err)
}

func TestResetClearsAccumulatedClauses(t *testing.T) {
	s := New()
	s.AddHardClause(cnf.Clause{cnf.Lit(1, true)})
	s.AddHardClause(cnf.Clause{cnf.Lit(1, false)})

	s.Reset()
	s.AddHardClause(cnf.Clause{cnf.Lit(2, true)})

	assignment, err := s.Solve(context.Background())
	require.NoError(t, err)
	assert.True(t, assignment[2])
}

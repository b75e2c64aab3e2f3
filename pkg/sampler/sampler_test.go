package sampler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/basissynth/pkg/cnf"
	"github.com/operator-framework/basissynth/pkg/satsolver"
)

func TestSampleReturnsDistinctSatisfyingAssignments(t *testing.T) {
	// X={1,2}, Y={3}, F = (1 ∨ 2) ∧ (y3 <-> 1): three satisfying
	// assignments exist (1=T,2=T; 1=T,2=F; 1=F,2=T), each forcing y3=1's
	// value to match x1.
	spec := cnf.NewSpec([]cnf.Clause{
		{cnf.Lit(1, true), cnf.Lit(2, true)},
		{cnf.Lit(1, false), cnf.Lit(3, true)},
		{cnf.Lit(1, true), cnf.Lit(3, false)},
	}, []cnf.Variable{1, 2}, []cnf.Variable{3})

	s := New(satsolver.New())
	samples, err := s.Sample(context.Background(), spec, 3, 7)
	require.NoError(t, err)
	assert.Len(t, samples, 3)

	seen := make(map[string]bool)
	for _, sample := range samples {
		assert.True(t, spec.Satisfied(sample))
		key := ""
		for _, v := range []cnf.Variable{1, 2, 3} {
			if sample[v] {
				key += "1"
			} else {
				key += "0"
			}
		}
		assert.False(t, seen[key], "sample %v repeated", sample)
		seen[key] = true
	}
}

func TestSampleStopsEarlyWhenModelSpaceIsExhausted(t *testing.T) {
	// Exactly one satisfying assignment exists: x1 must be true.
	spec := cnf.NewSpec([]cnf.Clause{
		{cnf.Lit(1, true)},
	}, []cnf.Variable{1}, nil)

	s := New(satsolver.New())
	samples, err := s.Sample(context.Background(), spec, 10, 1)
	require.NoError(t, err)
	assert.Len(t, samples, 1)
	assert.True(t, samples[0][1])
}

func TestSampleReturnsEmptyForUnsatisfiableSpec(t *testing.T) {
	spec := cnf.NewSpec([]cnf.Clause{
		{cnf.Lit(1, true)},
		{cnf.Lit(1, false)},
	}, []cnf.Variable{1}, nil)

	s := New(satsolver.New())
	samples, err := s.Sample(context.Background(), spec, 5, 1)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

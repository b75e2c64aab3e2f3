package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/operator-framework/basissynth/pkg/cnf"
)

func TestAnalyzeDependenciesFourVariableExample(t *testing.T) {
	// X={x2,x3}, Y={y1,y4}, F=(¬y1∨x2)∧(¬y1∨x3)∧(y1∨x2∨x3)∧y4
	spec := cnf.NewSpec([]cnf.Clause{
		{cnf.Lit(1, false), cnf.Lit(2, true)},
		{cnf.Lit(1, false), cnf.Lit(3, true)},
		{cnf.Lit(1, true), cnf.Lit(2, true), cnf.Lit(3, true)},
		{cnf.Lit(4, true)},
	}, []cnf.Variable{2, 3}, []cnf.Variable{1, 4})

	order := AnalyzeDependencies(spec)

	// y4 never co-occurs with y1 in any clause, so both orderings of the
	// two outputs are valid topologically - but the tie-break on minimum
	// degree (both have degree 0) falls back to id order, giving y1 first.
	assert.Equal(t, []cnf.Variable{1, 4}, order.Sequence())
	assert.Equal(t, 0, order.Rank(1))
	assert.Equal(t, 1, order.Rank(4))
	assert.Equal(t, -1, order.Rank(99))
}

func TestAnalyzeDependenciesOrdersByMinDegree(t *testing.T) {
	// y1 and y2 co-occur (degree 1 each initially); y3 is isolated
	// (degree 0), so it should be peeled off first.
	spec := cnf.NewSpec([]cnf.Clause{
		{cnf.Lit(1, true), cnf.Lit(2, true)},
		{cnf.Lit(3, true)},
	}, nil, []cnf.Variable{1, 2, 3})

	order := AnalyzeDependencies(spec)

	assert.Equal(t, cnf.Variable(3), order.Sequence()[0])
}

func TestAllowedFeaturesIncludesXAndLowerRankedY(t *testing.T) {
	spec := cnf.NewSpec([]cnf.Clause{
		{cnf.Lit(1, true), cnf.Lit(2, true)},
	}, []cnf.Variable{10}, []cnf.Variable{1, 2})

	order := AnalyzeDependencies(spec)
	lowest := order.Sequence()[0]
	highest := order.Sequence()[1]

	features := order.AllowedFeatures(spec, highest)
	assert.Contains(t, features, cnf.Variable(10))
	assert.Contains(t, features, lowest)
	assert.NotContains(t, features, highest)
}

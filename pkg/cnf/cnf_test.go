package cnf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralPolarity(t *testing.T) {
	pos := Lit(3, true)
	neg := Lit(3, false)

	assert.Equal(t, Variable(3), pos.Var())
	assert.True(t, pos.Positive())
	assert.Equal(t, Variable(3), neg.Var())
	assert.False(t, neg.Positive())
	assert.Equal(t, neg, pos.Negate())
	assert.Equal(t, "x3", pos.String())
	assert.Equal(t, "-x3", neg.String())
}

func TestClauseSatisfied(t *testing.T) {
	cl := Clause{Lit(1, false), Lit(2, true)}

	assert.True(t, cl.Satisfied(map[Variable]bool{1: false}))
	assert.True(t, cl.Satisfied(map[Variable]bool{2: true}))
	assert.False(t, cl.Satisfied(map[Variable]bool{1: true, 2: false}))
	// Variables absent from the assignment are skipped: they cannot satisfy
	// a literal, so a clause none of whose variables is assigned is not
	// satisfied.
	assert.False(t, cl.Satisfied(map[Variable]bool{3: true}))
}

func TestNewCubeDedupeAndContradiction(t *testing.T) {
	cube, ok := NewCube(Lit(1, true), Lit(2, false), Lit(1, true))
	require.True(t, ok)
	assert.Len(t, cube, 2)

	_, ok = NewCube(Lit(1, true), Lit(1, false))
	assert.False(t, ok)
}

func TestCubeSatisfied(t *testing.T) {
	cube, ok := NewCube(Lit(1, true), Lit(2, false))
	require.True(t, ok)

	assert.True(t, cube.Satisfied(map[Variable]bool{1: true, 2: false}))
	assert.False(t, cube.Satisfied(map[Variable]bool{1: true, 2: true}))
	// A variable missing from the assignment is unconstrained, so it
	// cannot satisfy a literal that references it.
	assert.False(t, cube.Satisfied(map[Variable]bool{1: true}))
}

func TestCubeSubsumes(t *testing.T) {
	general, _ := NewCube(Lit(1, true))
	specific, _ := NewCube(Lit(1, true), Lit(2, false))

	assert.True(t, general.Subsumes(specific))
	assert.False(t, specific.Subsumes(general))
}

func TestDNFEvaluate(t *testing.T) {
	c1, _ := NewCube(Lit(1, true))
	c2, _ := NewCube(Lit(2, true))
	d := DNF{c1, c2}

	assert.True(t, d.Evaluate(map[Variable]bool{1: true, 2: false}))
	assert.True(t, d.Evaluate(map[Variable]bool{1: false, 2: true}))
	assert.False(t, d.Evaluate(map[Variable]bool{1: false, 2: false}))

	// An empty DNF is the constant false.
	assert.False(t, DNF{}.Evaluate(map[Variable]bool{}))
}

func TestCNFEvaluate(t *testing.T) {
	c := CNF{
		Clause{Lit(1, true), Lit(2, true)},
		Clause{Lit(1, false)},
	}

	assert.True(t, c.Evaluate(map[Variable]bool{1: false, 2: true}))
	assert.False(t, c.Evaluate(map[Variable]bool{1: true, 2: false}))

	// An empty CNF is the constant true.
	assert.True(t, CNF{}.Evaluate(map[Variable]bool{}))
}

func TestDNFOrAndCNFAndAreImmutable(t *testing.T) {
	c1, _ := NewCube(Lit(1, true))
	base := DNF{c1}
	c2, _ := NewCube(Lit(2, true))
	extended := base.Or(c2)

	assert.Len(t, base, 1)
	assert.Len(t, extended, 2)

	baseCNF := CNF{}
	extendedCNF := baseCNF.And(Clause{Lit(1, true)})

	assert.Len(t, baseCNF, 0)
	assert.Len(t, extendedCNF, 1)
}

func TestNewSpecDefaultsUnlistedVariablesToUniversal(t *testing.T) {
	clauses := []Clause{
		{Lit(1, true), Lit(2, true), Lit(3, false)},
	}
	spec := NewSpec(clauses, []Variable{1}, []Variable{2})

	assert.Equal(t, Universal, spec.Kind(1))
	assert.Equal(t, Existential, spec.Kind(2))
	assert.Equal(t, Universal, spec.Kind(3))
	// Variable 3 was not declared but appears in a clause, so it should
	// have been appended to X.
	assert.Contains(t, spec.X(), Variable(3))
	assert.Equal(t, []Variable{2}, spec.Y())
}

func TestSpecSatisfied(t *testing.T) {
	spec := NewSpec([]Clause{
		{Lit(1, false), Lit(2, true)},
	}, []Variable{1}, []Variable{2})

	assert.True(t, spec.Satisfied(map[Variable]bool{1: false, 2: false}))
	assert.False(t, spec.Satisfied(map[Variable]bool{1: true, 2: false}))
}

func TestSampleClone(t *testing.T) {
	s := Sample{1: true, 2: false}
	clone := s.Clone()
	clone[1] = false

	assert.True(t, s[1])
	assert.False(t, clone[1])
}

func TestLabelString(t *testing.T) {
	assert.Equal(t, "MUST0", MustBeZero.String())
	assert.Equal(t, "MUST1", MustBeOne.String())
	assert.Equal(t, "DONTCARE", DontCare.String())
}

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/basissynth/pkg/cnf"
)

// scriptedVerifier returns unsat=false (with a counterexample) for the
// first unsatAfter calls, then unsat=true, modeling a CEGAR run that converges
// after a fixed number of repair rounds.
type scriptedVerifier struct {
	unsatAfter int
	calls      int
	cex        *Counterexample
}

func (v *scriptedVerifier) CheckUnsat(ctx context.Context, spec *cnf.Spec, order *Order, basis *BasisStore) (bool, *Counterexample, error) {
	v.calls++
	if v.calls > v.unsatAfter {
		return true, nil, nil
	}
	return false, v.cex, nil
}

func TestEngineRunConvergesToDone(t *testing.T) {
	spec := fourVarSpec()
	order := AnalyzeDependencies(spec)
	seq := order.Sequence()
	cex := &Counterexample{
		X:    cnf.Sample{2: true, 3: false},
		G:    cnf.Sample{seq[0]: false, seq[1]: false},
		YSyn: cnf.Sample{seq[0]: true, seq[1]: true},
	}
	verifier := &scriptedVerifier{unsatAfter: 2, cex: cex}
	oracle := &fakeOracle{beta: cnf.Cube{}}
	maxsat := &fakeMaxSAT{fix: map[cnf.Variable]bool{seq[0]: false, seq[1]: true}}
	sampler := stubSampler{samples: []cnf.Sample{{2: true, 3: true, seq[0]: true, seq[1]: true}}}

	e, err := New(verifier, oracle,
		WithMaxSATSolver(maxsat),
		WithSampler(sampler),
		WithLearner(stubLearner{}),
	)
	require.NoError(t, err)

	result, err := e.Run(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, result.Status)
	assert.Equal(t, 2, result.Iterations)
	assert.NotNil(t, result.Order)
}

func TestEngineRunReturnsNonConvergenceAfterIterationCap(t *testing.T) {
	spec := fourVarSpec()
	order := AnalyzeDependencies(spec)
	seq := order.Sequence()
	cex := &Counterexample{
		X:    cnf.Sample{2: true, 3: false},
		G:    cnf.Sample{seq[0]: false, seq[1]: false},
		YSyn: cnf.Sample{seq[0]: true, seq[1]: true},
	}
	verifier := &scriptedVerifier{unsatAfter: 1000, cex: cex}
	oracle := &fakeOracle{beta: cnf.Cube{}}
	maxsat := &fakeMaxSAT{fix: map[cnf.Variable]bool{seq[0]: false, seq[1]: true}}
	sampler := stubSampler{samples: []cnf.Sample{{2: true, 3: true, seq[0]: true, seq[1]: true}}}

	e, err := New(verifier, oracle,
		WithMaxSATSolver(maxsat),
		WithSampler(sampler),
		WithLearner(stubLearner{}),
		WithConfig(Config{IterationCap: 3, SampleCount: 1, RepairThreshold: 100}),
	)
	require.NoError(t, err)

	result, err := e.Run(context.Background(), spec)
	require.Error(t, err)
	assert.Equal(t, StatusAbort, result.Status)
	var nc *NonConvergenceError
	require.ErrorAs(t, err, &nc)
}

func TestNewRequiresCollaborators(t *testing.T) {
	verifier := &scriptedVerifier{}
	oracle := &fakeOracle{}

	_, err := New(verifier, oracle)
	require.Error(t, err)
	var iv *InvariantViolationError
	require.ErrorAs(t, err, &iv)
}

func TestBuildCircuitSnapshotsBasis(t *testing.T) {
	spec := fourVarSpec()
	order := AnalyzeDependencies(spec)
	basis := NewBasisStore(order.Sequence())
	cube, _ := cnf.NewCube(cnf.Lit(2, true))
	basis.Entry(order.Sequence()[0]).ExpandA(cube)

	circuit := BuildCircuit(order, basis)

	assert.Equal(t, order.Sequence(), circuit.Order)
	out := circuit.Outputs[order.Sequence()[0]]
	assert.Len(t, out.ADNF, 1)
	assert.False(t, out.Frozen)
}

// TestBuildCircuitUsesCofactorFallbackForFrozenEntry guards against a
// frozen entry's stale pre-freeze ADNF/ACNF/CDNF/CCNF leaking into the
// emitted circuit: once frozen, BuildCircuit must carry the cofactor
// fallback instead and leave the structural DNF/CNF fields empty.
func TestBuildCircuitUsesCofactorFallbackForFrozenEntry(t *testing.T) {
	spec := fourVarSpec()
	order := AnalyzeDependencies(spec)
	basis := NewBasisStore(order.Sequence())
	y := order.Sequence()[0]
	entry := basis.Entry(y)
	cube, _ := cnf.NewCube(cnf.Lit(2, true))
	entry.ExpandA(cube)
	entry.Freeze(spec)

	circuit := BuildCircuit(order, basis)

	out := circuit.Outputs[y]
	assert.True(t, out.Frozen)
	assert.Empty(t, out.ADNF)
	assert.Empty(t, out.ACNF)
	assert.Empty(t, out.CDNF)
	assert.Empty(t, out.CCNF)
	fAtYTrue, fAtYFalse, ok := entry.SemanticFallback()
	require.True(t, ok)
	assert.Equal(t, fAtYTrue, out.FAtYTrue)
	assert.Equal(t, fAtYFalse, out.FAtYFalse)
}

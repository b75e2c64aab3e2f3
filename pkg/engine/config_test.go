package engine

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigMatchesDocumentedDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 50, cfg.RepairThreshold)
	assert.Equal(t, 1000, cfg.IterationCap)
}

func TestWithLoggerAndWithTracerOverrideDefaults(t *testing.T) {
	verifier := &scriptedVerifier{}
	oracle := &fakeOracle{}
	custom := logrus.New()
	tracer := &recordingTracer{}

	e, err := New(verifier, oracle,
		WithMaxSATSolver(&fakeMaxSAT{}),
		WithSampler(stubSampler{}),
		WithLearner(stubLearner{}),
		WithLogger(custom),
		WithTracer(tracer),
	)
	require.NoError(t, err)
	assert.Same(t, custom, e.log)
	assert.Same(t, tracer, e.tracer)
}

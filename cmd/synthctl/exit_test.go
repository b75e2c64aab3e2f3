package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/operator-framework/basissynth/pkg/engine"
	"github.com/operator-framework/basissynth/pkg/qdimacs"
)

func TestExitCodeForMapsKnownErrorTypes(t *testing.T) {
	assert.Equal(t, exitOK, exitCodeFor(nil))
	assert.Equal(t, exitDegenerateSpec, exitCodeFor(&engine.DegenerateSpecError{}))
	assert.Equal(t, exitNonConvergence, exitCodeFor(&engine.NonConvergenceError{Iterations: 10}))
	assert.Equal(t, exitSolverFailure, exitCodeFor(&engine.SolverFailureError{Stage: "verify", Err: errors.New("timeout")}))
	assert.Equal(t, exitMalformedInput, exitCodeFor(&qdimacs.ParseError{Line: 1, Msg: "bad"}))
	assert.Equal(t, exitMalformedInput, exitCodeFor(&engine.MalformedInputError{Line: 1, Msg: "bad"}))
	assert.Equal(t, exitInternalFailure, exitCodeFor(errors.New("something else")))
}

func TestExitCodeForUnwrapsWrappedErrors(t *testing.T) {
	// SolverFailureError.Unwrap exposes its cause, so errors.As should
	// reach through it to the wrapped DegenerateSpecError rather than
	// stopping at the generic solver-failure code.
	wrapped := &engine.SolverFailureError{Stage: "verify", Err: &engine.DegenerateSpecError{}}
	assert.Equal(t, exitDegenerateSpec, exitCodeFor(wrapped))

	// A solver failure with no more specific cause in its chain gets its
	// own code rather than falling through to the generic fallback.
	plain := &engine.SolverFailureError{Stage: "verify", Err: errors.New("timeout")}
	assert.Equal(t, exitSolverFailure, exitCodeFor(plain))
}

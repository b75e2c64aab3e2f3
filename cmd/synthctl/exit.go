package main

import (
	"errors"

	"github.com/operator-framework/basissynth/pkg/engine"
	"github.com/operator-framework/basissynth/pkg/qdimacs"
)

// Exit codes mirror spec.md §6's CLI contract: 0 on success, and a
// distinct non-zero code per failure category so scripts can
// distinguish "the spec admits no realization" from "the run didn't
// converge" from "a solver call failed or timed out" from "fix your
// input".
const (
	exitOK             = 0
	exitDegenerateSpec = 1
	exitNonConvergence = 2
	exitSolverFailure  = 3
	exitMalformedInput = 4
	// exitInternalFailure has no code of its own in spec.md §6's 0-4
	// range; an error this package can't classify is treated the same
	// as malformed input, since both mean "this run isn't trustworthy
	// as given".
	exitInternalFailure = exitMalformedInput
)

func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	var parseErr *qdimacs.ParseError
	var malformed *engine.MalformedInputError
	var degenerate *engine.DegenerateSpecError
	var nonConv *engine.NonConvergenceError
	var solverFailure *engine.SolverFailureError
	switch {
	case errors.As(err, &degenerate):
		return exitDegenerateSpec
	case errors.As(err, &nonConv):
		return exitNonConvergence
	case errors.As(err, &solverFailure):
		return exitSolverFailure
	case errors.As(err, &parseErr), errors.As(err, &malformed):
		return exitMalformedInput
	default:
		return exitInternalFailure
	}
}

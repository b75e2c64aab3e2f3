package engine

import "fmt"

// MalformedInputError reports a QDIMACS parse failure (spec.md §7.1).
// The engine itself never parses input; this type exists so callers that
// plug in a loader can report failures that cmd/synthctl maps to the
// malformed-input exit code.
type MalformedInputError struct {
	Line int
	Msg  string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input at line %d: %s", e.Line, e.Msg)
}

// DegenerateSpecError reports that F is unsatisfiable (spec.md §7.2).
type DegenerateSpecError struct{}

func (e *DegenerateSpecError) Error() string {
	return "specification is unsatisfiable"
}

// SolverFailureError wraps a fatal SAT/MaxSAT collaborator failure:
// timeout, resource exhaustion, or incremental-state corruption
// (spec.md §7.4).
type SolverFailureError struct {
	Stage string
	Err   error
}

func (e *SolverFailureError) Error() string {
	return fmt.Sprintf("solver failure during %s: %v", e.Stage, e.Err)
}

func (e *SolverFailureError) Unwrap() error { return e.Err }

// InvariantViolationError reports a fatal invariant breach: the three
// spec.md §7.5 names explicitly, a contradictory repair core, or an
// Engine built without a required collaborator.
type InvariantViolationError struct {
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Reason)
}

// NonConvergenceError reports that the iteration cap was reached without
// the Verifier returning UNSAT (spec.md §7.6). The partial basis and the
// last counterexample are carried on the Result, not on the error.
type NonConvergenceError struct {
	Iterations int
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("did not converge within %d iterations", e.Iterations)
}

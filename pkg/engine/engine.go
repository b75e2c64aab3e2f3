package engine

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/operator-framework/basissynth/pkg/cnf"
)

// Engine is the Loop Controller (spec.md §5): it owns the Config, the
// external collaborators, and drives the CEGAR state machine
// LEARN -> VERIFY -> {DONE | DIAGNOSE -> REPAIR -> VERIFY ...}. It is
// built once per synthesis run via New and is not safe for concurrent
// Run calls, mirroring the teacher's solver.Solver lifecycle.
type Engine struct {
	cfg Config
	log logrus.FieldLogger

	maxsat  MaxSATSolver
	sampler Sampler
	learner TreeLearner
	tracer  Tracer

	verifier VerificationCircuit
	oracle   RepairOracle
}

// New builds an Engine from options. A caller must supply verifier and
// oracle collaborators (there is no meaningful stdlib default for
// Tseitin circuit compilation); sampler, learner and maxsat are likewise
// required since the engine has no built-in fallback for them. The SAT
// collaborator (engine.SATSolver) has no direct Engine field: it is
// consumed by the Sampler implementation itself (pkg/sampler), which
// owns its own solver instance the way the Verifier and Repairer own
// their own circuit-local one. Logger and tracer default to discarding
// output.
func New(verifier VerificationCircuit, oracle RepairOracle, options ...Option) (*Engine, error) {
	e := &Engine{
		cfg:      DefaultConfig(),
		log:      logrus.New(),
		tracer:   NilTracer{},
		verifier: verifier,
		oracle:   oracle,
	}
	e.log.(*logrus.Logger).SetOutput(io.Discard)

	for _, opt := range options {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if e.maxsat == nil {
		return nil, &InvariantViolationError{Reason: "engine requires a MaxSATSolver collaborator"}
	}
	if e.sampler == nil {
		return nil, &InvariantViolationError{Reason: "engine requires a Sampler collaborator"}
	}
	if e.learner == nil {
		return nil, &InvariantViolationError{Reason: "engine requires a TreeLearner collaborator"}
	}
	return e, nil
}

// Run synthesizes a Skolem basis for spec, implementing the full pipeline
// described in spec.md §2: analyze dependencies, build the initial
// basis, then iterate Verify/Diagnose/Repair until the Verifier reports
// UNSAT or the iteration cap is reached. Parsing spec's QDIMACS source,
// if any, is the caller's concern (pkg/qdimacs).
func (e *Engine) Run(ctx context.Context, spec *cnf.Spec) (*Result, error) {
	order := AnalyzeDependencies(spec)

	basis, _, err := BuildInitialBasis(ctx, spec, order, e.sampler, e.learner, e.cfg.SampleCount, e.cfg.Seed)
	if err != nil {
		return &Result{Status: StatusAbort, Order: order, Err: err}, err
	}

	var lastCex *Counterexample
	for iteration := 0; iteration < e.cfg.IterationCap; iteration++ {
		solveCtx := ctx
		var cancel context.CancelFunc
		if e.cfg.SolverTimeout > 0 {
			solveCtx, cancel = context.WithTimeout(ctx, e.cfg.SolverTimeout)
		}
		unsat, cex, err := e.verifier.CheckUnsat(solveCtx, spec, order, basis)
		if cancel != nil {
			cancel()
		}
		if err != nil {
			e.tracer.TraceVerify(iteration, false)
			return &Result{Status: StatusAbort, Basis: basis, Order: order, LastCounterexample: lastCex, Iterations: iteration, Err: err}, err
		}
		e.tracer.TraceVerify(iteration, !unsat)

		if unsat {
			return &Result{Status: StatusDone, Basis: basis, Order: order, Iterations: iteration}, nil
		}

		lastCex = cex
		fix, diagnoses, err := Diagnose(ctx, e.maxsat, spec, order, basis, cex)
		if err != nil {
			return &Result{Status: StatusAbort, Basis: basis, Order: order, LastCounterexample: cex, Iterations: iteration, Err: err}, err
		}
		e.tracer.TraceDiagnosis(iteration, diagnoses)

		if err := Repair(ctx, e.oracle, spec, order, basis, cex, fix, diagnoses, e.cfg.RepairThreshold, e.tracer, iteration); err != nil {
			return &Result{Status: StatusAbort, Basis: basis, Order: order, LastCounterexample: cex, Iterations: iteration, Err: err}, err
		}
	}

	err = &NonConvergenceError{Iterations: e.cfg.IterationCap}
	return &Result{Status: StatusAbort, Basis: basis, Order: order, LastCounterexample: lastCex, Iterations: e.cfg.IterationCap, Err: err}, err
}

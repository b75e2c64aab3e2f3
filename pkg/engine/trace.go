package engine

import (
	"fmt"
	"io"

	"github.com/operator-framework/basissynth/pkg/cnf"
)

// DiagnosisAction names one of the four repair actions the Diagnoser's
// table (spec.md §4.7) can select for an output index.
type DiagnosisAction int

const (
	ShrinkA DiagnosisAction = iota
	ExpandA
	ShrinkC
	ExpandC
)

func (a DiagnosisAction) String() string {
	switch a {
	case ShrinkA:
		return "shrink A"
	case ExpandA:
		return "expand A"
	case ShrinkC:
		return "shrink C"
	case ExpandC:
		return "expand C"
	default:
		return "unknown action"
	}
}

// Diagnosis is one classified index from the Diagnoser's MaxSAT pass.
type Diagnosis struct {
	Y      cnf.Variable
	Action DiagnosisAction
}

// RepairEvent records what the Repairer did for one diagnosed index, for
// tracing (spec.md §9: "the SAT/MaxSAT/sampler/learner collaborators ...
// realize them as interface abstractions"; the Tracer follows the same
// shape, grounded on the teacher's solver.Tracer/solver.LoggingTracer).
type RepairEvent struct {
	Iteration int
	Diagnosis Diagnosis
	Beta      cnf.Cube
}

// Tracer observes the CEGAR loop without influencing it. The default,
// NilTracer, discards every event.
type Tracer interface {
	TraceVerify(iteration int, sat bool)
	TraceDiagnosis(iteration int, diagnoses []Diagnosis)
	TraceRepair(event RepairEvent)
	TraceFallback(iteration int, y cnf.Variable)
}

// NilTracer discards all trace events, matching the teacher's
// solver.DefaultTracer.
type NilTracer struct{}

func (NilTracer) TraceVerify(int, bool)           {}
func (NilTracer) TraceDiagnosis(int, []Diagnosis) {}
func (NilTracer) TraceRepair(RepairEvent)         {}
func (NilTracer) TraceFallback(int, cnf.Variable) {}

// LoggingTracer writes a human-readable trace to Writer, matching the
// teacher's solver.LoggingTracer.
type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) TraceVerify(iteration int, sat bool) {
	outcome := "UNSAT"
	if sat {
		outcome = "SAT (counterexample found)"
	}
	fmt.Fprintf(t.Writer, "iteration %d: verify -> %s\n", iteration, outcome)
}

func (t LoggingTracer) TraceDiagnosis(iteration int, diagnoses []Diagnosis) {
	for _, d := range diagnoses {
		fmt.Fprintf(t.Writer, "iteration %d: diagnose y%d -> %s\n", iteration, d.Y, d.Action)
	}
}

func (t LoggingTracer) TraceRepair(event RepairEvent) {
	fmt.Fprintf(t.Writer, "iteration %d: repair y%d (%s) with β=%s\n",
		event.Iteration, event.Diagnosis.Y, event.Diagnosis.Action, event.Beta)
}

func (t LoggingTracer) TraceFallback(iteration int, y cnf.Variable) {
	fmt.Fprintf(t.Writer, "iteration %d: y%d exceeded repair threshold, switching to semantic fallback\n", iteration, y)
}

// MultiTracer fans every event out to each of its members, letting a
// caller combine the LoggingTracer with a metrics-backed Tracer.
type MultiTracer []Tracer

func (m MultiTracer) TraceVerify(iteration int, sat bool) {
	for _, t := range m {
		t.TraceVerify(iteration, sat)
	}
}

func (m MultiTracer) TraceDiagnosis(iteration int, diagnoses []Diagnosis) {
	for _, t := range m {
		t.TraceDiagnosis(iteration, diagnoses)
	}
}

func (m MultiTracer) TraceRepair(event RepairEvent) {
	for _, t := range m {
		t.TraceRepair(event)
	}
}

func (m MultiTracer) TraceFallback(iteration int, y cnf.Variable) {
	for _, t := range m {
		t.TraceFallback(iteration, y)
	}
}

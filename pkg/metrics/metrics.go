// Package metrics exposes Prometheus instrumentation for the synthesis
// engine, grounded on the teacher's pkg/metrics package: package-level
// vectors, small Emit-style functions, and a Register entry point the
// binary calls once at startup rather than relying on package init to
// reach into the default registry unconditionally.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/operator-framework/basissynth/pkg/cnf"
	"github.com/operator-framework/basissynth/pkg/engine"
)

var (
	loopIterations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "basissynth_loop_iterations_total",
		Help: "Total number of Verify/Diagnose/Repair iterations executed across all runs.",
	})

	repairsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "basissynth_repairs_total",
		Help: "Total number of basis repairs applied, by action.",
	}, []string{"action"})

	fallbackCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "basissynth_fallback_total",
		Help: "Total number of outputs that exceeded the repair threshold and switched to the semantic fallback.",
	})

	verifierCallsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "basissynth_verifier_calls_total",
		Help: "Total number of error-formula SAT calls issued by the Verifier.",
	})
)

// Register adds this package's collectors to reg. Call it once at
// startup; it is not called from an init function so a caller that never
// wants metrics never pays for registration.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{loopIterations, repairsTotal, fallbackCount, verifierCallsTotal} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// IncLoopIteration records one Verify/Diagnose/Repair iteration.
func IncLoopIteration() {
	loopIterations.Inc()
}

// IncRepair records one repair of the given action (spec.md §4.7's
// DiagnosisAction names: shrink A, expand A, shrink C, expand C).
func IncRepair(action string) {
	repairsTotal.WithLabelValues(action).Inc()
}

// IncFallback records one output switching to the semantic fallback.
func IncFallback() {
	fallbackCount.Inc()
}

// IncVerifierCall records one error-formula SAT call.
func IncVerifierCall() {
	verifierCallsTotal.Inc()
}

// Tracer adapts this package's counters into an engine.Tracer, so the
// Loop Controller can be wired for metrics without importing Prometheus
// itself.
type Tracer struct{}

func (Tracer) TraceVerify(iteration int, sat bool) {
	IncLoopIteration()
	IncVerifierCall()
}

func (Tracer) TraceDiagnosis(iteration int, diagnoses []engine.Diagnosis) {}

func (Tracer) TraceRepair(event engine.RepairEvent) {
	IncRepair(event.Diagnosis.Action.String())
}

func (Tracer) TraceFallback(iteration int, y cnf.Variable) {
	IncFallback()
}

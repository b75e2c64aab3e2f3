package engine

import (
	"context"
	"sort"

	"github.com/operator-framework/basissynth/pkg/cnf"
)

// Repair applies the Diagnoser's classified actions to basis, processing
// diagnoses in increasing rank order within this iteration (spec.md §4.8:
// "repairs within a single iteration are applied in order of increasing
// rank"). Each repair's conflict formula is built against fix so that
// higher-ranked, not-yet-repaired outputs stay pinned to the Diagnoser's
// target rather than their stale synthesized value.
func Repair(ctx context.Context, oracle RepairOracle, spec *cnf.Spec, order *Order, basis *BasisStore, cex *Counterexample, fix cnf.Sample, diagnoses []Diagnosis, threshold int, tracer Tracer, iteration int) error {
	sorted := append([]Diagnosis{}, diagnoses...)
	sort.Slice(sorted, func(i, j int) bool { return order.Rank(sorted[i].Y) < order.Rank(sorted[j].Y) })

	for _, d := range sorted {
		entry := basis.Entry(d.Y)
		if entry.Frozen {
			continue
		}

		beta, err := oracle.Conflict(ctx, spec, order, basis, d.Y, cex.G[d.Y], cex, fix)
		if err != nil {
			return err
		}

		switch d.Action {
		case ShrinkA:
			entry.ShrinkA(beta)
		case ExpandA:
			entry.ExpandA(beta)
		case ShrinkC:
			entry.ShrinkC(beta)
		case ExpandC:
			entry.ExpandC(beta)
		}
		entry.RepairCount++

		tracer.TraceRepair(RepairEvent{Iteration: iteration, Diagnosis: d, Beta: beta})

		if entry.RepairCount > threshold {
			entry.Freeze(spec)
			tracer.TraceFallback(iteration, d.Y)
		}
	}
	return nil
}

package engine

import (
	"github.com/operator-framework/basissynth/pkg/cnf"
)

// Label classifies sample's behavior for y by propagation: fix every
// variable but y to its value in sample, then check F under y=0 and
// y=1. This is linear in clause count and never calls a SAT solver
// (spec.md §4.3).
func Label(spec *cnf.Spec, sample cnf.Sample, y cnf.Variable) (cnf.Label, error) {
	at0 := sample.Clone()
	at0[y] = false
	at1 := sample.Clone()
	at1[y] = true

	sat0 := spec.Satisfied(at0)
	sat1 := spec.Satisfied(at1)

	switch {
	case !sat0 && sat1:
		return cnf.MustBeOne, nil
	case sat0 && !sat1:
		return cnf.MustBeZero, nil
	case sat0 && sat1:
		return cnf.DontCare, nil
	default:
		return 0, &InvariantViolationError{
			Reason: "labeler saw a sample that falsifies F under both polarities of an output variable",
		}
	}
}

// Features restricts sample to the allowed feature set for y (X ∪
// Y_{<i}); features outside that set are never consulted (spec.md §4.3).
func Features(order *Order, spec *cnf.Spec, sample cnf.Sample, y cnf.Variable) map[cnf.Variable]bool {
	allowed := order.AllowedFeatures(spec, y)
	out := make(map[cnf.Variable]bool, len(allowed))
	for _, v := range allowed {
		out[v] = sample[v]
	}
	return out
}

// LabelRows builds one LabeledRow per sample for y, using Label and
// Features.
func LabelRows(order *Order, spec *cnf.Spec, samples []cnf.Sample, y cnf.Variable) ([]cnf.LabeledRow, error) {
	rows := make([]cnf.LabeledRow, 0, len(samples))
	for _, s := range samples {
		label, err := Label(spec, s, y)
		if err != nil {
			return nil, err
		}
		rows = append(rows, cnf.LabeledRow{
			Features: Features(order, spec, s, y),
			Label:    label,
		})
	}
	return rows, nil
}

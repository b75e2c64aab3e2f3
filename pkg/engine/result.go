package engine

import "github.com/operator-framework/basissynth/pkg/cnf"

// Status names the terminal state a Run reached (spec.md §4.10).
type Status int

const (
	// StatusDone means the Verifier reported UNSAT: the current basis is
	// a valid Skolem function for every output.
	StatusDone Status = iota
	// StatusAbort means the run stopped before converging: iteration cap
	// reached, or a fatal collaborator/invariant error.
	StatusAbort
)

func (s Status) String() string {
	if s == StatusDone {
		return "done"
	}
	return "abort"
}

// Result is what Run returns: the terminal status, the basis reached (complete
// on StatusDone, partial on StatusAbort), the last counterexample seen (nil
// on StatusDone), and the error that caused an abort, if any (spec.md §9's
// partial-result surfacing).
type Result struct {
	Status             Status
	Basis              *BasisStore
	Order              *Order
	LastCounterexample *Counterexample
	Iterations         int
	Err                error
}

// Circuit is the structural description of a synthesized basis, suitable
// for serialization by a CircuitEmitter (spec.md §6): one DNF/CNF pair per
// output, keyed by variable, plus the order they must be evaluated in so a
// downstream output's g/Y_{<i} feature wiring can be reconstructed.
type Circuit struct {
	Order   []cnf.Variable
	Outputs map[cnf.Variable]CircuitOutput
}

// CircuitOutput is one output's realized ψ_i = Â_i ∨ (g_i ∧ ¬Ĉ_i).
// A non-frozen output defines Â_i/Ĉ_i structurally via ADNF/ACNF/CDNF/CCNF.
// A frozen output (spec.md §4.9's Hard-to-Learn Fallback) instead defines
// them via the cofactors FAtYTrue = F|_{y=1} and FAtYFalse = F|_{y=0}:
// Â_i = FAtYTrue ∧ ¬FAtYFalse, Ĉ_i = FAtYFalse ∧ ¬FAtYTrue. The two
// representations are mutually exclusive per output; ADNF/ACNF/CDNF/CCNF
// are left empty on a frozen output rather than carrying the stale values
// from before the freeze.
type CircuitOutput struct {
	ADNF   cnf.DNF
	ACNF   cnf.CNF
	CDNF   cnf.DNF
	CCNF   cnf.CNF
	Frozen bool

	FAtYTrue  cnf.CNF
	FAtYFalse cnf.CNF
}

// BuildCircuit snapshots basis into a Circuit ready for emission.
func BuildCircuit(order *Order, basis *BasisStore) *Circuit {
	c := &Circuit{
		Order:   order.Sequence(),
		Outputs: make(map[cnf.Variable]CircuitOutput, len(order.Sequence())),
	}
	for _, y := range order.Sequence() {
		e := basis.Entry(y)
		out := CircuitOutput{Frozen: e.Frozen}
		if fAtYTrue, fAtYFalse, ok := e.SemanticFallback(); ok {
			out.FAtYTrue = append(cnf.CNF{}, fAtYTrue...)
			out.FAtYFalse = append(cnf.CNF{}, fAtYFalse...)
		} else {
			out.ADNF = append(cnf.DNF{}, e.ADNF...)
			out.ACNF = append(cnf.CNF{}, e.ACNF...)
			out.CDNF = append(cnf.DNF{}, e.CDNF...)
			out.CCNF = append(cnf.CNF{}, e.CCNF...)
		}
		c.Outputs[y] = out
	}
	return c
}

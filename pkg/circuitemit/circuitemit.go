// Package circuitemit implements engine.CircuitEmitter by serializing a
// synthesized Circuit as JSON: one object per output with its Â_i/Ĉ_i
// DNF and CNF forms spelled out as literal strings, readable without a
// copy of this module's cnf package. A frozen output carries its
// cofactor fallback clauses instead (spec.md §4.9): a_dnf/a_cnf/c_dnf/c_cnf
// are left empty and fallback_f_at_y_true/fallback_f_at_y_false are
// populated, so a consumer can still reconstruct ψ_i rather than being
// handed the abandoned pre-freeze DNF/CNF as if it were current.
package circuitemit

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/operator-framework/basissynth/pkg/cnf"
	"github.com/operator-framework/basissynth/pkg/engine"
)

func varName(v cnf.Variable) string {
	return fmt.Sprintf("x%d", v)
}

// JSONEmitter writes a Circuit as indented JSON.
type JSONEmitter struct{}

// New returns a JSONEmitter.
func New() *JSONEmitter { return &JSONEmitter{} }

type document struct {
	Order   []string                  `json:"order"`
	Outputs map[string]outputDocument `json:"outputs"`
}

type outputDocument struct {
	ADNF   []string `json:"a_dnf,omitempty"`
	ACNF   []string `json:"a_cnf,omitempty"`
	CDNF   []string `json:"c_dnf,omitempty"`
	CCNF   []string `json:"c_cnf,omitempty"`
	Frozen bool     `json:"frozen"`

	// FAtYTrue and FAtYFalse are F|_{y=1} and F|_{y=0} (spec.md §4.9): the
	// structural definition of a frozen output, where
	// Â_i = FAtYTrue ∧ ¬FAtYFalse and Ĉ_i = FAtYFalse ∧ ¬FAtYTrue. Absent
	// on a non-frozen output.
	FAtYTrue  []string `json:"fallback_f_at_y_true,omitempty"`
	FAtYFalse []string `json:"fallback_f_at_y_false,omitempty"`
}

func cubeStrings(d cnf.DNF) []string {
	out := make([]string, len(d))
	for i, c := range d {
		out[i] = c.String()
	}
	return out
}

func clauseStrings(c cnf.CNF) []string {
	out := make([]string, len(c))
	for i, cl := range c {
		out[i] = cl.String()
	}
	return out
}

// Emit implements engine.CircuitEmitter.
func (*JSONEmitter) Emit(w io.Writer, circuit *engine.Circuit) error {
	doc := document{
		Order:   make([]string, len(circuit.Order)),
		Outputs: make(map[string]outputDocument, len(circuit.Outputs)),
	}
	for i, y := range circuit.Order {
		doc.Order[i] = varName(y)
	}
	for y, out := range circuit.Outputs {
		doc.Outputs[varName(y)] = outputDocument{
			ADNF:      cubeStrings(out.ADNF),
			ACNF:      clauseStrings(out.ACNF),
			CDNF:      cubeStrings(out.CDNF),
			CCNF:      clauseStrings(out.CCNF),
			Frozen:    out.Frozen,
			FAtYTrue:  clauseStrings(out.FAtYTrue),
			FAtYFalse: clauseStrings(out.FAtYFalse),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

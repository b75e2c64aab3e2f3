package engine

import (
	"github.com/operator-framework/basissynth/pkg/cnf"
)

// semanticKind distinguishes the two cofactor-derived "must" regions used
// by the Hard-to-Learn Fallback (spec.md §4.9).
type semanticKind int

const (
	semanticMust1 semanticKind = iota // F|_{y=1} ∧ ¬F|_{y=0}
	semanticMust0                     // F|_{y=0} ∧ ¬F|_{y=1}
)

// semanticFormula is a structural (non-flattened) representation of a
// cofactor-derived must region: the two CNF cofactors F|_{y=1} and
// F|_{y=0}, computed once at Freeze time, rather than an expansion into a
// DNF/CNF, avoiding the blow-up spec.md §4.9 warns against. Keeping the
// cofactors themselves (not just their evaluation) lets a frozen entry's
// definition be serialized structurally instead of only evaluated
// in-process.
type semanticFormula struct {
	fAtYTrue  cnf.CNF
	fAtYFalse cnf.CNF
	kind      semanticKind
}

func (f semanticFormula) evaluate(assignment cnf.Sample) bool {
	fAt1 := f.fAtYTrue.Evaluate(assignment)
	fAt0 := f.fAtYFalse.Evaluate(assignment)

	if f.kind == semanticMust1 {
		return fAt1 && !fAt0
	}
	return fAt0 && !fAt1
}

// BasisEntry is the per-output skolem basis state described in spec.md
// §3: a dual DNF/CNF representation of Â_i and Ĉ_i, where the effective
// set is their conjunction. Once repair_count exceeds the configured
// threshold, the entry is frozen and driven by semantic cofactor
// definitions instead (spec.md §4.9).
type BasisEntry struct {
	Y cnf.Variable

	ADNF cnf.DNF
	ACNF cnf.CNF
	CDNF cnf.DNF
	CCNF cnf.CNF

	RepairCount int
	Frozen      bool

	semanticA semanticFormula
	semanticC semanticFormula
}

// NewBasisEntry returns the initial entry for y: A_dnf = C_dnf = false,
// A_cnf = C_cnf = true (spec.md §3).
func NewBasisEntry(y cnf.Variable) *BasisEntry {
	return &BasisEntry{Y: y}
}

// EvalA reports whether Â_i(assignment) holds: A_dnf ∧ A_cnf, or the
// semantic definition once frozen.
func (e *BasisEntry) EvalA(assignment cnf.Sample) bool {
	if e.Frozen {
		return e.semanticA.evaluate(assignment)
	}
	return e.ADNF.Evaluate(assignment) && e.ACNF.Evaluate(assignment)
}

// EvalC reports whether Ĉ_i(assignment) holds: C_dnf ∧ C_cnf, or the
// semantic definition once frozen.
func (e *BasisEntry) EvalC(assignment cnf.Sample) bool {
	if e.Frozen {
		return e.semanticC.evaluate(assignment)
	}
	return e.CDNF.Evaluate(assignment) && e.CCNF.Evaluate(assignment)
}

// EvalPsi computes ψ_i(X, Y_{<i}, g_i) = Â_i ∨ (g_i ∧ ¬Ĉ_i) for a given
// choice of the free parameter g.
func (e *BasisEntry) EvalPsi(assignment cnf.Sample, g bool) bool {
	return e.EvalA(assignment) || (g && !e.EvalC(assignment))
}

// ShrinkA tightens Â_i by conjoining the negation of β: A_cnf ← A_cnf ∧ ¬β.
func (e *BasisEntry) ShrinkA(beta cnf.Cube) {
	e.ACNF = e.ACNF.And(negateCube(beta))
}

// ExpandA grows Â_i by disjoining β: A_dnf ← A_dnf ∨ β.
func (e *BasisEntry) ExpandA(beta cnf.Cube) {
	e.ADNF = e.ADNF.Or(beta)
}

// ShrinkC tightens Ĉ_i: C_cnf ← C_cnf ∧ ¬β.
func (e *BasisEntry) ShrinkC(beta cnf.Cube) {
	e.CCNF = e.CCNF.And(negateCube(beta))
}

// ExpandC grows Ĉ_i: C_dnf ← C_dnf ∨ β.
func (e *BasisEntry) ExpandC(beta cnf.Cube) {
	e.CDNF = e.CDNF.Or(beta)
}

// Freeze replaces Â_i/Ĉ_i with their semantic cofactor definitions and
// marks the entry frozen for the remainder of the run (spec.md §4.9).
func (e *BasisEntry) Freeze(spec *cnf.Spec) {
	e.Frozen = true
	fAtYTrue := cnf.CNF(spec.Clauses).Cofactor(e.Y, true)
	fAtYFalse := cnf.CNF(spec.Clauses).Cofactor(e.Y, false)
	e.semanticA = semanticFormula{fAtYTrue: fAtYTrue, fAtYFalse: fAtYFalse, kind: semanticMust1}
	e.semanticC = semanticFormula{fAtYTrue: fAtYTrue, fAtYFalse: fAtYFalse, kind: semanticMust0}
}

// SemanticFallback returns the two CNF cofactors backing this entry's
// frozen semantic definition (spec.md §4.9): Â_i = fAtYTrue ∧ ¬fAtYFalse,
// Ĉ_i = fAtYFalse ∧ ¬fAtYTrue. ok is false when the entry has not been
// frozen, in which case the DNF/CNF fields are the authoritative
// definition instead.
func (e *BasisEntry) SemanticFallback() (fAtYTrue, fAtYFalse cnf.CNF, ok bool) {
	if !e.Frozen {
		return nil, nil, false
	}
	return e.semanticA.fAtYTrue, e.semanticA.fAtYFalse, true
}

// negateCube turns a cube (conjunction) into the equivalent clause
// (disjunction) by De Morgan, the clause added to a CNF to forbid it.
func negateCube(c cnf.Cube) cnf.Clause {
	out := make(cnf.Clause, len(c))
	for i, l := range c {
		out[i] = l.Negate()
	}
	return out
}

// Simplify removes cubes of A_dnf and C_dnf that are subsumed by a
// shorter cube of the same DNF. A_cnf and C_cnf are left unchanged. This
// is the optional periodic pass permitted (not required) by spec.md §9;
// it must only be invoked after the loop reaches DONE.
func (e *BasisEntry) Simplify() {
	e.ADNF = simplifyDNF(e.ADNF)
	e.CDNF = simplifyDNF(e.CDNF)
}

func simplifyDNF(d cnf.DNF) cnf.DNF {
	keep := make([]bool, len(d))
	for i := range keep {
		keep[i] = true
	}
	for i, a := range d {
		if !keep[i] {
			continue
		}
		for j, b := range d {
			if i == j || !keep[j] {
				continue
			}
			// a subsumes b (a is a subset of b's literals) means b is
			// the more specific, redundant cube when a already covers it.
			if a.Subsumes(b) && len(a) < len(b) {
				keep[j] = false
			}
		}
	}
	out := make(cnf.DNF, 0, len(d))
	for i, k := range keep {
		if k {
			out = append(out, d[i])
		}
	}
	return out
}

// BasisStore holds, per output variable, its BasisEntry. It is owned
// exclusively by the Loop Controller (spec.md §5) and mutated only by the
// Repairer or the Fallback.
type BasisStore struct {
	entries map[cnf.Variable]*BasisEntry
	order   []cnf.Variable
}

// NewBasisStore creates an entry for every y in order, preserving rank
// order for deterministic iteration.
func NewBasisStore(order []cnf.Variable) *BasisStore {
	bs := &BasisStore{
		entries: make(map[cnf.Variable]*BasisEntry, len(order)),
		order:   append([]cnf.Variable{}, order...),
	}
	for _, y := range order {
		bs.entries[y] = NewBasisEntry(y)
	}
	return bs
}

// Entry returns the BasisEntry for y, or nil if y is not in the store.
func (bs *BasisStore) Entry(y cnf.Variable) *BasisEntry {
	return bs.entries[y]
}

// Order returns the outputs in rank order.
func (bs *BasisStore) Order() []cnf.Variable {
	return append([]cnf.Variable{}, bs.order...)
}

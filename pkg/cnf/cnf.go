// Package cnf holds the data model shared by every stage of the synthesis
// engine: variables, literals, clauses, cubes, and the relational
// specification F itself.
package cnf

import (
	"fmt"
	"sort"
	"strings"
)

// Variable identifies a boolean variable by a positive integer, as in
// DIMACS/QDIMACS numbering.
type Variable int

// Kind tags a Variable as universal (input, X) or existential (output, Y).
type Kind int

const (
	Universal Kind = iota
	Existential
)

func (k Kind) String() string {
	if k == Universal {
		return "universal"
	}
	return "existential"
}

// Literal is a signed Variable reference: positive values mean the
// variable appears unnegated, negative values mean it appears negated.
// Variable 0 is never valid, so the zero Literal is reserved as a null
// value.
type Literal int

// Lit builds a Literal for v with the given polarity.
func Lit(v Variable, positive bool) Literal {
	if positive {
		return Literal(v)
	}
	return Literal(-v)
}

// Var returns the underlying Variable, stripping sign.
func (l Literal) Var() Variable {
	if l < 0 {
		return Variable(-l)
	}
	return Variable(l)
}

// Positive reports whether l is the unnegated literal of its Variable.
func (l Literal) Positive() bool { return l > 0 }

// Negate returns the complementary literal.
func (l Literal) Negate() Literal { return -l }

func (l Literal) String() string {
	if l.Positive() {
		return fmt.Sprintf("x%d", l.Var())
	}
	return fmt.Sprintf("-x%d", l.Var())
}

// Clause is a disjunction of literals.
type Clause []Literal

func (c Clause) String() string {
	s := make([]string, len(c))
	for i, l := range c {
		s[i] = l.String()
	}
	return "(" + strings.Join(s, " ∨ ") + ")"
}

// Satisfied reports whether c evaluates to true under the given total
// assignment.
func (c Clause) Satisfied(assignment map[Variable]bool) bool {
	for _, l := range c {
		v, ok := assignment[l.Var()]
		if !ok {
			continue
		}
		if v == l.Positive() {
			return true
		}
	}
	return false
}

// Cube is a conjunction of literals, treated as a set: duplicates are
// collapsed and a variable that appears with both polarities makes the
// cube unsatisfiable, represented by NewCube returning ok=false.
type Cube []Literal

// NewCube builds a Cube from lits, deduplicating and detecting
// contradictions. ok is false if some variable appears both positively
// and negatively.
func NewCube(lits ...Literal) (cube Cube, ok bool) {
	seen := make(map[Variable]bool, len(lits))
	out := make(Cube, 0, len(lits))
	for _, l := range lits {
		if pos, present := seen[l.Var()]; present {
			if pos != l.Positive() {
				return nil, false
			}
			continue
		}
		seen[l.Var()] = l.Positive()
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Var() < out[j].Var() })
	return out, true
}

// Satisfied reports whether every literal in the cube holds under
// assignment. Variables absent from assignment are treated as
// unconstrained and do not satisfy a literal referencing them.
func (c Cube) Satisfied(assignment map[Variable]bool) bool {
	for _, l := range c {
		v, ok := assignment[l.Var()]
		if !ok || v != l.Positive() {
			return false
		}
	}
	return true
}

func (c Cube) String() string {
	s := make([]string, len(c))
	for i, l := range c {
		s[i] = l.String()
	}
	return "(" + strings.Join(s, " ∧ ") + ")"
}

// Subsumes reports whether c is a (non-strict) subset of other, i.e.
// every literal of c also appears in other - meaning c is a weaker (more
// general) constraint that makes other redundant in a DNF.
func (c Cube) Subsumes(other Cube) bool {
	set := make(map[Literal]bool, len(other))
	for _, l := range other {
		set[l] = true
	}
	for _, l := range c {
		if !set[l] {
			return false
		}
	}
	return true
}

// DNF is a disjunction of cubes: true iff at least one cube is satisfied.
// An empty DNF is the constant false.
type DNF []Cube

// Evaluate reports whether the DNF holds under assignment.
func (d DNF) Evaluate(assignment map[Variable]bool) bool {
	for _, cube := range d {
		if cube.Satisfied(assignment) {
			return true
		}
	}
	return false
}

// Or returns a new DNF with cube appended.
func (d DNF) Or(cube Cube) DNF {
	return append(append(DNF{}, d...), cube)
}

// CNF is a conjunction of clauses: true iff every clause is satisfied. An
// empty CNF is the constant true.
type CNF []Clause

// Evaluate reports whether the CNF holds under assignment.
func (c CNF) Evaluate(assignment map[Variable]bool) bool {
	for _, clause := range c {
		if !clause.Satisfied(assignment) {
			return false
		}
	}
	return true
}

// And returns a new CNF with clause appended.
func (c CNF) And(clause Clause) CNF {
	return append(append(CNF{}, c...), clause)
}

// Cofactor restricts c by fixing v to value: a clause containing the
// literal that restriction satisfies is dropped entirely, and the
// complementary literal is removed from every other clause that carries
// it. The result no longer mentions v and is equisatisfiable with c under
// that fixing, the standard CNF cofactor used to ground the Hard-to-Learn
// Fallback's semantic definitions (spec.md §4.9) in F itself rather than
// in a flattened DNF/CNF.
func (c CNF) Cofactor(v Variable, value bool) CNF {
	out := make(CNF, 0, len(c))
	for _, cl := range c {
		satisfied := false
		next := make(Clause, 0, len(cl))
		for _, l := range cl {
			if l.Var() != v {
				next = append(next, l)
				continue
			}
			if l.Positive() == value {
				satisfied = true
				break
			}
		}
		if satisfied {
			continue
		}
		out = append(out, next)
	}
	return out
}

// Spec is the relational specification F: an ordered, read-only-after-load
// clause database over universal (X) and existential (Y) variables.
type Spec struct {
	Clauses []Clause
	kinds   map[Variable]Kind
	xOrder  []Variable
	yOrder  []Variable
}

// NewSpec builds a Spec from clauses and an explicit variable partition.
// Variables appearing in clauses but absent from both x and y default to
// Universal, per QDIMACS convention (spec.md §6).
func NewSpec(clauses []Clause, x, y []Variable) *Spec {
	kinds := make(map[Variable]Kind, len(x)+len(y))
	for _, v := range x {
		kinds[v] = Universal
	}
	for _, v := range y {
		kinds[v] = Existential
	}
	for _, cl := range clauses {
		for _, l := range cl {
			if _, ok := kinds[l.Var()]; !ok {
				kinds[l.Var()] = Universal
				x = append(x, l.Var())
			}
		}
	}
	return &Spec{
		Clauses: clauses,
		kinds:   kinds,
		xOrder:  x,
		yOrder:  y,
	}
}

// Kind returns the tag of v, defaulting to Universal for variables the
// Spec has never seen.
func (s *Spec) Kind(v Variable) Kind {
	if k, ok := s.kinds[v]; ok {
		return k
	}
	return Universal
}

// X returns the universal (input) variables in declaration order.
func (s *Spec) X() []Variable { return append([]Variable{}, s.xOrder...) }

// Y returns the existential (output) variables in declaration order.
func (s *Spec) Y() []Variable { return append([]Variable{}, s.yOrder...) }

// Satisfied reports whether the full clause database holds under a total
// assignment.
func (s *Spec) Satisfied(assignment map[Variable]bool) bool {
	for _, cl := range s.Clauses {
		if !cl.Satisfied(assignment) {
			return false
		}
	}
	return true
}

// Sample is a total mapping from Variable to a boolean value, satisfying
// F by construction when produced by a Sampler.
type Sample map[Variable]bool

// Clone returns an independent copy of the sample.
func (s Sample) Clone() Sample {
	out := make(Sample, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Label classifies the behavior of an output variable on a sample
// restricted to its allowed feature set.
type Label int

const (
	MustBeZero Label = iota
	MustBeOne
	DontCare
)

func (l Label) String() string {
	switch l {
	case MustBeZero:
		return "MUST0"
	case MustBeOne:
		return "MUST1"
	case DontCare:
		return "DONTCARE"
	default:
		return "UNKNOWN"
	}
}

// LabeledRow is one training example for the Learner: a feature
// assignment over the allowed feature set of some y_i, plus its Label.
type LabeledRow struct {
	Features map[Variable]bool
	Label    Label
}

package engine

import (
	"sort"

	"github.com/operator-framework/basissynth/pkg/cnf"
)

// Order is the total order over Y produced by the Dependency Analyzer
// (spec.md §4.1). It is fixed at load time and never revised.
type Order struct {
	sequence []cnf.Variable
	rank     map[cnf.Variable]int
}

// Rank returns the topological position of y, or -1 if y is not an
// existential variable known to this Order.
func (o *Order) Rank(y cnf.Variable) int {
	if r, ok := o.rank[y]; ok {
		return r
	}
	return -1
}

// Sequence returns Y in rank order.
func (o *Order) Sequence() []cnf.Variable {
	return append([]cnf.Variable{}, o.sequence...)
}

// AllowedFeatures returns X ∪ { y_j | rank(y_j) < rank(y) }, the feature
// set the Labeler and Learner may consult for y (spec.md §4.1).
func (o *Order) AllowedFeatures(spec *cnf.Spec, y cnf.Variable) []cnf.Variable {
	out := append([]cnf.Variable{}, spec.X()...)
	r := o.Rank(y)
	for _, yj := range o.sequence {
		if o.Rank(yj) < r {
			out = append(out, yj)
		}
	}
	return out
}

// AnalyzeDependencies builds the undirected co-occurrence graph over Y
// (an edge between y_i and y_j whenever some clause of F mentions both)
// and repeatedly removes the minimum-degree vertex, appending it to the
// order (spec.md §4.1). Ties are broken by smaller variable id; this is a
// determinism choice only, as noted in spec.md §9's open questions - it
// does not affect correctness.
func AnalyzeDependencies(spec *cnf.Spec) *Order {
	y := spec.Y()
	inY := make(map[cnf.Variable]bool, len(y))
	for _, v := range y {
		inY[v] = true
	}

	adj := make(map[cnf.Variable]map[cnf.Variable]bool, len(y))
	for _, v := range y {
		adj[v] = make(map[cnf.Variable]bool)
	}
	for _, cl := range spec.Clauses {
		var present []cnf.Variable
		for _, l := range cl {
			if inY[l.Var()] {
				present = append(present, l.Var())
			}
		}
		for i := range present {
			for j := range present {
				if i == j {
					continue
				}
				adj[present[i]][present[j]] = true
			}
		}
	}

	remaining := make(map[cnf.Variable]bool, len(y))
	for _, v := range y {
		remaining[v] = true
	}

	sequence := make([]cnf.Variable, 0, len(y))
	for len(remaining) > 0 {
		var candidates []cnf.Variable
		for v := range remaining {
			candidates = append(candidates, v)
		}
		sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

		best := candidates[0]
		bestDegree := degree(adj, remaining, best)
		for _, v := range candidates[1:] {
			d := degree(adj, remaining, v)
			if d < bestDegree {
				best = v
				bestDegree = d
			}
		}

		sequence = append(sequence, best)
		delete(remaining, best)
		for other := range adj[best] {
			delete(adj[other], best)
		}
	}

	rank := make(map[cnf.Variable]int, len(sequence))
	for i, v := range sequence {
		rank[v] = i
	}
	return &Order{sequence: sequence, rank: rank}
}

func degree(adj map[cnf.Variable]map[cnf.Variable]bool, remaining map[cnf.Variable]bool, v cnf.Variable) int {
	d := 0
	for other := range adj[v] {
		if remaining[other] {
			d++
		}
	}
	return d
}

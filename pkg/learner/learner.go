// Package learner implements engine.TreeLearner as a CART-style decision
// tree over Gini impurity. None of the example repos in this module's
// corpus carry a decision-tree or general ML library, so this is a
// deliberate standard-library implementation rather than a gap in
// dependency coverage (see DESIGN.md).
package learner

import (
	"sort"

	"github.com/operator-framework/basissynth/pkg/cnf"
	"github.com/operator-framework/basissynth/pkg/engine"
)

// Learner fits a decision tree bounded to MaxDepth levels.
type Learner struct {
	MaxDepth int
}

// New returns a Learner with the given depth cap. A non-positive
// maxDepth falls back to a generous default.
func New(maxDepth int) *Learner {
	if maxDepth <= 0 {
		maxDepth = 16
	}
	return &Learner{MaxDepth: maxDepth}
}

// Fit implements engine.TreeLearner. seed is accepted for interface
// symmetry with Sampler but unused: splits are chosen by a fully
// deterministic impurity-then-lowest-variable-id rule, so there is
// nothing for a seed to perturb.
func (l *Learner) Fit(rows []cnf.LabeledRow, seed int64) (*engine.DecisionTree, error) {
	return build(rows, collectFeatures(rows), l.MaxDepth), nil
}

func collectFeatures(rows []cnf.LabeledRow) []cnf.Variable {
	seen := make(map[cnf.Variable]bool)
	for _, r := range rows {
		for v := range r.Features {
			seen[v] = true
		}
	}
	out := make([]cnf.Variable, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func build(rows []cnf.LabeledRow, features []cnf.Variable, depth int) *engine.DecisionTree {
	if len(rows) == 0 {
		return &engine.DecisionTree{IsLeaf: true, Label: cnf.DontCare}
	}
	if pure(rows) || depth == 0 || len(features) == 0 {
		return &engine.DecisionTree{IsLeaf: true, Label: majority(rows)}
	}

	feature, gain := bestSplit(rows, features)
	if gain <= 0 {
		return &engine.DecisionTree{IsLeaf: true, Label: majority(rows)}
	}

	var left, right []cnf.LabeledRow
	for _, r := range rows {
		if r.Features[feature] {
			right = append(right, r)
		} else {
			left = append(left, r)
		}
	}
	remaining := make([]cnf.Variable, 0, len(features)-1)
	for _, f := range features {
		if f != feature {
			remaining = append(remaining, f)
		}
	}

	return &engine.DecisionTree{
		Feature: feature,
		Left:    build(left, remaining, depth-1),
		Right:   build(right, remaining, depth-1),
	}
}

func pure(rows []cnf.LabeledRow) bool {
	for _, r := range rows[1:] {
		if r.Label != rows[0].Label {
			return false
		}
	}
	return true
}

func majority(rows []cnf.LabeledRow) cnf.Label {
	var counts [3]int
	for _, r := range rows {
		counts[r.Label]++
	}
	best, bestCount := cnf.MustBeZero, -1
	for _, lbl := range []cnf.Label{cnf.MustBeZero, cnf.MustBeOne, cnf.DontCare} {
		if counts[lbl] > bestCount {
			best, bestCount = lbl, counts[lbl]
		}
	}
	return best
}

func impurity(rows []cnf.LabeledRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	var counts [3]int
	for _, r := range rows {
		counts[r.Label]++
	}
	total := float64(len(rows))
	sum := 0.0
	for _, c := range counts {
		p := float64(c) / total
		sum += p * p
	}
	return 1 - sum
}

// bestSplit scans features in ascending variable-id order and returns
// the one with the greatest weighted-impurity reduction, breaking ties
// in favor of the lowest id by only replacing the incumbent on a
// strictly greater gain (spec.md §9's determinism note applies here the
// same way it applies to the Dependency Analyzer's tie-break).
func bestSplit(rows []cnf.LabeledRow, features []cnf.Variable) (cnf.Variable, float64) {
	base := impurity(rows)
	total := float64(len(rows))

	var bestFeature cnf.Variable
	bestGain := 0.0
	found := false

	for _, f := range features {
		var left, right []cnf.LabeledRow
		for _, r := range rows {
			if r.Features[f] {
				right = append(right, r)
			} else {
				left = append(left, r)
			}
		}
		if len(left) == 0 || len(right) == 0 {
			continue
		}
		weighted := (float64(len(left))/total)*impurity(left) + (float64(len(right))/total)*impurity(right)
		gain := base - weighted
		if !found || gain > bestGain {
			bestFeature, bestGain, found = f, gain, true
		}
	}
	return bestFeature, bestGain
}

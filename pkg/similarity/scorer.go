// Package similarity maps a pair of attribute records to an integer edge
// weight. What counts as similar is configuration: a Scorer is a list of
// rules, each naming an attribute, a match predicate and a weight.
package similarity

import (
	"github.com/dd0wney/cluso-simgraph/pkg/record"
)

// Predicate decides whether a pair of attribute values contributes to the
// score.
type Predicate func(a, b record.Value) bool

// Equal matches when both values are identical.
func Equal() Predicate {
	return func(a, b record.Value) bool {
		return a.Equal(b)
	}
}

// BothEqual matches only when both values equal flag, e.g. both records
// marked with the same binary condition. Two records that merely agree on
// another value do not match.
func BothEqual(flag record.Value) Predicate {
	return func(a, b record.Value) bool {
		return a.Equal(flag) && b.Equal(flag)
	}
}

// Rule adds Weight to the score when Match accepts the values at Key.
type Rule struct {
	Key    record.Key
	Match  Predicate
	Weight uint32
}

// Scorer sums rule weights over a pair of records.
type Scorer struct {
	rules []Rule
}

// NewScorer creates a scorer from rules, evaluated in order.
func NewScorer(rules ...Rule) *Scorer {
	cp := make([]Rule, len(rules))
	copy(cp, rules)
	return &Scorer{rules: cp}
}

// Rules returns a copy of the scorer's rules
func (s *Scorer) Rules() []Rule {
	cp := make([]Rule, len(s.rules))
	copy(cp, s.rules)
	return cp
}

// Score returns the similarity weight of a and b. Zero means the pair should
// not be connected. Score is pure and symmetric as long as every predicate is.
func (s *Scorer) Score(a, b record.Record) uint32 {
	var weight uint32
	for _, r := range s.rules {
		if r.Match(a.Get(r.Key), b.Get(r.Key)) {
			weight += r.Weight
		}
	}
	return weight
}

// StudentRules reproduces the weighting used on the student performance
// population: one point each for matching school type, family income,
// motivation level and peer influence, and one point when both students have
// a learning disability.
func StudentRules(schema *record.Schema) ([]Rule, error) {
	keys, err := schema.Keys(
		record.SchoolType,
		record.FamilyIncome,
		record.MotivationLevel,
		record.PeerInfluence,
		record.LearningDisabilities,
	)
	if err != nil {
		return nil, err
	}
	return []Rule{
		{Key: keys[0], Match: Equal(), Weight: 1},
		{Key: keys[1], Match: Equal(), Weight: 1},
		{Key: keys[2], Match: Equal(), Weight: 1},
		{Key: keys[3], Match: Equal(), Weight: 1},
		{Key: keys[4], Match: BothEqual(record.CategoryValue("Yes")), Weight: 1},
	}, nil
}

package similarity

import (
	"fmt"

	"github.com/dd0wney/cluso-simgraph/pkg/config"
	"github.com/dd0wney/cluso-simgraph/pkg/record"
)

// FromConfig builds a scorer from configured rules resolved against schema.
// With no rules configured it falls back to StudentRules.
func FromConfig(schema *record.Schema, cfg config.Similarity) (*Scorer, error) {
	if len(cfg.Rules) == 0 {
		rules, err := StudentRules(schema)
		if err != nil {
			return nil, fmt.Errorf("student rules: %w", err)
		}
		return NewScorer(rules...), nil
	}

	rules := make([]Rule, 0, len(cfg.Rules))
	for i, rc := range cfg.Rules {
		key, err := schema.Key(rc.Attribute)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}

		var match Predicate
		switch rc.Match {
		case config.MatchEqual:
			match = Equal()
		case config.MatchBoth:
			field, _ := schema.Field(key)
			flag, err := record.ParseValue(field.Kind, rc.Value)
			if err != nil {
				return nil, fmt.Errorf("rule %d (%s): %w", i, rc.Attribute, err)
			}
			match = BothEqual(flag)
		default:
			return nil, fmt.Errorf("rule %d (%s): unknown match %q", i, rc.Attribute, rc.Match)
		}

		rules = append(rules, Rule{Key: key, Match: match, Weight: rc.Weight})
	}
	return NewScorer(rules...), nil
}

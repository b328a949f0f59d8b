// Package config holds the YAML configuration of a similarity-graph run.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-simgraph/pkg/record"
	"github.com/dd0wney/cluso-simgraph/pkg/validation"
)

// Match names understood in similarity rules
const (
	MatchEqual = "equal"
	MatchBoth  = "both"
)

// Config is the root configuration.
type Config struct {
	LogLevel    string      `yaml:"log_level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	Workers     int         `yaml:"workers" validate:"min=0,max=1024"`
	TopN        int         `yaml:"top_n" validate:"min=0"`
	Sampling    Sampling    `yaml:"sampling"`
	Similarity  Similarity  `yaml:"similarity"`
	Clusters    Clusters    `yaml:"clusters"`
	Sensitivity Sensitivity `yaml:"sensitivity"`
}

// Sampling controls the train/held-out split.
type Sampling struct {
	TrainFraction float64 `yaml:"train_fraction" validate:"gte=0,lte=1"`
	Seed          uint64  `yaml:"seed"`
}

// Similarity lists the scoring rules. An empty list selects the student
// preset.
type Similarity struct {
	Rules []Rule `yaml:"rules,omitempty" validate:"dive"`
}

// Rule is one scoring term.
type Rule struct {
	Attribute string `yaml:"attribute" validate:"required"`
	Match     string `yaml:"match" validate:"required,oneof=equal both"`
	Value     string `yaml:"value,omitempty" validate:"required_if=Match both"`
	Weight    uint32 `yaml:"weight" validate:"min=1"`
}

// Clusters configures connected-component clustering.
type Clusters struct {
	MinWeight  uint32   `yaml:"min_weight"`
	Attributes []string `yaml:"attributes,omitempty"`
}

// Sensitivity configures attribute override analysis.
type Sensitivity struct {
	Enabled    bool     `yaml:"enabled"`
	Attributes []string `yaml:"attributes,omitempty"`
}

// Default returns the configuration of the reference run: 30% of the
// population in the train graph, clusters at weight 3 split by school type and
// family income.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Workers:  0,
		TopN:     10,
		Sampling: Sampling{
			TrainFraction: 0.3,
			Seed:          1,
		},
		Clusters: Clusters{
			MinWeight:  3,
			Attributes: []string{record.SchoolType, record.FamilyIncome},
		},
	}
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads YAML from r; see Parse.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Validate checks struct tags, then the cross-field rules.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cv := validation.NewConfigValidator("config")
	schema := record.StudentSchema()
	cv.Unique("clusters.attributes", c.Clusters.Attributes).
		Unique("sensitivity.attributes", c.Sensitivity.Attributes).
		Custom("clusters.attributes", func() error {
			_, err := schema.Keys(c.Clusters.Attributes...)
			return err
		}).
		When(c.Sensitivity.Enabled, func(v *validation.ConfigValidator) {
			neutrals := record.StudentNeutrals()
			for _, name := range c.Sensitivity.Attributes {
				v.Custom("sensitivity.attributes", func() error {
					if _, ok := neutrals[name]; !ok {
						return fmt.Errorf("no neutral value for %q", name)
					}
					return nil
				})
			}
		})
	if err := cv.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

package validation

import (
	"errors"
	"strings"
	"testing"
)

type sampleRule struct {
	Attribute string `yaml:"attribute" validate:"required"`
	Match     string `yaml:"match" validate:"oneof=equal both"`
	Weight    uint32 `yaml:"weight" validate:"min=1"`
}

type sampleConfig struct {
	Workers int          `yaml:"workers" validate:"min=0,max=256"`
	Rules   []sampleRule `yaml:"rules" validate:"dive"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		cfg     sampleConfig
		wantErr string
	}{
		{
			name: "valid",
			cfg:  sampleConfig{Workers: 4, Rules: []sampleRule{{"school_type", "equal", 1}}},
		},
		{
			name:    "too many workers",
			cfg:     sampleConfig{Workers: 1000},
			wantErr: "workers: must not exceed 256",
		},
		{
			name:    "missing attribute",
			cfg:     sampleConfig{Rules: []sampleRule{{"", "equal", 1}}},
			wantErr: "rules[0].attribute: field is required",
		},
		{
			name:    "bad match",
			cfg:     sampleConfig{Rules: []sampleRule{{"a", "fuzzy", 1}}},
			wantErr: "rules[0].match: must be one of [equal both]",
		},
		{
			name:    "zero weight",
			cfg:     sampleConfig{Rules: []sampleRule{{"a", "equal", 0}}},
			wantErr: "rules[0].weight: must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Struct() unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Struct() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestStructNil(t *testing.T) {
	if err := Struct(nil); err == nil {
		t.Error("Expected error for nil value")
	}
}

func TestConfigValidator(t *testing.T) {
	cv := NewConfigValidator("sampling")
	cv.Unique("attributes", []string{"a", "b", "a"}).
		Custom("seed", func() error { return errors.New("bad seed") }).
		When(false, func(v *ConfigValidator) {
			v.Custom("never", func() error { return errors.New("skipped") })
		}).
		When(true, func(v *ConfigValidator) {
			v.Unique("names", []string{"x", "x"})
		})

	err := cv.Validate()
	if err == nil {
		t.Fatal("Expected validation errors")
	}
	for _, want := range []string{
		`sampling.attributes: duplicate value "a"`,
		"sampling.seed: bad seed",
		`sampling.names: duplicate value "x"`,
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() = %v, missing %q", err, want)
		}
	}
	if strings.Contains(err.Error(), "skipped") {
		t.Errorf("When(false) ran its validations: %v", err)
	}

	ok := NewConfigValidator("clusters").Unique("y", []string{"a", "b"})
	if err := ok.Validate(); err != nil {
		t.Errorf("Expected no errors, got %v", err)
	}
}

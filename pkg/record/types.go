package record

import (
	"fmt"
	"strconv"
)

// Kind represents the type of an attribute value
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindCategory
)

// String returns the string representation of a kind
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindCategory:
		return "category"
	default:
		return "unknown"
	}
}

// ParseKind converts a string to a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "int", "integer":
		return KindInt, nil
	case "float":
		return KindFloat, nil
	case "category", "string":
		return KindCategory, nil
	default:
		return 0, fmt.Errorf("unknown attribute kind %q", s)
	}
}

// Value represents a typed attribute value.
// The zero Value is the integer 0.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Helper functions to create typed values
func IntValue(i int64) Value {
	return Value{kind: KindInt, i: i}
}

func FloatValue(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

func CategoryValue(s string) Value {
	return Value{kind: KindCategory, s: s}
}

// Kind returns the value's kind
func (v Value) Kind() Kind {
	return v.kind
}

// Decode methods
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, fmt.Errorf("%w: value is %s, not int", ErrKindMismatch, v.kind)
	}
	return v.i, nil
}

func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, fmt.Errorf("%w: value is %s, not float", ErrKindMismatch, v.kind)
	}
	return v.f, nil
}

func (v Value) AsCategory() (string, error) {
	if v.kind != KindCategory {
		return "", fmt.Errorf("%w: value is %s, not category", ErrKindMismatch, v.kind)
	}
	return v.s, nil
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	default:
		return v.s == other.s
	}
}

// String formats the payload without its kind.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

// ParseValue parses s as a value of the given kind.
func ParseValue(kind Kind, s string) (Value, error) {
	switch kind {
	case KindInt:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse int %q: %w", s, err)
		}
		return IntValue(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse float %q: %w", s, err)
		}
		return FloatValue(f), nil
	case KindCategory:
		return CategoryValue(s), nil
	default:
		return Value{}, fmt.Errorf("unknown attribute kind %d", kind)
	}
}
